package ppm

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingData is reported when a header is not followed by any
	// pixel bytes.
	ErrMissingData = errors.New("missing image data")

	// ErrSampleCount is returned by the grayscale encoder when the number
	// of samples does not match the image dimensions.
	ErrSampleCount = errors.New("sample count does not match image size")
)

// ParseError describes malformed input found while decoding. Line is the
// 1-based line of the header where the problem was found.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ppm: line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("ppm: line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
