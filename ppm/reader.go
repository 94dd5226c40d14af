package ppm

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"pixmap/pixel"
)

// maxPixels bounds the allocation made for a single image.
const maxPixels = 1 << 28

// Decoder reads binary pixel-map images.
type Decoder struct {
	// Strict rejects images whose pixel data does not hold exactly
	// width*height pixels. Otherwise short data leaves the remaining
	// pixels black and surplus data is ignored.
	Strict bool
}

type header struct {
	width, height int
	maxVal        int
	lines         int  // header lines consumed
	eof           bool // input ended inside the header
}

// Decode reads an image from r using the default, lenient Decoder.
func Decode(r io.Reader) (*pixel.Buffer, error) {
	return Decoder{}.Decode(r)
}

// DecodeConfig returns the dimensions of the image in r without reading
// the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: pixel.Model,
		Width:      h.width,
		Height:     h.height,
	}, nil
}

// Decode reads a header followed by raw RGB triples. The first header line
// is ignored. The second holds width, height and, optionally, the maximum
// sample value; if the latter is absent it is read from the third line.
// Everything after the header is pixel data, three bytes per pixel.
func (d Decoder) Decode(r io.Reader) (*pixel.Buffer, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if h.eof {
		return nil, &ParseError{Line: h.lines + 1, Msg: "no pixel data", Err: ErrMissingData}
	}

	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("could not read image data: %w", err)
	}
	if len(data) == 0 {
		return nil, &ParseError{Line: h.lines + 1, Msg: "no pixel data", Err: ErrMissingData}
	}

	n := h.width * h.height
	if d.Strict && len(data) != 3*n {
		return nil, &ParseError{
			Line: h.lines + 1,
			Msg:  fmt.Sprintf("expected %d bytes of pixel data, found %d", 3*n, len(data)),
		}
	}

	buf := pixel.New(h.width, h.height, pixel.Black)
	for i := 0; i < n && 3*i+2 < len(data); i++ {
		buf.Pix[i] = pixel.Pixel{
			R: data[3*i],
			G: data[3*i+1],
			B: data[3*i+2],
		}
	}

	return buf, nil
}

func readHeader(br *bufio.Reader) (header, error) {
	var h header

	// the magic number on the first line is not checked
	_, eof, err := readLine(br)
	if err != nil {
		return h, err
	}
	h.lines++
	if eof {
		return h, &ParseError{Line: 1, Msg: "file doesn't have enough lines"}
	}

	line, eof, err := readLine(br)
	if err != nil {
		return h, err
	}
	h.lines++
	h.eof = eof

	fields := strings.Fields(line)
	if len(fields) == 0 && eof {
		return h, &ParseError{Line: 2, Msg: "file doesn't have enough lines"}
	}
	if len(fields) < 2 {
		return h, &ParseError{Line: 2, Msg: fmt.Sprintf("expected width and height, found %q", line)}
	}

	if h.width, err = parseDim(fields[0]); err != nil {
		return h, &ParseError{Line: 2, Msg: "invalid width", Err: err}
	}
	if h.height, err = parseDim(fields[1]); err != nil {
		return h, &ParseError{Line: 2, Msg: "invalid height", Err: err}
	}
	if h.width == 0 || h.height == 0 {
		return h, &ParseError{Line: 2, Msg: fmt.Sprintf("empty image %dx%d", h.width, h.height)}
	}
	if h.width > maxPixels/h.height {
		return h, &ParseError{Line: 2, Msg: fmt.Sprintf("image too large %dx%d", h.width, h.height)}
	}

	maxField, maxLine := "", 2
	switch {
	case len(fields) > 2:
		maxField = fields[2]
	case !eof:
		line, eof, err = readLine(br)
		if err != nil {
			return h, err
		}
		h.lines++
		h.eof = eof
		maxLine = 3
		fields = strings.Fields(line)
		if len(fields) > 0 {
			maxField = fields[0]
		}
	}

	if maxField == "" {
		h.maxVal = 255
		if !h.eof {
			return h, &ParseError{Line: maxLine, Msg: "missing maximum sample value"}
		}
		return h, nil
	}
	if h.maxVal, err = strconv.Atoi(maxField); err != nil {
		return h, &ParseError{Line: maxLine, Msg: "invalid maximum sample value", Err: err}
	} else if h.maxVal != 255 {
		return h, &ParseError{Line: maxLine, Msg: fmt.Sprintf("unsupported maximum sample value %d", h.maxVal)}
	}

	return h, nil
}

// readLine returns the next line without its terminator. eof is set when
// the input ended before a newline was found.
func readLine(br *bufio.Reader) (string, bool, error) {
	line, err := br.ReadString('\n')
	if err == io.EOF {
		return strings.TrimRight(line, "\r"), true, nil
	} else if err != nil {
		return "", false, fmt.Errorf("could not read header: %w", err)
	}

	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), false, nil
}

func parseDim(s string) (int, error) {
	v, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
