package ppm

import (
	"bufio"
	"fmt"
	"io"

	"pixmap/pixel"
)

const magic = "P6"

func writeHeader(w io.Writer, width, height int) error {
	if _, err := fmt.Fprintf(w, "%s\n%d %d 255\n", magic, width, height); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}
	return nil
}

// Encode writes buf as a binary pixel map, row by row.
func Encode(w io.Writer, buf *pixel.Buffer) error {
	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, buf.Width, buf.Height); err != nil {
		return err
	}

	for y := range buf.Height {
		for x := range buf.Width {
			p := buf.Pix[buf.Offset(x, y)]
			if _, err := bw.Write([]byte{p.R, p.G, p.B}); err != nil {
				return fmt.Errorf("could not write pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush image data: %w", err)
	}
	return nil
}

// EncodeGray writes width*height intensity samples as a color pixel map
// with the sample repeated in all three channels.
func EncodeGray(w io.Writer, width, height int, samples []byte) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if len(samples) != width*height {
		return fmt.Errorf("%w: %dx%d needs %d samples, got %d",
			ErrSampleCount, width, height, width*height, len(samples))
	}

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, width, height); err != nil {
		return err
	}

	for y := range height {
		for x := range width {
			s := samples[y*width+x]
			if _, err := bw.Write([]byte{s, s, s}); err != nil {
				return fmt.Errorf("could not write sample (%d, %d): %w", x, y, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("could not flush image data: %w", err)
	}
	return nil
}
