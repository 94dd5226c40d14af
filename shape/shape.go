// Package shape draws filled primitives into pixel buffers.
package shape

import (
	"fmt"
	"image"

	"pixmap/pixel"
)

// BoundsError is returned when a shape does not fit inside the target
// buffer.
type BoundsError struct {
	Rect   image.Rectangle // requested area
	Bounds image.Rectangle // buffer extent
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("shape: rectangle %v outside buffer bounds %v", e.Rect, e.Bounds)
}

// DrawRect fills the width×height rectangle whose top-left corner is at
// (x, y). The rectangle must lie entirely inside buf; otherwise nothing is
// drawn and a *BoundsError is returned.
func DrawRect(buf *pixel.Buffer, x, y, width, height int, c pixel.Pixel) error {
	r := image.Rect(x, y, x+width, y+height)
	if width < 0 || height < 0 || !r.In(buf.Bounds()) {
		// image.Rect canonicalises, keep the caller's corners in the error
		r = image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+width, y+height)}
		return &BoundsError{Rect: r, Bounds: buf.Bounds()}
	}

	for i := range height {
		row := buf.Offset(x, y+i)
		for j := range width {
			buf.Pix[row+j] = c
		}
	}
	return nil
}

// DrawCircle fills the disc of the given radius centred on (x, y): every
// pixel whose squared distance from the centre is at most radius².
//
// The scanned box is clipped to the buffer. Its far edges are exclusive
// and, where the disc overruns the buffer, are clamped to the last
// row/column, so that row/column is left untouched.
func DrawCircle(buf *pixel.Buffer, x, y, radius int, c pixel.Pixel) {
	lowY := max(0, y-radius)
	lowX := max(0, x-radius)

	highY := y + radius
	if highY >= buf.Height {
		highY = buf.Height - 1
	}
	highX := x + radius
	if highX >= buf.Width {
		highX = buf.Width - 1
	}

	r2 := radius * radius
	for i := lowY; i < highY; i++ {
		dy := i - y
		for j := lowX; j < highX; j++ {
			dx := j - x
			if dx*dx+dy*dy <= r2 {
				buf.Pix[buf.Offset(j, i)] = c
			}
		}
	}
}
