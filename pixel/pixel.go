// Package pixel provides an in-memory RGB pixel buffer.
package pixel

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Pixel is a single 8-bit RGB sample.
type Pixel struct {
	R, G, B uint8
}

var (
	Black = Pixel{}
	White = Pixel{R: 0xff, G: 0xff, B: 0xff}
	Red   = Pixel{R: 0xff}
	Green = Pixel{G: 0xff}
	Blue  = Pixel{B: 0xff}
)

// RGBA implements color.Color. Pixels are always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R)
	r |= r << 8
	g = uint32(p.G)
	g |= g << 8
	b = uint32(p.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Model converts any color to a Pixel, dropping alpha.
var Model = color.ModelFunc(pixelConvert)

func pixelConvert(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}

	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{R: nc.R, G: nc.G, B: nc.B}
}

// Buffer is a fixed-size grid of pixels. The pixel at (x, y) is stored at
// Pix[y*Width+x].
type Buffer struct {
	Pix    []Pixel
	Width  int
	Height int
}

var _ draw.Image = &Buffer{}

// New returns a width×height buffer with every pixel set to fill.
func New(width, height int, fill Pixel) *Buffer {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("pixel: invalid buffer size %dx%d", width, height))
	}

	pix := make([]Pixel, width*height)
	if fill != Black {
		for i := range pix {
			pix[i] = fill
		}
	}

	return &Buffer{
		Pix:    pix,
		Width:  width,
		Height: height,
	}
}

// FromImage copies img into a new buffer. Alpha is discarded.
func FromImage(img image.Image) (*Buffer, error) {
	if b, ok := img.(*Buffer); ok {
		return b.Clone(), nil
	}

	r := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("cannot convert empty image %v", r)
	}

	buf := New(r.Dx(), r.Dy(), Black)
	draw.Draw(buf, buf.Bounds(), img, r.Min, draw.Src)
	return buf, nil
}

// Offset returns the index in Pix of the pixel at (x, y).
func (b *Buffer) Offset(x, y int) int {
	return y*b.Width + x
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// PixelAt returns the pixel at (x, y). It panics if (x, y) is outside the
// buffer.
func (b *Buffer) PixelAt(x, y int) Pixel {
	b.check(x, y)
	return b.Pix[b.Offset(x, y)]
}

// SetPixel sets the pixel at (x, y). It panics if (x, y) is outside the
// buffer.
func (b *Buffer) SetPixel(x, y int, p Pixel) {
	b.check(x, y)
	b.Pix[b.Offset(x, y)] = p
}

func (b *Buffer) check(x, y int) {
	if !b.In(x, y) {
		panic(fmt.Sprintf("pixel: index (%d, %d) out of range for %dx%d buffer", x, y, b.Width, b.Height))
	}
}

// Fill sets every pixel to p.
func (b *Buffer) Fill(p Pixel) {
	for i := range b.Pix {
		b.Pix[i] = p
	}
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		Pix:    append([]Pixel(nil), b.Pix...),
		Width:  b.Width,
		Height: b.Height,
	}
}

func (b *Buffer) ColorModel() color.Model {
	return Model
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image. Points outside the buffer are black.
func (b *Buffer) At(x, y int) color.Color {
	if !b.In(x, y) {
		return Black
	}
	return b.Pix[b.Offset(x, y)]
}

// Set implements draw.Image. Points outside the buffer are ignored.
func (b *Buffer) Set(x, y int, c color.Color) {
	if !b.In(x, y) {
		return
	}
	b.Pix[b.Offset(x, y)] = Model.Convert(c).(Pixel)
}
