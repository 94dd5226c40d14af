// Package palette loads color palettes and reduces images to them.
package palette

import (
	"fmt"
	"image"
	"image/color"
	colorpalette "image/color/palette"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
)

var builtin = map[string]color.Palette{
	"bw":     {color.Black, color.White},
	"gray4":  grayRamp(4),
	"gray16": grayRamp(16),
	"plan9":  colorpalette.Plan9,
	"web":    colorpalette.WebSafe,
}

func grayRamp(n int) color.Palette {
	res := make(color.Palette, n)
	for i := range n {
		res[i] = color.Gray{Y: uint8(i * 255 / (n - 1))}
	}
	return res
}

// Load returns the built-in palette called name or, failing that, reads a
// RIFF palette file from that path.
func Load(name string) (color.Palette, error) {
	if pal, ok := builtin[name]; ok {
		return pal, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pal, err := ReadRIFF(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette %q: %w", name, err)
	} else if len(pal) == 0 {
		return nil, fmt.Errorf("palette %q has no colors", name)
	}
	return pal, nil
}

// Apply maps every pixel of img to the nearest palette entry, optionally
// with Floyd-Steinberg error diffusion.
func Apply(img image.Image, pal color.Palette, dither bool) *image.Paletted {
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest
}
