package pixel

import "fmt"

// ParseHex parses a color in #RGB or #RRGGBB notation.
func ParseHex(s string) (Pixel, error) {
	var p Pixel
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &p.R, &p.G, &p.B)
		if err != nil {
			return Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		p.R |= p.R << 4
		p.G |= p.G << 4
		p.B |= p.B << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &p.R, &p.G, &p.B)
		if err != nil {
			return Pixel{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return Pixel{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return Pixel{}, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	return p, nil
}

// Hex formats p as #rrggbb.
func (p Pixel) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", p.R, p.G, p.B)
}
