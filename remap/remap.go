// Package remap moves pixels through affine coordinate transforms.
//
// Transforms use the six-element matrix.Matrix layout [a b c d e f], which
// maps (x, y) to (a*x + c*y + e, b*x + d*y + f).
package remap

import (
	"math"

	"seehuhn.de/go/geom/matrix"

	"pixmap/pixel"
)

// Identity leaves coordinates unchanged.
var Identity = matrix.Identity

// Linear returns the transform for the 2×2 matrix
//
//	| a  b |
//	| c  d |
//
// applied to the column vector (x, y).
func Linear(a, b, c, d float64) matrix.Matrix {
	return matrix.Matrix{a, c, b, d, 0, 0}
}

// Rotation returns the matrix [[cos θ, sin θ], [-sin θ, cos θ]]. In pixel
// coordinates, where y grows downwards, a positive angle turns the image
// anticlockwise on screen.
func Rotation(theta float64) matrix.Matrix {
	sin, cos := math.Sincos(theta)
	return Linear(cos, sin, -sin, cos)
}

// Scale returns a diagonal scaling transform.
func Scale(sx, sy float64) matrix.Matrix {
	return matrix.Scale(sx, sy)
}

// Shear returns [[1, kx], [ky, 1]].
func Shear(kx, ky float64) matrix.Matrix {
	return Linear(1, kx, ky, 1)
}

// point maps (x, y) through m.
func point(m matrix.Matrix, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Apply returns a new buffer of the same size as src in which each source
// pixel has been moved to the floor of its transformed position. Targets
// on the first or last row or column, or outside the buffer, are dropped.
// When several pixels land on the same cell the last one in row-major
// order wins; cells nothing lands on are black. src is not modified.
func Apply(m matrix.Matrix, src *pixel.Buffer) *pixel.Buffer {
	dst := pixel.New(src.Width, src.Height, pixel.Black)
	w, h := float64(src.Width), float64(src.Height)

	for y := range src.Height {
		for x := range src.Width {
			nx, ny := point(m, float64(x), float64(y))
			nx, ny = math.Floor(nx), math.Floor(ny)
			// NaN fails every comparison
			if !(nx > 0 && nx < w && ny > 0 && ny < h) {
				continue
			}
			dst.Pix[dst.Offset(int(nx), int(ny))] = src.Pix[src.Offset(x, y)]
		}
	}

	return dst
}

// Chain applies each transform in turn, feeding the output of one into the
// next.
func Chain(src *pixel.Buffer, ms ...matrix.Matrix) *pixel.Buffer {
	out := src
	for _, m := range ms {
		out = Apply(m, out)
	}
	if out == src {
		out = src.Clone()
	}
	return out
}
