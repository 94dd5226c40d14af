package remap

import (
	"fmt"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
)

// ParseOp parses a transform written as "name:args", one of
//
//	rotate:θ          rotation by θ radians
//	scale:s           uniform scaling
//	scale:sx,sy
//	shear:kx,ky
//	linear:a,b,c,d    arbitrary 2×2 matrix
func ParseOp(s string) (matrix.Matrix, error) {
	name, args, ok := strings.Cut(s, ":")
	if !ok {
		return matrix.Matrix{}, fmt.Errorf("invalid transform %q, expected name:args", s)
	}

	var vals []float64
	for _, f := range strings.Split(args, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return matrix.Matrix{}, fmt.Errorf("invalid argument in transform %q: %w", s, err)
		}
		vals = append(vals, v)
	}

	switch {
	case name == "rotate" && len(vals) == 1:
		return Rotation(vals[0]), nil
	case name == "scale" && len(vals) == 1:
		return Scale(vals[0], vals[0]), nil
	case name == "scale" && len(vals) == 2:
		return Scale(vals[0], vals[1]), nil
	case name == "shear" && len(vals) == 2:
		return Shear(vals[0], vals[1]), nil
	case name == "linear" && len(vals) == 4:
		return Linear(vals[0], vals[1], vals[2], vals[3]), nil
	}

	return matrix.Matrix{}, fmt.Errorf("unsupported transform %q (%d arguments)", name, len(vals))
}

// ParseOps parses each element of ops with ParseOp.
func ParseOps(ops []string) ([]matrix.Matrix, error) {
	res := make([]matrix.Matrix, 0, len(ops))
	for _, op := range ops {
		m, err := ParseOp(op)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, nil
}
