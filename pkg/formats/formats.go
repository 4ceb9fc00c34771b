// Package formats provides encoders and parsers for Wavefront OBJ meshes and MTL material libraries.
package formats

import (
	"errors"
	"strconv"
)

// Format errors.
var (
	ErrMalformedOBJ = errors.New("malformed OBJ data")
	ErrMalformedMTL = errors.New("malformed MTL data")
)

func appendFloat(b []byte, v float32) []byte {
	return strconv.AppendFloat(b, float64(v), 'f', -1, 32)
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}
