// Package vector provides the byte codec and the small amount of float
// math shared by the encoder, the vector cache and the SQLite store.
//
// Vectors persist as little-endian 4-byte floats, so a valid blob length
// is always a multiple of 4. Decoding anything else fails loudly via
// domain.ErrMalformedVector instead of truncating.
package vector

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/shinefly-smile/localLens/internal/core/domain"
)

// componentWidth is the encoded size of one float32 component.
const componentWidth = 4

// normEpsilon floors denominators so normalization never divides by zero.
const normEpsilon = 1e-9

// ToBytes encodes a vector as little-endian 4-byte floats.
func ToBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*componentWidth)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*componentWidth:], math.Float32bits(f))
	}
	return buf
}

// FromBytes decodes a little-endian float32 blob. The byte length must be
// a multiple of the component width; anything else is malformed.
func FromBytes(data []byte) ([]float32, error) {
	if len(data)%componentWidth != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d",
			domain.ErrMalformedVector, len(data), componentWidth)
	}
	if len(data) == 0 {
		return nil, nil
	}
	floats := make([]float32, len(data)/componentWidth)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*componentWidth:]))
	}
	return floats, nil
}

// Normalize scales v to unit Euclidean length in place and returns it.
// The norm is floored at a small epsilon, so a zero vector stays zero
// instead of producing NaNs.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm < normEpsilon {
		norm = normEpsilon
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v
}

// Dot returns the dot product of a and b. For L2-normalized inputs this
// equals cosine similarity.
func Dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// Norm returns the Euclidean length of v.
func Norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}
