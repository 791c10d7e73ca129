package embedx

import (
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// Encode packs vec as little-endian float32s for BLOB storage.
func Encode(vec []float32) []byte {
	buf := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Decode is the inverse of Encode.
func Decode(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("embedx: blob length %d is not a multiple of 4", len(buf))
	}
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec, nil
}

// Cosine returns the cosine similarity of a and b in [-1, 1]. Zero vectors
// compare as 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

// Scored pairs a corpus index with its similarity to the query.
type Scored struct {
	Index int
	Score float64
}

// TopK ranks corpus by cosine similarity to query, best first. Vectors of the
// wrong dimension are skipped.
func TopK(query []float32, corpus [][]float32, k int) []Scored {
	scored := make([]Scored, 0, len(corpus))
	for i, v := range corpus {
		s, err := Cosine(query, v)
		if err != nil {
			continue
		}
		scored = append(scored, Scored{Index: i, Score: s})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	return scored
}
