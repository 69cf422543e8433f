package face

import (
	"errors"
	"math"
)

// ErrInvalidEmbedding is returned when an embedding vector is empty, has a
// zero norm, or when two embeddings being compared differ in dimensionality.
var ErrInvalidEmbedding = errors.New("invalid face embedding")

// DefaultThreshold is the cosine distance above which two embeddings are
// considered different people. Tuned for the VGG-Face model.
const DefaultThreshold = 0.40

// Decision is the outcome of comparing a live embedding to an enrolled one.
// Distance is always populated for diagnostics, match or not.
type Decision struct {
	Match    bool    `json:"match"`
	Distance float64 `json:"distance"`
}

// CosineDistance returns 1 - cosine similarity of u and v.
func CosineDistance(u, v []float64) (float64, error) {
	if len(u) == 0 || len(v) == 0 || len(u) != len(v) {
		return 0, ErrInvalidEmbedding
	}

	var dot, normU, normV float64
	for i := range u {
		dot += u[i] * v[i]
		normU += u[i] * u[i]
		normV += v[i] * v[i]
	}

	normU = math.Sqrt(normU)
	normV = math.Sqrt(normV)
	if normU == 0 || normV == 0 {
		return 0, ErrInvalidEmbedding
	}

	return 1.0 - dot/(normU*normV), nil
}

// Matcher decides identity matches against a fixed threshold. The threshold
// is set once at construction, never mutated.
type Matcher struct {
	threshold float64
}

func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Decide compares a stored enrollment embedding with a live embedding.
func (m *Matcher) Decide(stored, live []float64) (Decision, error) {
	distance, err := CosineDistance(stored, live)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		Match:    distance <= m.threshold,
		Distance: distance,
	}, nil
}
