package face

import (
	"errors"
	"math"
	"testing"
)

func TestCosineDistanceIdenticalVectors(t *testing.T) {
	v := []float64{0.1, -0.5, 0.3, 0.9}
	d, err := CosineDistance(v, v)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d) > 1e-12 {
		t.Errorf("CosineDistance(v, v) = %v, want 0", d)
	}
}

func TestCosineDistanceOrthogonalVectors(t *testing.T) {
	u := []float64{1, 0, 0}
	v := []float64{0, 1, 0}
	d, err := CosineDistance(u, v)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(d-1.0) > 1e-12 {
		t.Errorf("CosineDistance(orthogonal) = %v, want 1", d)
	}
}

func TestCosineDistanceInvalidEmbeddings(t *testing.T) {
	cases := []struct {
		name string
		u, v []float64
	}{
		{"empty first", nil, []float64{1, 2}},
		{"empty second", []float64{1, 2}, nil},
		{"dimension mismatch", []float64{1, 2, 3}, []float64{1, 2}},
		{"zero norm", []float64{0, 0, 0}, []float64{1, 2, 3}},
	}
	for _, c := range cases {
		if _, err := CosineDistance(c.u, c.v); !errors.Is(err, ErrInvalidEmbedding) {
			t.Errorf("%s: err = %v, want ErrInvalidEmbedding", c.name, err)
		}
	}
}

func TestMatcherDecide(t *testing.T) {
	m := NewMatcher(DefaultThreshold)

	same := []float64{0.2, 0.4, 0.6}
	decision, err := m.Decide(same, same)
	if err != nil {
		t.Fatal(err)
	}
	if !decision.Match {
		t.Errorf("identical embeddings: Match = false, want true (distance %v)", decision.Distance)
	}

	u := []float64{1, 0, 0}
	v := []float64{0, 1, 0}
	decision, err = m.Decide(u, v)
	if err != nil {
		t.Fatal(err)
	}
	if decision.Match {
		t.Errorf("orthogonal embeddings: Match = true, want false")
	}
	if math.Abs(decision.Distance-1.0) > 1e-12 {
		t.Errorf("orthogonal embeddings: Distance = %v, want 1", decision.Distance)
	}
}

func TestNewMatcherDefaultsThreshold(t *testing.T) {
	m := NewMatcher(0)
	if m.Threshold() != DefaultThreshold {
		t.Errorf("Threshold() = %v, want %v", m.Threshold(), DefaultThreshold)
	}
}
