package geo

import (
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := []Coordinate{
		{0, 0},
		{10.762622, 106.660172},
		{-33.8688, 151.2093},
		{90, 0},
	}
	for _, p := range points {
		d, err := Distance(p, p)
		if err != nil {
			t.Fatalf("Distance(%v, %v) returned error: %v", p, p, err)
		}
		if d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Coordinate{10.762622, 106.660172}
	b := Coordinate{10.773831, 106.704895}
	d1, err := Distance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	d2, err := Distance(b, a)
	if err != nil {
		t.Fatal(err)
	}
	if d1 != d2 {
		t.Errorf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestDistanceReferencePair(t *testing.T) {
	// 0.001 degrees of latitude on the WGS-84 sphere with R=6371000 is
	// about 111.19 m along a meridian.
	a := Coordinate{10.000, 106.000}
	b := Coordinate{10.001, 106.000}
	d, err := Distance(a, b)
	if err != nil {
		t.Fatal(err)
	}
	want := 111.19
	if math.Abs(d-want) > 0.5 {
		t.Errorf("Distance = %v, want %v +/- 0.5", d, want)
	}
}

func TestDistanceInvalidInput(t *testing.T) {
	bad := []Coordinate{
		{math.NaN(), 0},
		{0, math.NaN()},
		{math.Inf(1), 0},
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	good := Coordinate{10, 106}
	for _, c := range bad {
		if _, err := Distance(c, good); err == nil {
			t.Errorf("Distance(%v, %v) = nil error, want ErrInvalidCoordinate", c, good)
		}
		if _, err := Distance(good, c); err == nil {
			t.Errorf("Distance(%v, %v) = nil error, want ErrInvalidCoordinate", good, c)
		}
	}
}

func TestIsWithinInclusiveBoundary(t *testing.T) {
	center := Coordinate{10.000, 106.000}
	point := Coordinate{10.001, 106.000}

	d, err := Distance(point, center)
	if err != nil {
		t.Fatal(err)
	}

	// Radius exactly at the computed distance: inclusive, so within.
	within, got, err := IsWithin(point, center, int(math.Ceil(d)))
	if err != nil {
		t.Fatal(err)
	}
	if !within {
		t.Errorf("IsWithin at radius >= distance = false, want true (distance %v)", got)
	}

	// Radius just under the distance: outside.
	within, _, err = IsWithin(point, center, int(d)-1)
	if err != nil {
		t.Fatal(err)
	}
	if within {
		t.Errorf("IsWithin at radius < distance = true, want false")
	}
}
