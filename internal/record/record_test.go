package record

import (
	"errors"
	"math"
	"testing"
)

func TestFromSlice(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		vec         []float64
		expectedErr error
	}{
		{name: "positive", vec: []float64{57, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1, 3}},
		{name: "negative_short", vec: []float64{57, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1}, expectedErr: ErrDimensions},
		{name: "negative_nan", vec: []float64{57, 1, 1, 130, 131, 0, 1, 115, 1, math.NaN(), 2, 1, 3}, expectedErr: ErrNotFinite},
		{name: "negative_inf", vec: []float64{math.Inf(1), 1, 1, 130, 131, 0, 1, 115, 1, 1, 2, 1, 3}, expectedErr: ErrNotFinite},
		{name: "negative_fraction", vec: []float64{57.5, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1, 3}, expectedErr: ErrNotInteger},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			v, err := FromSlice(test.vec)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("FromSlice error got: %v, expected: %v", err, test.expectedErr)
			}
			if err == nil {
				for i := range test.vec {
					if v[i] != test.vec[i] {
						t.Errorf("value %d got: %v, expected: %v", i, v[i], test.vec[i])
					}
				}
			}
		})
	}
}

func TestFeatureVector_Equality(t *testing.T) {
	t.Parallel()
	a := New(57, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1, 3)
	b := New(57, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1, 3)
	c := New(63, 1, 4, 145, 233, 1, 2, 150, 0, 2.3, 3, 0, 6)
	if a != b {
		t.Errorf("vectors with equal values must be equal")
	}
	if a == c {
		t.Errorf("vectors with different values must not be equal")
	}
	if a.Key() != b.Key() || a.Key() == c.Key() {
		t.Errorf("keys must follow equality, got: %q, %q, %q", a.Key(), b.Key(), c.Key())
	}
	m := map[FeatureVector]int{a: 0}
	m[b] = 1
	if len(m) != 1 || m[a] != 1 {
		t.Errorf("equal vectors must collapse to one map entry, got: %v", m)
	}
}

func TestFeatureVector_PointsImmutable(t *testing.T) {
	t.Parallel()
	v := New(57, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1, 3)
	points := v.Points()
	points[0] = 100
	if v.Int(Age) != 57 {
		t.Errorf("modifying Points must not change the vector, age got: %d", v.Int(Age))
	}
}

func TestFeatureVector_Accessors(t *testing.T) {
	t.Parallel()
	v := New(57, 1, 1, 130, 131, 0, 1, 115, 1, 1.2, 2, 1, 3)
	if v.Get(Oldpeak) != 1.2 {
		t.Errorf("oldpeak got: %v, expected: 1.2", v.Get(Oldpeak))
	}
	if v.Int(Thal) != 3 || v.Int(Chol) != 131 {
		t.Errorf("thal, chol got: %d, %d, expected: 3, 131", v.Int(Thal), v.Int(Chol))
	}
	if v.Key() != "57,1,1,130,131,0,1,115,1,1.2,2,1,3" {
		t.Errorf("key got: %q", v.Key())
	}
	if Oldpeak.Integer() || !Age.Integer() {
		t.Errorf("only oldpeak is real-valued")
	}
	if Attribute(13).String() != "attribute(13)" || Thalach.String() != "thalach" {
		t.Errorf("attribute names got: %q, %q", Attribute(13).String(), Thalach.String())
	}
}
