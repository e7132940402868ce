// Package record defines the fixed 13-attribute feature vector of a medical
// record and its labeled form.
package record

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-sod/medknn/internal/predictor"
)

// Dimensions is the number of attributes in every record.
const Dimensions = 13

var (
	ErrDimensions = fmt.Errorf("a record has exactly %d attributes", Dimensions)
	ErrNotFinite  = errors.New("value is not finite")
	ErrNotInteger = errors.New("value is not an integer")
)

type Attribute int

const (
	Age Attribute = iota
	Sex
	CP
	Trestbps
	Chol
	Fbs
	Restecg
	Thalach
	Exang
	Oldpeak
	Slope
	CA
	Thal
)

var attributeNames = [Dimensions]string{
	"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
	"thalach", "exang", "oldpeak", "slope", "ca", "thal",
}

func (a Attribute) String() string {
	if a < 0 || int(a) >= Dimensions {
		return "attribute(" + strconv.Itoa(int(a)) + ")"
	}
	return attributeNames[a]
}

// Integer reports whether the attribute holds whole numbers. Only oldpeak is
// real-valued.
func (a Attribute) Integer() bool {
	return a != Oldpeak
}

// Attributes lists all attributes in record order.
func Attributes() []Attribute {
	attrs := make([]Attribute, Dimensions)
	for i := range attrs {
		attrs[i] = Attribute(i)
	}
	return attrs
}

var _ predictor.Vector = FeatureVector{}

// FeatureVector is comparable, so it can key a map directly. Integer
// attributes are stored as float64 since the distance treats all of them as
// reals.
type FeatureVector [Dimensions]float64

func New(age, sex, cp, trestbps, chol, fbs, restecg, thalach, exang int, oldpeak float64, slope, ca, thal int) FeatureVector {
	return FeatureVector{
		float64(age), float64(sex), float64(cp), float64(trestbps), float64(chol),
		float64(fbs), float64(restecg), float64(thalach), float64(exang),
		oldpeak, float64(slope), float64(ca), float64(thal),
	}
}

// FromSlice validates vec as a record: 13 finite values, whole numbers for
// integer attributes.
func FromSlice(vec []float64) (FeatureVector, error) {
	var v FeatureVector
	if len(vec) != Dimensions {
		return v, fmt.Errorf("%w, got %d", ErrDimensions, len(vec))
	}
	for i, value := range vec {
		attr := Attribute(i)
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return v, fmt.Errorf("%s: %w", attr, ErrNotFinite)
		}
		if attr.Integer() && value != math.Trunc(value) {
			return v, fmt.Errorf("%s: %w: %v", attr, ErrNotInteger, value)
		}
		v[i] = value
	}
	return v, nil
}

func (v FeatureVector) Dim(idx int) float64 {
	return v[idx]
}

func (v FeatureVector) Dimensions() int {
	return Dimensions
}

// Points returns the values of a copy of v, so callers cannot modify v.
func (v FeatureVector) Points() []float64 {
	return v[:]
}

func (v FeatureVector) Get(a Attribute) float64 {
	return v[a]
}

func (v FeatureVector) Int(a Attribute) int {
	return int(v[a])
}

// Key is a stable textual key built from all 13 values.
func (v FeatureVector) Key() string {
	var b strings.Builder
	for i, value := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(formatValue(Attribute(i), value))
	}
	return b.String()
}

func (v FeatureVector) String() string {
	var b strings.Builder
	for i, value := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		attr := Attribute(i)
		b.WriteString(attr.String())
		b.WriteString(" = ")
		b.WriteString(formatValue(attr, value))
	}
	return b.String()
}

func formatValue(a Attribute, value float64) string {
	if a.Integer() {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'g', -1, 64)
}

var _ predictor.DataPoint = Sample{}

// Sample is a training record: features plus the class label.
type Sample struct {
	Features FeatureVector
	Class    int
}

func (s Sample) Vector() predictor.Vector {
	return s.Features
}

func (s Sample) Label() int {
	return s.Class
}
