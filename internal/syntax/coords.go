package syntax

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ja-he/wardmap/internal/model"
)

// FormatValue renders a coordinate with exactly two decimal places.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatValues renders a coordinate bracket, e.g. "[0.30, 0.80]".
func FormatValues(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatPoint renders a point in bracket order [visibility, maturity].
func FormatPoint(p model.Point) string {
	return FormatValues(p.Visibility, p.Maturity)
}

// FormatBounds renders attitude bounds in bracket order
// [visibility1, maturity1, visibility2, maturity2].
func FormatBounds(b model.Bounds) string {
	return FormatValues(b.Visibility1, b.Maturity1, b.Visibility2, b.Maturity2)
}

// ParseValues reads the comma separated numbers of a bracket's contents.
// It fails on anything that is not a finite number.
func ParseValues(contents string) ([]float64, error) {
	fields := strings.Split(contents, ",")
	result := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("'%s' is not a number", f)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("'%s' is not a finite number", f)
		}
		result = append(result, v)
	}
	return result, nil
}

// Clamp limits a coordinate to [0,1].
func Clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// ParsePoint reads a [visibility, maturity] bracket, clamping both values.
func ParsePoint(contents string) (model.Point, error) {
	values, err := parseN(contents, 2)
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{Visibility: Clamp(values[0]), Maturity: Clamp(values[1])}, nil
}

// ParseBounds reads a [v1, m1, v2, m2] bracket, clamping all values.
func ParseBounds(contents string) (model.Bounds, error) {
	values, err := parseN(contents, 4)
	if err != nil {
		return model.Bounds{}, err
	}
	return model.Bounds{
		Visibility1: Clamp(values[0]),
		Maturity1:   Clamp(values[1]),
		Visibility2: Clamp(values[2]),
		Maturity2:   Clamp(values[3]),
	}, nil
}

// ParseSingle reads a one-value bracket such as a pipeline child's
// [maturity], clamping it.
func ParseSingle(contents string) (float64, error) {
	values, err := parseN(contents, 1)
	if err != nil {
		return 0, err
	}
	return Clamp(values[0]), nil
}

// ParseOffset reads a label offset [dx, dy]. Offsets are screen units and
// are not clamped.
func ParseOffset(contents string) (model.Offset, error) {
	values, err := parseN(contents, 2)
	if err != nil {
		return model.Offset{}, err
	}
	return model.Offset{X: values[0], Y: values[1]}, nil
}

func parseN(contents string, n int) ([]float64, error) {
	values, err := ParseValues(contents)
	if err != nil {
		return nil, err
	}
	if len(values) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(values))
	}
	return values, nil
}
