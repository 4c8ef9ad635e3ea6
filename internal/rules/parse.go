package rules

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParseFlag reads a T/F answer. Only "T" (any case, surrounding space
// ignored) is true; every other answer is false.
func ParseFlag(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "T")
}

// ParseNumber reads a finite decimal number.
func ParseNumber(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			err = ne.Err
		}
		return 0, &InvalidInputError{Field: field, Value: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &InvalidInputError{Field: field, Value: raw, Err: errors.New("not a finite number")}
	}
	return v, nil
}

// ParseGrade reads a grade entry.
func ParseGrade(raw string) (float64, error) {
	return ParseNumber("grade", raw)
}

// formatNumber renders a number the way detail strings have always shown
// them: shortest form, with integral values keeping one decimal ("80.0").
// Magnitudes from 1e16 up or below 1e-4 use exponent form ("1e+20", "1e-05").
func formatNumber(v float64) string {
	if abs := math.Abs(v); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// formatBool renders "True" or "False".
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
