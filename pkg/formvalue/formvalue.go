// Package formvalue holds the text values submitted by the dashboard forms
// and the number parsing shared by them.
package formvalue

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrNotNumber = errors.New("is not a number")
	ErrNotFinite = errors.New("must be a finite number")
)

// Text is a form field kept as typed. It decodes from a JSON string or a JSON
// number; null decodes to blank.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = []byte(strings.TrimSpace(string(b)))
	switch {
	case string(b) == "null":
		*t = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return &json.UnmarshalTypeError{Value: kind(b), Type: reflect.TypeOf(*t)}
	}
	*t = Text(n.String())
	return nil
}

func kind(b []byte) string {
	if len(b) == 0 {
		return "empty"
	}
	switch b[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	}
	return "value"
}

func (t Text) String() string { return string(t) }

func (t Text) Blank() bool { return strings.TrimSpace(string(t)) == "" }

// Float parses the whole trimmed text. Inf and NaN are rejected.
func (t Text) Float() (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(t)), 64)
	if err != nil {
		return 0, ErrNotNumber
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

var (
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
)

// LeadingFloat reads the decimal number at the start of the text, so
// "12 acres" gives 12. ok is false when there is none or it overflows.
func (t Text) LeadingFloat() (v float64, ok bool) {
	m := leadingFloat.FindString(strings.TrimSpace(string(t)))
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// LeadingInt reads the integer at the start of the text, so "12 years" and
// "12.7" both give 12.
func (t Text) LeadingInt() (n int, ok bool) {
	m := leadingInt.FindString(strings.TrimSpace(string(t)))
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// BindError turns a request body decoding failure into the error body the
// handlers answer with, naming the offending field when known.
func BindError(err error) map[string]string {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return map[string]string{
			"error": te.Field + ": expected text or a number, got " + te.Value,
			"field": te.Field,
		}
	}
	return map[string]string{"error": "bad json"}
}
