// Package expect compares observed responses with expected outcomes and
// reports mismatches that name the checked field and both values.
package expect

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Apurer/petstore-contract-suite/internal/contract/invoker"
)

// Mismatch is a failed comparison.
type Mismatch struct {
	Label    string
	Expected any
	Actual   any
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", m.Label, render(m.Expected), render(m.Actual))
}

// ErrMissing marks a field that is absent from the body.
var ErrMissing = errors.New("field is missing")

type missing struct{}

func (missing) String() string { return "<missing>" }

func render(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case missing:
		return v.String()
	case string:
		return fmt.Sprintf("%q", v)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(raw)
}

// Equal fails unless expected and actual hold the same JSON value.
// Numbers are compared by value, so int 1 equals float64 1.
func Equal(label string, expected, actual any) error {
	if equalJSON(expected, actual) {
		return nil
	}
	return &Mismatch{Label: label, Expected: expected, Actual: actual}
}

// Status checks the HTTP status code.
func Status(res *invoker.Response, expected int) error {
	if res == nil {
		return &Mismatch{Label: "status code", Expected: expected, Actual: nil}
	}
	if res.StatusCode != expected {
		return &Mismatch{Label: fmt.Sprintf("status code of %s %s (body %q)", res.Method, res.URL, truncate(res.Text(), 120)), Expected: expected, Actual: res.StatusCode}
	}
	return nil
}

// Text checks the raw body.
func Text(res *invoker.Response, expected string) error {
	return Equal("response text", expected, res.Text())
}

// Field checks one value in a JSON body addressed by a gjson path such as "category.name" or "tags.0.id".
func Field(body []byte, path string, expected any) error {
	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return &Mismatch{Label: path, Expected: expected, Actual: missing{}}
	}
	return Equal(path, expected, result.Value())
}

// FieldsEqual checks that each path holds the same value in sent and body.
// With no paths every top-level key of sent is compared.
func FieldsEqual(body []byte, sent any, paths ...string) error {
	raw, err := json.Marshal(sent)
	if err != nil {
		return fmt.Errorf("encode expected payload: %w", err)
	}
	if len(paths) == 0 {
		gjson.ParseBytes(raw).ForEach(func(key, _ gjson.Result) bool {
			paths = append(paths, key.String())
			return true
		})
	}
	var errs []error
	for _, path := range paths {
		want := gjson.GetBytes(raw, path)
		if !want.Exists() {
			errs = append(errs, fmt.Errorf("%s: %w in expected payload", path, ErrMissing))
			continue
		}
		if err := Field(body, path, want.Value()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsList fails unless the body is a JSON array.
func IsList(body []byte) error {
	return kind(body, gjson.JSON, '[', "JSON array")
}

// IsObject fails unless the body is a JSON object.
func IsObject(body []byte) error {
	return kind(body, gjson.JSON, '{', "JSON object")
}

// IsInteger fails unless key exists at path and holds a whole number.
func IsInteger(body []byte, path string) error {
	result := gjson.GetBytes(body, path)
	if !result.Exists() {
		return &Mismatch{Label: path, Expected: "integer", Actual: missing{}}
	}
	if result.Type != gjson.Number || strings.ContainsAny(result.Raw, ".eE") {
		return &Mismatch{Label: path, Expected: "integer", Actual: result.Value()}
	}
	return nil
}

// All joins every non-nil outcome.
func All(errs ...error) error {
	return errors.Join(errs...)
}

func kind(body []byte, t gjson.Type, open byte, name string) error {
	trimmed := strings.TrimSpace(string(body))
	if !gjson.Valid(trimmed) {
		return &Mismatch{Label: "body", Expected: name, Actual: truncate(trimmed, 120)}
	}
	result := gjson.Parse(trimmed)
	if result.Type != t || len(trimmed) == 0 || trimmed[0] != open {
		return &Mismatch{Label: "body", Expected: name, Actual: result.Value()}
	}
	return nil
}

func equalJSON(expected, actual any) bool {
	a, errA := normalise(expected)
	b, errB := normalise(actual)
	if errA != nil || errB != nil {
		return reflect.DeepEqual(expected, actual)
	}
	return reflect.DeepEqual(a, b)
}

func normalise(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
