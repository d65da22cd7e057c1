package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Violation is a single schema failure located by JSON pointer.
type Violation struct {
	Path   string
	Reason string
	Value  any
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Reason
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// ValidationError collects the violations found for one document.
type ValidationError struct {
	Schema     string
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	name := e.Schema
	if name == "" {
		name = "document"
	}
	return fmt.Sprintf("%s does not match schema: %s", name, strings.Join(parts, "; "))
}

// First returns the first violation, or the zero value when there is none.
func (e *ValidationError) First() Violation {
	if e == nil || len(e.Violations) == 0 {
		return Violation{}
	}
	return e.Violations[0]
}

type options struct {
	firstOnly bool
}

// Option tunes a validation call.
type Option func(*options)

// FirstViolation stops at the first failure instead of collecting all of them.
func FirstViolation() Option {
	return func(o *options) {
		o.firstOnly = true
	}
}

// Validate checks value against s. Go values are normalised through JSON first
// so structs, maps and numeric kinds behave exactly like a decoded body.
func (s *Schema) Validate(value any, opts ...Option) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode value for %s: %w", s.Name, err)
	}
	return s.ValidateJSON(raw, opts...)
}

// ValidateJSON decodes data and checks it against s.
func (s *Schema) ValidateJSON(data []byte, opts ...Option) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ValidationError{
			Schema:     s.Name,
			Violations: []Violation{{Reason: "body is not valid JSON: " + err.Error()}},
		}
	}
	return s.validateDecoded(doc, opts...)
}

func (s *Schema) validateDecoded(doc any, opts ...Option) error {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	var visitOpts []openapi3.SchemaValidationOption
	if !o.firstOnly {
		visitOpts = append(visitOpts, openapi3.MultiErrors())
	}
	err := s.openAPI().VisitJSON(doc, visitOpts...)
	if err == nil {
		return nil
	}
	violations := flatten(err)
	if o.firstOnly && len(violations) > 1 {
		violations = violations[:1]
	}
	return &ValidationError{Schema: s.Name, Violations: violations}
}

func flatten(err error) []Violation {
	if multi, ok := err.(openapi3.MultiError); ok {
		var out []Violation
		for _, inner := range multi {
			out = append(out, flatten(inner)...)
		}
		return out
	}
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		path := ""
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			path = "/" + strings.Join(pointer, "/")
		}
		if name, ok := unsupportedProperty(schemaErr.Reason); ok {
			if token := "/" + escapePointer(name); !strings.HasSuffix(path, token) {
				path += token
			}
		}
		return []Violation{{Path: path, Reason: schemaErr.Reason, Value: schemaErr.Value}}
	}
	return []Violation{{Reason: err.Error()}}
}

// kin-openapi reports an undeclared property at its parent and names it only in the reason.
var unsupportedPropertyReason = regexp.MustCompile(`^property ("(?:[^"\\]|\\.)*") is unsupported`)

func unsupportedProperty(reason string) (string, bool) {
	m := unsupportedPropertyReason.FindStringSubmatch(reason)
	if m == nil {
		return "", false
	}
	name, err := strconv.Unquote(m[1])
	if err != nil {
		return "", false
	}
	return name, true
}

func escapePointer(token string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
}
