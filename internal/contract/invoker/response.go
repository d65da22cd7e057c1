package invoker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"time"
)

// Response is the captured outcome of one call.
type Response struct {
	Method      string
	URL         string
	StatusCode  int
	Header      http.Header
	Body        []byte
	Duration    time.Duration
	RequestID   string
	TraceParent string
}

// Text returns the raw body as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// MediaType returns the Content-Type without parameters.
func (r *Response) MediaType() string {
	if r == nil {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

// DecodeJSON unmarshals the body into v.
func (r *Response) DecodeJSON(v any) error {
	if r == nil {
		return fmt.Errorf("no response")
	}
	dec := json.NewDecoder(bytes.NewReader(r.Body))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s %s response (status %d): %w: %q", r.Method, r.URL, r.StatusCode, err, truncate(r.Body, 200))
	}
	return nil
}

// JSON decodes the body into a generic value: map[string]any, []any or a scalar.
func (r *Response) JSON() (any, error) {
	var v any
	if err := r.DecodeJSON(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Object decodes the body as a JSON object.
func (r *Response) Object() (map[string]any, error) {
	var v map[string]any
	if err := r.DecodeJSON(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Response) String() string {
	if r == nil {
		return "<nil response>"
	}
	return fmt.Sprintf("%s %s -> %d %q", r.Method, r.URL, r.StatusCode, truncate(r.Body, 200))
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
