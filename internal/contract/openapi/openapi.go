// Package openapi checks captured responses against the embedded petstore OpenAPI document.
package openapi

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	"github.com/Apurer/petstore-contract-suite/internal/contract/invoker"
)

//go:embed petstore.yaml
var petstoreDocument []byte

const problemJSON = "application/problem+json"

func init() {
	if openapi3filter.RegisteredBodyDecoder(problemJSON) == nil {
		openapi3filter.RegisterBodyDecoder(problemJSON, openapi3filter.RegisteredBodyDecoder("application/json"))
	}
}

// Document returns the raw embedded OpenAPI document.
func Document() []byte {
	return append([]byte{}, petstoreDocument...)
}

// Validator matches requests to operations and validates the responses.
type Validator struct {
	doc    *openapi3.T
	router routers.Router
}

// NewValidator loads and validates the embedded document.
func NewValidator(ctx context.Context) (*Validator, error) {
	return NewValidatorFromData(ctx, petstoreDocument)
}

// NewValidatorFromData builds a Validator from an OpenAPI 3 document in YAML or JSON.
func NewValidatorFromData(ctx context.Context, data []byte) (*Validator, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	return &Validator{doc: doc, router: router}, nil
}

// Operation returns the operationId that handles method and path, or "" when none does.
func (v *Validator) Operation(method, path string) string {
	req, err := http.NewRequest(method, "http://contract.local"+ensureSlash(path), nil)
	if err != nil {
		return ""
	}
	route, _, err := v.router.FindRoute(req)
	if err != nil || route.Operation == nil {
		return ""
	}
	return route.Operation.OperationID
}

// ValidateResponse checks status, content type and body of res against the
// operation that req addresses. Paths are matched relative to the base URL.
func (v *Validator) ValidateResponse(ctx context.Context, req invoker.Request, res *invoker.Response) error {
	if res == nil {
		return fmt.Errorf("no response to validate")
	}
	target := "http://contract.local" + ensureSlash(req.Path)
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("build request for openapi validation: %w", err)
	}
	route, pathParams, err := v.router.FindRoute(httpReq)
	if err != nil {
		return fmt.Errorf("%s %s is not described by the openapi document: %w", method, req.Path, err)
	}
	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    httpReq,
			PathParams: pathParams,
			Route:      route,
		},
		Status: res.StatusCode,
		Header: res.Header,
		Body:   io.NopCloser(bytes.NewReader(res.Body)),
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}
	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s %s violates operation %s: %w", method, req.Path, route.Operation.OperationID, err)
	}
	return nil
}

func ensureSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
