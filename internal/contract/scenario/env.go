// Package scenario holds the catalog of petstore contract checks and the runner that executes them.
package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/Apurer/petstore-contract-suite/internal/contract/fixture"
	"github.com/Apurer/petstore-contract-suite/internal/contract/invoker"
	"github.com/Apurer/petstore-contract-suite/internal/contract/openapi"
	"github.com/Apurer/petstore-contract-suite/internal/contract/report"
)

// Env is what a scenario may touch while it runs.
type Env struct {
	Client   invoker.Invoker
	Fixtures *fixture.Fixtures
	Recorder *report.Recorder
	// OpenAPI is optional; when set every call is checked against the document.
	OpenAPI *openapi.Validator
	Logger  *slog.Logger
}

// Call sends req as a named step. Status codes are never errors here.
func (e *Env) Call(ctx context.Context, step string, req invoker.Request) (*invoker.Response, error) {
	var res *invoker.Response
	err := e.Recorder.Step(ctx, step, func(ctx context.Context) error {
		var err error
		res, err = e.Client.Do(ctx, req)
		if err != nil {
			return err
		}
		if e.OpenAPI != nil {
			return e.OpenAPI.ValidateResponse(ctx, req, res)
		}
		return nil
	})
	return res, err
}

// Get is Call for a GET request.
func (e *Env) Get(ctx context.Context, step, path string, query url.Values) (*invoker.Response, error) {
	return e.Call(ctx, step, invoker.Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post is Call for a POST request with a JSON body.
func (e *Env) Post(ctx context.Context, step, path string, body any) (*invoker.Response, error) {
	return e.Call(ctx, step, invoker.Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put is Call for a PUT request with a JSON body.
func (e *Env) Put(ctx context.Context, step, path string, body any) (*invoker.Response, error) {
	return e.Call(ctx, step, invoker.Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete is Call for a DELETE request.
func (e *Env) Delete(ctx context.Context, step, path string) (*invoker.Response, error) {
	return e.Call(ctx, step, invoker.Request{Method: http.MethodDelete, Path: path})
}

// Check runs verify as a named step.
func (e *Env) Check(ctx context.Context, step string, verify func() error) error {
	return e.Recorder.Step(ctx, step, func(context.Context) error {
		return verify()
	})
}

// Given creates a precondition as a named step.
// create is usually a method value on e.Fixtures, such as e.Fixtures.CreatePet.
func (e *Env) Given(ctx context.Context, step string, create func(ctx context.Context) (map[string]any, error)) (map[string]any, error) {
	var created map[string]any
	err := e.Recorder.Step(ctx, step, func(ctx context.Context) error {
		var err error
		created, err = create(ctx)
		return err
	})
	return created, err
}

func idFrom(body map[string]any) (int64, error) {
	v, ok := body["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("fixture response has no numeric id: %v", body["id"])
	}
	return int64(v), nil
}
