package twin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestTwin(t *testing.T, cfg Config) *Twin {
	t.Helper()
	tw, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(tw.Close)
	return tw
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, BaseURL("")+path, nil)
	} else {
		req = httptest.NewRequest(method, BaseURL("")+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTwin_PetLifecycle(t *testing.T) {
	h := newTestTwin(t, Config{}).Handler()

	rec := do(t, h, http.MethodPost, "/pet", `{"id":1,"name":"Buddy","status":"available"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, []any{}, created["photoUrls"])
	assert.NotContains(t, created, "createdAt")

	rec = do(t, h, http.MethodGet, "/pet/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Buddy", decode[map[string]any](t, rec)["name"])

	rec = do(t, h, http.MethodPut, "/pet", `{"id":1,"name":"Buddy Updated","status":"sold"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sold", decode[map[string]any](t, rec)["status"])

	rec = do(t, h, http.MethodDelete, "/pet/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pet deleted", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/pet/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pet not found", rec.Body.String())
}

func TestTwin_PetEdgeCases(t *testing.T) {
	h := newTestTwin(t, Config{}).Handler()

	rec := do(t, h, http.MethodDelete, "/pet/9999", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Pet deleted", rec.Body.String())

	rec = do(t, h, http.MethodPut, "/pet", `{"id":9999,"name":"Non-existent Pet","status":"available"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Pet not found", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/pet/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")

	rec = do(t, h, http.MethodPost, "/pet", `{"id":2,"status":"available"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/pet", `{"id":2,"name":"Rex","status":"adopted"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTwin_FindByStatus(t *testing.T) {
	h := newTestTwin(t, Config{}).Handler()

	tests := []struct {
		query   string
		code    int
		wantLen int
	}{
		{query: "status=available", code: http.StatusOK, wantLen: 2},
		{query: "status=pending", code: http.StatusOK, wantLen: 2},
		{query: "status=sold", code: http.StatusOK, wantLen: 2},
		{query: "status=available,sold", code: http.StatusOK, wantLen: 4},
		{query: "status=blablabla", code: http.StatusBadRequest},
		{query: "status=", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/pet/findByStatus?"+tt.query, "")
			require.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Len(t, decode[[]map[string]any](t, rec), tt.wantLen)
				return
			}
			problem := decode[map[string]any](t, rec)
			assert.Equal(t, float64(http.StatusBadRequest), problem["status"])
		})
	}
}

func TestTwin_FindByStatus_EmptyCatalogIsEmptyArray(t *testing.T) {
	h := newTestTwin(t, Config{SeedDisabled: true}).Handler()

	rec := do(t, h, http.MethodGet, "/pet/findByStatus?status=available", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTwin_OrderLifecycle(t *testing.T) {
	h := newTestTwin(t, Config{}).Handler()

	rec := do(t, h, http.MethodPost, "/store/order", `{"id":1,"petId":1,"quantity":1,"status":"placed","complete":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"petId":1,"quantity":1,"status":"placed","complete":true}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/store/order/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"petId":1,"quantity":1,"status":"placed","complete":true}`, rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/store/order/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/store/order/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", rec.Body.String())

	rec = do(t, h, http.MethodDelete, "/store/order/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTwin_Inventory(t *testing.T) {
	tw := newTestTwin(t, Config{})
	h := tw.Handler()

	rec := do(t, h, http.MethodGet, "/store/inventory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"placed": 1, "approved": 2, "delivered": 1}, decode[map[string]int](t, rec))

	empty := newTestTwin(t, Config{SeedDisabled: true}).Handler()
	rec = do(t, empty, http.MethodGet, "/store/inventory", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]int{"placed": 0, "approved": 0, "delivered": 0}, decode[map[string]int](t, rec))
}

func TestTwin_AdminResetRestoresSeed(t *testing.T) {
	h := newTestTwin(t, Config{}).Handler()

	require.Equal(t, http.StatusOK, do(t, h, http.MethodDelete, "/pet/101", "").Code)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/pet", `{"id":1,"name":"Buddy"}`).Code)

	rec := do(t, h, http.MethodPost, "/admin/reset", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/pet/101", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/pet/1", "").Code)
}
