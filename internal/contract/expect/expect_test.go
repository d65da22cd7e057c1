package expect

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/petstore-contract-suite/internal/contract/invoker"
)

func TestEqual_NormalisesNumbers(t *testing.T) {
	require.NoError(t, Equal("id", 1, float64(1)))
	require.NoError(t, Equal("tags", []map[string]any{{"id": 0, "name": "string"}}, []any{map[string]any{"id": 0.0, "name": "string"}}))
}

func TestEqual_MismatchNamesFieldAndBothValues(t *testing.T) {
	err := Equal("name", "Buddy", "Max")
	require.Error(t, err)

	var mismatch *Mismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "name", mismatch.Label)
	assert.Equal(t, `name: expected "Buddy", got "Max"`, err.Error())
}

func TestStatus(t *testing.T) {
	res := &invoker.Response{Method: http.MethodGet, URL: "http://svc/pet/1", StatusCode: http.StatusNotFound, Body: []byte("Pet not found")}
	require.NoError(t, Status(res, http.StatusNotFound))

	err := Status(res, http.StatusOK)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 200, got 404")
	assert.Contains(t, err.Error(), "Pet not found")

	require.Error(t, Status(nil, http.StatusOK))
}

func TestText(t *testing.T) {
	res := &invoker.Response{StatusCode: http.StatusOK, Body: []byte("Pet deleted")}
	require.NoError(t, Text(res, "Pet deleted"))
	require.Error(t, Text(res, "Pet removed"))
}

func TestField_NestedPaths(t *testing.T) {
	body := []byte(`{"id":10,"category":{"id":1,"name":"Dogs"},"tags":[{"id":0,"name":"string"}],"photoUrls":["string"]}`)
	require.NoError(t, Field(body, "category.name", "Dogs"))
	require.NoError(t, Field(body, "tags.0.id", 0))
	require.NoError(t, Field(body, "photoUrls", []string{"string"}))

	err := Field(body, "status", "available")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "<missing>")
}

func TestFieldsEqual_ComparesEverySentKey(t *testing.T) {
	sent := map[string]any{"id": 1, "petId": 1, "quantity": 1, "status": "placed", "complete": true}
	require.NoError(t, FieldsEqual([]byte(`{"id":1,"petId":1,"quantity":1,"status":"placed","complete":true,"shipDate":"x"}`), sent))

	err := FieldsEqual([]byte(`{"id":1,"petId":2,"quantity":1,"status":"approved","complete":true}`), sent)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "petId")
	assert.Contains(t, err.Error(), "status")
}

func TestFieldsEqual_SelectedPaths(t *testing.T) {
	sent := map[string]any{"id": 1, "name": "Buddy", "status": "available"}
	require.NoError(t, FieldsEqual([]byte(`{"id":1,"name":"Buddy","status":"sold"}`), sent, "id", "name"))

	err := FieldsEqual([]byte(`{}`), sent, "nope")
	require.True(t, errors.Is(err, ErrMissing))
}

func TestShapes(t *testing.T) {
	require.NoError(t, IsList([]byte(` []`)))
	require.NoError(t, IsList([]byte(`[{"id":1}]`)))
	require.Error(t, IsList([]byte(`{"code":400}`)))
	require.Error(t, IsList([]byte(`Pet not found`)))

	require.NoError(t, IsObject([]byte(`{"code":400,"message":"Input error"}`)))
	require.Error(t, IsObject([]byte(`[]`)))
	require.Error(t, IsObject(nil))
}

func TestIsInteger(t *testing.T) {
	body := []byte(`{"approved":3,"delivered":0,"placed":1.5,"sold":"7"}`)
	require.NoError(t, IsInteger(body, "approved"))
	require.NoError(t, IsInteger(body, "delivered"))
	require.Error(t, IsInteger(body, "placed"))
	require.Error(t, IsInteger(body, "sold"))
	require.Error(t, IsInteger(body, "pending"))
}

func TestAll(t *testing.T) {
	require.NoError(t, All(nil, nil))
	err := All(nil, Equal("a", 1, 2), Equal("b", 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: expected 1, got 2")
}
