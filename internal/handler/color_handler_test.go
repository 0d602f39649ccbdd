package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorCreateAndTenantIsolation(t *testing.T) {
	e := newTestServer(t)
	storeA := createStore(t, e, "owner-a", "a-store")
	storeB := createStore(t, e, "owner-a", "b-store")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeA+"/colors", "owner-a", map[string]string{
		"name":  "Red",
		"value": "#FF0000",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var color map[string]interface{}
	decodeBody(t, rec, &color)
	assert.NotEmpty(t, color["id"])
	assert.Equal(t, "Red", color["name"])
	assert.Equal(t, "#FF0000", color["value"])

	// Visible in its own store's list
	rec = doRequest(t, e, http.MethodGet, "/api/"+storeA+"/colors", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var colors []map[string]interface{}
	decodeBody(t, rec, &colors)
	require.Len(t, colors, 1)
	assert.Equal(t, color["id"], colors[0]["id"])

	// Invisible from the sibling store
	rec = doRequest(t, e, http.MethodGet, "/api/"+storeB+"/colors", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &colors)
	assert.Empty(t, colors)
}

func TestColorRejectsNonHexValue(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	for _, value := range []string{"red", "#FF00", "FF0000", "#GG0000"} {
		rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/colors", "owner-a", map[string]string{
			"name":  "Red",
			"value": value,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "value %q should be rejected", value)
	}
}

func TestSizeNewSentinel(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	rec := doRequest(t, e, http.MethodGet, "/api/"+storeID+"/sizes/new", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, true, body["placeholder"])
}

func TestSizeUpdateAndDelete(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	id := createFacet(t, e, "owner-a", storeID, "sizes", "Large", "L")

	rec := doRequest(t, e, http.MethodPatch, "/api/"+storeID+"/sizes/"+id, "owner-a", map[string]string{
		"name":  "Extra Large",
		"value": "XL",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var size map[string]interface{}
	decodeBody(t, rec, &size)
	assert.Equal(t, "Extra Large", size["name"])
	assert.Equal(t, "XL", size["value"])

	rec = doRequest(t, e, http.MethodDelete, "/api/"+storeID+"/sizes/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/sizes/"+id, "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductNameValueRequired(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/product-names", "owner-a", map[string]string{
		"name": "Tee",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "value")
}
