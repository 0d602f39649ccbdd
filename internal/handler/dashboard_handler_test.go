package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardCRUD(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/dashboards", "owner-a", map[string]string{
		"label":       "Summer Sale",
		"description": "seasonal banner",
		"image_url":   "https://img.example.com/summer.png",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var dashboard map[string]interface{}
	decodeBody(t, rec, &dashboard)
	id := dashboard["id"].(string)
	assert.Equal(t, storeID, dashboard["store_id"])

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/dashboards/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &dashboard)
	assert.Equal(t, "Summer Sale", dashboard["label"])
	assert.Equal(t, "seasonal banner", dashboard["description"])

	rec = doRequest(t, e, http.MethodPatch, "/api/"+storeID+"/dashboards/"+id, "owner-a", map[string]string{
		"label":     "Winter Sale",
		"image_url": "https://img.example.com/winter.png",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &dashboard)
	assert.Equal(t, "Winter Sale", dashboard["label"])
	// Full replace: the omitted description is cleared, not kept
	assert.Equal(t, "", dashboard["description"])

	rec = doRequest(t, e, http.MethodDelete, "/api/"+storeID+"/dashboards/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/dashboards/"+id, "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardValidationNamesField(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/dashboards", "owner-a", map[string]string{
		"label": "No Image",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "image_url")
}

func TestDashboardNewSentinel(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	rec := doRequest(t, e, http.MethodGet, "/api/"+storeID+"/dashboards/new", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, true, body["placeholder"])
	assert.Nil(t, body["id"])
}

func TestDashboardCrossStoreIsolation(t *testing.T) {
	e := newTestServer(t)
	storeA := createStore(t, e, "owner-a", "a-store")
	storeB := createStore(t, e, "owner-a", "b-store")
	dashboardB := createDashboard(t, e, "owner-a", storeB, "b-banner")

	// Same owner, wrong store in the path: the (id, store_id) pair matches
	// nothing, so reads and writes answer 404 and nothing changes.
	rec := doRequest(t, e, http.MethodGet, "/api/"+storeA+"/dashboards/"+dashboardB, "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, e, http.MethodPatch, "/api/"+storeA+"/dashboards/"+dashboardB, "owner-a", map[string]string{
		"label":     "hijacked",
		"image_url": "https://img.example.com/x.png",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, e, http.MethodDelete, "/api/"+storeA+"/dashboards/"+dashboardB, "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeB+"/dashboards/"+dashboardB, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var dashboard map[string]interface{}
	decodeBody(t, rec, &dashboard)
	assert.Equal(t, "b-banner", dashboard["label"])
}

func TestDashboardDeleteBlockedByCategory(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	dashboardID := createDashboard(t, e, "owner-a", storeID, "front")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/categories", "owner-a", map[string]string{
		"name":         "shirts",
		"dashboard_id": dashboardID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, e, http.MethodDelete, "/api/"+storeID+"/dashboards/"+dashboardID, "owner-a", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// The dashboard survives the refused delete
	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/dashboards/"+dashboardID, "owner-a", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
