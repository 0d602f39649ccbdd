package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-admin-service/internal/model"
	"store-admin-service/pkg/database"
)

func imageURLs(t *testing.T, product map[string]interface{}) []string {
	t.Helper()
	raw, ok := product["images"].([]interface{})
	require.True(t, ok)
	urls := make([]string, 0, len(raw))
	for _, entry := range raw {
		img, ok := entry.(map[string]interface{})
		require.True(t, ok)
		urls = append(urls, img["url"].(string))
	}
	return urls
}

func TestProductCreateGetRoundTrip(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	payload := productPayload(t, e, "owner-a", storeID, "https://img.example.com/a.png")

	// A client-supplied id is ignored, never honored
	payload["id"] = "client-picked-id"

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", "owner-a", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var product map[string]interface{}
	decodeBody(t, rec, &product)
	id := product["id"].(string)
	assert.NotEmpty(t, id)
	assert.NotEqual(t, "client-picked-id", id)

	// The 201 body carries the joined display relations, same as a later get
	created, ok := product["size"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Large", created["name"])

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/products/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &product)

	assert.Equal(t, "Red Tee", product["name"])
	// Documented coercion: the string "9.99" is stored and read back as 9.99
	assert.Equal(t, 9.99, product["price"])
	assert.Equal(t, payload["category_id"], product["category_id"])
	assert.Equal(t, payload["size_id"], product["size_id"])
	assert.Equal(t, payload["color_id"], product["color_id"])
	assert.Equal(t, []string{"https://img.example.com/a.png"}, imageURLs(t, product))

	// Joined display relations are carried in the response
	size, ok := product["size"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Large", size["name"])
}

func TestProductValidationNamesField(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	payload := productPayload(t, e, "owner-a", storeID, "https://img.example.com/a.png")

	delete(payload, "size_id")
	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", "owner-a", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "size_id")
}

func TestProductRejectsNonPositivePrice(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	payload := productPayload(t, e, "owner-a", storeID, "https://img.example.com/a.png")

	for _, price := range []string{"0", "-1", "free"} {
		payload["price"] = price
		rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", "owner-a", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "price %q should be rejected", price)
	}
}

func TestProductUpdateReplacesImageSet(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	payload := productPayload(t, e, "owner-a", storeID, "https://img.example.com/x.png")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", "owner-a", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var product map[string]interface{}
	decodeBody(t, rec, &product)
	id := product["id"].(string)

	payload["images"] = []map[string]string{
		{"url": "https://img.example.com/a.png"},
		{"url": "https://img.example.com/b.png"},
	}
	rec = doRequest(t, e, http.MethodPatch, "/api/"+storeID+"/products/"+id, "owner-a", payload)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &product)

	// Destructive replace: exactly {a, b}, the old x is gone
	assert.ElementsMatch(t, []string{
		"https://img.example.com/a.png",
		"https://img.example.com/b.png",
	}, imageURLs(t, product))

	var count int64
	require.NoError(t, database.GetDB().Model(&model.Image{}).Where("product_id = ?", id).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestProductDeleteCascadesImages(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	payload := productPayload(t, e, "owner-a", storeID,
		"https://img.example.com/1.png",
		"https://img.example.com/2.png",
		"https://img.example.com/3.png",
	)

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", "owner-a", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var product map[string]interface{}
	decodeBody(t, rec, &product)
	id := product["id"].(string)

	rec = doRequest(t, e, http.MethodDelete, "/api/"+storeID+"/products/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summary map[string]interface{}
	decodeBody(t, rec, &summary)
	assert.EqualValues(t, 3, summary["deleted_images"])

	var products, images int64
	require.NoError(t, database.GetDB().Model(&model.Product{}).Where("id = ?", id).Count(&products).Error)
	require.NoError(t, database.GetDB().Model(&model.Image{}).Where("product_id = ?", id).Count(&images).Error)
	assert.Zero(t, products)
	assert.Zero(t, images)
}

func TestProductCrossStoreUpdateDenied(t *testing.T) {
	e := newTestServer(t)
	storeA := createStore(t, e, "owner-a", "a-store")
	storeB := createStore(t, e, "owner-a", "b-store")
	payload := productPayload(t, e, "owner-a", storeB, "https://img.example.com/x.png")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeB+"/products", "owner-a", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var product map[string]interface{}
	decodeBody(t, rec, &product)
	id := product["id"].(string)

	rec = doRequest(t, e, http.MethodPatch, "/api/"+storeA+"/products/"+id, "owner-a", payload)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, e, http.MethodDelete, "/api/"+storeA+"/products/"+id, "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Untouched, images included
	rec = doRequest(t, e, http.MethodGet, "/api/"+storeB+"/products/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &product)
	assert.Equal(t, []string{"https://img.example.com/x.png"}, imageURLs(t, product))
}

func TestProductRejectsForeignStoreFacet(t *testing.T) {
	e := newTestServer(t)
	storeA := createStore(t, e, "owner-a", "a-store")
	storeB := createStore(t, e, "owner-b", "b-store")
	foreignSize := createFacet(t, e, "owner-b", storeB, "sizes", "Hidden", "H")

	// Another owner's facet cannot be attached at creation, so its row never
	// surfaces through this store's product responses
	payload := productPayload(t, e, "owner-a", storeA, "https://img.example.com/a.png")
	ownSize := payload["size_id"]
	payload["size_id"] = foreignSize

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeA+"/products", "owner-a", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Contains(t, body["error"], "size_id")

	// Nor can an existing product be repointed at it
	payload["size_id"] = ownSize
	rec = doRequest(t, e, http.MethodPost, "/api/"+storeA+"/products", "owner-a", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var product map[string]interface{}
	decodeBody(t, rec, &product)
	id := product["id"].(string)

	payload["size_id"] = foreignSize
	rec = doRequest(t, e, http.MethodPatch, "/api/"+storeA+"/products/"+id, "owner-a", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeA+"/products/"+id, "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &product)
	size, ok := product["size"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Large", size["name"])
}

func TestProductListFilters(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")
	payload := productPayload(t, e, "owner-a", storeID, "https://img.example.com/x.png")

	rec := doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", "owner-a", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	payload["name"] = "Featured Tee"
	payload["is_featured"] = true
	rec = doRequest(t, e, http.MethodPost, "/api/"+storeID+"/products", "owner-a", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/products?is_featured=true", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []map[string]interface{}
	decodeBody(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Featured Tee", products[0]["name"])

	rec = doRequest(t, e, http.MethodGet, "/api/"+storeID+"/products", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &products)
	assert.Len(t, products, 2)
}

func TestProductNewSentinel(t *testing.T) {
	e := newTestServer(t)
	storeID := createStore(t, e, "owner-a", "a-store")

	rec := doRequest(t, e, http.MethodGet, "/api/"+storeID+"/products/new", "owner-a", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, true, body["placeholder"])
}
