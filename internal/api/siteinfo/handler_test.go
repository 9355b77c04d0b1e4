package siteinfo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-app/internal/domain/sites"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	reg := sites.NewRegistry()
	reg.Add(&sites.Site{
		ID:                        "acme",
		Name:                      "Acme Store",
		Domain:                    "acme.example",
		StatementDescriptorSuffix: "ACME",
		SupportEmail:              "help@acme.example",
		Active:                    true,
	})
	reg.Add(&sites.Site{ID: "dormant", Name: "Dormant", Active: false})

	h := NewHandler(reg)
	r := gin.New()
	r.GET("/api/v1/sites", h.List)
	r.GET("/api/v1/sites/:site_id", h.Get)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListExcludesInactiveSites(t *testing.T) {
	w := get(newRouter(), "/api/v1/sites")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Sites []siteResponse `json:"sites"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Sites, 1)
	assert.Equal(t, "acme", resp.Sites[0].ID)
}

func TestGetSiteOmitsInternalFields(t *testing.T) {
	w := get(newRouter(), "/api/v1/sites/acme")
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "Acme Store", raw["name"])
	_, leaked := raw["statement_descriptor_suffix"]
	assert.False(t, leaked)
}

func TestGetUnknownOrInactiveSite(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusNotFound, get(r, "/api/v1/sites/ghost").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/v1/sites/dormant").Code)
}
