package siteinfo

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-app/internal/domain/sites"
)

// Handler exposes the tenant site registry, read-only. Statement descriptor
// suffixes and internal metadata stay out of the responses.
type Handler struct {
	sites *sites.Registry
}

func NewHandler(reg *sites.Registry) *Handler {
	return &Handler{sites: reg}
}

type siteResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Domain       string `json:"domain,omitempty"`
	SupportEmail string `json:"support_email,omitempty"`
}

func toResponse(s *sites.Site) siteResponse {
	return siteResponse{
		ID:           s.ID,
		Name:         s.Name,
		Domain:       s.Domain,
		SupportEmail: s.SupportEmail,
	}
}

func (h *Handler) List(c *gin.Context) {
	active := h.sites.ActiveSites()
	out := make([]siteResponse, 0, len(active))
	for _, s := range active {
		out = append(out, toResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"sites": out})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("site_id")
	s, ok := h.sites.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "site not found: " + id,
			"code":  http.StatusNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, toResponse(s))
}
