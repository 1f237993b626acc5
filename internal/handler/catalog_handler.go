package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/unifylabs/unify-backend/internal/response"
	"github.com/unifylabs/unify-backend/internal/service"
)

// CatalogHandler serves the browsable course catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List godoc
// GET /api/v1/student/catalog?year=2026&term=FALL&q=algebra
// Returns the offered courses for one term, optionally filtered by a
// case-insensitive substring of the code or name.
func (h *CatalogHandler) List(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	term := c.Query("term")
	switch term {
	case "FALL", "SPRING", "SUMMER":
	default:
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		return
	}

	entries, err := h.catalog.Catalog(c.Request.Context(), year, term, c.Query("q"))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"catalog": entries})
}
