package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roteirolab/roteiro-backend/services"
	"github.com/roteirolab/roteiro-backend/store"
)

// HealthHandler reports service liveness and the current persistence mode.
type HealthHandler struct {
	repo      *store.HybridRepository
	extractor services.Extractor
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(repo *store.HybridRepository, extractor services.Extractor) *HealthHandler {
	return &HealthHandler{repo: repo, extractor: extractor}
}

// HealthResponse is the health endpoint body. Offline mode is informational
// status, not a failure.
type HealthResponse struct {
	Status              string `json:"status"`
	StoreMode           string `json:"storeMode"`
	ExtractorConfigured bool   `json:"extractorConfigured"`
}

// HealthHandler responds with liveness plus store/extractor capability.
func (h *HealthHandler) Handle(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:              "ok",
		StoreMode:           h.repo.Mode(),
		ExtractorConfigured: h.extractor.IsConfigured(),
	})
}
