package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/roteirolab/roteiro-backend/errors"
	"github.com/roteirolab/roteiro-backend/presentation"
	"github.com/roteirolab/roteiro-backend/services"
	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/types"
)

// PresentationHandler serves the client-facing presentation payload.
type PresentationHandler struct {
	repo  *store.HybridRepository
	cache *services.PresentationCache
}

// NewPresentationHandler creates a PresentationHandler.
func NewPresentationHandler(repo *store.HybridRepository, cache *services.PresentationCache) *PresentationHandler {
	return &PresentationHandler{repo: repo, cache: cache}
}

// GetPresentationHandler resolves a public token to the quote plus its
// composed screen sequence. An expired or unknown token is a dedicated
// not-found outcome, rendered by the client as "link expirado".
func (h *PresentationHandler) GetPresentationHandler(c *gin.Context) {
	publicID := c.Param("publicId")
	ctx := c.Request.Context()

	if cached := h.cache.Get(ctx, publicID); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	quote, err := h.repo.GetQuoteByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Presentation", publicID))
			return
		}
		_ = c.Error(err)
		return
	}

	screens := presentation.Compose(quote.ClientName, quote.ExtractedData)

	// Vendor-curated destination assets override the fixed catalog when
	// present; a missing destination record is not an error here.
	if dest, err := h.repo.GetDestination(ctx, quote.DestinationKey); err == nil {
		screens = presentation.ApplyDestinationAssets(screens, dest)
	}

	payload := &types.PresentationPayload{Quote: quote, Screens: screens}
	h.cache.Set(ctx, publicID, payload)

	c.JSON(http.StatusOK, payload)
}
