package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/roteirolab/roteiro-backend/errors"
	"github.com/roteirolab/roteiro-backend/pkg/pexels"
	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/types"
)

// DestinationHandler manages vendor-curated destination assets.
type DestinationHandler struct {
	repo   *store.HybridRepository
	images pexels.ClientInterface
}

// NewDestinationHandler creates a DestinationHandler.
func NewDestinationHandler(repo *store.HybridRepository, images pexels.ClientInterface) *DestinationHandler {
	return &DestinationHandler{repo: repo, images: images}
}

// GetDestinationHandler is the existence check the vendor flow runs before
// saving a quote.
func (h *DestinationHandler) GetDestinationHandler(c *gin.Context) {
	key := c.Param("key")

	dest, err := h.repo.GetDestination(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.NotFound("Destination", key))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dest)
}

// UpsertDestinationRequest is the asset-setup body.
type UpsertDestinationRequest struct {
	Name           string             `json:"name" binding:"required"`
	HeroImageURL   string             `json:"heroImageUrl,omitempty"`
	HotelImageURLs []string           `json:"hotelImageUrls,omitempty"`
	Experiences    []types.Experience `json:"experiences,omitempty"`
}

// UpsertDestinationHandler creates or replaces destination assets. When no
// hero image is provided one is seeded from Pexels so the destination
// becomes presentable immediately.
func (h *DestinationHandler) UpsertDestinationHandler(c *gin.Context) {
	key := c.Param("key")
	ctx := c.Request.Context()

	var req UpsertDestinationRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	heroImageURL := req.HeroImageURL
	if heroImageURL == "" && h.images != nil {
		if imageURL, err := h.images.SearchDestinationImage(ctx, req.Name); err == nil {
			heroImageURL = imageURL
		}
	}

	dest := &types.Destination{
		Key:            key,
		Name:           req.Name,
		HeroImageURL:   heroImageURL,
		HotelImageURLs: req.HotelImageURLs,
		Experiences:    req.Experiences,
	}
	if err := h.repo.UpsertDestination(ctx, dest); err != nil {
		_ = c.Error(apperrors.NewStoreError(err))
		return
	}

	c.JSON(http.StatusOK, dest)
}
