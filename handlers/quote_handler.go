package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/roteirolab/roteiro-backend/errors"
	"github.com/roteirolab/roteiro-backend/pkg/pexels"
	"github.com/roteirolab/roteiro-backend/services"
	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/types"
)

// QuoteHandler exposes the vendor-facing quote operations.
type QuoteHandler struct {
	repo      *store.HybridRepository
	extractor services.Extractor
	images    pexels.ClientInterface
	share     *services.ShareService
	cache     *services.PresentationCache
	baseURL   string
}

// NewQuoteHandler creates a QuoteHandler with the given dependencies.
func NewQuoteHandler(
	repo *store.HybridRepository,
	extractor services.Extractor,
	images pexels.ClientInterface,
	share *services.ShareService,
	cache *services.PresentationCache,
	baseURL string,
) *QuoteHandler {
	return &QuoteHandler{
		repo:      repo,
		extractor: extractor,
		images:    images,
		share:     share,
		cache:     cache,
		baseURL:   baseURL,
	}
}

// workflow starts a fresh vendor flow for one request chain.
func (h *QuoteHandler) workflow() *services.VendorWorkflow {
	return services.NewVendorWorkflow(h.extractor, h.repo, h.images, h.baseURL)
}

// ExtractResponse is the body returned by the extraction endpoint.
type ExtractResponse struct {
	Configured bool                     `json:"configured"`
	Success    bool                     `json:"success"`
	Data       *types.ExtractedTripData `json:"data,omitempty"`
	Error      string                   `json:"error,omitempty"`
}

// ExtractHandler accepts multipart quotation documents and runs AI
// extraction. An unconfigured extractor is informational, not an error: the
// vendor falls back to manual entry.
func (h *QuoteHandler) ExtractHandler(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("Invalid multipart form", err.Error()))
		return
	}

	var files []services.UploadedFile
	for _, fh := range form.File["files"] {
		f, err := fh.Open()
		if err != nil {
			_ = c.Error(apperrors.ValidationFailed("Unreadable upload", fh.Filename))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			_ = c.Error(apperrors.ValidationFailed("Unreadable upload", fh.Filename))
			return
		}
		files = append(files, services.UploadedFile{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	data, err := h.workflow().Extract(c.Request.Context(), files)
	if err != nil {
		if errors.Is(err, services.ErrExtractorNotConfigured) {
			c.JSON(http.StatusOK, ExtractResponse{Configured: false})
			return
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ExtractionError {
			c.JSON(http.StatusOK, ExtractResponse{
				Configured: true,
				Success:    false,
				Error:      appErr.Detail,
			})
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{Configured: true, Success: true, Data: data})
}

// CreateQuoteRequest is the body for quote creation.
type CreateQuoteRequest struct {
	ClientName     string                   `json:"clientName" binding:"required"`
	DestinationKey string                   `json:"destinationKey" binding:"required"`
	ExtractedData  *types.ExtractedTripData `json:"extractedData,omitempty"`
}

// CreateQuoteHandler runs the save flow: destination check, creation, links.
func (h *QuoteHandler) CreateQuoteHandler(c *gin.Context) {
	var req CreateQuoteRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	result, err := h.workflow().SaveQuote(c.Request.Context(), types.QuoteInput{
		ClientName:     req.ClientName,
		DestinationKey: req.DestinationKey,
		ExtractedData:  req.ExtractedData,
	})
	if err != nil {
		if errors.Is(err, services.ErrDestinationSetupNeeded) {
			_ = c.Error(apperrors.DestinationNotConfigured(req.DestinationKey))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetQuoteHandler fetches a quote by primary id for the vendor UI.
func (h *QuoteHandler) GetQuoteHandler(c *gin.Context) {
	id := c.Param("id")

	quote, err := h.repo.GetQuoteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.QuoteNotFound(id))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// AddVersionRequest is the body for appending a package version.
type AddVersionRequest struct {
	Label string `json:"label" binding:"required"`
	Price string `json:"price,omitempty"`
}

// AddVersionHandler appends a priced package option to the quote.
func (h *QuoteHandler) AddVersionHandler(c *gin.Context) {
	id := c.Param("id")

	var req AddVersionRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	quote, err := h.repo.AddVersion(c.Request.Context(), id, req.Label, req.Price)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.QuoteNotFound(id))
			return
		}
		_ = c.Error(err)
		return
	}

	h.cache.Invalidate(c.Request.Context(), quote.PublicID)
	c.JSON(http.StatusOK, quote)
}

// PublishResponse returns the refreshed public entry points.
type PublishResponse struct {
	PublicID string           `json:"publicId"`
	Links    types.QuoteLinks `json:"links"`
}

// PublishHandler explicitly regenerates a quote's shareable token. This is
// the only operation that replaces an existing publicId.
func (h *QuoteHandler) PublishHandler(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	// Invalidate the cache entry for the token being replaced.
	if old, err := h.repo.GetQuoteByID(ctx, id); err == nil {
		h.cache.Invalidate(ctx, old.PublicID)
	}

	publicID, err := h.repo.RegeneratePublicLink(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.QuoteNotFound(id))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, PublishResponse{
		PublicID: publicID,
		Links:    services.BuildPublicLinks(h.baseURL, publicID),
	})
}

// ShareRequest is the body for emailing the public link.
type ShareRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ShareHandler emails the quote's public link to the client.
func (h *QuoteHandler) ShareHandler(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var req ShareRequest
	if !bindJSONOrError(c, &req) {
		return
	}

	quote, err := h.repo.GetQuoteByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = c.Error(apperrors.QuoteNotFound(id))
			return
		}
		_ = c.Error(err)
		return
	}

	// Idempotent: reuses the existing token, mints only when absent.
	publicID, err := h.repo.GeneratePublicLink(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	links := services.BuildPublicLinks(h.baseURL, publicID)
	if err := h.share.SendQuoteLink(ctx, req.Email, quote, links); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ShareDeliveryError, "Failed to send share email"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"publicId": publicID, "links": links})
}
