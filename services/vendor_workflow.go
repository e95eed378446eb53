package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/roteirolab/roteiro-backend/errors"
	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/pkg/pexels"
	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/types"
	"go.uber.org/zap"
)

// WorkflowState is one step of the vendor's quote-creation flow.
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateExtracting WorkflowState = "extracting"
	StateExtracted  WorkflowState = "extracted"
	StateChecking   WorkflowState = "checking"
	StateSaving     WorkflowState = "saving"
	StateError      WorkflowState = "error"
)

// workflowTransitions lists the legal state changes. Error is reachable from
// every active step; leaving error goes back to the prior user-actionable
// state (tracked per workflow as retryState).
var workflowTransitions = map[WorkflowState][]WorkflowState{
	StateIdle:       {StateExtracting, StateChecking},
	StateExtracting: {StateExtracted, StateError},
	StateExtracted:  {StateChecking, StateError},
	StateChecking:   {StateSaving, StateError},
	StateSaving:     {StateIdle, StateError},
	StateError:      {StateIdle, StateExtracting, StateExtracted, StateChecking},
}

// CanTransition reports whether moving to next is legal from s.
func (s WorkflowState) CanTransition(next WorkflowState) bool {
	for _, allowed := range workflowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ErrExtractorNotConfigured signals that AI extraction is unavailable. Not a
// failure: the flow stays idle and the vendor enters data manually.
var ErrExtractorNotConfigured = errors.New("extractor not configured")

// ErrDestinationSetupNeeded signals that the destination has no presentation
// assets yet; the vendor is routed to asset setup instead of saving.
var ErrDestinationSetupNeeded = errors.New("destination assets missing")

// QuoteCreationResult is what a completed save hands back to the vendor UI.
type QuoteCreationResult struct {
	Quote *types.Quote     `json:"quote"`
	Links types.QuoteLinks `json:"links"`
}

// VendorWorkflow orchestrates one vendor's quote-creation flow: file intake,
// AI extraction, destination-asset check, quote creation, link generation.
// One instance tracks one flow; handlers construct a fresh workflow per
// request chain.
type VendorWorkflow struct {
	extractor Extractor
	repo      *store.HybridRepository
	images    pexels.ClientInterface
	baseURL   string
	log       *zap.SugaredLogger

	state      WorkflowState
	retryState WorkflowState
	lastError  string
}

// NewVendorWorkflow starts a flow in the idle state.
func NewVendorWorkflow(extractor Extractor, repo *store.HybridRepository, images pexels.ClientInterface, baseURL string) *VendorWorkflow {
	return &VendorWorkflow{
		extractor:  extractor,
		repo:       repo,
		images:     images,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logger.GetLogger(),
		state:      StateIdle,
		retryState: StateIdle,
	}
}

// State exposes the current step for the UI.
func (w *VendorWorkflow) State() WorkflowState { return w.state }

// LastError is the human-readable message of the most recent failure.
func (w *VendorWorkflow) LastError() string { return w.lastError }

func (w *VendorWorkflow) transition(next WorkflowState) error {
	if !w.state.CanTransition(next) {
		return apperrors.New(apperrors.InvalidTransitionError,
			"Invalid workflow transition",
			fmt.Sprintf("cannot move from %s to %s", w.state, next))
	}
	w.state = next
	return nil
}

// fail records a user-facing message and the state a retry should resume at.
func (w *VendorWorkflow) fail(message string, retry WorkflowState) {
	w.lastError = message
	w.retryState = retry
	w.state = StateError
}

// Retry moves an errored flow back to the prior user-actionable state.
func (w *VendorWorkflow) Retry() error {
	if err := w.transition(w.retryState); err != nil {
		return err
	}
	w.lastError = ""
	return nil
}

// Extract runs AI extraction over the uploaded files. With no extractor
// configured the flow stays idle (manual entry implied). Extraction failures
// land in the error state carrying the extractor's human-readable message.
func (w *VendorWorkflow) Extract(ctx context.Context, files []UploadedFile) (*types.ExtractedTripData, error) {
	if !w.extractor.IsConfigured() {
		return nil, ErrExtractorNotConfigured
	}
	if err := w.transition(StateExtracting); err != nil {
		return nil, err
	}

	result := w.extractor.Extract(ctx, files)
	if !result.Success {
		w.fail(result.Error, StateIdle)
		return nil, apperrors.ExtractionFailed("Extraction failed", result.Error)
	}

	w.state = StateExtracted
	return result.Data, nil
}

// SaveQuote verifies destination assets, creates the quote and builds the
// shareable links. A missing destination branches to asset setup via
// ErrDestinationSetupNeeded rather than proceeding to save.
func (w *VendorWorkflow) SaveQuote(ctx context.Context, input types.QuoteInput) (*QuoteCreationResult, error) {
	if strings.TrimSpace(input.ClientName) == "" {
		return nil, apperrors.ValidationFailed("Client name is required", "")
	}
	if strings.TrimSpace(input.DestinationKey) == "" {
		return nil, apperrors.ValidationFailed("Destination key is required", "")
	}

	// The step the vendor retries from if anything below fails.
	prior := w.state
	if err := w.transition(StateChecking); err != nil {
		return nil, err
	}

	dest, err := w.repo.GetDestination(ctx, input.DestinationKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		w.fail("Não foi possível verificar o destino, tente novamente", prior)
		return nil, apperrors.NewStoreError(err)
	}
	if !dest.HasAssets() {
		// Back to the actionable step; asset setup runs as its own flow.
		w.state = prior
		return nil, ErrDestinationSetupNeeded
	}

	if err := w.transition(StateSaving); err != nil {
		return nil, err
	}

	quote, err := w.repo.CreateQuote(ctx, input)
	if err != nil {
		w.fail("Não foi possível salvar a cotação, tente novamente", prior)
		return nil, apperrors.NewStoreError(err)
	}

	w.state = StateIdle
	return &QuoteCreationResult{
		Quote: quote,
		Links: BuildPublicLinks(w.baseURL, quote.PublicID),
	}, nil
}

// SetupDestinationAssets creates a minimal destination record, seeding the
// hero image from Pexels when no curated one was provided.
func (w *VendorWorkflow) SetupDestinationAssets(ctx context.Context, key, name, heroImageURL string) (*types.Destination, error) {
	if strings.TrimSpace(key) == "" || strings.TrimSpace(name) == "" {
		return nil, apperrors.ValidationFailed("Destination key and name are required", "")
	}

	if heroImageURL == "" && w.images != nil {
		imageURL, err := w.images.SearchDestinationImage(ctx, name)
		if err != nil {
			w.log.Warnw("Pexels lookup failed during asset setup", "destination", name, "error", err)
		}
		heroImageURL = imageURL
	}

	dest := &types.Destination{
		Key:          key,
		Name:         name,
		HeroImageURL: heroImageURL,
	}
	if err := w.repo.UpsertDestination(ctx, dest); err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return dest, nil
}

// BuildPublicLinks assembles the shareable entry points for a public token.
func BuildPublicLinks(baseURL, publicID string) types.QuoteLinks {
	base := strings.TrimRight(baseURL, "/")
	return types.QuoteLinks{
		PreviewURL: fmt.Sprintf("%s/p/%s", base, publicID),
		DirectURL:  fmt.Sprintf("%s/q/%s", base, publicID),
	}
}
