package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/roteirolab/roteiro-backend/logger"
	"github.com/roteirolab/roteiro-backend/types"
	"go.uber.org/zap"
)

// DefaultVersionLabel names the single version every quote is seeded with.
const DefaultVersionLabel = "Pacote Completo"

// HybridRepository presents one store-shaped interface while selecting, per
// call, between the remote store and the local fallback:
//
//  1. If the remote store is configured (a capability check, not a network
//     probe), attempt the operation there.
//  2. On success, return immediately without touching the local store.
//  3. On not-configured or any soft failure, delegate to the local store.
//
// The two stores are strict alternatives, not a write-through cache: a
// record created remotely is never mirrored locally and vice versa. That
// asymmetry is a documented consistency caveat of the product, kept as-is.
type HybridRepository struct {
	remote           QuoteStore
	local            QuoteStore
	remoteDests      DestinationStore
	localDests       DestinationStore
	remoteConfigured bool
	log              *zap.SugaredLogger
}

// NewHybridRepository builds the repository. remote and remoteDests may be
// nil when the hosted backend is not configured; local stores are required.
func NewHybridRepository(
	remote QuoteStore,
	local QuoteStore,
	remoteDests DestinationStore,
	localDests DestinationStore,
	remoteConfigured bool,
) *HybridRepository {
	return &HybridRepository{
		remote:           remote,
		local:            local,
		remoteDests:      remoteDests,
		localDests:       localDests,
		remoteConfigured: remoteConfigured,
		log:              logger.GetLogger(),
	}
}

func (r *HybridRepository) useRemote() bool {
	return r.remoteConfigured && r.remote != nil
}

// newQuoteID and newPublicID combine a fixed prefix with the current time in
// milliseconds. Collisions across calls are negligible at expected request
// rates; these tokens are not cryptographically unique.
func newQuoteID() string {
	return fmt.Sprintf("quote-%d", time.Now().UnixMilli())
}

func newPublicID() string {
	return fmt.Sprintf("q-%d", time.Now().UnixMilli())
}

// defaultVersionPrice derives the seed version's price from the extracted
// total, then the payment breakdown, else the on-request literal.
func defaultVersionPrice(data *types.ExtractedTripData) string {
	if data != nil {
		if data.TotalPrice != "" {
			return data.TotalPrice
		}
		if data.PaymentInfo != nil && data.PaymentInfo.Total != "" {
			return data.PaymentInfo.Total
		}
	}
	return types.PriceOnRequest
}

// CreateQuote assigns identity, seeds the default version and persists the
// quote in the selected store. Identity generation always completes before
// the store call is issued, and the store call is awaited fully; there are
// no fire-and-forget writes.
func (r *HybridRepository) CreateQuote(ctx context.Context, input types.QuoteInput) (*types.Quote, error) {
	quote := &types.Quote{
		ID:             newQuoteID(),
		PublicID:       newPublicID(),
		ClientName:     input.ClientName,
		DestinationKey: input.DestinationKey,
		Versions: []types.QuoteVersion{{
			VersionID: "v1",
			Label:     DefaultVersionLabel,
			Price:     defaultVersionPrice(input.ExtractedData),
		}},
		ExtractedData: input.ExtractedData,
		CreatedAt:     time.Now().UTC(),
	}

	if r.useRemote() {
		err := r.remote.CreateQuote(ctx, quote)
		if err == nil {
			return quote, nil
		}
		// Partial remote success (row inserted, response lost) lands here
		// too and may leave a remote orphan next to the local copy. Known
		// divergence, flagged rather than patched.
		r.log.Warnw("Remote quote create failed, falling back to local store",
			"quoteId", quote.ID, "error", err)
	}

	if err := r.local.CreateQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("local quote create failed: %w", err)
	}
	return quote, nil
}

// GetQuoteByID resolves a quote by primary id. A miss in both stores is
// reported as ErrNotFound, a valid outcome for callers to render.
func (r *HybridRepository) GetQuoteByID(ctx context.Context, id string) (*types.Quote, error) {
	return r.getQuote(ctx, func(s QuoteStore) (*types.Quote, error) {
		return s.GetQuoteByID(ctx, id)
	})
}

// GetQuoteByPublicID resolves a quote by its shareable token.
func (r *HybridRepository) GetQuoteByPublicID(ctx context.Context, publicID string) (*types.Quote, error) {
	return r.getQuote(ctx, func(s QuoteStore) (*types.Quote, error) {
		return s.GetQuoteByPublicID(ctx, publicID)
	})
}

func (r *HybridRepository) getQuote(ctx context.Context, fetch func(QuoteStore) (*types.Quote, error)) (*types.Quote, error) {
	if r.useRemote() {
		quote, err := fetch(r.remote)
		if err == nil {
			return quote, nil
		}
		if !errors.Is(err, ErrNotFound) {
			r.log.Warnw("Remote quote lookup failed, falling back to local store", "error", err)
		}
	}

	quote, err := fetch(r.local)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("local quote lookup failed: %w", err)
	}
	return quote, nil
}

// UpdateQuote applies a partial patch in the selected store and returns the
// updated record.
func (r *HybridRepository) UpdateQuote(ctx context.Context, id string, update *types.QuoteUpdate) (*types.Quote, error) {
	if r.useRemote() {
		quote, err := r.remote.UpdateQuote(ctx, id, update)
		if err == nil {
			return quote, nil
		}
		if !errors.Is(err, ErrNotFound) {
			r.log.Warnw("Remote quote update failed, falling back to local store",
				"quoteId", id, "error", err)
		}
	}

	quote, err := r.local.UpdateQuote(ctx, id, update)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("local quote update failed: %w", err)
	}
	return quote, nil
}

// AddVersion appends a sequentially numbered version to the quote.
func (r *HybridRepository) AddVersion(ctx context.Context, id string, label, price string) (*types.Quote, error) {
	quote, err := r.GetQuoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if price == "" {
		price = types.PriceOnRequest
	}
	versions := append(append([]types.QuoteVersion{}, quote.Versions...), types.QuoteVersion{
		VersionID: quote.NextVersionID(),
		Label:     label,
		Price:     price,
	})
	return r.UpdateQuote(ctx, id, &types.QuoteUpdate{Versions: versions})
}

// GeneratePublicLink returns the quote's shareable token, minting one only
// when absent. Idempotent: an existing token is returned unchanged so
// previously shared links are never invalidated by accident.
func (r *HybridRepository) GeneratePublicLink(ctx context.Context, id string) (string, error) {
	quote, err := r.GetQuoteByID(ctx, id)
	if err != nil {
		return "", err
	}
	if quote.PublicID != "" {
		return quote.PublicID, nil
	}

	token := newPublicID()
	if _, err := r.UpdateQuote(ctx, id, &types.QuoteUpdate{PublicID: &token}); err != nil {
		return "", err
	}
	return token, nil
}

// RegeneratePublicLink explicitly replaces the quote's shareable token. This
// is the only path that changes an existing publicId.
func (r *HybridRepository) RegeneratePublicLink(ctx context.Context, id string) (string, error) {
	if _, err := r.GetQuoteByID(ctx, id); err != nil {
		return "", err
	}
	token := newPublicID()
	if _, err := r.UpdateQuote(ctx, id, &types.QuoteUpdate{PublicID: &token}); err != nil {
		return "", err
	}
	return token, nil
}

// GetDestination resolves destination assets with the same remote-then-local
// policy used for quotes.
func (r *HybridRepository) GetDestination(ctx context.Context, key string) (*types.Destination, error) {
	if r.remoteConfigured && r.remoteDests != nil {
		dest, err := r.remoteDests.GetDestination(ctx, key)
		if err == nil {
			return dest, nil
		}
		if !errors.Is(err, ErrNotFound) {
			r.log.Warnw("Remote destination lookup failed, falling back to local store",
				"key", key, "error", err)
		}
	}

	dest, err := r.localDests.GetDestination(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("local destination lookup failed: %w", err)
	}
	return dest, nil
}

// UpsertDestination writes destination assets to the selected store.
func (r *HybridRepository) UpsertDestination(ctx context.Context, dest *types.Destination) error {
	if r.remoteConfigured && r.remoteDests != nil {
		err := r.remoteDests.UpsertDestination(ctx, dest)
		if err == nil {
			return nil
		}
		r.log.Warnw("Remote destination upsert failed, falling back to local store",
			"key", dest.Key, "error", err)
	}
	if err := r.localDests.UpsertDestination(ctx, dest); err != nil {
		return fmt.Errorf("local destination upsert failed: %w", err)
	}
	return nil
}

// Mode reports the persistence mode for health reporting.
func (r *HybridRepository) Mode() string {
	if r.useRemote() {
		return "online"
	}
	return "offline"
}
