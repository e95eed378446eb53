// Package store defines the persistence interfaces the rest of the
// application depends on, plus the hybrid repository that selects between
// the remote and local implementations.
package store

import (
	"context"

	"github.com/roteirolab/roteiro-backend/types"
)

// QuoteStore handles quote persistence. Implementations receive quotes with
// identity already assigned; identity generation belongs to the hybrid
// repository, not to individual stores.
type QuoteStore interface {
	CreateQuote(ctx context.Context, quote *types.Quote) error
	GetQuoteByID(ctx context.Context, id string) (*types.Quote, error)
	GetQuoteByPublicID(ctx context.Context, publicID string) (*types.Quote, error)
	UpdateQuote(ctx context.Context, id string, update *types.QuoteUpdate) (*types.Quote, error)
}

// DestinationStore handles vendor-curated destination assets.
type DestinationStore interface {
	GetDestination(ctx context.Context, key string) (*types.Destination, error)
	UpsertDestination(ctx context.Context, dest *types.Destination) error
}
