package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/types"
)

const quotesTable = "quotes"

// QuoteStore persists quotes in the hosted backend's quotes table.
type QuoteStore struct {
	client *Client
}

// NewQuoteStore creates a remote quote store sharing the given client.
func NewQuoteStore(client *Client) *QuoteStore {
	return &QuoteStore{client: client}
}

// quoteRecord is the snake_case wire shape of the quotes table. The versions
// and extracted_data columns are JSON and keep the internal camelCase field
// names inside their payloads.
type quoteRecord struct {
	ID             string                   `json:"id"`
	PublicID       *string                  `json:"public_id,omitempty"`
	ClientName     string                   `json:"client_name"`
	DestinationKey string                   `json:"destination_key"`
	Versions       []types.QuoteVersion     `json:"versions"`
	ExtractedData  *types.ExtractedTripData `json:"extracted_data,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

func toQuoteRecord(q *types.Quote) quoteRecord {
	rec := quoteRecord{
		ID:             q.ID,
		ClientName:     q.ClientName,
		DestinationKey: q.DestinationKey,
		Versions:       q.Versions,
		ExtractedData:  q.ExtractedData,
		CreatedAt:      q.CreatedAt,
	}
	if q.PublicID != "" {
		publicID := q.PublicID
		rec.PublicID = &publicID
	}
	return rec
}

func (rec *quoteRecord) toQuote() *types.Quote {
	q := &types.Quote{
		ID:             rec.ID,
		ClientName:     rec.ClientName,
		DestinationKey: rec.DestinationKey,
		Versions:       rec.Versions,
		ExtractedData:  rec.ExtractedData,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.PublicID != nil {
		q.PublicID = *rec.PublicID
	}
	return q
}

// CreateQuote inserts the quote. The identity was already assigned by the
// hybrid repository; this store only translates and ships the record.
func (s *QuoteStore) CreateQuote(ctx context.Context, quote *types.Quote) error {
	body, err := s.client.do(ctx, http.MethodPost, quotesTable, "",
		toQuoteRecord(quote), "return=representation")
	if err != nil {
		return err
	}

	// PostgREST answers inserts with an array of the created rows. A body
	// that does not parse counts as a soft failure even though the row may
	// have been inserted; the caller falls back to the local store.
	var records []quoteRecord
	if err := json.Unmarshal(body, &records); err != nil || len(records) == 0 {
		return fmt.Errorf("%w: unexpected insert response", store.ErrUnavailable)
	}
	return nil
}

// GetQuoteByID fetches a quote by primary key.
func (s *QuoteStore) GetQuoteByID(ctx context.Context, id string) (*types.Quote, error) {
	return s.getOne(ctx, "id", id)
}

// GetQuoteByPublicID fetches a quote by its shareable token.
func (s *QuoteStore) GetQuoteByPublicID(ctx context.Context, publicID string) (*types.Quote, error) {
	return s.getOne(ctx, "public_id", publicID)
}

// getOne reads with an equality filter on exactly one column.
func (s *QuoteStore) getOne(ctx context.Context, column, value string) (*types.Quote, error) {
	query := fmt.Sprintf("%s=eq.%s&limit=1", column, url.QueryEscape(value))
	body, err := s.client.do(ctx, http.MethodGet, quotesTable, query, nil, "")
	if err != nil {
		return nil, err
	}

	var records []quoteRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", store.ErrUnavailable, err)
	}
	if len(records) == 0 {
		return nil, store.ErrNotFound
	}
	return records[0].toQuote(), nil
}

// UpdateQuote patches the row identified by id. Only the fields present in
// the update are written; clientName, destinationKey and createdAt are
// immutable and never part of a patch.
func (s *QuoteStore) UpdateQuote(ctx context.Context, id string, update *types.QuoteUpdate) (*types.Quote, error) {
	patch := map[string]interface{}{}
	if update.PublicID != nil {
		patch["public_id"] = *update.PublicID
	}
	if update.Versions != nil {
		patch["versions"] = update.Versions
	}

	query := fmt.Sprintf("id=eq.%s", url.QueryEscape(id))
	body, err := s.client.do(ctx, http.MethodPatch, quotesTable, query, patch, "return=representation")
	if err != nil {
		return nil, err
	}

	var records []quoteRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", store.ErrUnavailable, err)
	}
	if len(records) == 0 {
		return nil, store.ErrNotFound
	}
	return records[0].toQuote(), nil
}
