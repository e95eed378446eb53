// Package local implements the store interfaces on top of flat JSON files.
// It is the offline-development fallback: a whole-file read-modify-write per
// operation, a linear scan per lookup. Fine at this data scale, and
// deliberately not designed for concurrent writers from multiple processes;
// the later write wins and silently discards the earlier patch. That is a
// known limitation of the product, documented rather than fixed.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/types"
)

// QuoteStore keeps quotes in a single JSON file as a flat list.
type QuoteStore struct {
	path string
	mu   sync.Mutex
}

// NewQuoteStore creates a local quote store under dir.
func NewQuoteStore(dir string) *QuoteStore {
	return &QuoteStore{path: filepath.Join(dir, "quotes.json")}
}

func (s *QuoteStore) readAll() ([]types.Quote, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	var quotes []types.Quote
	if err := json.Unmarshal(data, &quotes); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return quotes, nil
}

func (s *QuoteStore) writeAll(quotes []types.Quote) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	data, err := json.MarshalIndent(quotes, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding quotes: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// CreateQuote appends the quote to the list.
func (s *QuoteStore) CreateQuote(_ context.Context, quote *types.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.readAll()
	if err != nil {
		return err
	}
	quotes = append(quotes, *quote)
	return s.writeAll(quotes)
}

// GetQuoteByID scans for an id match.
func (s *QuoteStore) GetQuoteByID(_ context.Context, id string) (*types.Quote, error) {
	return s.find(func(q *types.Quote) bool { return q.ID == id })
}

// GetQuoteByPublicID scans for a publicId match.
func (s *QuoteStore) GetQuoteByPublicID(_ context.Context, publicID string) (*types.Quote, error) {
	return s.find(func(q *types.Quote) bool { return q.PublicID == publicID })
}

func (s *QuoteStore) find(match func(*types.Quote) bool) (*types.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if match(&quotes[i]) {
			q := quotes[i]
			return &q, nil
		}
	}
	return nil, store.ErrNotFound
}

// UpdateQuote rewrites the whole list with the patch applied.
func (s *QuoteStore) UpdateQuote(_ context.Context, id string, update *types.QuoteUpdate) (*types.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range quotes {
		if quotes[i].ID != id {
			continue
		}
		if update.PublicID != nil {
			quotes[i].PublicID = *update.PublicID
		}
		if update.Versions != nil {
			quotes[i].Versions = update.Versions
		}
		if err := s.writeAll(quotes); err != nil {
			return nil, err
		}
		q := quotes[i]
		return &q, nil
	}
	return nil, store.ErrNotFound
}
