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

// DestinationStore keeps destination assets in a single JSON file keyed by
// destination key.
type DestinationStore struct {
	path string
	mu   sync.Mutex
}

// NewDestinationStore creates a local destination store under dir.
func NewDestinationStore(dir string) *DestinationStore {
	return &DestinationStore{path: filepath.Join(dir, "destinations.json")}
}

func (s *DestinationStore) readAll() ([]types.Destination, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	var dests []types.Destination
	if err := json.Unmarshal(data, &dests); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return dests, nil
}

func (s *DestinationStore) writeAll(dests []types.Destination) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	data, err := json.MarshalIndent(dests, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding destinations: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// GetDestination scans for a key match.
func (s *DestinationStore) GetDestination(_ context.Context, key string) (*types.Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dests, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for i := range dests {
		if dests[i].Key == key {
			d := dests[i]
			return &d, nil
		}
	}
	return nil, store.ErrNotFound
}

// UpsertDestination replaces the record for the key or appends a new one.
func (s *DestinationStore) UpsertDestination(_ context.Context, dest *types.Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dests, err := s.readAll()
	if err != nil {
		return err
	}
	replaced := false
	for i := range dests {
		if dests[i].Key == dest.Key {
			dests[i] = *dest
			replaced = true
			break
		}
	}
	if !replaced {
		dests = append(dests, *dest)
	}
	return s.writeAll(dests)
}
