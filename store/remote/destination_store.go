package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/roteirolab/roteiro-backend/store"
	"github.com/roteirolab/roteiro-backend/types"
)

const destinationsTable = "destinations"

// DestinationStore persists vendor-curated destination assets.
type DestinationStore struct {
	client *Client
}

// NewDestinationStore creates a remote destination store sharing the given client.
func NewDestinationStore(client *Client) *DestinationStore {
	return &DestinationStore{client: client}
}

// destinationRecord is the snake_case wire shape of the destinations table.
// destination_key is also the foreign key the link-preview renderer follows.
type destinationRecord struct {
	Key            string             `json:"destination_key"`
	Name           string             `json:"name"`
	HeroImageURL   string             `json:"hero_image_url,omitempty"`
	HotelImageURLs []string           `json:"hotel_image_urls,omitempty"`
	Experiences    []types.Experience `json:"experiences,omitempty"`
}

// GetDestination fetches assets by destination key.
func (s *DestinationStore) GetDestination(ctx context.Context, key string) (*types.Destination, error) {
	query := fmt.Sprintf("destination_key=eq.%s&limit=1", url.QueryEscape(key))
	body, err := s.client.do(ctx, http.MethodGet, destinationsTable, query, nil, "")
	if err != nil {
		return nil, err
	}

	var records []destinationRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", store.ErrUnavailable, err)
	}
	if len(records) == 0 {
		return nil, store.ErrNotFound
	}
	rec := records[0]
	return &types.Destination{
		Key:            rec.Key,
		Name:           rec.Name,
		HeroImageURL:   rec.HeroImageURL,
		HotelImageURLs: rec.HotelImageURLs,
		Experiences:    rec.Experiences,
	}, nil
}

// UpsertDestination inserts or replaces the assets for a destination key.
func (s *DestinationStore) UpsertDestination(ctx context.Context, dest *types.Destination) error {
	rec := destinationRecord{
		Key:            dest.Key,
		Name:           dest.Name,
		HeroImageURL:   dest.HeroImageURL,
		HotelImageURLs: dest.HotelImageURLs,
		Experiences:    dest.Experiences,
	}
	_, err := s.client.do(ctx, http.MethodPost, destinationsTable, "",
		rec, "resolution=merge-duplicates,return=minimal")
	return err
}
