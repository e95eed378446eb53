package types

import (
	"fmt"
	"time"
)

// PriceOnRequest is rendered verbatim wherever no price was extracted. It is
// what the default version and the summary screen fall back to.
const PriceOnRequest = "A consultar"

// Quote is the persisted trip proposal for one client.
//
// Invariants:
//   - ID is assigned at creation and never changes; it is the primary key.
//   - PublicID is empty (unpublished) or a stable shareable token. Once set
//     it only changes through an explicit regeneration, never silently.
//   - Versions is insertion-ordered and non-empty after creation; creation
//     always seeds exactly one default version.
//   - ClientName and DestinationKey are set at creation and immutable.
type Quote struct {
	ID             string             `json:"id"`
	PublicID       string             `json:"publicId,omitempty"`
	ClientName     string             `json:"clientName"`
	DestinationKey string             `json:"destinationKey"`
	Versions       []QuoteVersion     `json:"versions"`
	ExtractedData  *ExtractedTripData `json:"extractedData,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// QuoteVersion is one priced package option within a Quote. VersionID is
// sequential within the quote (v1, v2, ...). Price is an opaque display
// string; it is never arithmetically combined.
type QuoteVersion struct {
	VersionID string `json:"versionId"`
	Label     string `json:"label"`
	Price     string `json:"price"`
}

// QuoteInput is the creation payload before identity assignment.
type QuoteInput struct {
	ClientName     string             `json:"clientName"`
	DestinationKey string             `json:"destinationKey"`
	ExtractedData  *ExtractedTripData `json:"extractedData,omitempty"`
}

// QuoteUpdate is a partial patch applied by Update. Nil fields are left
// untouched.
type QuoteUpdate struct {
	PublicID *string        `json:"publicId,omitempty"`
	Versions []QuoteVersion `json:"versions,omitempty"`
}

// QuoteLinks are the shareable entry points for a quote. PreviewURL
// ({base}/p/{publicId}) is resolved by the social-preview renderer;
// DirectURL ({base}/q/{publicId}) opens the app directly.
type QuoteLinks struct {
	PreviewURL string `json:"previewUrl"`
	DirectURL  string `json:"directUrl"`
}

// NextVersionID returns the sequential id for the next version to append
// (v1, v2, ...). The mobile client keys its package selector on these ids.
func (q *Quote) NextVersionID() string {
	return fmt.Sprintf("v%d", len(q.Versions)+1)
}
