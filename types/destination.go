package types

// Destination holds the vendor-curated presentation assets for one
// destination key. The workflow refuses to save a quote while these are
// missing and routes the vendor to asset setup instead.
type Destination struct {
	Key            string       `json:"key"`
	Name           string       `json:"name"`
	HeroImageURL   string       `json:"heroImageUrl,omitempty"`
	HotelImageURLs []string     `json:"hotelImageUrls,omitempty"`
	Experiences    []Experience `json:"experiences,omitempty"`
}

// HasAssets reports whether the destination is presentable: it needs at
// least a display name and a hero image.
func (d *Destination) HasAssets() bool {
	return d != nil && d.Name != "" && d.HeroImageURL != ""
}
