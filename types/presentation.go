package types

// ScreenType tags one unit of the scroll-snapped narrative.
type ScreenType string

const (
	ScreenHero           ScreenType = "hero"
	ScreenIntro          ScreenType = "intro"
	ScreenHotel          ScreenType = "hotel"
	ScreenExperiences    ScreenType = "experiences"
	ScreenFlightOutbound ScreenType = "flight_outbound"
	ScreenFlightReturn   ScreenType = "flight_return"
	ScreenTransferOut    ScreenType = "transfer_outbound"
	ScreenTransferReturn ScreenType = "transfer_return"
	ScreenSummary        ScreenType = "summary"
)

// IsValid checks if the screen type is one the client can render.
func (st ScreenType) IsValid() bool {
	switch st {
	case ScreenHero, ScreenIntro, ScreenHotel, ScreenExperiences,
		ScreenFlightOutbound, ScreenFlightReturn,
		ScreenTransferOut, ScreenTransferReturn, ScreenSummary:
		return true
	default:
		return false
	}
}

// IncludedStatus marks whether a screen's subject is part of the package.
type IncludedStatus string

const (
	StatusIncluded    IncludedStatus = "included"
	StatusNotIncluded IncludedStatus = "not_included"
)

// PresentationScreen is one screen of the composed narrative. ScreenID is
// unique within a sequence; ordering is the slice order. Variant-specific
// payloads are nil/empty for other screen types.
type PresentationScreen struct {
	ScreenID       string         `json:"screenId"`
	Type           ScreenType     `json:"type"`
	Title          string         `json:"title,omitempty"`
	Subtitle       string         `json:"subtitle,omitempty"`
	Body           string         `json:"body,omitempty"`
	ImageURL       string         `json:"imageUrl,omitempty"`
	IncludedStatus IncludedStatus `json:"includedStatus,omitempty"`

	HotelCarouselImageURLs []string       `json:"hotelCarouselImageUrls,omitempty"`
	ExperienceItems        []Experience   `json:"experienceItems,omitempty"`
	FlightData             *FlightSummary `json:"flightData,omitempty"`
	TotalPrice             string         `json:"totalPrice,omitempty"`
}

// Experience is one curated activity shown on the experiences screen.
type Experience struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// FlightSummary is the flight payload rendered on a flight screen: the
// narrative endpoints of the leg plus connection info.
type FlightSummary struct {
	Airline       string `json:"airline,omitempty"`
	DepartureCity string `json:"departureCity,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	ArrivalCity   string `json:"arrivalCity,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	Date          string `json:"date,omitempty"`
	TotalDuration string `json:"totalDuration,omitempty"`
	Stops         int    `json:"stops"`
	StopInfo      string `json:"stopInfo,omitempty"`
}

// PresentationPayload is the public endpoint's response: the persisted quote
// plus the composed screen sequence the client scrolls through.
type PresentationPayload struct {
	Quote   *Quote               `json:"quote"`
	Screens []PresentationScreen `json:"screens"`
}
