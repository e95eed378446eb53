package types

// ExtractedTripData is the normalized output of the external AI document
// extraction step. Every field except Destination is optional: the extractor
// works from vendor-uploaded PDFs and images of wildly varying quality, so
// screen composers must guard on presence instead of assuming completeness.
//
// Dates are free-form localized strings as emitted by the extractor
// (e.g. "15 mar", "seg"), not ISO timestamps. Prices are pre-formatted
// display strings (e.g. "R$ 7.910") and are never parsed or recomputed here.
type ExtractedTripData struct {
	Destination    string       `json:"destination"`
	Origin         string       `json:"origin,omitempty"`
	TravelDate     string       `json:"travelDate,omitempty"`
	ReturnDate     string       `json:"returnDate,omitempty"`
	TotalNights    *int         `json:"totalNights,omitempty"`
	OutboundFlight *FlightLeg   `json:"outboundFlight,omitempty"`
	ReturnFlight   *FlightLeg   `json:"returnFlight,omitempty"`
	Hotel          *HotelInfo   `json:"hotel,omitempty"`
	TotalPrice     string       `json:"totalPrice,omitempty"`
	Passengers     string       `json:"passengers,omitempty"`
	PaymentInfo    *PaymentInfo `json:"paymentInfo,omitempty"`
}

// FlightLeg is one direction of the trip, possibly with connections.
type FlightLeg struct {
	Segments      []FlightSegment `json:"segments"`
	TotalDuration string          `json:"totalDuration,omitempty"`
	Stops         int             `json:"stops"`
	StopInfo      string          `json:"stopInfo,omitempty"`
}

// FlightSegment is a single flight within a leg. All fields are opaque
// strings straight from the extractor; there is no cross-field validation.
type FlightSegment struct {
	Airline          string `json:"airline,omitempty"`
	FlightNumber     string `json:"flightNumber,omitempty"`
	Date             string `json:"date,omitempty"`
	DepartureTime    string `json:"departureTime,omitempty"`
	ArrivalTime      string `json:"arrivalTime,omitempty"`
	DepartureAirport string `json:"departureAirport,omitempty"`
	DepartureCity    string `json:"departureCity,omitempty"`
	ArrivalAirport   string `json:"arrivalAirport,omitempty"`
	ArrivalCity      string `json:"arrivalCity,omitempty"`
	Duration         string `json:"duration,omitempty"`
	Class            string `json:"class,omitempty"`
}

// HotelInfo holds extracted accommodation details.
type HotelInfo struct {
	Name         string `json:"name,omitempty"`
	Stars        int    `json:"stars,omitempty"`
	Address      string `json:"address,omitempty"`
	CheckInDate  string `json:"checkInDate,omitempty"`
	CheckInTime  string `json:"checkInTime,omitempty"`
	CheckOutDate string `json:"checkOutDate,omitempty"`
	CheckOutTime string `json:"checkOutTime,omitempty"`
	Nights       *int   `json:"nights,omitempty"`
	RoomType     string `json:"roomType,omitempty"`
	MealPlan     string `json:"mealPlan,omitempty"`
}

// PaymentInfo is the extractor's payment-breakdown block. Total doubles as a
// fallback price source when TotalPrice is absent.
type PaymentInfo struct {
	Total        string `json:"total,omitempty"`
	Installments string `json:"installments,omitempty"`
}

// ExtractionResult is the outcome of one extraction call. Failures carry a
// human-readable message for the vendor UI, never a raw transport error.
type ExtractionResult struct {
	Success bool               `json:"success"`
	Data    *ExtractedTripData `json:"data,omitempty"`
	Error   string             `json:"error,omitempty"`
}
