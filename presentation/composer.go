// Package presentation composes the scroll-snapped screen sequence the mobile
// client renders from a quote's extracted trip data. Composition is a pure
// function of its inputs: partial data produces stub screens, never errors.
package presentation

import (
	"fmt"
	"strings"

	"github.com/roteirolab/roteiro-backend/types"
)

// defaultNights is the hard-coded fallback when neither totalNights nor the
// hotel's night count was extracted.
const defaultNights = 7

// Compose maps a client name and extracted trip data to the fixed six-screen
// narrative: hero, hotel, experiences, outbound flight, return flight,
// summary. The order and count never change, regardless of which optional
// fields are missing.
func Compose(clientName string, data *types.ExtractedTripData) []types.PresentationScreen {
	if data == nil {
		data = &types.ExtractedTripData{}
	}
	return []types.PresentationScreen{
		heroScreen(clientName, data),
		hotelScreen(data.Hotel),
		experiencesScreen(),
		flightScreen("flight-outbound", types.ScreenFlightOutbound, "Voo de ida", data.OutboundFlight),
		flightScreen("flight-return", types.ScreenFlightReturn, "Voo de volta", data.ReturnFlight),
		summaryScreen(data.TotalPrice),
	}
}

func heroScreen(clientName string, data *types.ExtractedTripData) types.PresentationScreen {
	nights := defaultNights
	if data.TotalNights != nil {
		nights = *data.TotalNights
	} else if data.Hotel != nil && data.Hotel.Nights != nil {
		nights = *data.Hotel.Nights
	}

	title := ""
	if name := strings.TrimSpace(clientName); name != "" {
		title = fmt.Sprintf("%s, sua viagem está pronta!", name)
	}

	return types.PresentationScreen{
		ScreenID: "hero",
		Type:     types.ScreenHero,
		Title:    title,
		Subtitle: fmt.Sprintf("%d noites de uma experiência pensada para você", nights),
		ImageURL: fallbackHeroImageURL,
	}
}

func hotelScreen(hotel *types.HotelInfo) types.PresentationScreen {
	if hotel == nil {
		return types.PresentationScreen{
			ScreenID:               "hotel",
			Type:                   types.ScreenHotel,
			Title:                  "Sua hospedagem",
			Subtitle:               "Informações do hotel não disponíveis",
			ImageURL:               fallbackHotelImageURL,
			HotelCarouselImageURLs: fallbackHotelCarousel,
			IncludedStatus:         types.StatusIncluded,
		}
	}

	// Stars render as a literal repeated glyph; zero or garbage star counts
	// from the extractor are an empty marker, not an error.
	stars := ""
	if hotel.Stars > 0 {
		stars = strings.Repeat("★", hotel.Stars)
	}

	var body strings.Builder
	if hotel.RoomType != "" {
		body.WriteString(hotel.RoomType)
	}
	if hotel.MealPlan != "" {
		if body.Len() > 0 {
			body.WriteString(" · ")
		}
		body.WriteString(hotel.MealPlan)
	}
	if hotel.CheckInDate != "" {
		if body.Len() > 0 {
			body.WriteString(" · ")
		}
		body.WriteString(fmt.Sprintf("Check-in %s", FormatNarrativeDate(hotel.CheckInDate)))
	}
	if hotel.CheckOutDate != "" {
		if body.Len() > 0 {
			body.WriteString(" · ")
		}
		body.WriteString(fmt.Sprintf("Check-out %s", FormatNarrativeDate(hotel.CheckOutDate)))
	}

	return types.PresentationScreen{
		ScreenID:               "hotel",
		Type:                   types.ScreenHotel,
		Title:                  hotel.Name,
		Subtitle:               stars,
		Body:                   body.String(),
		ImageURL:               fallbackHotelImageURL,
		HotelCarouselImageURLs: fallbackHotelCarousel,
		IncludedStatus:         types.StatusIncluded,
	}
}

func experiencesScreen() types.PresentationScreen {
	return types.PresentationScreen{
		ScreenID:        "experiences",
		Type:            types.ScreenExperiences,
		Title:           "Experiências",
		Subtitle:        "O que preparamos para os seus dias",
		ExperienceItems: defaultExperiences,
		IncludedStatus:  types.StatusNotIncluded,
	}
}

func flightScreen(screenID string, screenType types.ScreenType, title string, leg *types.FlightLeg) types.PresentationScreen {
	if leg == nil || len(leg.Segments) == 0 {
		return types.PresentationScreen{
			ScreenID: screenID,
			Type:     screenType,
			Title:    title,
			Subtitle: "Informações do voo não disponíveis",
		}
	}

	// A leg with connections narrates from the first segment's departure to
	// the last segment's arrival.
	first := leg.Segments[0]
	last := leg.Segments[len(leg.Segments)-1]

	body := fmt.Sprintf("Saída de %s às %s, chegada em %s às %s.",
		first.DepartureCity, first.DepartureTime, last.ArrivalCity, last.ArrivalTime)

	stopInfo := ""
	if leg.Stops > 0 {
		stopInfo = leg.StopInfo
		if stopInfo == "" {
			stopInfo = fmt.Sprintf("Conexão em %s.", first.ArrivalCity)
		}
		body = body + " " + stopInfo
	}

	return types.PresentationScreen{
		ScreenID: screenID,
		Type:     screenType,
		Title:    title,
		Subtitle: FormatWeekday(first.Date),
		Body:     body,
		FlightData: &types.FlightSummary{
			Airline:       first.Airline,
			DepartureCity: first.DepartureCity,
			DepartureTime: first.DepartureTime,
			ArrivalCity:   last.ArrivalCity,
			ArrivalTime:   last.ArrivalTime,
			Date:          first.Date,
			TotalDuration: leg.TotalDuration,
			Stops:         leg.Stops,
			StopInfo:      stopInfo,
		},
		IncludedStatus: types.StatusIncluded,
	}
}

func summaryScreen(totalPrice string) types.PresentationScreen {
	price := totalPrice
	if price == "" {
		price = types.PriceOnRequest
	}
	return types.PresentationScreen{
		ScreenID:   "summary",
		Type:       types.ScreenSummary,
		Title:      "Resumo da viagem",
		Subtitle:   "Tudo o que está incluído no seu pacote",
		TotalPrice: price,
	}
}

// ApplyDestinationAssets overlays vendor-curated destination assets onto a
// composed sequence: hero image, hotel carousel and destination-specific
// experiences. Screens keep their catalog defaults when the destination has
// no curated counterpart. The input slice is modified in place and returned.
func ApplyDestinationAssets(screens []types.PresentationScreen, dest *types.Destination) []types.PresentationScreen {
	if dest == nil {
		return screens
	}
	for i := range screens {
		switch screens[i].Type {
		case types.ScreenHero:
			if dest.HeroImageURL != "" {
				screens[i].ImageURL = dest.HeroImageURL
			}
		case types.ScreenHotel:
			if len(dest.HotelImageURLs) > 0 {
				screens[i].HotelCarouselImageURLs = dest.HotelImageURLs
				screens[i].ImageURL = dest.HotelImageURLs[0]
			}
		case types.ScreenExperiences:
			if len(dest.Experiences) > 0 {
				screens[i].ExperienceItems = dest.Experiences
			}
		}
	}
	return screens
}
