package presentation

import "github.com/roteirolab/roteiro-backend/types"

// Fixed image catalog used when no vendor-curated destination assets exist.
// The destination-specific path overrides these via ApplyDestinationAssets.
const (
	fallbackHeroImageURL  = "https://images.pexels.com/photos/2082103/pexels-photo-2082103.jpeg"
	fallbackHotelImageURL = "https://images.pexels.com/photos/258154/pexels-photo-258154.jpeg"
)

var fallbackHotelCarousel = []string{
	"https://images.pexels.com/photos/258154/pexels-photo-258154.jpeg",
	"https://images.pexels.com/photos/271624/pexels-photo-271624.jpeg",
	"https://images.pexels.com/photos/161758/governor-s-mansion-montgomery-alabama-grand-staircase-161758.jpeg",
}

// defaultExperiences is the fixed six-item catalog shown on the experiences
// screen. It is not destination-driven here; destination-specific items come
// from the vendor-curated Destination record.
var defaultExperiences = []types.Experience{
	{
		Name:        "City tour guiado",
		Description: "Conheça os principais pontos turísticos com guia local",
		ImageURL:    "https://images.pexels.com/photos/2087391/pexels-photo-2087391.jpeg",
	},
	{
		Name:        "Passeio gastronômico",
		Description: "Sabores típicos da região em restaurantes selecionados",
		ImageURL:    "https://images.pexels.com/photos/1126728/pexels-photo-1126728.jpeg",
	},
	{
		Name:        "Pôr do sol panorâmico",
		Description: "O melhor mirante da cidade no fim de tarde",
		ImageURL:    "https://images.pexels.com/photos/158827/field-corn-air-frisch-158827.jpeg",
	},
	{
		Name:        "Museus e cultura",
		Description: "Roteiro cultural pelos museus mais importantes",
		ImageURL:    "https://images.pexels.com/photos/2519376/pexels-photo-2519376.jpeg",
	},
	{
		Name:        "Dia livre para compras",
		Description: "Tempo reservado para explorar no seu ritmo",
		ImageURL:    "https://images.pexels.com/photos/1050244/pexels-photo-1050244.jpeg",
	},
	{
		Name:        "Experiência noturna",
		Description: "A vida noturna local com segurança e estilo",
		ImageURL:    "https://images.pexels.com/photos/2263436/pexels-photo-2263436.jpeg",
	},
}
