package response_models

type ItineraryActivity struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Duration  string  `json:"duration"`
	Rating    float32 `json:"rating,omitempty"`
	PriceTier string  `json:"priceTier,omitempty"`
	TimeSlot  string  `json:"timeSlot,omitempty"`
}

type ItineraryDay struct {
	Day         int                 `json:"day"`
	Date        string              `json:"date"`
	Activities  []ItineraryActivity `json:"activities"`
	AIOptimized bool                `json:"aiOptimized"`
}

type ItineraryResponse struct {
	Itinerary []ItineraryDay `json:"itinerary"`
}
