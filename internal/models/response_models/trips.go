package response_models

type TripResponse struct {
	ID           string `json:"id"`
	City         string `json:"city"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Participants int    `json:"participants"`
	Budget       string `json:"budget,omitempty"`
}

type TripDetailResponse struct {
	TripResponse
	Selections []ActivityResponse `json:"selections"`
	Itinerary  []ItineraryDay     `json:"itinerary,omitempty"`
}
