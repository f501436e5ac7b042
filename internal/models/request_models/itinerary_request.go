package request_models

// ActivityInput mirrors what the curation UI sends back: the catalog id
// plus the display fields, so generation works even for activities the
// catalog no longer knows about.
type ActivityInput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Duration  string  `json:"duration"`
	Rating    float32 `json:"rating,omitempty"`
	PriceTier string  `json:"priceTier,omitempty"`
}

type GenerateItineraryRequest struct {
	City         string          `json:"city"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	Participants int             `json:"participants"`
	Budget       string          `json:"budget"`
	Activities   []ActivityInput `json:"activities"`
}
