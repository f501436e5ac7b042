package response_models

type ActivityResponse struct {
	ID          string   `json:"id"`
	City        string   `json:"city"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Duration    string   `json:"duration"`
	Rating      float32  `json:"rating"`
	PriceTier   string   `json:"price_tier"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}
