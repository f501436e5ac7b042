package request_models

type SuggestActivitiesRequest struct {
	City      string   `json:"city"`
	Interests []string `json:"interests"`
	Limit     int      `json:"limit"`
}
