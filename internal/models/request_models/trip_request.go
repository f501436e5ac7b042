package request_models

type CreateTripRequest struct {
	City         string `json:"city"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	Participants int    `json:"participants"`
	Budget       string `json:"budget"`
}

type AddActivityToTripRequest struct {
	ActivityID string `json:"activity_id"`
	Position   int    `json:"position"`
}
