package services

import (
	"context"

	"github.com/google/uuid"
	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/internal/repositories"
	"tripweaver/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, userId string, request request_models.CreateTripRequest) (*response_models.TripResponse, error)
	GetTripDetails(ctx context.Context, tripId string) (*response_models.TripDetailResponse, error)
	ListTripsByUserId(ctx context.Context, page int, pageSize int, userId string) ([]response_models.TripResponse, error)
	DeleteTrip(ctx context.Context, tripId string) error
	AddActivityToTrip(ctx context.Context, tripId string, activityId string, position int) error
	RemoveActivityFromTrip(ctx context.Context, tripId string, activityId string) error
	GenerateAndSaveItinerary(ctx context.Context, tripId string) (*response_models.ItineraryResponse, error)
}

type TripService struct {
	tripRepo         repositories.TripRepository
	activityRepo     repositories.ActivityRepository
	itineraryService ItineraryServiceInterface
}

func NewTripService(
	tripRepo repositories.TripRepository,
	activityRepo repositories.ActivityRepository,
	itineraryService ItineraryServiceInterface,
) TripServiceInterface {
	return &TripService{
		tripRepo:         tripRepo,
		activityRepo:     activityRepo,
		itineraryService: itineraryService,
	}
}

func (t *TripService) CreateTrip(ctx context.Context, userId string, request request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	if request.City == "" {
		return nil, utils.ErrInvalidInput
	}

	userUUID, err := uuid.Parse(userId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	start, err := utils.ParseTripDate(request.StartDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	end, err := utils.ParseTripDate(request.EndDate)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if utils.TripDayCount(start, end) < 1 {
		return nil, utils.ErrInvalidDateRange
	}

	trip := db_models.Trip{
		UserID:       userUUID,
		City:         request.City,
		StartDate:    start,
		EndDate:      end,
		Participants: request.Participants,
		Budget:       request.Budget,
	}
	if err := t.tripRepo.CreateTrip(ctx, &trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := buildTripResponse(trip)
	return &out, nil
}

func (t *TripService) GetTripDetails(ctx context.Context, tripId string) (*response_models.TripDetailResponse, error) {
	trip, err := t.tripRepo.GetTripById(ctx, tripId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}

	detail := response_models.TripDetailResponse{
		TripResponse: buildTripResponse(*trip),
		Selections:   []response_models.ActivityResponse{},
	}

	if len(trip.Selections) > 0 {
		ids := make([]string, 0, len(trip.Selections))
		for _, sel := range trip.Selections {
			ids = append(ids, sel.ActivityID.String())
		}
		activities, err := t.activityRepo.ListActivitiesByIds(ctx, ids)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
		for _, a := range activities {
			detail.Selections = append(detail.Selections, buildActivityResponse(a))
		}
	}

	for _, day := range trip.Days {
		outDay := response_models.ItineraryDay{
			Day:         day.DayNumber,
			Date:        utils.FormatTripDate(day.Date),
			Activities:  []response_models.ItineraryActivity{},
			AIOptimized: day.AIOptimized,
		}
		for _, act := range day.Activities {
			outDay.Activities = append(outDay.Activities, response_models.ItineraryActivity{
				ID:       act.ActivityID,
				Name:     act.Name,
				Category: act.Category,
				Duration: act.Duration,
				TimeSlot: act.TimeSlot,
			})
		}
		detail.Itinerary = append(detail.Itinerary, outDay)
	}

	return &detail, nil
}

func (t *TripService) ListTripsByUserId(ctx context.Context, page int, pageSize int, userId string) ([]response_models.TripResponse, error) {
	trips, err := t.tripRepo.ListTripsByUserId(ctx, page, pageSize, userId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripResponse, 0, len(trips))
	for _, trip := range trips {
		out = append(out, buildTripResponse(trip))
	}
	return out, nil
}

func (t *TripService) DeleteTrip(ctx context.Context, tripId string) error {
	trip, err := t.tripRepo.GetTripById(ctx, tripId)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if trip == nil {
		return utils.ErrTripNotFound
	}
	if err := t.tripRepo.DeleteTrip(ctx, tripId); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TripService) AddActivityToTrip(ctx context.Context, tripId string, activityId string, position int) error {
	activity, err := t.activityRepo.GetActivityById(ctx, activityId)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if activity == nil {
		return utils.ErrActivityNotFound
	}

	if err := t.tripRepo.AddActivityToTrip(ctx, tripId, activityId, position); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TripService) RemoveActivityFromTrip(ctx context.Context, tripId string, activityId string) error {
	if err := t.tripRepo.RemoveActivityFromTrip(ctx, tripId, activityId); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// GenerateAndSaveItinerary builds an itinerary from the trip's curated
// selection and materializes it, replacing any previous plan.
func (t *TripService) GenerateAndSaveItinerary(ctx context.Context, tripId string) (*response_models.ItineraryResponse, error) {
	trip, err := t.tripRepo.GetTripById(ctx, tripId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	if len(trip.Selections) == 0 {
		return nil, utils.ErrInvalidInput
	}

	ids := make([]string, 0, len(trip.Selections))
	for _, sel := range trip.Selections {
		ids = append(ids, sel.ActivityID.String())
	}
	activities, err := t.activityRepo.ListActivitiesByIds(ctx, ids)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(activities) == 0 {
		return nil, utils.ErrInvalidInput
	}

	request := request_models.GenerateItineraryRequest{
		City:         trip.City,
		StartDate:    utils.FormatTripDate(trip.StartDate),
		EndDate:      utils.FormatTripDate(trip.EndDate),
		Participants: trip.Participants,
		Budget:       trip.Budget,
	}
	for _, a := range activities {
		request.Activities = append(request.Activities, request_models.ActivityInput{
			ID:        a.ID.String(),
			Name:      a.Name,
			Category:  a.Category,
			Duration:  a.Duration,
			Rating:    a.Rating,
			PriceTier: a.PriceTier,
		})
	}

	itinerary, err := t.itineraryService.BuildItinerary(ctx, request)
	if err != nil {
		return nil, err
	}

	if err := t.tripRepo.ReplaceMaterializedItinerary(ctx, tripId, itinerary.Itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return itinerary, nil
}

func buildTripResponse(trip db_models.Trip) response_models.TripResponse {
	return response_models.TripResponse{
		ID:           trip.ID.String(),
		City:         trip.City,
		StartDate:    utils.FormatTripDate(trip.StartDate),
		EndDate:      utils.FormatTripDate(trip.EndDate),
		Participants: trip.Participants,
		Budget:       trip.Budget,
	}
}
