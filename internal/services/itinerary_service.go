package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"tripweaver/internal/models/request_models"
	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

type ItineraryServiceInterface interface {
	BuildItinerary(ctx context.Context, request request_models.GenerateItineraryRequest) (*response_models.ItineraryResponse, error)
}

// ItineraryService runs the planning fallback chain: AI planner, then
// balanced distributor, then naive slicer. Each request is an independent
// stateless computation; the only error it ever surfaces is invalid input.
type ItineraryService struct {
	planners []dayPlanner
}

func NewItineraryService(client utils.PlannerClientInterface, plannerTimeout time.Duration) ItineraryServiceInterface {
	return &ItineraryService{
		planners: []dayPlanner{
			&aiPlanner{client: client, timeout: plannerTimeout},
			balancedDistributor{},
			naiveSlicer{},
		},
	}
}

func (s *ItineraryService) BuildItinerary(ctx context.Context, request request_models.GenerateItineraryRequest) (*response_models.ItineraryResponse, error) {
	plan, err := validateItineraryRequest(request)
	if err != nil {
		return nil, err
	}

	for _, planner := range s.planners {
		days, err := runPlanner(ctx, planner, plan)
		if err != nil {
			log.Printf("Planner %s failed, falling through: %v", planner.Name(), err)
			continue
		}
		return &response_models.ItineraryResponse{Itinerary: days}, nil
	}

	// The slicer has no failure mode, so this is unreachable in practice.
	return nil, utils.ErrUnexpectedAIReply
}

// runPlanner contains a strategy's panics so an unexpected runtime error in
// one stage reads as a normal fallthrough to the next.
func runPlanner(ctx context.Context, planner dayPlanner, plan planRequest) (days []response_models.ItineraryDay, err error) {
	defer func() {
		if r := recover(); r != nil {
			days = nil
			err = fmt.Errorf("planner %s panicked: %v", planner.Name(), r)
		}
	}()
	return planner.PlanDays(ctx, plan)
}

// validateItineraryRequest rejects the only error class that reaches the
// caller: structurally invalid input no fallback can plan around.
func validateItineraryRequest(request request_models.GenerateItineraryRequest) (planRequest, error) {
	if strings.TrimSpace(request.City) == "" {
		return planRequest{}, utils.ErrInvalidInput
	}
	if len(request.Activities) == 0 {
		return planRequest{}, utils.ErrInvalidInput
	}

	start, err := utils.ParseTripDate(request.StartDate)
	if err != nil {
		return planRequest{}, utils.ErrInvalidInput
	}
	end, err := utils.ParseTripDate(request.EndDate)
	if err != nil {
		return planRequest{}, utils.ErrInvalidInput
	}

	days := utils.TripDayCount(start, end)
	if days < 1 {
		return planRequest{}, utils.ErrInvalidDateRange
	}

	activities := make([]response_models.ItineraryActivity, 0, len(request.Activities))
	for _, a := range request.Activities {
		activities = append(activities, response_models.ItineraryActivity{
			ID:        a.ID,
			Name:      a.Name,
			Category:  a.Category,
			Duration:  a.Duration,
			Rating:    a.Rating,
			PriceTier: a.PriceTier,
		})
	}

	return planRequest{
		City:       request.City,
		Start:      start,
		Days:       days,
		Activities: activities,
	}, nil
}
