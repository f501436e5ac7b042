package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

// planRequest is the validated input every planning strategy receives.
type planRequest struct {
	City       string
	Start      time.Time
	Days       int
	Activities []response_models.ItineraryActivity
}

// dayPlanner is one strategy in the fallback chain. A strategy either
// returns a full set of days (one per calendar day, ordinals 1..Days) or an
// error that sends the orchestrator to the next strategy.
type dayPlanner interface {
	Name() string
	PlanDays(ctx context.Context, plan planRequest) ([]response_models.ItineraryDay, error)
}

const (
	defaultPlannerTimeout = 10 * time.Second

	// Placeholder fields for activities the model invented or that could
	// not be resolved back to the user's selection.
	placeholderCategory = "Optimisé"
	placeholderDuration = "2h"
	placeholderRating   = 5
)

// aiPlanner asks the generative backend for a day-grouped, time-slotted
// assignment. Any backend or parse failure is returned as an error so the
// balanced distributor takes over; nothing here is retried.
type aiPlanner struct {
	client  utils.PlannerClientInterface
	timeout time.Duration
}

func (p *aiPlanner) Name() string { return "ai-planner" }

type aiDayEntry struct {
	Day        int `json:"day"`
	Activities []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		TimeSlot string `json:"timeSlot"`
	} `json:"activities"`
}

func (p *aiPlanner) PlanDays(ctx context.Context, plan planRequest) ([]response_models.ItineraryDay, error) {
	timeout := p.timeout
	if timeout <= 0 {
		timeout = defaultPlannerTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	plannerActivities := make([]utils.PlannerActivity, 0, len(plan.Activities))
	for _, a := range plan.Activities {
		plannerActivities = append(plannerActivities, utils.PlannerActivity{
			ID:       a.ID,
			Name:     a.Name,
			Category: a.Category,
			Duration: a.Duration,
		})
	}

	raw, err := p.client.GenerateItineraryJSON(ctx, plan.City, plannerActivities, plan.Days)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrPlannerFailed, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: empty response", utils.ErrPlannerFailed)
	}

	entries, err := parseItineraryEnvelope(raw)
	if err != nil {
		return nil, err
	}

	// Explicit lookup table built once per request. Matching by name is the
	// fragile fallback for models that echo names instead of ids.
	byID := make(map[string]response_models.ItineraryActivity, len(plan.Activities))
	byName := make(map[string]response_models.ItineraryActivity, len(plan.Activities))
	for _, a := range plan.Activities {
		byID[a.ID] = a
		byName[strings.ToLower(a.Name)] = a
	}

	byOrdinal := make(map[int]aiDayEntry, len(entries))
	for _, e := range entries {
		byOrdinal[e.Day] = e
	}

	days := make([]response_models.ItineraryDay, 0, plan.Days)
	for ordinal := 1; ordinal <= plan.Days; ordinal++ {
		day := response_models.ItineraryDay{
			Day:         ordinal,
			Date:        utils.FormatTripDate(utils.DayDate(plan.Start, ordinal)),
			Activities:  []response_models.ItineraryActivity{},
			AIOptimized: true,
		}

		// A day the model skipped stays empty rather than failing the
		// whole plan.
		entry, ok := byOrdinal[ordinal]
		if !ok {
			days = append(days, day)
			continue
		}

		for _, block := range entry.Activities {
			resolved, found := byID[block.ID]
			if !found {
				resolved, found = byName[strings.ToLower(block.Name)]
			}
			if !found {
				resolved = response_models.ItineraryActivity{
					ID:       block.ID,
					Name:     block.Name,
					Category: placeholderCategory,
					Duration: placeholderDuration,
					Rating:   placeholderRating,
				}
			}
			resolved.TimeSlot = block.TimeSlot
			day.Activities = append(day.Activities, resolved)
		}

		days = append(days, day)
	}

	return days, nil
}

// parseItineraryEnvelope validates the strict {"itinerary":[...]} shape.
// Field presence is never trusted: a missing key or a non-array value is a
// parse failure, not a partial result.
func parseItineraryEnvelope(raw string) ([]aiDayEntry, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &probe); err != nil {
		return nil, fmt.Errorf("%w: response is not a JSON object: %v", utils.ErrUnexpectedAIReply, err)
	}

	itineraryRaw, ok := probe["itinerary"]
	if !ok {
		return nil, fmt.Errorf("%w: missing 'itinerary' field", utils.ErrUnexpectedAIReply)
	}

	var entries []aiDayEntry
	if err := json.Unmarshal(itineraryRaw, &entries); err != nil {
		return nil, fmt.Errorf("%w: 'itinerary' field is not a day list: %v", utils.ErrUnexpectedAIReply, err)
	}

	return entries, nil
}

// balancedDistributor spreads activities evenly across days with integer
// quotient/remainder arithmetic, in input order, no lookahead. It has no
// external dependency and no failure mode; it is the primary correctness
// fallback when the AI planner fails.
type balancedDistributor struct{}

func (balancedDistributor) Name() string { return "balanced-distributor" }

func (balancedDistributor) PlanDays(_ context.Context, plan planRequest) ([]response_models.ItineraryDay, error) {
	n := len(plan.Activities)
	d := plan.Days

	quotient := n / d
	remainder := n % d

	days := make([]response_models.ItineraryDay, 0, d)
	idx := 0
	for ordinal := 1; ordinal <= d; ordinal++ {
		count := quotient
		if ordinal <= remainder {
			count++
		}

		assigned := make([]response_models.ItineraryActivity, count)
		copy(assigned, plan.Activities[idx:idx+count])
		idx += count

		days = append(days, response_models.ItineraryDay{
			Day:         ordinal,
			Date:        utils.FormatTripDate(utils.DayDate(plan.Start, ordinal)),
			Activities:  assigned,
			AIOptimized: false,
		})
	}

	return days, nil
}

// naiveSlicer is the unconditional last resort: contiguous chunks of
// ceil(n/d), trailing days possibly empty. It trades the balance property
// for guaranteed termination.
type naiveSlicer struct{}

func (naiveSlicer) Name() string { return "naive-slicer" }

func (naiveSlicer) PlanDays(_ context.Context, plan planRequest) ([]response_models.ItineraryDay, error) {
	n := len(plan.Activities)
	d := plan.Days

	perDay := (n + d - 1) / d
	if perDay < 1 {
		perDay = 1
	}

	days := make([]response_models.ItineraryDay, 0, d)
	for ordinal := 1; ordinal <= d; ordinal++ {
		start := (ordinal - 1) * perDay
		end := start + perDay
		if start > n {
			start = n
		}
		if end > n {
			end = n
		}

		assigned := make([]response_models.ItineraryActivity, end-start)
		copy(assigned, plan.Activities[start:end])

		days = append(days, response_models.ItineraryDay{
			Day:         ordinal,
			Date:        utils.FormatTripDate(utils.DayDate(plan.Start, ordinal)),
			Activities:  assigned,
			AIOptimized: false,
		})
	}

	return days, nil
}
