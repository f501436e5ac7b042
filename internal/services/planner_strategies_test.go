package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

type fakePlannerClient struct {
	response string
	err      error
	panicMsg string
}

func (f *fakePlannerClient) GenerateItineraryJSON(_ context.Context, _ string, _ []utils.PlannerActivity, _ int) (string, error) {
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.response, f.err
}

func (f *fakePlannerClient) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	return pgvector.Vector{}, nil
}

func makeTestPlan(activityCount, dayCount int) planRequest {
	activities := make([]response_models.ItineraryActivity, 0, activityCount)
	for i := 1; i <= activityCount; i++ {
		activities = append(activities, response_models.ItineraryActivity{
			ID:       fmt.Sprintf("act-%d", i),
			Name:     fmt.Sprintf("Activity %d", i),
			Category: "Culture",
			Duration: "2h",
		})
	}
	return planRequest{
		City:       "Lyon",
		Start:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Days:       dayCount,
		Activities: activities,
	}
}

func dayCounts(days []response_models.ItineraryDay) []int {
	counts := make([]int, 0, len(days))
	for _, d := range days {
		counts = append(counts, len(d.Activities))
	}
	return counts
}

func TestBalancedDistributorSpread(t *testing.T) {
	tests := []struct {
		name       string
		activities int
		days       int
		want       []int
	}{
		{"exact division", 6, 3, []int{2, 2, 2}},
		{"remainder goes to the first days", 7, 3, []int{3, 2, 2}},
		{"single day takes everything", 4, 1, []int{4}},
		{"more days than activities", 2, 5, []int{1, 1, 0, 0, 0}},
		{"one per day", 3, 3, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := makeTestPlan(tt.activities, tt.days)

			days, err := balancedDistributor{}.PlanDays(context.Background(), plan)
			require.NoError(t, err)

			assert.Equal(t, tt.want, dayCounts(days))
			assertItineraryInvariants(t, plan, days)
			for _, day := range days {
				assert.False(t, day.AIOptimized)
			}
		})
	}
}

func TestBalancedDistributorPreservesInputOrder(t *testing.T) {
	plan := makeTestPlan(7, 3)

	days, err := balancedDistributor{}.PlanDays(context.Background(), plan)
	require.NoError(t, err)

	var flattened []string
	for _, day := range days {
		for _, a := range day.Activities {
			flattened = append(flattened, a.ID)
		}
	}

	want := make([]string, 0, len(plan.Activities))
	for _, a := range plan.Activities {
		want = append(want, a.ID)
	}
	assert.Equal(t, want, flattened)
}

func TestBalancedDistributorIsDeterministic(t *testing.T) {
	plan := makeTestPlan(8, 3)

	first, err := balancedDistributor{}.PlanDays(context.Background(), plan)
	require.NoError(t, err)
	second, err := balancedDistributor{}.PlanDays(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBalancedDistributorBalanceProperty(t *testing.T) {
	for _, n := range []int{1, 5, 9, 17} {
		for _, d := range []int{1, 2, 4, 7} {
			plan := makeTestPlan(n, d)
			days, err := balancedDistributor{}.PlanDays(context.Background(), plan)
			require.NoError(t, err)

			min, max := len(days[0].Activities), len(days[0].Activities)
			for _, day := range days {
				if len(day.Activities) < min {
					min = len(day.Activities)
				}
				if len(day.Activities) > max {
					max = len(day.Activities)
				}
			}
			assert.LessOrEqual(t, max-min, 1, "n=%d d=%d", n, d)
		}
	}
}

func TestNaiveSlicerChunks(t *testing.T) {
	tests := []struct {
		name       string
		activities int
		days       int
		want       []int
	}{
		{"exact division", 6, 3, []int{2, 2, 2}},
		{"remainder loads the early days", 7, 3, []int{3, 3, 1}},
		{"single day", 4, 1, []int{4}},
		{"more days than activities leaves trailing days empty", 2, 5, []int{1, 1, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := makeTestPlan(tt.activities, tt.days)

			days, err := naiveSlicer{}.PlanDays(context.Background(), plan)
			require.NoError(t, err)

			assert.Equal(t, tt.want, dayCounts(days))
			assertItineraryInvariants(t, plan, days)
			for _, day := range days {
				assert.False(t, day.AIOptimized)
			}
		})
	}
}

func TestAIPlannerHappyPath(t *testing.T) {
	plan := makeTestPlan(3, 2)
	client := &fakePlannerClient{
		response: `{"itinerary":[
			{"day":1,"activities":[{"id":"act-1","name":"Activity 1","timeSlot":"09:00 - 11:00"},{"id":"act-2","name":"Activity 2","timeSlot":"14:00 - 16:00"}]},
			{"day":2,"activities":[{"id":"act-3","name":"Activity 3","timeSlot":"10:00 - 12:00"}]}
		]}`,
	}

	days, err := (&aiPlanner{client: client}).PlanDays(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, []int{2, 1}, dayCounts(days))
	assert.Equal(t, "09:00 - 11:00", days[0].Activities[0].TimeSlot)
	assert.Equal(t, "Culture", days[0].Activities[0].Category, "resolved activities keep catalog fields")
	for _, day := range days {
		assert.True(t, day.AIOptimized)
	}
}

func TestAIPlannerMissingDayEmittedEmpty(t *testing.T) {
	plan := makeTestPlan(3, 3)
	client := &fakePlannerClient{
		response: `{"itinerary":[
			{"day":1,"activities":[{"id":"act-1","name":"Activity 1","timeSlot":"09:00 - 11:00"}]},
			{"day":3,"activities":[{"id":"act-2","name":"Activity 2","timeSlot":"09:00 - 11:00"}]}
		]}`,
	}

	days, err := (&aiPlanner{client: client}).PlanDays(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, days, 3)

	assert.Empty(t, days[1].Activities)
	assert.True(t, days[1].AIOptimized, "a skipped day is still part of the AI plan")
	assert.Equal(t, 2, days[1].Day)
	assert.Equal(t, "2026-09-02", days[1].Date)
}

func TestAIPlannerResolvesByNameWhenIdUnknown(t *testing.T) {
	plan := makeTestPlan(2, 1)
	client := &fakePlannerClient{
		response: `{"itinerary":[{"day":1,"activities":[{"id":"made-up","name":"ACTIVITY 2","timeSlot":"09:00 - 11:00"}]}]}`,
	}

	days, err := (&aiPlanner{client: client}).PlanDays(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, days[0].Activities, 1)
	assert.Equal(t, "act-2", days[0].Activities[0].ID)
}

func TestAIPlannerKeepsUnresolvedActivityAsPlaceholder(t *testing.T) {
	plan := makeTestPlan(1, 1)
	client := &fakePlannerClient{
		response: `{"itinerary":[{"day":1,"activities":[{"id":"ghost","name":"Surprise dinner","timeSlot":"19:00 - 21:00"}]}]}`,
	}

	days, err := (&aiPlanner{client: client}).PlanDays(context.Background(), plan)
	require.NoError(t, err)

	require.Len(t, days[0].Activities, 1)
	got := days[0].Activities[0]
	assert.Equal(t, "Surprise dinner", got.Name)
	assert.Equal(t, "Optimisé", got.Category)
	assert.Equal(t, "2h", got.Duration)
	assert.Equal(t, float32(5), got.Rating)
}

func TestAIPlannerFailureModes(t *testing.T) {
	tests := []struct {
		name     string
		client   *fakePlannerClient
		sentinel error
	}{
		{"backend error", &fakePlannerClient{err: fmt.Errorf("rate limited")}, utils.ErrPlannerFailed},
		{"empty response", &fakePlannerClient{response: "   "}, utils.ErrPlannerFailed},
		{"not JSON", &fakePlannerClient{response: "sorry, I cannot help with that"}, utils.ErrUnexpectedAIReply},
		{"missing itinerary field", &fakePlannerClient{response: `{"days":[]}`}, utils.ErrUnexpectedAIReply},
		{"itinerary is not a list", &fakePlannerClient{response: `{"itinerary":{"day":1}}`}, utils.ErrUnexpectedAIReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := makeTestPlan(3, 2)
			_, err := (&aiPlanner{client: tt.client}).PlanDays(context.Background(), plan)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestAIPlannerTimeoutIsFailure(t *testing.T) {
	plan := makeTestPlan(2, 2)
	client := &slowPlannerClient{delay: 50 * time.Millisecond}

	_, err := (&aiPlanner{client: client, timeout: time.Millisecond}).PlanDays(context.Background(), plan)
	assert.Error(t, err)
}

type slowPlannerClient struct {
	delay time.Duration
}

func (s *slowPlannerClient) GenerateItineraryJSON(ctx context.Context, _ string, _ []utils.PlannerActivity, _ int) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(s.delay):
		return `{"itinerary":[]}`, nil
	}
}

func (s *slowPlannerClient) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	return pgvector.Vector{}, nil
}

// assertItineraryInvariants checks the properties every deterministic
// strategy must guarantee: one day per calendar day, contiguous ordinals,
// monotonic dates, and exact activity conservation.
func assertItineraryInvariants(t *testing.T, plan planRequest, days []response_models.ItineraryDay) {
	t.Helper()

	require.Len(t, days, plan.Days)

	total := 0
	for i, day := range days {
		assert.Equal(t, i+1, day.Day)
		wantDate := plan.Start.AddDate(0, 0, i).Format("2006-01-02")
		assert.Equal(t, wantDate, day.Date)
		total += len(day.Activities)
	}
	assert.Equal(t, len(plan.Activities), total)

	seen := make(map[string]int)
	for _, day := range days {
		for _, a := range day.Activities {
			seen[a.ID]++
		}
	}
	for _, a := range plan.Activities {
		assert.Equal(t, 1, seen[a.ID], "activity %s must appear exactly once", a.ID)
	}
}
