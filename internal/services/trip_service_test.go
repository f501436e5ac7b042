package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripweaver/internal/models/db_models"
	"tripweaver/internal/models/request_models"
	resp "tripweaver/internal/models/response_models"
	"tripweaver/pkg/utils"
)

type fakeTripRepo struct {
	trips     map[string]*db_models.Trip
	saved     map[string][]resp.ItineraryDay
	failSaves bool
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{
		trips: make(map[string]*db_models.Trip),
		saved: make(map[string][]resp.ItineraryDay),
	}
}

func (f *fakeTripRepo) CreateTrip(_ context.Context, trip *db_models.Trip) error {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	f.trips[trip.ID.String()] = trip
	return nil
}

func (f *fakeTripRepo) GetTripById(_ context.Context, tripId string) (*db_models.Trip, error) {
	return f.trips[tripId], nil
}

func (f *fakeTripRepo) ListTripsByUserId(_ context.Context, _ int, _ int, userId string) ([]db_models.Trip, error) {
	var out []db_models.Trip
	for _, trip := range f.trips {
		if trip.UserID.String() == userId {
			out = append(out, *trip)
		}
	}
	return out, nil
}

func (f *fakeTripRepo) DeleteTrip(_ context.Context, tripId string) error {
	delete(f.trips, tripId)
	return nil
}

func (f *fakeTripRepo) AddActivityToTrip(_ context.Context, tripId string, activityId string, position int) error {
	trip, ok := f.trips[tripId]
	if !ok {
		return fmt.Errorf("trip not found")
	}
	trip.Selections = append(trip.Selections, db_models.TripSelection{
		TripID:     trip.ID,
		ActivityID: uuid.MustParse(activityId),
		Position:   position,
	})
	return nil
}

func (f *fakeTripRepo) RemoveActivityFromTrip(_ context.Context, tripId string, activityId string) error {
	trip, ok := f.trips[tripId]
	if !ok {
		return fmt.Errorf("trip not found")
	}
	kept := trip.Selections[:0]
	for _, sel := range trip.Selections {
		if sel.ActivityID.String() != activityId {
			kept = append(kept, sel)
		}
	}
	trip.Selections = kept
	return nil
}

func (f *fakeTripRepo) ReplaceMaterializedItinerary(_ context.Context, tripId string, days []resp.ItineraryDay) error {
	if f.failSaves {
		return fmt.Errorf("write failed")
	}
	f.saved[tripId] = days

	trip, ok := f.trips[tripId]
	if !ok {
		return fmt.Errorf("trip not found")
	}
	trip.Days = nil
	for _, day := range days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return err
		}
		tripDay := db_models.TripDay{
			TripID:      trip.ID,
			DayNumber:   day.Day,
			Date:        date,
			AIOptimized: day.AIOptimized,
		}
		for i, act := range day.Activities {
			tripDay.Activities = append(tripDay.Activities, db_models.TripActivity{
				ActivityID: act.ID,
				Name:       act.Name,
				Category:   act.Category,
				Duration:   act.Duration,
				TimeSlot:   act.TimeSlot,
				Position:   i,
			})
		}
		trip.Days = append(trip.Days, tripDay)
	}
	return nil
}

type fakeActivityRepo struct {
	activities map[string]db_models.Activity
}

func newFakeActivityRepo(activities ...db_models.Activity) *fakeActivityRepo {
	repo := &fakeActivityRepo{activities: make(map[string]db_models.Activity)}
	for _, a := range activities {
		repo.activities[a.ID.String()] = a
	}
	return repo
}

func (f *fakeActivityRepo) ListActivitiesByCity(_ context.Context, city string, _ int, _ int) ([]db_models.Activity, error) {
	var out []db_models.Activity
	for _, a := range f.activities {
		if a.City == city {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) GetActivityById(_ context.Context, activityId string) (*db_models.Activity, error) {
	if a, ok := f.activities[activityId]; ok {
		return &a, nil
	}
	return nil, nil
}

func (f *fakeActivityRepo) ListActivitiesByIds(_ context.Context, activityIds []string) ([]db_models.Activity, error) {
	var out []db_models.Activity
	for _, id := range activityIds {
		if a, ok := f.activities[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityRepo) SearchActivitiesByKeywords(_ context.Context, _ string, _ []string) ([]db_models.Activity, error) {
	return nil, nil
}

func makeCatalogActivity(city, name string) db_models.Activity {
	a := db_models.Activity{
		City:     city,
		Name:     name,
		Category: "Culture",
		Duration: "2h",
		Rating:   4.5,
	}
	a.ID = uuid.New()
	return a
}

func newTripServiceForTest(tripRepo *fakeTripRepo, activityRepo *fakeActivityRepo) TripServiceInterface {
	itinerarySvc := NewItineraryService(&fakePlannerClient{err: fmt.Errorf("backend down")}, time.Second)
	return NewTripService(tripRepo, activityRepo, itinerarySvc)
}

func TestCreateTripValidation(t *testing.T) {
	svc := newTripServiceForTest(newFakeTripRepo(), newFakeActivityRepo())
	userId := uuid.New().String()

	tests := []struct {
		name    string
		request request_models.CreateTripRequest
		wantErr error
	}{
		{"missing city", request_models.CreateTripRequest{StartDate: "2026-09-01", EndDate: "2026-09-03"}, utils.ErrInvalidInput},
		{"bad start date", request_models.CreateTripRequest{City: "Lyon", StartDate: "soon", EndDate: "2026-09-03"}, utils.ErrInvalidInput},
		{"end before start", request_models.CreateTripRequest{City: "Lyon", StartDate: "2026-09-05", EndDate: "2026-09-01"}, utils.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTrip(context.Background(), userId, tt.request)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateTripAndListByUser(t *testing.T) {
	tripRepo := newFakeTripRepo()
	svc := newTripServiceForTest(tripRepo, newFakeActivityRepo())
	userId := uuid.New().String()

	created, err := svc.CreateTrip(context.Background(), userId, request_models.CreateTripRequest{
		City:         "Lyon",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-03",
		Participants: 2,
		Budget:       "mid",
	})
	require.NoError(t, err)
	assert.Equal(t, "Lyon", created.City)
	assert.Equal(t, "2026-09-01", created.StartDate)

	trips, err := svc.ListTripsByUserId(context.Background(), 1, 10, userId)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, created.ID, trips[0].ID)
}

func TestGetTripDetailsNotFound(t *testing.T) {
	svc := newTripServiceForTest(newFakeTripRepo(), newFakeActivityRepo())

	_, err := svc.GetTripDetails(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, utils.ErrTripNotFound)
}

func TestAddActivityToTripRejectsUnknownActivity(t *testing.T) {
	tripRepo := newFakeTripRepo()
	svc := newTripServiceForTest(tripRepo, newFakeActivityRepo())

	err := svc.AddActivityToTrip(context.Background(), uuid.New().String(), uuid.New().String(), 0)
	assert.ErrorIs(t, err, utils.ErrActivityNotFound)
}

func TestGenerateAndSaveItinerary(t *testing.T) {
	a1 := makeCatalogActivity("Lyon", "Musée des Confluences")
	a2 := makeCatalogActivity("Lyon", "Vieux Lyon walking tour")
	a3 := makeCatalogActivity("Lyon", "Bouchon dinner")
	activityRepo := newFakeActivityRepo(a1, a2, a3)

	tripRepo := newFakeTripRepo()
	trip := &db_models.Trip{
		UserID:    uuid.New(),
		City:      "Lyon",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, tripRepo.CreateTrip(context.Background(), trip))
	for i, a := range []db_models.Activity{a1, a2, a3} {
		require.NoError(t, tripRepo.AddActivityToTrip(context.Background(), trip.ID.String(), a.ID.String(), i))
	}

	svc := newTripServiceForTest(tripRepo, activityRepo)

	itinerary, err := svc.GenerateAndSaveItinerary(context.Background(), trip.ID.String())
	require.NoError(t, err)

	// AI backend is down in this fixture, so the balanced distributor
	// splits 3 activities over 2 days as 2/1.
	require.Len(t, itinerary.Itinerary, 2)
	assert.Equal(t, []int{2, 1}, dayCounts(itinerary.Itinerary))
	assert.False(t, itinerary.Itinerary[0].AIOptimized)

	saved, ok := tripRepo.saved[trip.ID.String()]
	require.True(t, ok, "itinerary must be materialized")
	assert.Equal(t, itinerary.Itinerary, saved)
}

func TestGenerateAndSaveItineraryKeepsPlaceholderIds(t *testing.T) {
	a1 := makeCatalogActivity("Lyon", "Musée des Confluences")
	activityRepo := newFakeActivityRepo(a1)

	tripRepo := newFakeTripRepo()
	trip := &db_models.Trip{
		UserID:    uuid.New(),
		City:      "Lyon",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, tripRepo.CreateTrip(context.Background(), trip))
	require.NoError(t, tripRepo.AddActivityToTrip(context.Background(), trip.ID.String(), a1.ID.String(), 0))

	// The AI invents an activity outside the catalog; its id must survive
	// materialization verbatim, not collapse to a nil uuid.
	client := &fakePlannerClient{
		response: fmt.Sprintf(`{"itinerary":[{"day":1,"activities":[
			{"id":%q,"name":"Musée des Confluences","timeSlot":"09:00 - 11:00"},
			{"id":"surprise-picnic","name":"Surprise picnic","timeSlot":"12:00 - 14:00"}
		]}]}`, a1.ID.String()),
	}
	itinerarySvc := NewItineraryService(client, time.Second)
	svc := NewTripService(tripRepo, activityRepo, itinerarySvc)

	_, err := svc.GenerateAndSaveItinerary(context.Background(), trip.ID.String())
	require.NoError(t, err)

	detail, err := svc.GetTripDetails(context.Background(), trip.ID.String())
	require.NoError(t, err)
	require.Len(t, detail.Itinerary, 1)
	require.Len(t, detail.Itinerary[0].Activities, 2)
	assert.Equal(t, a1.ID.String(), detail.Itinerary[0].Activities[0].ID)
	assert.Equal(t, "surprise-picnic", detail.Itinerary[0].Activities[1].ID)
}

func TestGenerateAndSaveItineraryRequiresSelections(t *testing.T) {
	tripRepo := newFakeTripRepo()
	trip := &db_models.Trip{
		UserID:    uuid.New(),
		City:      "Lyon",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, tripRepo.CreateTrip(context.Background(), trip))

	svc := newTripServiceForTest(tripRepo, newFakeActivityRepo())

	_, err := svc.GenerateAndSaveItinerary(context.Background(), trip.ID.String())
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
