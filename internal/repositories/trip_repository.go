package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tripweaver/internal/models/db_models"
	resp "tripweaver/internal/models/response_models"
)

type TripRepository interface {
	CreateTrip(ctx context.Context, trip *dbm.Trip) error
	GetTripById(ctx context.Context, tripId string) (*dbm.Trip, error)
	ListTripsByUserId(ctx context.Context, page int, pageSize int, userId string) ([]dbm.Trip, error)
	DeleteTrip(ctx context.Context, tripId string) error
	AddActivityToTrip(ctx context.Context, tripId string, activityId string, position int) error
	RemoveActivityFromTrip(ctx context.Context, tripId string, activityId string) error
	ReplaceMaterializedItinerary(ctx context.Context, tripId string, days []resp.ItineraryDay) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) CreateTrip(ctx context.Context, trip *dbm.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *tripRepository) GetTripById(ctx context.Context, tripId string) (*dbm.Trip, error) {
	var trip dbm.Trip
	err := r.db.WithContext(ctx).
		Preload("Selections").
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("day_number ASC") }).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&trip, "id = ?", tripId).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *tripRepository) ListTripsByUserId(ctx context.Context, page int, pageSize int, userId string) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) DeleteTrip(ctx context.Context, tripId string) error {
	return r.db.WithContext(ctx).Delete(&dbm.Trip{}, "id = ?", tripId).Error
}

func (r *tripRepository) AddActivityToTrip(ctx context.Context, tripId string, activityId string, position int) error {
	tripUUID, err := uuid.Parse(tripId)
	if err != nil {
		return err
	}
	activityUUID, err := uuid.Parse(activityId)
	if err != nil {
		return err
	}

	selection := dbm.TripSelection{
		TripID:     tripUUID,
		ActivityID: activityUUID,
		Position:   position,
	}
	return r.db.WithContext(ctx).Create(&selection).Error
}

func (r *tripRepository) RemoveActivityFromTrip(ctx context.Context, tripId string, activityId string) error {
	return r.db.WithContext(ctx).
		Where("trip_id = ? AND activity_id = ?", tripId, activityId).
		Delete(&dbm.TripSelection{}).Error
}

// ReplaceMaterializedItinerary swaps the persisted day-by-day plan of a trip
// for a freshly generated one, in a single transaction.
func (r *tripRepository) ReplaceMaterializedItinerary(ctx context.Context, tripId string, days []resp.ItineraryDay) error {
	tripUUID, err := uuid.Parse(tripId)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldDays []dbm.TripDay
		if err := tx.Where("trip_id = ?", tripId).Find(&oldDays).Error; err != nil {
			return err
		}
		for _, old := range oldDays {
			if err := tx.Where("trip_day_id = ?", old.ID).Delete(&dbm.TripActivity{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("trip_id = ?", tripId).Delete(&dbm.TripDay{}).Error; err != nil {
			return err
		}

		for _, day := range days {
			date, err := time.Parse("2006-01-02", day.Date)
			if err != nil {
				return err
			}
			tripDay := dbm.TripDay{
				TripID:      tripUUID,
				DayNumber:   day.Day,
				Date:        date,
				AIOptimized: day.AIOptimized,
			}
			if err := tx.Create(&tripDay).Error; err != nil {
				return err
			}

			for i, act := range day.Activities {
				row := dbm.TripActivity{
					TripDayID:  tripDay.ID,
					ActivityID: act.ID,
					Name:       act.Name,
					Category:   act.Category,
					Duration:   act.Duration,
					TimeSlot:   act.TimeSlot,
					Position:   i,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
