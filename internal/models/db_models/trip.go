package db_models

import (
	"time"

	"github.com/google/uuid"
)

type Trip struct {
	BaseModel
	UserID       uuid.UUID `gorm:"index"`
	City         string
	StartDate    time.Time
	EndDate      time.Time
	Participants int
	Budget       string

	Days       []TripDay
	Selections []TripSelection
}

// TripSelection is an activity the user curated for the trip before an
// itinerary is generated.
type TripSelection struct {
	BaseModel
	TripID     uuid.UUID `gorm:"index"`
	ActivityID uuid.UUID
	Position   int
}

// TripDay is one materialized day of a generated itinerary.
type TripDay struct {
	BaseModel
	TripID      uuid.UUID `gorm:"index"`
	DayNumber   int
	Date        time.Time
	AIOptimized bool

	Activities []TripActivity
}

type TripActivity struct {
	BaseModel
	TripDayID uuid.UUID `gorm:"index"`
	// ActivityID is a string, not a uuid: AI-invented placeholder records
	// carry whatever id the model produced.
	ActivityID string
	Name       string
	Category   string
	Duration   string
	TimeSlot   string
	Position   int
}
