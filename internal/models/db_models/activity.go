package db_models

import (
	"github.com/lib/pq"
)

// Activity is a catalog entry users can add to a trip. Duration is free
// text ("2h", "half a day") because that is what the suggestion model
// produces; the planner treats it as opaque.
type Activity struct {
	BaseModel
	City        string `gorm:"index"`
	Name        string
	Category    string
	Duration    string
	Rating      float32
	PriceTier   string
	Description string
	ImageURL    string
	Tags        pq.StringArray `gorm:"type:text[]"`
}
