package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const LandStatusAvailable = "available"

// Land is a listing offered by a landowner. OwnerID is fixed at insert.
type Land struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	OwnerID           string    `gorm:"index;not null;<-:create" json:"owner_id"`
	Title             string    `gorm:"not null" json:"title"`
	Description       string    `json:"description"`
	Location          string    `gorm:"not null" json:"location"`
	Area              float64   `json:"area"`
	PricePerAcre      *float64  `json:"price_per_acre"`
	SoilType          *string   `json:"soil_type"`
	WaterAvailability *string   `json:"water_availability"`
	Status            string    `gorm:"index;default:available" json:"status"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`
}

func (l *Land) BeforeCreate(*gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LandStatusAvailable
	}
	return nil
}
