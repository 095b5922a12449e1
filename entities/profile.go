package entities

import "time"

type Role string

const (
	RoleFarmer    Role = "farmer"
	RoleLandowner Role = "landowner"
)

// Profile is one row per user; mutable by the owning user only.
type Profile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FarmerProfile struct {
	UserID          string    `gorm:"primaryKey" json:"user_id"`
	FarmSize        *float64  `json:"farm_size"`
	CropTypes       []string  `gorm:"serializer:json" json:"crop_types"`
	ExperienceYears int       `json:"experience_years"`
	UpdatedAt       time.Time `json:"updated_at"`
}
