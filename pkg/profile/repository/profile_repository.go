package repository

import (
	"context"

	"landlink/entities"
)

// ProfileRepository reads and writes the profiles and farmer_profiles tables.
// Find* return (nil, nil) when the row does not exist yet.
type ProfileRepository interface {
	FindProfile(ctx context.Context, id string) (*entities.Profile, error)
	FindFarmerProfile(ctx context.Context, userID string) (*entities.FarmerProfile, error)
	UpdateContact(ctx context.Context, id, phone, address string) error
	SaveFarmerProfile(ctx context.Context, fp *entities.FarmerProfile) error
}
