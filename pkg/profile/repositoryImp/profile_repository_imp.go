package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"landlink/entities"
	"landlink/pkg/profile/repository"
)

type profileRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProfileRepository { return &profileRepo{db} }

func (r *profileRepo) FindProfile(ctx context.Context, id string) (*entities.Profile, error) {
	var p entities.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) FindFarmerProfile(ctx context.Context, userID string) (*entities.FarmerProfile, error) {
	var fp entities.FarmerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&fp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &fp, nil
}

// UpdateContact writes phone and address keyed by id, creating the row when
// the provider has not provisioned it yet.
func (r *profileRepo) UpdateContact(ctx context.Context, id, phone, address string) error {
	p := &entities.Profile{ID: id, Phone: phone, Address: address}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"phone", "address", "updated_at"}),
	}).Create(p).Error
}

func (r *profileRepo) SaveFarmerProfile(ctx context.Context, fp *entities.FarmerProfile) error {
	if fp.CropTypes == nil {
		fp.CropTypes = []string{}
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"farm_size", "crop_types", "experience_years", "updated_at"}),
	}).Create(fp).Error
}
