package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"landlink/entities"
	"landlink/pkg/land/repository"
)

type landRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LandRepository { return &landRepo{db} }

func (r *landRepo) Create(ctx context.Context, l *entities.Land) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *landRepo) ListAvailable(ctx context.Context) ([]entities.Land, error) {
	out := []entities.Land{}
	err := r.db.WithContext(ctx).
		Where("status = ?", entities.LandStatusAvailable).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *landRepo) ListByOwner(ctx context.Context, ownerID string) ([]entities.Land, error) {
	out := []entities.Land{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *landRepo) DeleteOwned(ctx context.Context, id, ownerID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&entities.Land{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
