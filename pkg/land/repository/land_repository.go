package repository

import (
	"context"

	"landlink/entities"
)

type LandRepository interface {
	Create(ctx context.Context, l *entities.Land) error
	// ListAvailable returns every listing with status=available, newest first.
	ListAvailable(ctx context.Context) ([]entities.Land, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entities.Land, error)
	// DeleteOwned removes the listing only when ownerID owns it and reports
	// whether a row was deleted.
	DeleteOwned(ctx context.Context, id, ownerID string) (bool, error)
}
