package repository

import (
	"context"

	"mygames/internal/domain"
)

// MyGameRepository exposes persistence operations for collection entries.
// Listings are ordered by the underlying game title.
type MyGameRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.MyGame) (int64, error)
	Get(ctx context.Context, id int64) (*domain.MyGame, error)
	Update(ctx context.Context, entry *domain.MyGame) error
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, filter domain.MyGameFilter, page Page) ([]domain.MyGame, int64, error)
	List(ctx context.Context, page Page) ([]domain.MyGame, int64, error)
}
