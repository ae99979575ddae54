package repository

import (
	"context"

	"mygames/internal/domain"
)

// LookupRepository serves all six name-only catalog entities through one
// implementation keyed by kind.
type LookupRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, kind domain.LookupKind, name string) (*domain.LookupEntity, error)
	Get(ctx context.Context, kind domain.LookupKind, id int64) (*domain.LookupEntity, error)
	Update(ctx context.Context, kind domain.LookupKind, id int64, name string) error
	Delete(ctx context.Context, kind domain.LookupKind, id int64) error
	List(ctx context.Context, kind domain.LookupKind, page Page) ([]domain.LookupEntity, int64, error)
	Exists(ctx context.Context, kind domain.LookupKind, id int64) (bool, error)
}

// GameRepository manages the game aggregate including its genre/theme sets.
type GameRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, game *domain.Game) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Game, error)
	Update(ctx context.Context, game *domain.Game) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, titleFilter string, page Page) ([]domain.Game, int64, error)
	AddGenre(ctx context.Context, gameID, genreID int64) error
	RemoveGenre(ctx context.Context, gameID, genreID int64) error
	AddTheme(ctx context.Context, gameID, themeID int64) error
	RemoveTheme(ctx context.Context, gameID, themeID int64) error
}
