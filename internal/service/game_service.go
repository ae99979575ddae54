package service

import (
	"context"
	"strings"
	"time"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

// GameService manages the game aggregate. Company, genre and theme ids are
// resolved before writes; a dangling reference is a 422-class failure.
type GameService interface {
	List(ctx context.Context, titleFilter string, page repository.Page) ([]domain.Game, int64, error)
	Get(ctx context.Context, id int64) (*domain.Game, error)
	Create(ctx context.Context, title, description string, releasedAt *time.Time, companyID int64, genreIDs, themeIDs []int64) (*domain.Game, error)
	Update(ctx context.Context, id int64, title, description string, releasedAt *time.Time, companyID int64, genreIDs, themeIDs []int64) (*domain.Game, error)
	Delete(ctx context.Context, id int64) error
	AddGenre(ctx context.Context, gameID, genreID int64) (*domain.Game, error)
	RemoveGenre(ctx context.Context, gameID, genreID int64) (*domain.Game, error)
	AddTheme(ctx context.Context, gameID, themeID int64) (*domain.Game, error)
	RemoveTheme(ctx context.Context, gameID, themeID int64) (*domain.Game, error)
}

type gameService struct {
	games   repository.GameRepository
	lookups repository.LookupRepository
}

func NewGameService(games repository.GameRepository, lookups repository.LookupRepository) GameService {
	return &gameService{games: games, lookups: lookups}
}

func (s *gameService) List(ctx context.Context, titleFilter string, page repository.Page) ([]domain.Game, int64, error) {
	return s.games.List(ctx, strings.ToLower(strings.TrimSpace(titleFilter)), page)
}

func (s *gameService) Get(ctx context.Context, id int64) (*domain.Game, error) {
	return s.games.Get(ctx, id)
}

func (s *gameService) Create(ctx context.Context, title, description string, releasedAt *time.Time, companyID int64, genreIDs, themeIDs []int64) (*domain.Game, error) {
	game, err := s.buildGame(ctx, title, description, releasedAt, companyID, genreIDs, themeIDs)
	if err != nil {
		return nil, err
	}
	if _, err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}
	return s.games.Get(ctx, game.ID)
}

func (s *gameService) Update(ctx context.Context, id int64, title, description string, releasedAt *time.Time, companyID int64, genreIDs, themeIDs []int64) (*domain.Game, error) {
	if _, err := s.games.Get(ctx, id); err != nil {
		return nil, err
	}
	game, err := s.buildGame(ctx, title, description, releasedAt, companyID, genreIDs, themeIDs)
	if err != nil {
		return nil, err
	}
	game.ID = id
	if err := s.games.Update(ctx, game); err != nil {
		return nil, err
	}
	return s.games.Get(ctx, id)
}

func (s *gameService) Delete(ctx context.Context, id int64) error {
	return s.games.Delete(ctx, id)
}

func (s *gameService) AddGenre(ctx context.Context, gameID, genreID int64) (*domain.Game, error) {
	if _, err := s.games.Get(ctx, gameID); err != nil {
		return nil, err
	}
	if _, err := s.lookups.Get(ctx, domain.KindGenre, genreID); err != nil {
		return nil, err
	}
	if err := s.games.AddGenre(ctx, gameID, genreID); err != nil {
		return nil, err
	}
	return s.games.Get(ctx, gameID)
}

func (s *gameService) RemoveGenre(ctx context.Context, gameID, genreID int64) (*domain.Game, error) {
	if _, err := s.games.Get(ctx, gameID); err != nil {
		return nil, err
	}
	if err := s.games.RemoveGenre(ctx, gameID, genreID); err != nil {
		return nil, err
	}
	return s.games.Get(ctx, gameID)
}

func (s *gameService) AddTheme(ctx context.Context, gameID, themeID int64) (*domain.Game, error) {
	if _, err := s.games.Get(ctx, gameID); err != nil {
		return nil, err
	}
	if _, err := s.lookups.Get(ctx, domain.KindTheme, themeID); err != nil {
		return nil, err
	}
	if err := s.games.AddTheme(ctx, gameID, themeID); err != nil {
		return nil, err
	}
	return s.games.Get(ctx, gameID)
}

func (s *gameService) RemoveTheme(ctx context.Context, gameID, themeID int64) (*domain.Game, error) {
	if _, err := s.games.Get(ctx, gameID); err != nil {
		return nil, err
	}
	if err := s.games.RemoveTheme(ctx, gameID, themeID); err != nil {
		return nil, err
	}
	return s.games.Get(ctx, gameID)
}

func (s *gameService) buildGame(ctx context.Context, title, description string, releasedAt *time.Time, companyID int64, genreIDs, themeIDs []int64) (*domain.Game, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.New(apperr.Validation, "title is required")
	}

	ok, err := s.lookups.Exists(ctx, domain.KindCompany, companyID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.New(apperr.Unprocessable, "one or more referenced resources do not exist")
	}

	genres, err := s.resolveSet(ctx, domain.KindGenre, genreIDs)
	if err != nil {
		return nil, err
	}
	themes, err := s.resolveSet(ctx, domain.KindTheme, themeIDs)
	if err != nil {
		return nil, err
	}

	return &domain.Game{
		Title:       title,
		Description: strings.TrimSpace(description),
		ReleasedAt:  releasedAt,
		CompanyID:   companyID,
		Genres:      genres,
		Themes:      themes,
	}, nil
}

func (s *gameService) resolveSet(ctx context.Context, kind domain.LookupKind, ids []int64) ([]domain.LookupEntity, error) {
	seen := make(map[int64]struct{}, len(ids))
	entities := make([]domain.LookupEntity, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ok, err := s.lookups.Exists(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.New(apperr.Unprocessable, "one or more referenced resources do not exist")
		}
		entities = append(entities, domain.LookupEntity{ID: id})
	}
	return entities, nil
}
