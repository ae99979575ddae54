package service

import (
	"context"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

// MyGameService owns the collection entries. Every operation takes the
// explicit caller; the ownership-or-admin gate runs against the freshly
// loaded entry before any mutation.
type MyGameService interface {
	ListMine(ctx context.Context, caller domain.Caller, filter domain.MyGameFilter, page repository.Page) ([]domain.MyGame, int64, error)
	ListAll(ctx context.Context, page repository.Page) ([]domain.MyGame, int64, error)
	Get(ctx context.Context, caller domain.Caller, id int64) (*domain.MyGame, error)
	Create(ctx context.Context, caller domain.Caller, gameID, platformID, sourceID int64, status *domain.Status) (*domain.MyGame, error)
	Update(ctx context.Context, caller domain.Caller, id, gameID, platformID, sourceID int64, status domain.Status) (*domain.MyGame, error)
	UpdateStatus(ctx context.Context, caller domain.Caller, id int64, status domain.Status) (*domain.MyGame, error)
	Delete(ctx context.Context, caller domain.Caller, id int64) error
}

type myGameService struct {
	entries repository.MyGameRepository
	users   repository.UserRepository
	games   repository.GameRepository
	lookups repository.LookupRepository
}

func NewMyGameService(
	entries repository.MyGameRepository,
	users repository.UserRepository,
	games repository.GameRepository,
	lookups repository.LookupRepository,
) MyGameService {
	return &myGameService{
		entries: entries,
		users:   users,
		games:   games,
		lookups: lookups,
	}
}

func (s *myGameService) ListMine(ctx context.Context, caller domain.Caller, filter domain.MyGameFilter, page repository.Page) ([]domain.MyGame, int64, error) {
	user, err := s.users.GetByUsername(ctx, caller.Username)
	if err != nil {
		return nil, 0, err
	}
	return s.entries.ListByUser(ctx, user.ID, filter, page)
}

func (s *myGameService) ListAll(ctx context.Context, page repository.Page) ([]domain.MyGame, int64, error) {
	return s.entries.List(ctx, page)
}

func (s *myGameService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.MyGame, error) {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.OwnedBy(caller) {
		return nil, apperr.New(apperr.Forbidden, "you don't have access to this game")
	}
	return entry, nil
}

func (s *myGameService) Create(ctx context.Context, caller domain.Caller, gameID, platformID, sourceID int64, status *domain.Status) (*domain.MyGame, error) {
	owner, err := s.users.GetByUsername(ctx, caller.Username)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, gameID, platformID, sourceID); err != nil {
		return nil, err
	}

	entry := &domain.MyGame{
		UserID:     owner.ID,
		GameID:     gameID,
		PlatformID: platformID,
		SourceID:   sourceID,
		Status:     domain.StatusNotPlayed,
	}
	if status != nil {
		entry.Status = *status
	}

	if _, err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return s.entries.Get(ctx, entry.ID)
}

func (s *myGameService) Update(ctx context.Context, caller domain.Caller, id, gameID, platformID, sourceID int64, status domain.Status) (*domain.MyGame, error) {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.OwnedBy(caller) {
		return nil, apperr.New(apperr.Forbidden, "you don't have access to this game")
	}
	if err := s.checkReferences(ctx, gameID, platformID, sourceID); err != nil {
		return nil, err
	}

	entry.GameID = gameID
	entry.PlatformID = platformID
	entry.SourceID = sourceID
	entry.Status = status
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return s.entries.Get(ctx, id)
}

func (s *myGameService) UpdateStatus(ctx context.Context, caller domain.Caller, id int64, status domain.Status) (*domain.MyGame, error) {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.OwnedBy(caller) {
		return nil, apperr.New(apperr.Forbidden, "you don't have access to this game")
	}
	if err := s.entries.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.entries.Get(ctx, id)
}

func (s *myGameService) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return err
	}
	if !entry.OwnedBy(caller) {
		return apperr.New(apperr.Forbidden, "you don't have access to this game")
	}
	return s.entries.Delete(ctx, id)
}

// checkReferences maps a dangling game/platform/source id to the
// unprocessable kind: the request is well-formed but points at something
// that does not exist, which is a client-data problem, not addressing.
func (s *myGameService) checkReferences(ctx context.Context, gameID, platformID, sourceID int64) error {
	ok, err := s.games.Exists(ctx, gameID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.Unprocessable, "one or more referenced resources do not exist")
	}
	for kind, id := range map[domain.LookupKind]int64{
		domain.KindPlatform: platformID,
		domain.KindSource:   sourceID,
	} {
		ok, err := s.lookups.Exists(ctx, kind, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.New(apperr.Unprocessable, "one or more referenced resources do not exist")
		}
	}
	return nil
}
