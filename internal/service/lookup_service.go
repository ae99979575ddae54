package service

import (
	"context"
	"strings"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

// LookupService is the generic CRUD layer shared by the six name-only
// catalog entities. Names are normalized (trimmed, lowercased) on the way in.
type LookupService interface {
	List(ctx context.Context, kind domain.LookupKind, page repository.Page) ([]domain.LookupEntity, int64, error)
	Get(ctx context.Context, kind domain.LookupKind, id int64) (*domain.LookupEntity, error)
	Create(ctx context.Context, kind domain.LookupKind, name string) (*domain.LookupEntity, error)
	Update(ctx context.Context, kind domain.LookupKind, id int64, name string) (*domain.LookupEntity, error)
	Delete(ctx context.Context, kind domain.LookupKind, id int64) error
}

type lookupService struct {
	lookups repository.LookupRepository
}

func NewLookupService(lookups repository.LookupRepository) LookupService {
	return &lookupService{lookups: lookups}
}

func (s *lookupService) List(ctx context.Context, kind domain.LookupKind, page repository.Page) ([]domain.LookupEntity, int64, error) {
	return s.lookups.List(ctx, kind, page)
}

func (s *lookupService) Get(ctx context.Context, kind domain.LookupKind, id int64) (*domain.LookupEntity, error) {
	return s.lookups.Get(ctx, kind, id)
}

func (s *lookupService) Create(ctx context.Context, kind domain.LookupKind, name string) (*domain.LookupEntity, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	return s.lookups.Create(ctx, kind, name)
}

func (s *lookupService) Update(ctx context.Context, kind domain.LookupKind, id int64, name string) (*domain.LookupEntity, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	if err := s.lookups.Update(ctx, kind, id, name); err != nil {
		return nil, err
	}
	return s.lookups.Get(ctx, kind, id)
}

func (s *lookupService) Delete(ctx context.Context, kind domain.LookupKind, id int64) error {
	return s.lookups.Delete(ctx, kind, id)
}

func normalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", apperr.New(apperr.Validation, "name is required")
	}
	return name, nil
}
