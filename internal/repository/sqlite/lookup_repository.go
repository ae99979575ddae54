package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

// lookupTables whitelists table names per kind; kinds never reach SQL text
// without passing through this map.
var lookupTables = map[domain.LookupKind]string{
	domain.KindCompany:  "companies",
	domain.KindGenre:    "genres",
	domain.KindTheme:    "themes",
	domain.KindPlatform: "platforms",
	domain.KindSource:   "sources",
	domain.KindStore:    "stores",
}

type LookupRepository struct {
	db *sqlx.DB
}

func NewLookupRepository(db *sqlx.DB) repository.LookupRepository {
	return &LookupRepository{db: db}
}

func (r *LookupRepository) Init(ctx context.Context) error {
	for _, table := range lookupTables {
		ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);`, table)
		if _, err := r.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create %s table: %w", table, err)
		}
	}
	return nil
}

func (r *LookupRepository) table(kind domain.LookupKind) (string, error) {
	table, ok := lookupTables[kind]
	if !ok {
		return "", fmt.Errorf("unknown lookup kind %q", kind)
	}
	return table, nil
}

func (r *LookupRepository) Create(ctx context.Context, kind domain.LookupKind, name string) (*domain.LookupEntity, error) {
	table, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s (name) VALUES (?)`, table), name)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Newf(apperr.Conflict, "%s name already exists", kind)
		}
		return nil, fmt.Errorf("insert into %s: %w", table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%s last insert id: %w", table, err)
	}
	return &domain.LookupEntity{ID: id, Name: name}, nil
}

func (r *LookupRepository) Get(ctx context.Context, kind domain.LookupKind, id int64) (*domain.LookupEntity, error) {
	table, err := r.table(kind)
	if err != nil {
		return nil, err
	}
	var e domain.LookupEntity
	err = r.db.GetContext(ctx, &e, fmt.Sprintf(`SELECT id, name FROM %s WHERE id = ?`, table), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "%s not found", kind)
		}
		return nil, fmt.Errorf("get from %s: %w", table, err)
	}
	return &e, nil
}

func (r *LookupRepository) Update(ctx context.Context, kind domain.LookupKind, id int64, name string) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET name = ? WHERE id = ?`, table), name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Newf(apperr.Conflict, "%s name already exists", kind)
		}
		return fmt.Errorf("update %s: %w", table, err)
	}
	return requireAffected(res, string(kind))
}

func (r *LookupRepository) Delete(ctx context.Context, kind domain.LookupKind, id int64) error {
	table, err := r.table(kind)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return requireAffected(res, string(kind))
}

func (r *LookupRepository) List(ctx context.Context, kind domain.LookupKind, page repository.Page) ([]domain.LookupEntity, int64, error) {
	table, err := r.table(kind)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf(`SELECT COUNT(1) FROM %s`, table)); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}
	entities := []domain.LookupEntity{}
	err = r.db.SelectContext(ctx, &entities,
		fmt.Sprintf(`SELECT id, name FROM %s ORDER BY name LIMIT ? OFFSET ?`, table),
		page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	return entities, total, nil
}

func (r *LookupRepository) Exists(ctx context.Context, kind domain.LookupKind, id int64) (bool, error) {
	table, err := r.table(kind)
	if err != nil {
		return false, err
	}
	var count int
	if err := r.db.GetContext(ctx, &count, fmt.Sprintf(`SELECT COUNT(1) FROM %s WHERE id = ?`, table), id); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count > 0, nil
}
