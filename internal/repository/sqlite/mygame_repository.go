package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

const createMyGamesTable = `
CREATE TABLE IF NOT EXISTS my_games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	game_id INTEGER NOT NULL REFERENCES games(id),
	platform_id INTEGER NOT NULL REFERENCES platforms(id),
	source_id INTEGER NOT NULL REFERENCES sources(id),
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const myGameSelect = `
SELECT m.id, m.user_id, u.username AS owner_username,
	m.game_id, g.title AS game_title,
	m.platform_id, p.name AS platform_name,
	m.source_id, s.name AS source_name,
	m.status, m.created_at, m.updated_at
FROM my_games m
JOIN users u ON u.id = m.user_id
JOIN games g ON g.id = m.game_id
JOIN platforms p ON p.id = m.platform_id
JOIN sources s ON s.id = m.source_id`

type MyGameRepository struct {
	db *sqlx.DB
}

func NewMyGameRepository(db *sqlx.DB) repository.MyGameRepository {
	return &MyGameRepository{db: db}
}

func (r *MyGameRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMyGamesTable); err != nil {
		return fmt.Errorf("create my_games table: %w", err)
	}
	return nil
}

func (r *MyGameRepository) Create(ctx context.Context, entry *domain.MyGame) (int64, error) {
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO my_games (user_id, game_id, platform_id, source_id, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.GameID, entry.PlatformID, entry.SourceID, entry.Status, entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert my_game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("my_game last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *MyGameRepository) Get(ctx context.Context, id int64) (*domain.MyGame, error) {
	var entry domain.MyGame
	err := r.db.GetContext(ctx, &entry, myGameSelect+` WHERE m.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "my-games entry not found")
		}
		return nil, fmt.Errorf("get my_game: %w", err)
	}
	return &entry, nil
}

// Update overwrites references and status. The owner column is never touched.
func (r *MyGameRepository) Update(ctx context.Context, entry *domain.MyGame) error {
	entry.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE my_games SET game_id = ?, platform_id = ?, source_id = ?, status = ?, updated_at = ?
WHERE id = ?`,
		entry.GameID, entry.PlatformID, entry.SourceID, entry.Status, entry.UpdatedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("update my_game: %w", err)
	}
	return requireAffected(res, "my-games entry")
}

func (r *MyGameRepository) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE my_games SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update my_game status: %w", err)
	}
	return requireAffected(res, "my-games entry")
}

func (r *MyGameRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM my_games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete my_game: %w", err)
	}
	return requireAffected(res, "my-games entry")
}

func (r *MyGameRepository) ListByUser(ctx context.Context, userID int64, filter domain.MyGameFilter, page repository.Page) ([]domain.MyGame, int64, error) {
	where := ` WHERE m.user_id = ?`
	args := []any{userID}
	if filter.Title != "" {
		where += ` AND LOWER(g.title) LIKE ?`
		args = append(args, "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.PlatformID != 0 {
		where += ` AND m.platform_id = ?`
		args = append(args, filter.PlatformID)
	}
	if filter.SourceID != 0 {
		where += ` AND m.source_id = ?`
		args = append(args, filter.SourceID)
	}

	var total int64
	countQuery := `SELECT COUNT(1) FROM my_games m JOIN games g ON g.id = m.game_id` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count my_games: %w", err)
	}

	entries := []domain.MyGame{}
	args = append(args, page.Limit, page.Offset)
	err := r.db.SelectContext(ctx, &entries, myGameSelect+where+` ORDER BY g.title LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list my_games: %w", err)
	}
	return entries, total, nil
}

func (r *MyGameRepository) List(ctx context.Context, page repository.Page) ([]domain.MyGame, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM my_games`); err != nil {
		return nil, 0, fmt.Errorf("count my_games: %w", err)
	}

	entries := []domain.MyGame{}
	err := r.db.SelectContext(ctx, &entries, myGameSelect+` ORDER BY u.username, g.title LIMIT ? OFFSET ?`,
		page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list all my_games: %w", err)
	}
	return entries, total, nil
}
