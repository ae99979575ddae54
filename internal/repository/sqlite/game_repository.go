package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"mygames/internal/apperr"
	"mygames/internal/domain"
	"mygames/internal/repository"
)

const createGamesTables = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	released_at DATETIME,
	company_id INTEGER NOT NULL REFERENCES companies(id),
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS game_genres (
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	genre_id INTEGER NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
	PRIMARY KEY (game_id, genre_id)
);
CREATE TABLE IF NOT EXISTS game_themes (
	game_id INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
	theme_id INTEGER NOT NULL REFERENCES themes(id) ON DELETE CASCADE,
	PRIMARY KEY (game_id, theme_id)
);
`

const gameSelect = `
SELECT g.id, g.title, g.description, g.released_at, g.company_id, c.name AS company_name, g.created_at, g.updated_at
FROM games g
JOIN companies c ON c.id = g.company_id`

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) repository.GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createGamesTables); err != nil {
		return fmt.Errorf("create games tables: %w", err)
	}
	return nil
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (int64, error) {
	now := time.Now().UTC()
	game.CreatedAt = now
	game.UpdatedAt = now

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT INTO games (title, description, released_at, company_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
			game.Title, game.Description, game.ReleasedAt, game.CompanyID, game.CreatedAt, game.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert game: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("game last insert id: %w", err)
		}
		game.ID = id
		return replaceGameSets(ctx, tx, game)
	})
	if err != nil {
		return 0, err
	}
	return game.ID, nil
}

func (r *GameRepository) Get(ctx context.Context, id int64) (*domain.Game, error) {
	var game domain.Game
	err := r.db.GetContext(ctx, &game, gameSelect+` WHERE g.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "game not found")
		}
		return nil, fmt.Errorf("get game: %w", err)
	}
	if err := r.loadSets(ctx, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *GameRepository) Update(ctx context.Context, game *domain.Game) error {
	game.UpdatedAt = time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `
UPDATE games SET title = ?, description = ?, released_at = ?, company_id = ?, updated_at = ? WHERE id = ?`,
			game.Title, game.Description, game.ReleasedAt, game.CompanyID, game.UpdatedAt, game.ID)
		if err != nil {
			return fmt.Errorf("update game: %w", err)
		}
		if err := requireAffected(res, "game"); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM game_genres WHERE game_id = ?`, game.ID); err != nil {
			return fmt.Errorf("clear game genres: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM game_themes WHERE game_id = ?`, game.ID); err != nil {
			return fmt.Errorf("clear game themes: %w", err)
		}
		return replaceGameSets(ctx, tx, game)
	})
}

func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return requireAffected(res, "game")
}

func (r *GameRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(1) FROM games WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("count games: %w", err)
	}
	return count > 0, nil
}

func (r *GameRepository) List(ctx context.Context, titleFilter string, page repository.Page) ([]domain.Game, int64, error) {
	where := ""
	args := []any{}
	if titleFilter != "" {
		where = ` WHERE LOWER(g.title) LIKE ?`
		args = append(args, "%"+titleFilter+"%")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(1) FROM games g`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count games: %w", err)
	}

	games := []domain.Game{}
	args = append(args, page.Limit, page.Offset)
	err := r.db.SelectContext(ctx, &games, gameSelect+where+` ORDER BY g.title LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list games: %w", err)
	}
	for i := range games {
		if err := r.loadSets(ctx, &games[i]); err != nil {
			return nil, 0, err
		}
	}
	return games, total, nil
}

func (r *GameRepository) AddGenre(ctx context.Context, gameID, genreID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_genres (game_id, genre_id) VALUES (?, ?)`, gameID, genreID)
	if err != nil {
		return fmt.Errorf("add game genre: %w", err)
	}
	return nil
}

func (r *GameRepository) RemoveGenre(ctx context.Context, gameID, genreID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM game_genres WHERE game_id = ? AND genre_id = ?`, gameID, genreID)
	if err != nil {
		return fmt.Errorf("remove game genre: %w", err)
	}
	return nil
}

func (r *GameRepository) AddTheme(ctx context.Context, gameID, themeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_themes (game_id, theme_id) VALUES (?, ?)`, gameID, themeID)
	if err != nil {
		return fmt.Errorf("add game theme: %w", err)
	}
	return nil
}

func (r *GameRepository) RemoveTheme(ctx context.Context, gameID, themeID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM game_themes WHERE game_id = ? AND theme_id = ?`, gameID, themeID)
	if err != nil {
		return fmt.Errorf("remove game theme: %w", err)
	}
	return nil
}

func (r *GameRepository) loadSets(ctx context.Context, game *domain.Game) error {
	genres := []domain.LookupEntity{}
	err := r.db.SelectContext(ctx, &genres, `
SELECT ge.id, ge.name FROM genres ge
JOIN game_genres gg ON gg.genre_id = ge.id
WHERE gg.game_id = ? ORDER BY ge.name`, game.ID)
	if err != nil {
		return fmt.Errorf("load game genres: %w", err)
	}
	themes := []domain.LookupEntity{}
	err = r.db.SelectContext(ctx, &themes, `
SELECT t.id, t.name FROM themes t
JOIN game_themes gt ON gt.theme_id = t.id
WHERE gt.game_id = ? ORDER BY t.name`, game.ID)
	if err != nil {
		return fmt.Errorf("load game themes: %w", err)
	}
	game.Genres = genres
	game.Themes = themes
	return nil
}

func replaceGameSets(ctx context.Context, tx *sqlx.Tx, game *domain.Game) error {
	for _, g := range game.Genres {
		if _, err := tx.ExecContext(ctx, `INSERT INTO game_genres (game_id, genre_id) VALUES (?, ?)`, game.ID, g.ID); err != nil {
			return fmt.Errorf("insert game genre: %w", err)
		}
	}
	for _, t := range game.Themes {
		if _, err := tx.ExecContext(ctx, `INSERT INTO game_themes (game_id, theme_id) VALUES (?, ?)`, game.ID, t.ID); err != nil {
			return fmt.Errorf("insert game theme: %w", err)
		}
	}
	return nil
}
