package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mygames/internal/apperr"
	"mygames/internal/domain"
)

type saveLookupRequest struct {
	Name string `json:"name" binding:"required"`
}

// registerLookupRoutes wires the shared CRUD set for one name-only catalog
// entity. Reads are open to any authenticated user; writes are admin-only.
func (h *Handler) registerLookupRoutes(parent *gin.RouterGroup, kind domain.LookupKind) {
	group := parent.Group("/" + string(kind))

	group.GET("", func(c *gin.Context) { h.listLookup(c, kind) })
	group.GET("/:id", func(c *gin.Context) { h.getLookup(c, kind) })

	writes := group.Group("", h.requireRole(domain.RoleAdmin))
	writes.POST("", func(c *gin.Context) { h.createLookup(c, kind) })
	writes.PUT("/:id", func(c *gin.Context) { h.updateLookup(c, kind) })
	writes.DELETE("/:id", func(c *gin.Context) { h.deleteLookup(c, kind) })
}

func (h *Handler) listLookup(c *gin.Context, kind domain.LookupKind) {
	page, size, rp := parsePage(c)

	entities, total, err := h.lookups.List(c.Request.Context(), kind, rp)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]LookupResponse, len(entities))
	for i := range entities {
		resp[i] = lookupToResponse(entities[i])
	}
	c.JSON(http.StatusOK, newPageResponse(resp, page, size, total))
}

func (h *Handler) getLookup(c *gin.Context, kind domain.LookupKind) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid id"))
		return
	}
	entity, err := h.lookups.Get(c.Request.Context(), kind, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lookupToResponse(*entity))
}

func (h *Handler) createLookup(c *gin.Context, kind domain.LookupKind) {
	var req saveLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	entity, err := h.lookups.Create(c.Request.Context(), kind, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lookupToResponse(*entity))
}

func (h *Handler) updateLookup(c *gin.Context, kind domain.LookupKind) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid id"))
		return
	}
	var req saveLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	entity, err := h.lookups.Update(c.Request.Context(), kind, id, req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lookupToResponse(*entity))
}

func (h *Handler) deleteLookup(c *gin.Context, kind domain.LookupKind) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid id"))
		return
	}
	if err := h.lookups.Delete(c.Request.Context(), kind, id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type saveGameRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	ReleasedAt  *string `json:"released_at"`
	CompanyID   int64   `json:"company_id" binding:"required"`
	GenreIDs    []int64 `json:"genre_ids"`
	ThemeIDs    []int64 `json:"theme_ids"`
}

func (r *saveGameRequest) releaseDate() (*time.Time, error) {
	if r.ReleasedAt == nil || *r.ReleasedAt == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *r.ReleasedAt)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "released_at must be YYYY-MM-DD", err)
	}
	return &t, nil
}

func (h *Handler) listGames(c *gin.Context) {
	page, size, rp := parsePage(c)

	games, total, err := h.games.List(c.Request.Context(), c.Query("title"), rp)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]GameResponse, len(games))
	for i := range games {
		resp[i] = gameToResponse(games[i])
	}
	c.JSON(http.StatusOK, newPageResponse(resp, page, size, total))
}

func (h *Handler) getGame(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid game id"))
		return
	}
	game, err := h.games.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameToResponse(*game))
}

func (h *Handler) createGame(c *gin.Context) {
	var req saveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	releasedAt, err := req.releaseDate()
	if err != nil {
		h.writeError(c, err)
		return
	}

	game, err := h.games.Create(c.Request.Context(), req.Title, req.Description, releasedAt, req.CompanyID, req.GenreIDs, req.ThemeIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gameToResponse(*game))
}

func (h *Handler) updateGame(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid game id"))
		return
	}
	var req saveGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	releasedAt, err := req.releaseDate()
	if err != nil {
		h.writeError(c, err)
		return
	}

	game, err := h.games.Update(c.Request.Context(), id, req.Title, req.Description, releasedAt, req.CompanyID, req.GenreIDs, req.ThemeIDs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameToResponse(*game))
}

func (h *Handler) deleteGame(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid game id"))
		return
	}
	if err := h.games.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) addGameGenre(c *gin.Context) {
	h.gameSetOp(c, h.games.AddGenre)
}

func (h *Handler) removeGameGenre(c *gin.Context) {
	h.gameSetOp(c, h.games.RemoveGenre)
}

func (h *Handler) addGameTheme(c *gin.Context) {
	h.gameSetOp(c, h.games.AddTheme)
}

func (h *Handler) removeGameTheme(c *gin.Context) {
	h.gameSetOp(c, h.games.RemoveTheme)
}

func (h *Handler) gameSetOp(c *gin.Context, op func(ctx context.Context, gameID, refID int64) (*domain.Game, error)) {
	gameID, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid game id"))
		return
	}
	refID, ok := pathID(c, "refId")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid reference id"))
		return
	}

	game, err := op(c.Request.Context(), gameID, refID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gameToResponse(*game))
}
