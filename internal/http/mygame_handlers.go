package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mygames/internal/apperr"
	"mygames/internal/domain"
)

type saveMyGameRequest struct {
	GameID     int64   `json:"game_id" binding:"required"`
	PlatformID int64   `json:"platform_id" binding:"required"`
	SourceID   int64   `json:"source_id" binding:"required"`
	Status     *string `json:"status"`
}

type updateMyGameRequest struct {
	ID         int64  `json:"id" binding:"required"`
	GameID     int64  `json:"game_id" binding:"required"`
	PlatformID int64  `json:"platform_id" binding:"required"`
	SourceID   int64  `json:"source_id" binding:"required"`
	Status     string `json:"status" binding:"required"`
}

type myGameStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) listMyGames(c *gin.Context) {
	page, size, rp := parsePage(c)

	filter := domain.MyGameFilter{Title: c.Query("title")}
	if v, err := strconv.ParseInt(c.Query("platform_id"), 10, 64); err == nil {
		filter.PlatformID = v
	}
	if v, err := strconv.ParseInt(c.Query("source_id"), 10, 64); err == nil {
		filter.SourceID = v
	}

	entries, total, err := h.myGames.ListMine(c.Request.Context(), caller(c), filter, rp)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]MyGameResponse, len(entries))
	for i := range entries {
		resp[i] = myGameToResponse(entries[i])
	}
	c.JSON(http.StatusOK, newPageResponse(resp, page, size, total))
}

func (h *Handler) getMyGame(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid entry id"))
		return
	}

	entry, err := h.myGames.Get(c.Request.Context(), caller(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, myGameToResponse(*entry))
}

func (h *Handler) createMyGame(c *gin.Context) {
	var req saveMyGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	var status *domain.Status
	if req.Status != nil {
		parsed, err := domain.ParseStatus(*req.Status)
		if err != nil {
			h.writeError(c, apperr.Wrap(apperr.Validation, "invalid status", err))
			return
		}
		status = &parsed
	}

	entry, err := h.myGames.Create(c.Request.Context(), caller(c), req.GameID, req.PlatformID, req.SourceID, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, myGameToResponse(*entry))
}

func (h *Handler) updateMyGame(c *gin.Context) {
	var req updateMyGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		h.writeError(c, apperr.Wrap(apperr.Validation, "invalid status", err))
		return
	}

	entry, err := h.myGames.Update(c.Request.Context(), caller(c), req.ID, req.GameID, req.PlatformID, req.SourceID, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, myGameToResponse(*entry))
}

func (h *Handler) updateMyGameStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid entry id"))
		return
	}

	var req myGameStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		h.writeError(c, apperr.Wrap(apperr.Validation, "invalid status", err))
		return
	}

	entry, err := h.myGames.UpdateStatus(c.Request.Context(), caller(c), id, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, myGameToResponse(*entry))
}

func (h *Handler) deleteMyGame(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid entry id"))
		return
	}

	if err := h.myGames.Delete(c.Request.Context(), caller(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
