package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mygames/internal/apperr"
)

func (h *Handler) listUsers(c *gin.Context) {
	page, size, rp := parsePage(c)

	users, total, err := h.users.List(c.Request.Context(), rp)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, newPageResponse(resp, page, size, total))
}

func (h *Handler) listAllMyGames(c *gin.Context) {
	page, size, rp := parsePage(c)

	entries, total, err := h.myGames.ListAll(c.Request.Context(), rp)
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

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid user id"))
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) enableUser(c *gin.Context) {
	h.setUserEnabled(c, true)
}

func (h *Handler) disableUser(c *gin.Context) {
	h.setUserEnabled(c, false)
}

func (h *Handler) setUserEnabled(c *gin.Context, enabled bool) {
	id, ok := pathID(c, "id")
	if !ok {
		h.writeError(c, apperr.New(apperr.Validation, "invalid user id"))
		return
	}

	toggle := h.users.Disable
	if enabled {
		toggle = h.users.Enable
	}

	user, err := toggle(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToResponse(*user))
}
