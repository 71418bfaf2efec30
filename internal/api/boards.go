package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/workboard/internal/store"
)

func (h *handlers) createBoard(c *gin.Context) {
	var req store.CreateBoardOpts
	if !bindBody(c, &req) {
		return
	}
	b, err := h.store.CreateBoard(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *handlers) boardsByOwner(c *gin.Context) {
	owner, ok := requiredQuery(c, "owner_id")
	if !ok {
		return
	}
	archived, ok := boolQuery(c, "include_archived")
	if !ok {
		return
	}
	boards, err := h.store.GetBoardsByOwner(c.Request.Context(), owner, archived)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, boards)
}

func (h *handlers) getBoard(c *gin.Context) {
	b, err := h.store.GetBoard(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) getBoardWithLists(c *gin.Context) {
	b, err := h.store.GetBoardWithLists(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) updateBoard(c *gin.Context) {
	user, ok := requiredQuery(c, "user_id")
	if !ok {
		return
	}
	var req store.BoardUpdate
	if !bindBody(c, &req) {
		return
	}
	b, err := h.store.UpdateBoard(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *handlers) deleteBoard(c *gin.Context) {
	ok, err := h.store.DeleteBoard(c.Request.Context(), c.Param("id"))
	deleted(c, "board", ok, err)
}

func (h *handlers) listsByBoard(c *gin.Context) {
	archived, ok := boolQuery(c, "include_archived")
	if !ok {
		return
	}
	lists, err := h.store.GetListsByBoard(c.Request.Context(), c.Param("id"), archived)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (h *handlers) boardActivities(c *gin.Context) {
	limit, ok := intQuery(c, "limit", store.DefaultActivityLimit)
	if !ok {
		return
	}
	offset, ok := intQuery(c, "offset", 0)
	if !ok {
		return
	}
	if err := store.CheckPage(limit, offset); err != nil {
		fail(c, err)
		return
	}
	entries, err := h.store.GetBoardActivities(c.Request.Context(), c.Param("id"), limit, offset)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
