package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/workboard/internal/store"
)

func (h *handlers) createList(c *gin.Context) {
	user, ok := requiredQuery(c, "user_id")
	if !ok {
		return
	}
	var req store.CreateListOpts
	if !bindBody(c, &req) {
		return
	}
	l, err := h.store.CreateList(c.Request.Context(), req, user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *handlers) getList(c *gin.Context) {
	l, err := h.store.GetList(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *handlers) getListWithCards(c *gin.Context) {
	l, err := h.store.GetListWithCards(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *handlers) updateList(c *gin.Context) {
	user, ok := requiredQuery(c, "user_id")
	if !ok {
		return
	}
	var req store.ListUpdate
	if !bindBody(c, &req) {
		return
	}
	l, err := h.store.UpdateList(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *handlers) deleteList(c *gin.Context) {
	ok, err := h.store.DeleteList(c.Request.Context(), c.Param("id"))
	deleted(c, "list", ok, err)
}

func (h *handlers) cardsByList(c *gin.Context) {
	cards, err := h.store.GetCardsByList(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}
