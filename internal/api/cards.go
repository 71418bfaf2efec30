package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/workboard/internal/store"
)

func (h *handlers) createCard(c *gin.Context) {
	user, ok := requiredQuery(c, "user_id")
	if !ok {
		return
	}
	var req store.CreateCardOpts
	if !bindBody(c, &req) {
		return
	}
	card, err := h.store.CreateCard(c.Request.Context(), req, user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *handlers) cardsByUser(c *gin.Context) {
	user, ok := requiredQuery(c, "user_id")
	if !ok {
		return
	}
	cards, err := h.store.GetCardsByUser(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *handlers) getCard(c *gin.Context) {
	card, err := h.store.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *handlers) updateCard(c *gin.Context) {
	user, ok := requiredQuery(c, "user_id")
	if !ok {
		return
	}
	var req store.CardUpdate
	if !bindBody(c, &req) {
		return
	}
	card, err := h.store.UpdateCard(c.Request.Context(), c.Param("id"), req, user)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *handlers) deleteCard(c *gin.Context) {
	ok, err := h.store.DeleteCard(c.Request.Context(), c.Param("id"))
	deleted(c, "card", ok, err)
}

func (h *handlers) commentsByCard(c *gin.Context) {
	comments, err := h.store.GetCommentsByCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
