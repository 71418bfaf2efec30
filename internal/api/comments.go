package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/workboard/internal/store"
)

func (h *handlers) createComment(c *gin.Context) {
	var req store.CreateCommentOpts
	if !bindBody(c, &req) {
		return
	}
	cm, err := h.store.CreateComment(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cm)
}

func (h *handlers) deleteComment(c *gin.Context) {
	ok, err := h.store.DeleteComment(c.Request.Context(), c.Param("id"))
	deleted(c, "comment", ok, err)
}
