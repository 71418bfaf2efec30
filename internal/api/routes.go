package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zulandar/workboard/internal/store"
)

type handlers struct {
	store   *store.BoardStore
	version string
}

// registerRoutes sets up every REST route on the router.
func registerRoutes(router *gin.Engine, h *handlers) {
	router.GET("/", h.index)
	router.GET("/health", h.health)

	boards := router.Group("/boards")
	boards.POST("", h.createBoard)
	boards.GET("", h.boardsByOwner)
	boards.GET("/:id", h.getBoard)
	boards.GET("/:id/full", h.getBoardWithLists)
	boards.PATCH("/:id", h.updateBoard)
	boards.DELETE("/:id", h.deleteBoard)
	boards.GET("/:id/lists", h.listsByBoard)
	boards.GET("/:id/activities", h.boardActivities)

	lists := router.Group("/lists")
	lists.POST("", h.createList)
	lists.GET("/:id", h.getList)
	lists.GET("/:id/full", h.getListWithCards)
	lists.PATCH("/:id", h.updateList)
	lists.DELETE("/:id", h.deleteList)
	lists.GET("/:id/cards", h.cardsByList)

	cards := router.Group("/cards")
	cards.POST("", h.createCard)
	cards.GET("", h.cardsByUser)
	cards.GET("/:id", h.getCard)
	cards.PATCH("/:id", h.updateCard)
	cards.DELETE("/:id", h.deleteCard)
	cards.GET("/:id/comments", h.commentsByCard)

	comments := router.Group("/comments")
	comments.POST("", h.createComment)
	comments.DELETE("/:id", h.deleteComment)
}

func (h *handlers) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Workboard API", "version": h.version})
}

func (h *handlers) health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// requiredQuery returns a non-empty query parameter or rejects the request.
func requiredQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		unprocessable(c, name+" query parameter is required")
		return "", false
	}
	return v, true
}

// boolQuery parses an optional boolean query parameter.
func boolQuery(c *gin.Context, name string) (bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		unprocessable(c, name+" must be a boolean")
		return false, false
	}
	return v, true
}

// intQuery parses an optional integer query parameter.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		unprocessable(c, name+" must be an integer")
		return 0, false
	}
	return v, true
}

// bindBody decodes a JSON request body into dst.
func bindBody(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		unprocessable(c, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// deleted answers a delete: 204 when something was removed, 404 otherwise.
func deleted(c *gin.Context, kind string, ok bool, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": kind + " not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
