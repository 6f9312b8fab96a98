package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appboard "github.com/taskboard/backend/internal/application/board"
	"github.com/taskboard/backend/internal/interfaces/http/dto"
)

// ActivityHandler serves activity feeds
type ActivityHandler struct {
	BaseHandler
	activityService *appboard.ActivityService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activityService *appboard.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// RegisterRoutes registers activity routes on the given router group
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/boards/:id/activities", h.BoardFeed)
	rg.GET("/workspaces/:id/activities", h.WorkspaceFeed)
	rg.GET("/cards/:id/activities", h.CardFeed)
}

// BoardFeed returns a page of a board's activity feed, newest first
func (h *ActivityHandler) BoardFeed(c *gin.Context) {
	h.feed(c, h.activityService.BoardFeed)
}

// WorkspaceFeed returns a page of a workspace's activity feed, newest first
func (h *ActivityHandler) WorkspaceFeed(c *gin.Context) {
	h.feed(c, h.activityService.WorkspaceFeed)
}

// CardFeed returns a page of a single card's activity feed, newest first
func (h *ActivityHandler) CardFeed(c *gin.Context) {
	h.feed(c, h.activityService.CardFeed)
}

func (h *ActivityHandler) feed(
	c *gin.Context,
	load func(ctx context.Context, targetID, userID uuid.UUID, page, limit int) (*appboard.ActivityFeed, error),
) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	targetID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		h.BindError(c, err)
		return
	}
	page.Normalize()

	feed, err := load(c.Request.Context(), targetID, userID, page.Page, page.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, newActivityResponses(feed), feed.Total, feed.Page, feed.Limit)
}
