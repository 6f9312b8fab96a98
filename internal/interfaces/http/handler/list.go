package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appboard "github.com/taskboard/backend/internal/application/board"
)

// CreateListRequest represents the request body for list creation
type CreateListRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RenameListRequest represents the request body for list renames
type RenameListRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// MoveListRequest moves a list to an insertion index on its board
type MoveListRequest struct {
	Position *int `json:"position" binding:"required,gte=0"`
}

// ReorderListsRequest proposes a complete new ordering of a board's active lists
type ReorderListsRequest struct {
	ListIDs []uuid.UUID `json:"list_ids" binding:"required,min=1"`
}

// ListHandler handles list HTTP requests
type ListHandler struct {
	BaseHandler
	listService *appboard.ListService
}

// NewListHandler creates a new list handler
func NewListHandler(listService *appboard.ListService) *ListHandler {
	return &ListHandler{listService: listService}
}

// RegisterRoutes registers list routes on the given router group
func (h *ListHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/boards/:id/lists", h.Create)
	rg.PUT("/boards/:id/lists/reorder", h.Reorder)

	lists := rg.Group("/lists")
	{
		lists.PUT("/:id", h.Rename)
		lists.PUT("/:id/move", h.Move)
		lists.POST("/:id/archive", h.Archive)
		lists.POST("/:id/restore", h.Restore)
		lists.DELETE("/:id", h.Delete)
	}
}

// Create appends a list to the end of a board
func (h *ListHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	boardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	l, err := h.listService.Create(c.Request.Context(), appboard.CreateListInput{
		BoardID: boardID,
		ActorID: userID,
		Name:    req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newListResponse(l))
}

// Rename renames a list
func (h *ListHandler) Rename(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid list ID")
		return
	}

	var req RenameListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	l, err := h.listService.Rename(c.Request.Context(), appboard.RenameListInput{
		ListID:  listID,
		ActorID: userID,
		Name:    req.Name,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newListResponse(l))
}

// Move moves a list to an insertion index among its board's active lists
func (h *ListHandler) Move(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid list ID")
		return
	}

	var req MoveListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.listService.Move(c.Request.Context(), listID, userID, *req.Position); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Reorder applies a complete new ordering to a board's active lists
func (h *ListHandler) Reorder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	boardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid board ID")
		return
	}

	var req ReorderListsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.listService.Reorder(c.Request.Context(), appboard.ReorderListsInput{
		BoardID: boardID,
		ActorID: userID,
		ListIDs: req.ListIDs,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Archive archives a list
func (h *ListHandler) Archive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid list ID")
		return
	}

	if err := h.listService.Archive(c.Request.Context(), listID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore restores an archived list at the end of the board
func (h *ListHandler) Restore(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid list ID")
		return
	}

	l, err := h.listService.Restore(c.Request.Context(), listID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newListResponse(l))
}

// Delete permanently deletes a list and its cards. Admin only.
func (h *ListHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid list ID")
		return
	}

	if err := h.listService.Delete(c.Request.Context(), listID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
