package handler

import (
	"github.com/gin-gonic/gin"
	appboard "github.com/taskboard/backend/internal/application/board"
)

// CreateBoardRequest represents the request body for board creation
type CreateBoardRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Background  string `json:"background" binding:"max=50"`
}

// UpdateBoardRequest represents the request body for board updates
type UpdateBoardRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Background  string `json:"background" binding:"required,max=50"`
}

// SetBoardClosedRequest opens or closes a board
type SetBoardClosedRequest struct {
	Closed *bool `json:"closed" binding:"required"`
}

// BoardHandler handles board HTTP requests
type BoardHandler struct {
	BaseHandler
	boardService *appboard.BoardService
}

// NewBoardHandler creates a new board handler
func NewBoardHandler(boardService *appboard.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// RegisterRoutes registers board routes on the given router group
func (h *BoardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/workspaces/:id/boards", h.Create)
	rg.GET("/workspaces/:id/boards", h.ListByWorkspace)

	boards := rg.Group("/boards")
	{
		boards.GET("/:id", h.Get)
		boards.PUT("/:id", h.Update)
		boards.DELETE("/:id", h.Delete)
		boards.PUT("/:id/closed", h.SetClosed)
		boards.POST("/:id/star", h.ToggleStar)
	}
}

// Create creates a board in a workspace
func (h *BoardHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	workspaceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid workspace ID")
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	b, err := h.boardService.Create(c.Request.Context(), appboard.CreateBoardInput{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Background:  req.Background,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newBoardResponse(b))
}

// ListByWorkspace returns all boards in a workspace
func (h *BoardHandler) ListByWorkspace(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	workspaceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid workspace ID")
		return
	}

	boards, err := h.boardService.ListByWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]BoardResponse, len(boards))
	for i, b := range boards {
		out[i] = newBoardResponse(b)
	}
	h.Success(c, out)
}

// Get returns one board with its active lists and cards
func (h *BoardHandler) Get(c *gin.Context) {
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

	detail, err := h.boardService.Get(c.Request.Context(), boardID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newBoardDetailResponse(detail, userID))
}

// Update updates a board's name, description, and background
func (h *BoardHandler) Update(c *gin.Context) {
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

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	b, err := h.boardService.Update(c.Request.Context(), appboard.UpdateBoardInput{
		BoardID:     boardID,
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Background:  req.Background,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newBoardResponse(b))
}

// Delete permanently deletes a board and everything on it. Admin only.
func (h *BoardHandler) Delete(c *gin.Context) {
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

	if err := h.boardService.Delete(c.Request.Context(), boardID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetClosed opens or closes a board
func (h *BoardHandler) SetClosed(c *gin.Context) {
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

	var req SetBoardClosedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	b, err := h.boardService.SetClosed(c.Request.Context(), boardID, userID, *req.Closed)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newBoardResponse(b))
}

// ToggleStar toggles the caller's star on a board
func (h *BoardHandler) ToggleStar(c *gin.Context) {
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

	starred, err := h.boardService.ToggleStar(c.Request.Context(), boardID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"starred": starred})
}
