package handler

import (
	"github.com/gin-gonic/gin"
	appboard "github.com/taskboard/backend/internal/application/board"
	"github.com/taskboard/backend/internal/domain/board"
)

// CreateWorkspaceRequest represents the request body for workspace creation
type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Visibility  string `json:"visibility" binding:"omitempty,oneof=private public"`
}

// UpdateWorkspaceRequest represents the request body for workspace updates
type UpdateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
	Visibility  string `json:"visibility" binding:"required,oneof=private public"`
}

// AddMemberRequest invites a user to a workspace by email
type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=member admin"`
}

// UpdateMemberRoleRequest changes an existing member's role
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member admin"`
}

// WorkspaceHandler handles workspace HTTP requests
type WorkspaceHandler struct {
	BaseHandler
	workspaceService *appboard.WorkspaceService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *appboard.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// RegisterRoutes registers workspace routes on the given router group
func (h *WorkspaceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.Create)
		workspaces.GET("", h.List)
		workspaces.GET("/:id", h.Get)
		workspaces.PUT("/:id", h.Update)
		workspaces.DELETE("/:id", h.Delete)
		workspaces.POST("/:id/members", h.AddMember)
		workspaces.PUT("/:id/members/:userId", h.UpdateMemberRole)
		workspaces.DELETE("/:id/members/:userId", h.RemoveMember)
	}
}

// Create creates a new workspace owned by the caller
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	visibility := board.Visibility(req.Visibility)
	if req.Visibility == "" {
		visibility = board.VisibilityPrivate
	}

	ws, err := h.workspaceService.Create(c.Request.Context(), appboard.CreateWorkspaceInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Visibility:  visibility,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newWorkspaceResponse(ws))
}

// List returns all workspaces the caller belongs to
func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	workspaces, err := h.workspaceService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]WorkspaceResponse, len(workspaces))
	for i, ws := range workspaces {
		out[i] = newWorkspaceResponse(ws)
	}
	h.Success(c, out)
}

// Get returns one workspace with its member roster
func (h *WorkspaceHandler) Get(c *gin.Context) {
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

	detail, err := h.workspaceService.Get(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newWorkspaceDetailResponse(detail))
}

// Update updates a workspace's name, description, and visibility
func (h *WorkspaceHandler) Update(c *gin.Context) {
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

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ws, err := h.workspaceService.Update(c.Request.Context(), appboard.UpdateWorkspaceInput{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Visibility:  board.Visibility(req.Visibility),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newWorkspaceResponse(ws))
}

// Delete deactivates a workspace. Owner only.
func (h *WorkspaceHandler) Delete(c *gin.Context) {
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

	if err := h.workspaceService.Delete(c.Request.Context(), workspaceID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddMember invites a user to the workspace by email
func (h *WorkspaceHandler) AddMember(c *gin.Context) {
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

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	detail, err := h.workspaceService.AddMember(c.Request.Context(), appboard.AddMemberInput{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		Email:       req.Email,
		Role:        board.Role(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newWorkspaceDetailResponse(detail))
}

// UpdateMemberRole changes an existing member's role
func (h *WorkspaceHandler) UpdateMemberRole(c *gin.Context) {
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

	memberID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	var req UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.workspaceService.UpdateMemberRole(c.Request.Context(), appboard.UpdateMemberRoleInput{
		WorkspaceID: workspaceID,
		ActorID:     userID,
		MemberID:    memberID,
		Role:        board.Role(req.Role),
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// RemoveMember removes a member from the workspace. Members may remove
// themselves; removing others requires admin.
func (h *WorkspaceHandler) RemoveMember(c *gin.Context) {
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

	memberID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.BadRequest(c, "Invalid member ID")
		return
	}

	if err := h.workspaceService.RemoveMember(c.Request.Context(), workspaceID, userID, memberID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
