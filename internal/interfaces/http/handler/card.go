package handler

import (
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appboard "github.com/taskboard/backend/internal/application/board"
)

// CreateCardRequest represents the request body for card creation
type CreateCardRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateCardRequest represents the request body for card field updates
type UpdateCardRequest struct {
	Title        string     `json:"title" binding:"required,min=1,max=200"`
	Description  string     `json:"description" binding:"max=2000"`
	DueDate      *time.Time `json:"due_date"`
	ClearDueDate bool       `json:"clear_due_date"`
}

// MoveCardRequest moves a card to an insertion index within a list
type MoveCardRequest struct {
	ListID   uuid.UUID `json:"list_id" binding:"required"`
	Position *int      `json:"position" binding:"required,gte=0"`
}

// ReorderCardsRequest proposes a complete new ordering of a list's active cards
type ReorderCardsRequest struct {
	CardIDs []uuid.UUID `json:"card_ids" binding:"required,min=1"`
}

// AssignCardRequest assigns a workspace member to a card
type AssignCardRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

// CardLabelRequest adds a label to a card
type CardLabelRequest struct {
	Label string `json:"label" binding:"required,min=1,max=50"`
}

// ChecklistItemRequest adds a checklist item to a card
type ChecklistItemRequest struct {
	Text string `json:"text" binding:"required,min=1,max=500"`
}

// UpdateChecklistItemRequest edits a checklist item
type UpdateChecklistItemRequest struct {
	Text      string `json:"text" binding:"required,min=1,max=500"`
	Completed bool   `json:"completed"`
}

// CommentRequest adds or edits a card comment
type CommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CardHandler handles card HTTP requests
type CardHandler struct {
	BaseHandler
	cardService *appboard.CardService
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService *appboard.CardService) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// RegisterRoutes registers card routes on the given router group
func (h *CardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/lists/:id/cards", h.Create)
	rg.PUT("/lists/:id/cards/reorder", h.Reorder)
	rg.GET("/boards/:id/cards", h.Search)

	cards := rg.Group("/cards")
	{
		cards.GET("/:id", h.Get)
		cards.PUT("/:id", h.Update)
		cards.DELETE("/:id", h.Delete)
		cards.PUT("/:id/move", h.Move)
		cards.POST("/:id/archive", h.Archive)
		cards.POST("/:id/restore", h.Restore)
		cards.POST("/:id/complete", h.ToggleComplete)
		cards.POST("/:id/assignees", h.Assign)
		cards.DELETE("/:id/assignees/:userId", h.Unassign)
		cards.POST("/:id/labels", h.AddLabel)
		cards.DELETE("/:id/labels", h.RemoveLabel)
		cards.POST("/:id/checklist", h.AddChecklistItem)
		cards.PUT("/:id/checklist/:itemId", h.UpdateChecklistItem)
		cards.DELETE("/:id/checklist/:itemId", h.RemoveChecklistItem)
		cards.POST("/:id/comments", h.AddComment)
		cards.PUT("/:id/comments/:commentId", h.UpdateComment)
		cards.DELETE("/:id/comments/:commentId", h.RemoveComment)
		cards.POST("/:id/attachments", h.AddAttachment)
		cards.DELETE("/:id/attachments/:attachmentId", h.RemoveAttachment)
	}
}

// Create appends a card to the end of a list
func (h *CardHandler) Create(c *gin.Context) {
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

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.Create(c.Request.Context(), appboard.CreateCardInput{
		ListID:      listID,
		ActorID:     userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newCardResponse(card))
}

// Get returns one card with all embedded detail
func (h *CardHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	card, err := h.cardService.Get(c.Request.Context(), cardID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// Update updates a card's title, description, and due date
func (h *CardHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.Update(c.Request.Context(), appboard.UpdateCardInput{
		CardID:       cardID,
		ActorID:      userID,
		Title:        req.Title,
		Description:  req.Description,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// Move moves a card to an insertion index, possibly across lists
func (h *CardHandler) Move(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req MoveCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.Move(c.Request.Context(), appboard.MoveCardInput{
		CardID:   cardID,
		ActorID:  userID,
		ToListID: req.ListID,
		Position: *req.Position,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// Reorder applies a complete new ordering to a list's active cards
func (h *CardHandler) Reorder(c *gin.Context) {
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

	var req ReorderCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.cardService.Reorder(c.Request.Context(), appboard.ReorderCardsInput{
		ListID:  listID,
		ActorID: userID,
		CardIDs: req.CardIDs,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Archive archives a card
func (h *CardHandler) Archive(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	if err := h.cardService.Archive(c.Request.Context(), cardID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore restores an archived card at the end of its list
func (h *CardHandler) Restore(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	card, err := h.cardService.Restore(c.Request.Context(), cardID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// Delete permanently deletes a card and its stored attachments
func (h *CardHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	if err := h.cardService.Delete(c.Request.Context(), cardID, userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ToggleComplete toggles a card's completion state
func (h *CardHandler) ToggleComplete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	card, err := h.cardService.ToggleComplete(c.Request.Context(), cardID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// Assign assigns a workspace member to a card
func (h *CardHandler) Assign(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req AssignCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.Assign(c.Request.Context(), cardID, userID, req.UserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// Unassign removes an assignee from a card
func (h *CardHandler) Unassign(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	assigneeID, err := parseUUIDParam(c, "userId")
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	card, err := h.cardService.Unassign(c.Request.Context(), cardID, userID, assigneeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// AddLabel adds a label to a card
func (h *CardHandler) AddLabel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req CardLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.AddLabel(c.Request.Context(), cardID, userID, req.Label)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// RemoveLabel removes a label from a card. The label is passed as a query
// parameter since labels are free text.
func (h *CardHandler) RemoveLabel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	label := strings.TrimSpace(c.Query("label"))
	if label == "" {
		h.BadRequest(c, "Label query parameter required")
		return
	}

	card, err := h.cardService.RemoveLabel(c.Request.Context(), cardID, userID, label)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// AddChecklistItem appends a checklist item to a card
func (h *CardHandler) AddChecklistItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.AddChecklistItem(c.Request.Context(), appboard.ChecklistItemInput{
		CardID:  cardID,
		ActorID: userID,
		Text:    req.Text,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// UpdateChecklistItem edits a checklist item's text and completion state
func (h *CardHandler) UpdateChecklistItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid checklist item ID")
		return
	}

	var req UpdateChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.SetChecklistItem(c.Request.Context(), appboard.ChecklistItemInput{
		CardID:    cardID,
		ActorID:   userID,
		ItemID:    itemID,
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// RemoveChecklistItem removes a checklist item from a card
func (h *CardHandler) RemoveChecklistItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	itemID, err := parseUUIDParam(c, "itemId")
	if err != nil {
		h.BadRequest(c, "Invalid checklist item ID")
		return
	}

	card, err := h.cardService.RemoveChecklistItem(c.Request.Context(), cardID, userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// AddComment adds a comment to a card
func (h *CardHandler) AddComment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.AddComment(c.Request.Context(), appboard.CommentInput{
		CardID:  cardID,
		ActorID: userID,
		Content: req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// UpdateComment edits a comment. Author only.
func (h *CardHandler) UpdateComment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	commentID, err := parseUUIDParam(c, "commentId")
	if err != nil {
		h.BadRequest(c, "Invalid comment ID")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	card, err := h.cardService.UpdateComment(c.Request.Context(), appboard.CommentInput{
		CardID:    cardID,
		ActorID:   userID,
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// RemoveComment removes a comment. Author or workspace admin.
func (h *CardHandler) RemoveComment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	commentID, err := parseUUIDParam(c, "commentId")
	if err != nil {
		h.BadRequest(c, "Invalid comment ID")
		return
	}

	card, err := h.cardService.RemoveComment(c.Request.Context(), cardID, userID, commentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// AddAttachment uploads a file onto a card as multipart form data under the
// "file" field. Size is bounded by the body limit middleware.
func (h *CardHandler) AddAttachment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Multipart file field required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}

	card, err := h.cardService.AddAttachment(c.Request.Context(), appboard.AttachmentInput{
		CardID:      cardID,
		ActorID:     userID,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, newCardResponse(card))
}

// RemoveAttachment removes an attachment and its stored object
func (h *CardHandler) RemoveAttachment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cardID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid card ID")
		return
	}

	attachmentID, err := parseUUIDParam(c, "attachmentId")
	if err != nil {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	card, err := h.cardService.RemoveAttachment(c.Request.Context(), cardID, userID, attachmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, newCardResponse(card))
}

// SearchCardsQuery binds card search query parameters
type SearchCardsQuery struct {
	Keyword   string     `form:"q"`
	Labels    []string   `form:"label"`
	Assignee  *uuid.UUID `form:"assignee"`
	DueBefore *time.Time `form:"due_before" time_format:"2006-01-02T15:04:05Z07:00"`
	Overdue   bool       `form:"overdue"`
}

// Search filters a board's active cards
func (h *CardHandler) Search(c *gin.Context) {
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

	var query SearchCardsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindError(c, err)
		return
	}

	cards, err := h.cardService.Search(c.Request.Context(), appboard.SearchCardsInput{
		BoardID:    boardID,
		ActorID:    userID,
		Keyword:    query.Keyword,
		Labels:     query.Labels,
		AssigneeID: query.Assignee,
		DueBefore:  query.DueBefore,
		Overdue:    query.Overdue,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]CardResponse, len(cards))
	for i, card := range cards {
		out[i] = newCardResponse(card)
	}
	h.Success(c, out)
}
