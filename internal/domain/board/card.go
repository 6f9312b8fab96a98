package board

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/shared"
)

const (
	maxCardTitleLength       = 200
	maxCardDescriptionLength = 2000
	maxChecklistTextLength   = 200
	maxCommentLength         = 1000
)

// ChecklistItem is one entry of a card checklist.
type ChecklistItem struct {
	ID          uuid.UUID  `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Attachment is a file reference stored on a card. The object itself
// lives in the storage backend under Key; URL is the stable address
// handed to clients.
type Attachment struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Key        string    `json:"key"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Comment is a user remark on a card.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChecklistProgress summarizes checklist completion for a card.
type ChecklistProgress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// Card is the unit of work on a board. It belongs to one list and keeps a
// denormalized board reference for reverse lookup. Position is dense and
// zero-based among non-archived cards of the same list; only creation
// (append) and the renumbering pass write it.
type Card struct {
	shared.BaseEntity
	ListID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	BoardID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title       string          `gorm:"size:200;not null"`
	Description string          `gorm:"size:2000"`
	Position    int             `gorm:"not null"`
	DueDate     *time.Time      `gorm:"index"`
	IsCompleted bool            `gorm:"not null;default:false"`
	CompletedAt *time.Time      ``
	Labels      []string        `gorm:"serializer:json"`
	Assignees   []uuid.UUID     `gorm:"serializer:json"`
	Checklist   []ChecklistItem `gorm:"serializer:json"`
	Attachments []Attachment    `gorm:"serializer:json"`
	Comments    []Comment       `gorm:"serializer:json"`
	IsArchived  bool            `gorm:"not null;default:false"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
}

// NewCard creates a card at the given append position.
func NewCard(listID, boardID uuid.UUID, title, description string, position int, createdBy uuid.UUID) (*Card, error) {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > maxCardTitleLength {
		return nil, shared.NewDomainError("INVALID_TITLE", "card title must be between 1 and 200 characters")
	}
	if len(description) > maxCardDescriptionLength {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "card description must be at most 2000 characters")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "position must be a non-negative integer")
	}

	return &Card{
		BaseEntity:  shared.NewBaseEntity(),
		ListID:      listID,
		BoardID:     boardID,
		Title:       title,
		Description: description,
		Position:    position,
		Labels:      []string{},
		Assignees:   []uuid.UUID{},
		Checklist:   []ChecklistItem{},
		Attachments: []Attachment{},
		Comments:    []Comment{},
		CreatedBy:   createdBy,
	}, nil
}

// Update changes title, description and due date. Empty title keeps the
// current one; clearDueDate takes precedence over dueDate.
func (c *Card) Update(title, description string, dueDate *time.Time, clearDueDate bool) error {
	if title != "" {
		title = strings.TrimSpace(title)
		if title == "" || len(title) > maxCardTitleLength {
			return shared.NewDomainError("INVALID_TITLE", "card title must be between 1 and 200 characters")
		}
		c.Title = title
	}
	if description != "" {
		if len(description) > maxCardDescriptionLength {
			return shared.NewDomainError("INVALID_DESCRIPTION", "card description must be at most 2000 characters")
		}
		c.Description = description
	}
	if clearDueDate {
		c.DueDate = nil
	} else if dueDate != nil {
		c.DueDate = dueDate
	}
	c.Touch()
	return nil
}

// MoveTo reassigns the parent list and position. The caller renumbers
// both affected lists afterwards.
func (c *Card) MoveTo(listID uuid.UUID, position int) error {
	if position < 0 {
		return shared.NewDomainError("INVALID_POSITION", "position must be a non-negative integer")
	}
	c.ListID = listID
	c.Position = position
	c.Touch()
	return nil
}

// ToggleComplete flips the completion flag, stamping or clearing the
// completion time.
func (c *Card) ToggleComplete() {
	c.IsCompleted = !c.IsCompleted
	if c.IsCompleted {
		now := time.Now()
		c.CompletedAt = &now
	} else {
		c.CompletedAt = nil
	}
	c.Touch()
}

// IsOverdue reports whether the due date has passed on an incomplete card.
func (c *Card) IsOverdue() bool {
	return c.DueDate != nil && !c.IsCompleted && c.DueDate.Before(time.Now())
}

// Archive removes the card from the active position sequence.
func (c *Card) Archive() error {
	if c.IsArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "card is already archived")
	}
	c.IsArchived = true
	c.Touch()
	return nil
}

// Restore appends the card back to its list's active sequence.
func (c *Card) Restore(position int) error {
	if !c.IsArchived {
		return shared.NewDomainError("NOT_ARCHIVED", "card is not archived")
	}
	c.IsArchived = false
	c.Position = position
	c.Touch()
	return nil
}

// AddLabel adds a label if not already present.
func (c *Card) AddLabel(label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return shared.NewDomainError("INVALID_LABEL", "label must not be empty")
	}
	for _, l := range c.Labels {
		if l == label {
			return nil
		}
	}
	c.Labels = append(c.Labels, label)
	c.Touch()
	return nil
}

// RemoveLabel drops a label; removing an absent label is a no-op.
func (c *Card) RemoveLabel(label string) {
	for i, l := range c.Labels {
		if l == label {
			c.Labels = append(c.Labels[:i], c.Labels[i+1:]...)
			c.Touch()
			return
		}
	}
}

// HasAssignee reports whether the user is assigned to the card.
func (c *Card) HasAssignee(userID uuid.UUID) bool {
	for _, id := range c.Assignees {
		if id == userID {
			return true
		}
	}
	return false
}

// Assign adds a user to the assignee set.
func (c *Card) Assign(userID uuid.UUID) {
	if c.HasAssignee(userID) {
		return
	}
	c.Assignees = append(c.Assignees, userID)
	c.Touch()
}

// Unassign removes a user from the assignee set.
func (c *Card) Unassign(userID uuid.UUID) {
	for i, id := range c.Assignees {
		if id == userID {
			c.Assignees = append(c.Assignees[:i], c.Assignees[i+1:]...)
			c.Touch()
			return
		}
	}
}

// AddChecklistItem appends a checklist entry and returns it.
func (c *Card) AddChecklistItem(text string) (*ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" || len(text) > maxChecklistTextLength {
		return nil, shared.NewDomainError("INVALID_CHECKLIST_ITEM", "checklist item text must be between 1 and 200 characters")
	}
	item := ChecklistItem{ID: uuid.New(), Text: text}
	c.Checklist = append(c.Checklist, item)
	c.Touch()
	return &item, nil
}

// SetChecklistItem updates a checklist entry's text and completion state.
func (c *Card) SetChecklistItem(itemID uuid.UUID, text string, completed bool) (*ChecklistItem, error) {
	for i := range c.Checklist {
		if c.Checklist[i].ID != itemID {
			continue
		}
		if text != "" {
			text = strings.TrimSpace(text)
			if text == "" || len(text) > maxChecklistTextLength {
				return nil, shared.NewDomainError("INVALID_CHECKLIST_ITEM", "checklist item text must be between 1 and 200 characters")
			}
			c.Checklist[i].Text = text
		}
		if completed != c.Checklist[i].Completed {
			c.Checklist[i].Completed = completed
			if completed {
				now := time.Now()
				c.Checklist[i].CompletedAt = &now
			} else {
				c.Checklist[i].CompletedAt = nil
			}
		}
		c.Touch()
		return &c.Checklist[i], nil
	}
	return nil, shared.ErrNotFound
}

// RemoveChecklistItem deletes a checklist entry.
func (c *Card) RemoveChecklistItem(itemID uuid.UUID) error {
	for i := range c.Checklist {
		if c.Checklist[i].ID == itemID {
			c.Checklist = append(c.Checklist[:i], c.Checklist[i+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Progress summarizes the checklist completion state.
func (c *Card) Progress() ChecklistProgress {
	p := ChecklistProgress{Total: len(c.Checklist)}
	for _, item := range c.Checklist {
		if item.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = p.Completed * 100 / p.Total
	}
	return p
}

// AddComment appends a comment by the given user and returns it.
func (c *Card) AddComment(userID uuid.UUID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxCommentLength {
		return nil, shared.NewDomainError("INVALID_COMMENT", "comment must be between 1 and 1000 characters")
	}
	now := time.Now()
	comment := Comment{ID: uuid.New(), UserID: userID, Content: content, CreatedAt: now, UpdatedAt: now}
	c.Comments = append(c.Comments, comment)
	c.UpdatedAt = now
	return &comment, nil
}

// UpdateComment edits a comment. Only its author may edit it.
func (c *Card) UpdateComment(commentID, userID uuid.UUID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxCommentLength {
		return nil, shared.NewDomainError("INVALID_COMMENT", "comment must be between 1 and 1000 characters")
	}
	for i := range c.Comments {
		if c.Comments[i].ID != commentID {
			continue
		}
		if c.Comments[i].UserID != userID {
			return nil, shared.ErrForbidden
		}
		c.Comments[i].Content = content
		c.Comments[i].UpdatedAt = time.Now()
		c.UpdatedAt = c.Comments[i].UpdatedAt
		return &c.Comments[i], nil
	}
	return nil, shared.ErrNotFound
}

// RemoveComment deletes a comment. Authors may delete their own comments;
// admins may delete any.
func (c *Card) RemoveComment(commentID, userID uuid.UUID, isAdmin bool) error {
	for i := range c.Comments {
		if c.Comments[i].ID != commentID {
			continue
		}
		if c.Comments[i].UserID != userID && !isAdmin {
			return shared.ErrForbidden
		}
		c.Comments = append(c.Comments[:i], c.Comments[i+1:]...)
		c.Touch()
		return nil
	}
	return shared.ErrNotFound
}

// AddAttachment records an uploaded file reference.
func (c *Card) AddAttachment(name, key, url, contentType string, uploadedBy uuid.UUID) (*Attachment, error) {
	if name == "" || url == "" {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT", "attachment name and url are required")
	}
	att := Attachment{
		ID:         uuid.New(),
		Name:       name,
		Key:        key,
		URL:        url,
		Type:       contentType,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now(),
	}
	c.Attachments = append(c.Attachments, att)
	c.UpdatedAt = att.UploadedAt
	return &att, nil
}

// RemoveAttachment drops an attachment reference and returns it so the
// caller can delete the stored object.
func (c *Card) RemoveAttachment(attachmentID uuid.UUID) (*Attachment, error) {
	for i := range c.Attachments {
		if c.Attachments[i].ID == attachmentID {
			att := c.Attachments[i]
			c.Attachments = append(c.Attachments[:i], c.Attachments[i+1:]...)
			c.Touch()
			return &att, nil
		}
	}
	return nil, shared.ErrNotFound
}
