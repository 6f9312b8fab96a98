package board

import (
	"strings"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/shared"
)

const defaultBackground = "#0079bf"

// Board is a column container inside a workspace. Access is resolved
// transitively through the parent workspace; boards carry no ACL of
// their own.
type Board struct {
	shared.BaseEntity
	WorkspaceID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name        string      `gorm:"size:100;not null"`
	Description string      `gorm:"size:500"`
	Background  string      `gorm:"size:50;not null"`
	IsClosed    bool        `gorm:"not null;default:false"`
	CreatedBy   uuid.UUID   `gorm:"type:uuid;not null"`
	StarredBy   []uuid.UUID `gorm:"serializer:json"`
}

// NewBoard creates a board in the given workspace.
func NewBoard(workspaceID uuid.UUID, name, description, background string, createdBy uuid.UUID) (*Board, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "board name must be between 1 and 100 characters")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "board description must be at most 500 characters")
	}
	if background == "" {
		background = defaultBackground
	}

	return &Board{
		BaseEntity:  shared.NewBaseEntity(),
		WorkspaceID: workspaceID,
		Name:        name,
		Description: description,
		Background:  background,
		CreatedBy:   createdBy,
		StarredBy:   []uuid.UUID{},
	}, nil
}

// Update changes the mutable board fields. Empty values keep the current
// ones; closed state is toggled separately.
func (b *Board) Update(name, description, background string) error {
	if name != "" {
		name = strings.TrimSpace(name)
		if name == "" || len(name) > 100 {
			return shared.NewDomainError("INVALID_NAME", "board name must be between 1 and 100 characters")
		}
		b.Name = name
	}
	if description != "" {
		if len(description) > 500 {
			return shared.NewDomainError("INVALID_DESCRIPTION", "board description must be at most 500 characters")
		}
		b.Description = description
	}
	if background != "" {
		b.Background = background
	}
	b.Touch()
	return nil
}

// SetClosed opens or closes the board.
func (b *Board) SetClosed(closed bool) {
	b.IsClosed = closed
	b.Touch()
}

// IsStarredBy reports whether the user has starred this board.
func (b *Board) IsStarredBy(userID uuid.UUID) bool {
	for _, id := range b.StarredBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleStar adds or removes the user from the starring set and reports
// the resulting starred state.
func (b *Board) ToggleStar(userID uuid.UUID) bool {
	for i, id := range b.StarredBy {
		if id == userID {
			b.StarredBy = append(b.StarredBy[:i], b.StarredBy[i+1:]...)
			b.Touch()
			return false
		}
	}
	b.StarredBy = append(b.StarredBy, userID)
	b.Touch()
	return true
}
