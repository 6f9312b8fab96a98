package board

import (
	"strings"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/shared"
)

// List is an ordered column of cards on a board. Position is dense and
// zero-based among the non-archived lists of the same board; it is only
// written at creation (append) and by the renumbering pass.
type List struct {
	shared.BaseEntity
	BoardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"size:100;not null"`
	Position   int       `gorm:"not null"`
	IsArchived bool      `gorm:"not null;default:false"`
}

// NewList creates a list at the given append position.
func NewList(boardID uuid.UUID, name string, position int) (*List, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "list name must be between 1 and 100 characters")
	}
	if position < 0 {
		return nil, shared.NewDomainError("INVALID_POSITION", "position must be a non-negative integer")
	}

	return &List{
		BaseEntity: shared.NewBaseEntity(),
		BoardID:    boardID,
		Name:       name,
		Position:   position,
	}, nil
}

// Rename changes the list name.
func (l *List) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "list name must be between 1 and 100 characters")
	}
	l.Name = name
	l.Touch()
	return nil
}

// Archive removes the list from the active position sequence. Its stale
// position value is kept; callers renumber the remaining siblings.
func (l *List) Archive() error {
	if l.IsArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "list is already archived")
	}
	l.IsArchived = true
	l.Touch()
	return nil
}

// Restore returns the list to the active sequence at the given append
// position (it is not reinserted at its old slot).
func (l *List) Restore(position int) error {
	if !l.IsArchived {
		return shared.NewDomainError("NOT_ARCHIVED", "list is not archived")
	}
	l.IsArchived = false
	l.Position = position
	l.Touch()
	return nil
}
