package board

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WorkspaceRepository persists workspaces.
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *Workspace) error
	Update(ctx context.Context, workspace *Workspace) error
	FindByID(ctx context.Context, id uuid.UUID) (*Workspace, error)
	// FindByUser returns active workspaces the user owns or is a member of.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*Workspace, error)
}

// BoardRepository persists boards.
type BoardRepository interface {
	Create(ctx context.Context, board *Board) error
	Update(ctx context.Context, board *Board) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Board, error)
	// FindByWorkspace returns boards of a workspace, newest first.
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*Board, error)
}

// ListRepository persists lists and their positions.
type ListRepository interface {
	Create(ctx context.Context, list *List) error
	Update(ctx context.Context, list *List) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*List, error)
	// FindActiveByBoard returns non-archived lists ordered by position.
	FindActiveByBoard(ctx context.Context, boardID uuid.UUID) ([]*List, error)
	FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*List, error)
	CountActiveByBoard(ctx context.Context, boardID uuid.UUID) (int, error)
	// UpdatePositions writes position values for the given lists in one
	// transaction; a partial batch never persists.
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
}

// CardFilter narrows card searches within a board.
type CardFilter struct {
	Keyword    string
	Labels     []string
	AssigneeID *uuid.UUID
	DueBefore  *time.Time
	Overdue    bool
	At         time.Time
}

// CardRepository persists cards and their positions.
type CardRepository interface {
	Create(ctx context.Context, card *Card) error
	Update(ctx context.Context, card *Card) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Card, error)
	// FindActiveByList returns non-archived cards ordered by position.
	FindActiveByList(ctx context.Context, listID uuid.UUID) ([]*Card, error)
	FindByList(ctx context.Context, listID uuid.UUID) ([]*Card, error)
	CountActiveByList(ctx context.Context, listID uuid.UUID) (int, error)
	// UpdatePositions writes position values for the given cards in one
	// transaction; a partial batch never persists.
	UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error
	DeleteByList(ctx context.Context, listID uuid.UUID) error
	DeleteByBoard(ctx context.Context, boardID uuid.UUID) error
	Search(ctx context.Context, boardID uuid.UUID, filter CardFilter) ([]*Card, error)
}

// ActivityPage is one page of the activity feed.
type ActivityPage struct {
	Activities []*Activity
	Total      int64
	Page       int
	Limit      int
}

// ActivityRepository persists the append-only activity log.
type ActivityRepository interface {
	Create(ctx context.Context, activity *Activity) error
	FindByBoard(ctx context.Context, boardID uuid.UUID, page, limit int) (*ActivityPage, error)
	FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, page, limit int) (*ActivityPage, error)
	FindByCard(ctx context.Context, cardID uuid.UUID, page, limit int) (*ActivityPage, error)
}
