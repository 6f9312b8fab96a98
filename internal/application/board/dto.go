package board

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
)

// CreateWorkspaceInput contains the input for workspace creation
type CreateWorkspaceInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Visibility  board.Visibility
}

// UpdateWorkspaceInput contains the input for workspace updates
type UpdateWorkspaceInput struct {
	WorkspaceID uuid.UUID
	ActorID     uuid.UUID
	Name        string
	Description string
	Visibility  board.Visibility
}

// AddMemberInput invites a user to a workspace by email
type AddMemberInput struct {
	WorkspaceID uuid.UUID
	ActorID     uuid.UUID
	Email       string
	Role        board.Role
}

// UpdateMemberRoleInput changes an existing member's role
type UpdateMemberRoleInput struct {
	WorkspaceID uuid.UUID
	ActorID     uuid.UUID
	MemberID    uuid.UUID
	Role        board.Role
}

// MemberInfo is one workspace member with resolved user details
type MemberInfo struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	Avatar  string
	Role    board.Role
	AddedAt time.Time
}

// WorkspaceDetail is a workspace with resolved member details
type WorkspaceDetail struct {
	Workspace *board.Workspace
	Members   []MemberInfo
}

// CreateBoardInput contains the input for board creation
type CreateBoardInput struct {
	WorkspaceID uuid.UUID
	ActorID     uuid.UUID
	Name        string
	Description string
	Background  string
}

// UpdateBoardInput contains the input for board updates
type UpdateBoardInput struct {
	BoardID     uuid.UUID
	ActorID     uuid.UUID
	Name        string
	Description string
	Background  string
}

// ListWithCards pairs a list with its active cards in position order
type ListWithCards struct {
	List  *board.List
	Cards []*board.Card
}

// BoardDetail is a board with its active lists and cards
type BoardDetail struct {
	Board *board.Board
	Lists []ListWithCards
}

// CreateListInput contains the input for list creation
type CreateListInput struct {
	BoardID uuid.UUID
	ActorID uuid.UUID
	Name    string
}

// RenameListInput contains the input for list renames
type RenameListInput struct {
	ListID  uuid.UUID
	ActorID uuid.UUID
	Name    string
}

// ReorderListsInput proposes a complete new ordering of a board's active lists
type ReorderListsInput struct {
	BoardID uuid.UUID
	ActorID uuid.UUID
	ListIDs []uuid.UUID
}

// CreateCardInput contains the input for card creation
type CreateCardInput struct {
	ListID      uuid.UUID
	ActorID     uuid.UUID
	Title       string
	Description string
}

// UpdateCardInput contains the input for card field updates
type UpdateCardInput struct {
	CardID       uuid.UUID
	ActorID      uuid.UUID
	Title        string
	Description  string
	DueDate      *time.Time
	ClearDueDate bool
}

// MoveCardInput moves a card to a position within a list. Position is the
// insertion index into the destination's active sequence, clamped to its
// bounds.
type MoveCardInput struct {
	CardID   uuid.UUID
	ActorID  uuid.UUID
	ToListID uuid.UUID
	Position int
}

// ReorderCardsInput proposes a complete new ordering of a list's active cards
type ReorderCardsInput struct {
	ListID  uuid.UUID
	ActorID uuid.UUID
	CardIDs []uuid.UUID
}

// CommentInput adds or edits a card comment
type CommentInput struct {
	CardID    uuid.UUID
	ActorID   uuid.UUID
	CommentID uuid.UUID // Zero for new comments
	Content   string
}

// ChecklistItemInput adds or edits a checklist item
type ChecklistItemInput struct {
	CardID    uuid.UUID
	ActorID   uuid.UUID
	ItemID    uuid.UUID // Zero for new items
	Text      string
	Completed bool
}

// AttachmentInput uploads a file onto a card
type AttachmentInput struct {
	CardID      uuid.UUID
	ActorID     uuid.UUID
	FileName    string
	ContentType string
	Data        []byte
}

// SearchCardsInput filters a board's active cards
type SearchCardsInput struct {
	BoardID    uuid.UUID
	ActorID    uuid.UUID
	Keyword    string
	Labels     []string
	AssigneeID *uuid.UUID
	DueBefore  *time.Time
	Overdue    bool
}

// ActivityEntry is one activity log record with resolved actor details
type ActivityEntry struct {
	Activity  *board.Activity
	ActorName string
	Message   string
}

// ActivityFeed is one page of an activity feed
type ActivityFeed struct {
	Activities []ActivityEntry
	Total      int64
	Page       int
	Limit      int
	Pages      int
}
