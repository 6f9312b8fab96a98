package handler

import (
	"time"

	"github.com/google/uuid"
	appboard "github.com/taskboard/backend/internal/application/board"
	"github.com/taskboard/backend/internal/domain/board"
)

// WorkspaceResponse represents a workspace in responses
type WorkspaceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// WorkspaceMemberResponse represents one workspace member with user details
type WorkspaceMemberResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Avatar  string    `json:"avatar,omitempty"`
	Role    string    `json:"role"`
	AddedAt time.Time `json:"added_at"`
}

// WorkspaceDetailResponse is a workspace with its resolved member roster
type WorkspaceDetailResponse struct {
	WorkspaceResponse
	Members []WorkspaceMemberResponse `json:"members"`
}

// BoardResponse represents a board in responses
type BoardResponse struct {
	ID          uuid.UUID `json:"id"`
	WorkspaceID uuid.UUID `json:"workspace_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Background  string    `json:"background"`
	IsClosed    bool      `json:"is_closed"`
	CreatedBy   uuid.UUID `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListResponse represents a list in responses
type ListResponse struct {
	ID         uuid.UUID `json:"id"`
	BoardID    uuid.UUID `json:"board_id"`
	Name       string    `json:"name"`
	Position   int       `json:"position"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CardResponse represents a card in responses
type CardResponse struct {
	ID          uuid.UUID               `json:"id"`
	ListID      uuid.UUID               `json:"list_id"`
	BoardID     uuid.UUID               `json:"board_id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description,omitempty"`
	Position    int                     `json:"position"`
	DueDate     *time.Time              `json:"due_date,omitempty"`
	IsCompleted bool                    `json:"is_completed"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	IsOverdue   bool                    `json:"is_overdue"`
	Labels      []string                `json:"labels"`
	Assignees   []uuid.UUID             `json:"assignees"`
	Checklist   []board.ChecklistItem   `json:"checklist"`
	Progress    board.ChecklistProgress `json:"progress"`
	Attachments []board.Attachment      `json:"attachments"`
	Comments    []board.Comment         `json:"comments"`
	IsArchived  bool                    `json:"is_archived"`
	CreatedBy   uuid.UUID               `json:"created_by"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// ListWithCardsResponse is a list with its active cards in position order
type ListWithCardsResponse struct {
	ListResponse
	Cards []CardResponse `json:"cards"`
}

// BoardDetailResponse is a board with its active lists and cards
type BoardDetailResponse struct {
	BoardResponse
	IsStarred bool                    `json:"is_starred"`
	Lists     []ListWithCardsResponse `json:"lists"`
}

// ActivityResponse is one activity feed entry
type ActivityResponse struct {
	ID         uuid.UUID              `json:"id"`
	ActorID    uuid.UUID              `json:"actor_id"`
	ActorName  string                 `json:"actor_name"`
	Action     string                 `json:"action"`
	TargetType string                 `json:"target_type"`
	TargetID   uuid.UUID              `json:"target_id"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

func newWorkspaceResponse(ws *board.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:          ws.ID,
		Name:        ws.Name,
		Description: ws.Description,
		OwnerID:     ws.OwnerID,
		Visibility:  string(ws.Visibility),
		CreatedAt:   ws.CreatedAt,
		UpdatedAt:   ws.UpdatedAt,
	}
}

func newWorkspaceDetailResponse(detail *appboard.WorkspaceDetail) WorkspaceDetailResponse {
	members := make([]WorkspaceMemberResponse, len(detail.Members))
	for i, m := range detail.Members {
		members[i] = WorkspaceMemberResponse{
			UserID:  m.UserID,
			Name:    m.Name,
			Email:   m.Email,
			Avatar:  m.Avatar,
			Role:    string(m.Role),
			AddedAt: m.AddedAt,
		}
	}
	return WorkspaceDetailResponse{
		WorkspaceResponse: newWorkspaceResponse(detail.Workspace),
		Members:           members,
	}
}

func newBoardResponse(b *board.Board) BoardResponse {
	return BoardResponse{
		ID:          b.ID,
		WorkspaceID: b.WorkspaceID,
		Name:        b.Name,
		Description: b.Description,
		Background:  b.Background,
		IsClosed:    b.IsClosed,
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func newListResponse(l *board.List) ListResponse {
	return ListResponse{
		ID:         l.ID,
		BoardID:    l.BoardID,
		Name:       l.Name,
		Position:   l.Position,
		IsArchived: l.IsArchived,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func newCardResponse(card *board.Card) CardResponse {
	labels := card.Labels
	if labels == nil {
		labels = []string{}
	}
	assignees := card.Assignees
	if assignees == nil {
		assignees = []uuid.UUID{}
	}
	checklist := card.Checklist
	if checklist == nil {
		checklist = []board.ChecklistItem{}
	}
	attachments := card.Attachments
	if attachments == nil {
		attachments = []board.Attachment{}
	}
	comments := card.Comments
	if comments == nil {
		comments = []board.Comment{}
	}

	return CardResponse{
		ID:          card.ID,
		ListID:      card.ListID,
		BoardID:     card.BoardID,
		Title:       card.Title,
		Description: card.Description,
		Position:    card.Position,
		DueDate:     card.DueDate,
		IsCompleted: card.IsCompleted,
		CompletedAt: card.CompletedAt,
		IsOverdue:   card.IsOverdue(),
		Labels:      labels,
		Assignees:   assignees,
		Checklist:   checklist,
		Progress:    card.Progress(),
		Attachments: attachments,
		Comments:    comments,
		IsArchived:  card.IsArchived,
		CreatedBy:   card.CreatedBy,
		CreatedAt:   card.CreatedAt,
		UpdatedAt:   card.UpdatedAt,
	}
}

func newBoardDetailResponse(detail *appboard.BoardDetail, userID uuid.UUID) BoardDetailResponse {
	lists := make([]ListWithCardsResponse, len(detail.Lists))
	for i, lw := range detail.Lists {
		cards := make([]CardResponse, len(lw.Cards))
		for j, card := range lw.Cards {
			cards[j] = newCardResponse(card)
		}
		lists[i] = ListWithCardsResponse{
			ListResponse: newListResponse(lw.List),
			Cards:        cards,
		}
	}

	starred := false
	for _, id := range detail.Board.StarredBy {
		if id == userID {
			starred = true
			break
		}
	}

	return BoardDetailResponse{
		BoardResponse: newBoardResponse(detail.Board),
		IsStarred:     starred,
		Lists:         lists,
	}
}

func newActivityResponses(feed *appboard.ActivityFeed) []ActivityResponse {
	entries := make([]ActivityResponse, len(feed.Activities))
	for i, e := range feed.Activities {
		entries[i] = ActivityResponse{
			ID:         e.Activity.ID,
			ActorID:    e.Activity.ActorID,
			ActorName:  e.ActorName,
			Action:     string(e.Activity.Action),
			TargetType: string(e.Activity.TargetType),
			TargetID:   e.Activity.TargetID,
			Message:    e.Message,
			Metadata:   e.Activity.Metadata,
			CreatedAt:  e.Activity.CreatedAt,
		}
	}
	return entries
}
