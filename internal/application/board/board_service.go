package board

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// BoardService handles board management
type BoardService struct {
	boardRepo board.BoardRepository
	listRepo  board.ListRepository
	cardRepo  board.CardRepository
	guard     *guard
	recorder  *activityRecorder
	logger    *zap.Logger
}

// NewBoardService creates a new board service
func NewBoardService(
	workspaceRepo board.WorkspaceRepository,
	boardRepo board.BoardRepository,
	listRepo board.ListRepository,
	cardRepo board.CardRepository,
	activityRepo board.ActivityRepository,
	logger *zap.Logger,
) *BoardService {
	return &BoardService{
		boardRepo: boardRepo,
		listRepo:  listRepo,
		cardRepo:  cardRepo,
		guard:     newGuard(workspaceRepo, boardRepo, logger),
		recorder:  newActivityRecorder(activityRepo, logger),
		logger:    logger,
	}
}

// Create creates a board in a workspace. Any member may create boards.
func (s *BoardService) Create(ctx context.Context, input CreateBoardInput) (*board.Board, error) {
	ws, err := s.guard.workspace(ctx, input.WorkspaceID, input.ActorID, board.RoleMember)
	if err != nil {
		return nil, err
	}

	b, err := board.NewBoard(ws.ID, input.Name, input.Description, input.Background, input.ActorID)
	if err != nil {
		return nil, err
	}

	if err := s.boardRepo.Create(ctx, b); err != nil {
		s.logger.Error("Failed to create board", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create board")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionBoardCreated,
		board.TargetBoard, b.ID, &b.ID, &ws.ID, map[string]interface{}{
			"name": b.Name,
		}))

	s.logger.Info("Board created",
		zap.String("board_id", b.ID.String()),
		zap.String("workspace_id", ws.ID.String()))
	return b, nil
}

// ListByWorkspace returns a workspace's boards, newest first
func (s *BoardService) ListByWorkspace(ctx context.Context, workspaceID, userID uuid.UUID) ([]*board.Board, error) {
	if _, err := s.guard.workspace(ctx, workspaceID, userID, board.RoleMember); err != nil {
		return nil, err
	}
	return s.boardRepo.FindByWorkspace(ctx, workspaceID)
}

// Get returns a board with its active lists and their active cards, both
// in position order
func (s *BoardService) Get(ctx context.Context, boardID, userID uuid.UUID) (*BoardDetail, error) {
	b, _, err := s.guard.board(ctx, boardID, userID, board.RoleMember)
	if err != nil {
		return nil, err
	}

	lists, err := s.listRepo.FindActiveByBoard(ctx, b.ID)
	if err != nil {
		s.logger.Error("Failed to load board lists", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load board")
	}

	detail := &BoardDetail{Board: b, Lists: make([]ListWithCards, 0, len(lists))}
	for _, l := range lists {
		cards, err := s.cardRepo.FindActiveByList(ctx, l.ID)
		if err != nil {
			s.logger.Error("Failed to load list cards", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load board")
		}
		detail.Lists = append(detail.Lists, ListWithCards{List: l, Cards: cards})
	}
	return detail, nil
}

// Update updates board fields. Requires the admin role.
func (s *BoardService) Update(ctx context.Context, input UpdateBoardInput) (*board.Board, error) {
	b, ws, err := s.guard.board(ctx, input.BoardID, input.ActorID, board.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := b.Update(input.Name, input.Description, input.Background); err != nil {
		return nil, err
	}

	if err := s.boardRepo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to update board", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update board")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionBoardUpdated,
		board.TargetBoard, b.ID, &b.ID, &ws.ID, map[string]interface{}{
			"name": b.Name,
		}))
	return b, nil
}

// SetClosed opens or closes a board. Requires the admin role.
func (s *BoardService) SetClosed(ctx context.Context, boardID, actorID uuid.UUID, closed bool) (*board.Board, error) {
	b, _, err := s.guard.board(ctx, boardID, actorID, board.RoleAdmin)
	if err != nil {
		return nil, err
	}

	b.SetClosed(closed)
	if err := s.boardRepo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to update board", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update board")
	}
	return b, nil
}

// ToggleStar stars or unstars a board for the caller and reports the new state
func (s *BoardService) ToggleStar(ctx context.Context, boardID, userID uuid.UUID) (bool, error) {
	b, _, err := s.guard.board(ctx, boardID, userID, board.RoleMember)
	if err != nil {
		return false, err
	}

	starred := b.ToggleStar(userID)
	if err := s.boardRepo.Update(ctx, b); err != nil {
		s.logger.Error("Failed to update board star", zap.Error(err))
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to update board")
	}
	return starred, nil
}

// Delete removes a board and everything on it. Requires the admin role.
// The cascade is explicit: cards first, then lists, then the board row.
func (s *BoardService) Delete(ctx context.Context, boardID, actorID uuid.UUID) error {
	b, ws, err := s.guard.board(ctx, boardID, actorID, board.RoleAdmin)
	if err != nil {
		return err
	}

	if err := s.cardRepo.DeleteByBoard(ctx, b.ID); err != nil {
		s.logger.Error("Failed to delete board cards", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete board")
	}
	if err := s.listRepo.DeleteByBoard(ctx, b.ID); err != nil {
		s.logger.Error("Failed to delete board lists", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete board")
	}
	if err := s.boardRepo.Delete(ctx, b.ID); err != nil {
		s.logger.Error("Failed to delete board", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete board")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionBoardDeleted,
		board.TargetBoard, b.ID, nil, &ws.ID, map[string]interface{}{
			"name": b.Name,
		}))

	s.logger.Info("Board deleted",
		zap.String("board_id", b.ID.String()),
		zap.String("actor_id", actorID.String()))
	return nil
}
