package board

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ListService handles lists and their position ledger. Active lists on a
// board always occupy the dense range 0..N-1.
type ListService struct {
	listRepo board.ListRepository
	cardRepo board.CardRepository
	guard    *guard
	recorder *activityRecorder
	logger   *zap.Logger
}

// NewListService creates a new list service
func NewListService(
	workspaceRepo board.WorkspaceRepository,
	boardRepo board.BoardRepository,
	listRepo board.ListRepository,
	cardRepo board.CardRepository,
	activityRepo board.ActivityRepository,
	logger *zap.Logger,
) *ListService {
	return &ListService{
		listRepo: listRepo,
		cardRepo: cardRepo,
		guard:    newGuard(workspaceRepo, boardRepo, logger),
		recorder: newActivityRecorder(activityRepo, logger),
		logger:   logger,
	}
}

// Create appends a list at the end of the board
func (s *ListService) Create(ctx context.Context, input CreateListInput) (*board.List, error) {
	b, ws, err := s.guard.board(ctx, input.BoardID, input.ActorID, board.RoleMember)
	if err != nil {
		return nil, err
	}

	count, err := s.listRepo.CountActiveByBoard(ctx, b.ID)
	if err != nil {
		s.logger.Error("Failed to count board lists", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create list")
	}

	l, err := board.NewList(b.ID, input.Name, board.AppendPosition(count))
	if err != nil {
		return nil, err
	}

	if err := s.listRepo.Create(ctx, l); err != nil {
		s.logger.Error("Failed to create list", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create list")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionListCreated,
		board.TargetList, l.ID, &b.ID, &ws.ID, map[string]interface{}{
			"name": l.Name,
		}))
	return l, nil
}

// Rename renames a list
func (s *ListService) Rename(ctx context.Context, input RenameListInput) (*board.List, error) {
	l, err := s.listRepo.FindByID(ctx, input.ListID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	b, ws, err := s.guard.board(ctx, l.BoardID, input.ActorID, board.RoleMember)
	if err != nil {
		return nil, err
	}

	if err := l.Rename(input.Name); err != nil {
		return nil, err
	}
	if err := s.listRepo.Update(ctx, l); err != nil {
		s.logger.Error("Failed to rename list", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to rename list")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionListUpdated,
		board.TargetList, l.ID, &b.ID, &ws.ID, map[string]interface{}{
			"name": l.Name,
		}))
	return l, nil
}

// Move places a list at the given insertion index within the board's
// active sequence. Out-of-range indices are clamped and every displaced
// sibling is renumbered in the same batch.
func (s *ListService) Move(ctx context.Context, listID, actorID uuid.UUID, position int) error {
	l, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return shared.ErrNotFound
	}
	if _, _, err := s.guard.board(ctx, l.BoardID, actorID, board.RoleMember); err != nil {
		return err
	}
	if l.IsArchived {
		return shared.NewDomainError("LIST_ARCHIVED", "an archived list cannot be moved")
	}

	ordered, err := s.activeListIDs(ctx, l.BoardID)
	if err != nil {
		return err
	}

	positions := board.Renumber(board.InsertAt(ordered, l.ID, position))
	if err := s.listRepo.UpdatePositions(ctx, positions); err != nil {
		s.logger.Error("Failed to move list", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to move list")
	}
	return nil
}

// Reorder applies a complete new ordering of the board's active lists.
// The proposed ordering must contain exactly the current active lists.
func (s *ListService) Reorder(ctx context.Context, input ReorderListsInput) error {
	if _, _, err := s.guard.board(ctx, input.BoardID, input.ActorID, board.RoleMember); err != nil {
		return err
	}

	current, err := s.activeListIDs(ctx, input.BoardID)
	if err != nil {
		return err
	}
	if err := board.ValidateReorder(current, input.ListIDs); err != nil {
		return err
	}

	if err := s.listRepo.UpdatePositions(ctx, board.Renumber(input.ListIDs)); err != nil {
		s.logger.Error("Failed to reorder lists", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reorder lists")
	}
	return nil
}

// Archive removes a list from the active sequence and renumbers the rest.
// The archived list keeps its stale position value.
func (s *ListService) Archive(ctx context.Context, listID, actorID uuid.UUID) error {
	l, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return shared.ErrNotFound
	}
	b, ws, err := s.guard.board(ctx, l.BoardID, actorID, board.RoleMember)
	if err != nil {
		return err
	}

	if err := l.Archive(); err != nil {
		return err
	}
	if err := s.listRepo.Update(ctx, l); err != nil {
		s.logger.Error("Failed to archive list", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive list")
	}

	if err := s.renumberBoard(ctx, l.BoardID); err != nil {
		return err
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionListArchived,
		board.TargetList, l.ID, &b.ID, &ws.ID, map[string]interface{}{
			"name": l.Name,
		}))
	return nil
}

// Restore appends an archived list at the end of the active sequence
func (s *ListService) Restore(ctx context.Context, listID, actorID uuid.UUID) (*board.List, error) {
	l, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	b, ws, err := s.guard.board(ctx, l.BoardID, actorID, board.RoleMember)
	if err != nil {
		return nil, err
	}

	count, err := s.listRepo.CountActiveByBoard(ctx, l.BoardID)
	if err != nil {
		s.logger.Error("Failed to count board lists", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to restore list")
	}

	if err := l.Restore(board.AppendPosition(count)); err != nil {
		return nil, err
	}
	if err := s.listRepo.Update(ctx, l); err != nil {
		s.logger.Error("Failed to restore list", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to restore list")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionListUpdated,
		board.TargetList, l.ID, &b.ID, &ws.ID, map[string]interface{}{
			"name":     l.Name,
			"restored": true,
		}))
	return l, nil
}

// Delete removes a list and its cards permanently, then closes the gap
// in the active sequence
func (s *ListService) Delete(ctx context.Context, listID, actorID uuid.UUID) error {
	l, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return shared.ErrNotFound
	}
	b, ws, err := s.guard.board(ctx, l.BoardID, actorID, board.RoleAdmin)
	if err != nil {
		return err
	}

	if err := s.cardRepo.DeleteByList(ctx, l.ID); err != nil {
		s.logger.Error("Failed to delete list cards", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete list")
	}
	if err := s.listRepo.Delete(ctx, l.ID); err != nil {
		s.logger.Error("Failed to delete list", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete list")
	}

	if err := s.renumberBoard(ctx, l.BoardID); err != nil {
		return err
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionListDeleted,
		board.TargetList, l.ID, &b.ID, &ws.ID, map[string]interface{}{
			"name": l.Name,
		}))
	return nil
}

func (s *ListService) activeListIDs(ctx context.Context, boardID uuid.UUID) ([]uuid.UUID, error) {
	lists, err := s.listRepo.FindActiveByBoard(ctx, boardID)
	if err != nil {
		s.logger.Error("Failed to load board lists", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load lists")
	}
	ids := make([]uuid.UUID, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}
	return ids, nil
}

// renumberBoard rewrites the board's active lists back to 0..N-1
func (s *ListService) renumberBoard(ctx context.Context, boardID uuid.UUID) error {
	ordered, err := s.activeListIDs(ctx, boardID)
	if err != nil {
		return err
	}
	if err := s.listRepo.UpdatePositions(ctx, board.Renumber(ordered)); err != nil {
		s.logger.Error("Failed to renumber lists", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to renumber lists")
	}
	return nil
}
