package board

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/identity"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ActivityService serves paginated activity feeds
type ActivityService struct {
	activityRepo board.ActivityRepository
	cardRepo     board.CardRepository
	userRepo     identity.UserRepository
	guard        *guard
	logger       *zap.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(
	workspaceRepo board.WorkspaceRepository,
	boardRepo board.BoardRepository,
	cardRepo board.CardRepository,
	activityRepo board.ActivityRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		cardRepo:     cardRepo,
		userRepo:     userRepo,
		guard:        newGuard(workspaceRepo, boardRepo, logger),
		logger:       logger,
	}
}

// BoardFeed returns a board's activity, newest first
func (s *ActivityService) BoardFeed(ctx context.Context, boardID, userID uuid.UUID, page, limit int) (*ActivityFeed, error) {
	if _, _, err := s.guard.board(ctx, boardID, userID, board.RoleMember); err != nil {
		return nil, err
	}

	result, err := s.activityRepo.FindByBoard(ctx, boardID, page, limit)
	if err != nil {
		s.logger.Error("Failed to load board activity", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load activity")
	}
	return s.buildFeed(ctx, result)
}

// WorkspaceFeed returns a workspace's activity, newest first
func (s *ActivityService) WorkspaceFeed(ctx context.Context, workspaceID, userID uuid.UUID, page, limit int) (*ActivityFeed, error) {
	if _, err := s.guard.workspace(ctx, workspaceID, userID, board.RoleMember); err != nil {
		return nil, err
	}

	result, err := s.activityRepo.FindByWorkspace(ctx, workspaceID, page, limit)
	if err != nil {
		s.logger.Error("Failed to load workspace activity", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load activity")
	}
	return s.buildFeed(ctx, result)
}

// CardFeed returns a single card's activity, newest first
func (s *ActivityService) CardFeed(ctx context.Context, cardID, userID uuid.UUID, page, limit int) (*ActivityFeed, error) {
	c, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if _, _, err := s.guard.board(ctx, c.BoardID, userID, board.RoleMember); err != nil {
		return nil, err
	}

	result, err := s.activityRepo.FindByCard(ctx, cardID, page, limit)
	if err != nil {
		s.logger.Error("Failed to load card activity", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load activity")
	}
	return s.buildFeed(ctx, result)
}

// buildFeed resolves actor names and formats a human-readable message
// per entry. Actors whose accounts no longer exist show up as "Someone".
func (s *ActivityService) buildFeed(ctx context.Context, result *board.ActivityPage) (*ActivityFeed, error) {
	actorIDs := make([]uuid.UUID, 0, len(result.Activities))
	seen := make(map[uuid.UUID]struct{}, len(result.Activities))
	for _, a := range result.Activities {
		if _, ok := seen[a.ActorID]; ok {
			continue
		}
		seen[a.ActorID] = struct{}{}
		actorIDs = append(actorIDs, a.ActorID)
	}

	names := make(map[uuid.UUID]string, len(actorIDs))
	users, err := s.userRepo.FindByIDs(ctx, actorIDs)
	if err != nil {
		s.logger.Warn("Failed to resolve activity actors", zap.Error(err))
	} else {
		for _, u := range users {
			names[u.ID] = u.Name
		}
	}

	entries := make([]ActivityEntry, len(result.Activities))
	for i, a := range result.Activities {
		name, ok := names[a.ActorID]
		if !ok {
			name = "Someone"
		}
		entries[i] = ActivityEntry{
			Activity:  a,
			ActorName: name,
			Message:   a.FormatMessage(name),
		}
	}

	pages := 0
	if result.Limit > 0 {
		pages = int((result.Total + int64(result.Limit) - 1) / int64(result.Limit))
	}
	return &ActivityFeed{
		Activities: entries,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		Pages:      pages,
	}, nil
}
