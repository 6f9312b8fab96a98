package board

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// guard resolves a user's access to workspaces and boards. A missing
// resource and a resource the user is not a member of are reported with
// the same NOT_FOUND error, so responses never reveal whether a given ID
// exists. A member whose role is too low gets FORBIDDEN. The internal
// distinction is logged at debug level only.
type guard struct {
	workspaceRepo board.WorkspaceRepository
	boardRepo     board.BoardRepository
	logger        *zap.Logger
}

func newGuard(workspaceRepo board.WorkspaceRepository, boardRepo board.BoardRepository, logger *zap.Logger) *guard {
	return &guard{
		workspaceRepo: workspaceRepo,
		boardRepo:     boardRepo,
		logger:        logger,
	}
}

// workspace returns the workspace if the user holds at least the required role
func (g *guard) workspace(ctx context.Context, workspaceID, userID uuid.UUID, required board.Role) (*board.Workspace, error) {
	ws, err := g.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil || !ws.IsActive {
		g.logger.Debug("workspace lookup failed",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("user_id", userID.String()))
		return nil, shared.ErrNotFound
	}

	role, ok := ws.MemberRole(userID)
	if !ok {
		g.logger.Debug("access denied: not a workspace member",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("user_id", userID.String()))
		return nil, shared.ErrNotFound
	}
	if !role.AtLeast(required) {
		g.logger.Debug("access denied: insufficient role",
			zap.String("workspace_id", workspaceID.String()),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
			zap.String("required", string(required)))
		return nil, shared.ErrForbidden
	}

	return ws, nil
}

// board resolves board access through the parent workspace
func (g *guard) board(ctx context.Context, boardID, userID uuid.UUID, required board.Role) (*board.Board, *board.Workspace, error) {
	b, err := g.boardRepo.FindByID(ctx, boardID)
	if err != nil {
		g.logger.Debug("board lookup failed",
			zap.String("board_id", boardID.String()),
			zap.String("user_id", userID.String()))
		return nil, nil, shared.ErrNotFound
	}

	ws, err := g.workspace(ctx, b.WorkspaceID, userID, required)
	if err != nil {
		return nil, nil, err
	}
	return b, ws, nil
}
