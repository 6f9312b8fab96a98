package board

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/identity"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// WorkspaceService handles workspace management and membership
type WorkspaceService struct {
	workspaceRepo board.WorkspaceRepository
	userRepo      identity.UserRepository
	guard         *guard
	recorder      *activityRecorder
	logger        *zap.Logger
}

// NewWorkspaceService creates a new workspace service
func NewWorkspaceService(
	workspaceRepo board.WorkspaceRepository,
	boardRepo board.BoardRepository,
	userRepo identity.UserRepository,
	activityRepo board.ActivityRepository,
	logger *zap.Logger,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		guard:         newGuard(workspaceRepo, boardRepo, logger),
		recorder:      newActivityRecorder(activityRepo, logger),
		logger:        logger,
	}
}

// Create creates a workspace owned by the caller
func (s *WorkspaceService) Create(ctx context.Context, input CreateWorkspaceInput) (*board.Workspace, error) {
	ws, err := board.NewWorkspace(input.Name, input.Description, input.OwnerID, input.Visibility)
	if err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.Create(ctx, ws); err != nil {
		s.logger.Error("Failed to create workspace", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create workspace")
	}

	s.recorder.record(ctx, board.NewActivity(input.OwnerID, board.ActionWorkspaceCreated,
		board.TargetWorkspace, ws.ID, nil, &ws.ID, map[string]interface{}{
			"name": ws.Name,
		}))

	s.logger.Info("Workspace created",
		zap.String("workspace_id", ws.ID.String()),
		zap.String("owner_id", input.OwnerID.String()))
	return ws, nil
}

// ListForUser returns all active workspaces the user can see
func (s *WorkspaceService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*board.Workspace, error) {
	return s.workspaceRepo.FindByUser(ctx, userID)
}

// Get returns a workspace with resolved member details
func (s *WorkspaceService) Get(ctx context.Context, workspaceID, userID uuid.UUID) (*WorkspaceDetail, error) {
	ws, err := s.guard.workspace(ctx, workspaceID, userID, board.RoleMember)
	if err != nil {
		return nil, err
	}

	members, err := s.resolveMembers(ctx, ws)
	if err != nil {
		return nil, err
	}
	return &WorkspaceDetail{Workspace: ws, Members: members}, nil
}

// Update updates workspace settings. Requires the admin role.
func (s *WorkspaceService) Update(ctx context.Context, input UpdateWorkspaceInput) (*board.Workspace, error) {
	ws, err := s.guard.workspace(ctx, input.WorkspaceID, input.ActorID, board.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := ws.Update(input.Name, input.Description, input.Visibility); err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		s.logger.Error("Failed to update workspace", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update workspace")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionWorkspaceUpdated,
		board.TargetWorkspace, ws.ID, nil, &ws.ID, map[string]interface{}{
			"name": ws.Name,
		}))
	return ws, nil
}

// Delete deactivates a workspace. Only the owner may do this.
func (s *WorkspaceService) Delete(ctx context.Context, workspaceID, actorID uuid.UUID) error {
	ws, err := s.guard.workspace(ctx, workspaceID, actorID, board.RoleOwner)
	if err != nil {
		return err
	}

	ws.Deactivate()
	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		s.logger.Error("Failed to deactivate workspace", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete workspace")
	}

	s.logger.Info("Workspace deactivated",
		zap.String("workspace_id", workspaceID.String()),
		zap.String("actor_id", actorID.String()))
	return nil
}

// AddMember invites a user by email. Requires the admin role.
func (s *WorkspaceService) AddMember(ctx context.Context, input AddMemberInput) (*WorkspaceDetail, error) {
	ws, err := s.guard.workspace(ctx, input.WorkspaceID, input.ActorID, board.RoleAdmin)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "No account exists for this email")
	}

	if err := ws.AddMember(user.ID, input.Role); err != nil {
		return nil, err
	}

	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		s.logger.Error("Failed to add workspace member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add member")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionWorkspaceMemberAdded,
		board.TargetWorkspace, ws.ID, nil, &ws.ID, map[string]interface{}{
			"member": user.Name,
			"role":   string(input.Role),
		}))

	members, err := s.resolveMembers(ctx, ws)
	if err != nil {
		return nil, err
	}
	return &WorkspaceDetail{Workspace: ws, Members: members}, nil
}

// UpdateMemberRole changes an existing member's role. Requires the admin role.
func (s *WorkspaceService) UpdateMemberRole(ctx context.Context, input UpdateMemberRoleInput) error {
	ws, err := s.guard.workspace(ctx, input.WorkspaceID, input.ActorID, board.RoleAdmin)
	if err != nil {
		return err
	}

	if err := ws.SetMemberRole(input.MemberID, input.Role); err != nil {
		return err
	}

	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		s.logger.Error("Failed to update member role", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update member role")
	}
	return nil
}

// RemoveMember removes a member. Admins remove anyone but the owner;
// a member may remove themselves.
func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, memberID uuid.UUID) error {
	required := board.RoleAdmin
	if actorID == memberID {
		required = board.RoleMember
	}
	ws, err := s.guard.workspace(ctx, workspaceID, actorID, required)
	if err != nil {
		return err
	}

	if err := ws.RemoveMember(memberID); err != nil {
		return err
	}

	if err := s.workspaceRepo.Update(ctx, ws); err != nil {
		s.logger.Error("Failed to remove workspace member", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove member")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionWorkspaceMemberRemoved,
		board.TargetWorkspace, ws.ID, nil, &ws.ID, map[string]interface{}{
			"memberId": memberID.String(),
		}))
	return nil
}

func (s *WorkspaceService) resolveMembers(ctx context.Context, ws *board.Workspace) ([]MemberInfo, error) {
	ids := make([]uuid.UUID, 0, len(ws.Members))
	for _, m := range ws.Members {
		ids = append(ids, m.UserID)
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to resolve workspace members", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load members")
	}

	byID := make(map[uuid.UUID]*identity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	members := make([]MemberInfo, 0, len(ws.Members))
	for _, m := range ws.Members {
		role := m.Role
		if m.UserID == ws.OwnerID {
			role = board.RoleOwner
		}
		info := MemberInfo{
			UserID:  m.UserID,
			Role:    role,
			AddedAt: m.AddedAt,
		}
		if u, ok := byID[m.UserID]; ok {
			info.Name = u.Name
			info.Email = u.Email
			info.Avatar = u.Avatar
		}
		members = append(members, info)
	}
	return members, nil
}
