package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormWorkspaceRepository implements board.WorkspaceRepository using GORM
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewGormWorkspaceRepository creates a new GORM-based workspace repository
func NewGormWorkspaceRepository(db *gorm.DB) *GormWorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// Create persists a new workspace
func (r *GormWorkspaceRepository) Create(ctx context.Context, ws *board.Workspace) error {
	return r.db.WithContext(ctx).Create(ws).Error
}

// Update persists changes to an existing workspace
func (r *GormWorkspaceRepository) Update(ctx context.Context, ws *board.Workspace) error {
	return r.db.WithContext(ctx).Save(ws).Error
}

// FindByID retrieves a workspace by ID
func (r *GormWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.Workspace, error) {
	var ws board.Workspace
	if err := r.db.WithContext(ctx).First(&ws, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ws, nil
}

// FindByUser retrieves all active workspaces the user owns or is a member of.
// Membership lives inside the members JSON document, so ownership is filtered
// in SQL and membership in memory.
func (r *GormWorkspaceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*board.Workspace, error) {
	var all []*board.Workspace
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&all).Error; err != nil {
		return nil, err
	}

	workspaces := make([]*board.Workspace, 0, len(all))
	for _, ws := range all {
		if ws.IsMember(userID) {
			workspaces = append(workspaces, ws)
		}
	}
	return workspaces, nil
}

// Ensure GormWorkspaceRepository implements board.WorkspaceRepository
var _ board.WorkspaceRepository = (*GormWorkspaceRepository)(nil)
