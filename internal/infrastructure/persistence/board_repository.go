package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBoardRepository implements board.BoardRepository using GORM
type GormBoardRepository struct {
	db *gorm.DB
}

// NewGormBoardRepository creates a new GORM-based board repository
func NewGormBoardRepository(db *gorm.DB) *GormBoardRepository {
	return &GormBoardRepository{db: db}
}

// Create persists a new board
func (r *GormBoardRepository) Create(ctx context.Context, b *board.Board) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// Update persists changes to an existing board
func (r *GormBoardRepository) Update(ctx context.Context, b *board.Board) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Delete removes a board permanently
func (r *GormBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&board.Board{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID retrieves a board by ID
func (r *GormBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.Board, error) {
	var b board.Board
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByWorkspace retrieves all boards in a workspace, newest first
func (r *GormBoardRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*board.Board, error) {
	var boards []*board.Board
	if err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return nil, err
	}
	return boards, nil
}

// Ensure GormBoardRepository implements board.BoardRepository
var _ board.BoardRepository = (*GormBoardRepository)(nil)
