package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"gorm.io/gorm"
)

// GormActivityRepository implements board.ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GORM-based activity repository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an activity entry
func (r *GormActivityRepository) Create(ctx context.Context, a *board.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// FindByBoard returns one page of a board's activity feed, newest first
func (r *GormActivityRepository) FindByBoard(ctx context.Context, boardID uuid.UUID, page, limit int) (*board.ActivityPage, error) {
	return r.findPage(ctx, "board_id = ?", boardID, page, limit)
}

// FindByWorkspace returns one page of a workspace's activity feed, newest first
func (r *GormActivityRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, page, limit int) (*board.ActivityPage, error) {
	return r.findPage(ctx, "workspace_id = ?", workspaceID, page, limit)
}

// FindByCard returns one page of a card's activity feed, newest first
func (r *GormActivityRepository) FindByCard(ctx context.Context, cardID uuid.UUID, page, limit int) (*board.ActivityPage, error) {
	return r.findPage(ctx, "target_type = ? AND target_id = ?", []interface{}{board.TargetCard, cardID}, page, limit)
}

func (r *GormActivityRepository) findPage(ctx context.Context, cond string, arg interface{}, page, limit int) (*board.ActivityPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}

	args, ok := arg.([]interface{})
	if !ok {
		args = []interface{}{arg}
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&board.Activity{}).
		Where(cond, args...).
		Count(&total).Error; err != nil {
		return nil, err
	}

	var activities []*board.Activity
	if err := r.db.WithContext(ctx).
		Where(cond, args...).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&activities).Error; err != nil {
		return nil, err
	}

	return &board.ActivityPage{
		Activities: activities,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}, nil
}

// Ensure GormActivityRepository implements board.ActivityRepository
var _ board.ActivityRepository = (*GormActivityRepository)(nil)
