package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormListRepository implements board.ListRepository using GORM
type GormListRepository struct {
	db *gorm.DB
}

// NewGormListRepository creates a new GORM-based list repository
func NewGormListRepository(db *gorm.DB) *GormListRepository {
	return &GormListRepository{db: db}
}

// Create persists a new list
func (r *GormListRepository) Create(ctx context.Context, l *board.List) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Update persists changes to an existing list
func (r *GormListRepository) Update(ctx context.Context, l *board.List) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// Delete removes a list permanently
func (r *GormListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&board.List{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID retrieves a list by ID
func (r *GormListRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.List, error) {
	var l board.List
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindActiveByBoard retrieves non-archived lists on a board ordered by position
func (r *GormListRepository) FindActiveByBoard(ctx context.Context, boardID uuid.UUID) ([]*board.List, error) {
	var lists []*board.List
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND is_archived = ?", boardID, false).
		Order("position ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// FindByBoard retrieves all lists on a board, archived included
func (r *GormListRepository) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*board.List, error) {
	var lists []*board.List
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position ASC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// CountActiveByBoard counts non-archived lists on a board
func (r *GormListRepository) CountActiveByBoard(ctx context.Context, boardID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&board.List{}).
		Where("board_id = ? AND is_archived = ?", boardID, false).
		Count(&count).Error
	return int(count), err
}

// UpdatePositions writes position values for the given lists in one
// transaction. A partial batch never persists.
func (r *GormListRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if len(positions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, pos := range positions {
			if err := tx.Model(&board.List{}).
				Where("id = ?", id).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByBoard removes all lists on a board
func (r *GormListRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&board.List{}, "board_id = ?", boardID).Error
}

// Ensure GormListRepository implements board.ListRepository
var _ board.ListRepository = (*GormListRepository)(nil)
