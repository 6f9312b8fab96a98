package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCardRepository implements board.CardRepository using GORM
type GormCardRepository struct {
	db *gorm.DB
}

// NewGormCardRepository creates a new GORM-based card repository
func NewGormCardRepository(db *gorm.DB) *GormCardRepository {
	return &GormCardRepository{db: db}
}

// Create persists a new card
func (r *GormCardRepository) Create(ctx context.Context, c *board.Card) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// Update persists changes to an existing card
func (r *GormCardRepository) Update(ctx context.Context, c *board.Card) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// Delete removes a card permanently
func (r *GormCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&board.Card{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID retrieves a card by ID
func (r *GormCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.Card, error) {
	var c board.Card
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindActiveByList retrieves non-archived cards in a list ordered by position
func (r *GormCardRepository) FindActiveByList(ctx context.Context, listID uuid.UUID) ([]*board.Card, error) {
	var cards []*board.Card
	if err := r.db.WithContext(ctx).
		Where("list_id = ? AND is_archived = ?", listID, false).
		Order("position ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindByList retrieves all cards in a list, archived included
func (r *GormCardRepository) FindByList(ctx context.Context, listID uuid.UUID) ([]*board.Card, error) {
	var cards []*board.Card
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("position ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// CountActiveByList counts non-archived cards in a list
func (r *GormCardRepository) CountActiveByList(ctx context.Context, listID uuid.UUID) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&board.Card{}).
		Where("list_id = ? AND is_archived = ?", listID, false).
		Count(&count).Error
	return int(count), err
}

// UpdatePositions writes position and list placement for the given cards in
// one transaction. A partial batch never persists.
func (r *GormCardRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	if len(positions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, pos := range positions {
			if err := tx.Model(&board.Card{}).
				Where("id = ?", id).
				Update("position", pos).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteByList removes all cards in a list
func (r *GormCardRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&board.Card{}, "list_id = ?", listID).Error
}

// DeleteByBoard removes all cards on a board
func (r *GormCardRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&board.Card{}, "board_id = ?", boardID).Error
}

// Search retrieves non-archived cards on a board matching the filter.
// Keyword and due filters run in SQL; label and assignee filters run over
// the deserialized documents since those live in JSON columns.
func (r *GormCardRepository) Search(ctx context.Context, boardID uuid.UUID, filter board.CardFilter) ([]*board.Card, error) {
	query := r.db.WithContext(ctx).
		Where("board_id = ? AND is_archived = ?", boardID, false)

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date IS NOT NULL AND due_date < ?", *filter.DueBefore)
	}
	if filter.Overdue {
		query = query.Where("due_date IS NOT NULL AND due_date < ? AND is_completed = ?", filter.At, false)
	}

	var cards []*board.Card
	if err := query.Order("position ASC").Find(&cards).Error; err != nil {
		return nil, err
	}

	if len(filter.Labels) == 0 && filter.AssigneeID == nil {
		return cards, nil
	}

	matched := make([]*board.Card, 0, len(cards))
	for _, c := range cards {
		if filter.AssigneeID != nil && !c.HasAssignee(*filter.AssigneeID) {
			continue
		}
		if !hasAllLabels(c, filter.Labels) {
			continue
		}
		matched = append(matched, c)
	}
	return matched, nil
}

func hasAllLabels(c *board.Card, labels []string) bool {
	for _, want := range labels {
		found := false
		for _, have := range c.Labels {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Ensure GormCardRepository implements board.CardRepository
var _ board.CardRepository = (*GormCardRepository)(nil)
