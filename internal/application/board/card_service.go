package board

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CardService handles cards, their position ledger, and everything
// attached to them
type CardService struct {
	listRepo board.ListRepository
	cardRepo board.CardRepository
	storage  ObjectStorage
	guard    *guard
	recorder *activityRecorder
	logger   *zap.Logger
}

// NewCardService creates a new card service
func NewCardService(
	workspaceRepo board.WorkspaceRepository,
	boardRepo board.BoardRepository,
	listRepo board.ListRepository,
	cardRepo board.CardRepository,
	activityRepo board.ActivityRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *CardService {
	return &CardService{
		listRepo: listRepo,
		cardRepo: cardRepo,
		storage:  storage,
		guard:    newGuard(workspaceRepo, boardRepo, logger),
		recorder: newActivityRecorder(activityRepo, logger),
		logger:   logger,
	}
}

// Create appends a card at the end of a list
func (s *CardService) Create(ctx context.Context, input CreateCardInput) (*board.Card, error) {
	l, err := s.listRepo.FindByID(ctx, input.ListID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	b, ws, err := s.guard.board(ctx, l.BoardID, input.ActorID, board.RoleMember)
	if err != nil {
		return nil, err
	}
	if l.IsArchived {
		return nil, shared.NewDomainError("LIST_ARCHIVED", "cards cannot be added to an archived list")
	}

	count, err := s.cardRepo.CountActiveByList(ctx, l.ID)
	if err != nil {
		s.logger.Error("Failed to count list cards", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create card")
	}

	c, err := board.NewCard(l.ID, l.BoardID, input.Title, input.Description, board.AppendPosition(count), input.ActorID)
	if err != nil {
		return nil, err
	}

	if err := s.cardRepo.Create(ctx, c); err != nil {
		s.logger.Error("Failed to create card", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create card")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionCardCreated,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":    c.Title,
			"listName": l.Name,
		}))
	return c, nil
}

// Get returns a single card
func (s *CardService) Get(ctx context.Context, cardID, userID uuid.UUID) (*board.Card, error) {
	c, _, _, err := s.loadCard(ctx, cardID, userID)
	return c, err
}

// Update changes card fields and records the appropriate activity
func (s *CardService) Update(ctx context.Context, input UpdateCardInput) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, input.CardID, input.ActorID)
	if err != nil {
		return nil, err
	}

	dueDateChanged := input.ClearDueDate || input.DueDate != nil
	if err := c.Update(input.Title, input.Description, input.DueDate, input.ClearDueDate); err != nil {
		return nil, err
	}

	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update card", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update card")
	}

	action := board.ActionCardUpdated
	meta := map[string]interface{}{"title": c.Title}
	if dueDateChanged {
		action = board.ActionDueDateChanged
		if c.DueDate != nil {
			meta["dueDate"] = c.DueDate.Format(time.RFC3339)
		}
	}
	s.recorder.record(ctx, board.NewActivity(input.ActorID, action,
		board.TargetCard, c.ID, &b.ID, &ws.ID, meta))
	return c, nil
}

// Move places a card at the given insertion index in the destination
// list's active sequence. The index is clamped to the sequence bounds; on
// a cross-list move the source and destination sequences are renumbered
// in the same batch so neither collection is left with a gap.
func (s *CardService) Move(ctx context.Context, input MoveCardInput) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, input.CardID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if c.IsArchived {
		return nil, shared.NewDomainError("CARD_ARCHIVED", "an archived card cannot be moved")
	}

	dest, err := s.listRepo.FindByID(ctx, input.ToListID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if dest.BoardID != c.BoardID {
		return nil, shared.NewDomainError("INVALID_MOVE", "cards can only move between lists of the same board")
	}
	if dest.IsArchived {
		return nil, shared.NewDomainError("LIST_ARCHIVED", "cards cannot move into an archived list")
	}

	fromListID := c.ListID

	destIDs, err := s.activeCardIDs(ctx, dest.ID)
	if err != nil {
		return nil, err
	}
	positions := board.Renumber(board.InsertAt(destIDs, c.ID, input.Position))

	if fromListID != dest.ID {
		sourceIDs, err := s.activeCardIDs(ctx, fromListID)
		if err != nil {
			return nil, err
		}
		remaining := make([]uuid.UUID, 0, len(sourceIDs))
		for _, id := range sourceIDs {
			if id != c.ID {
				remaining = append(remaining, id)
			}
		}
		for id, pos := range board.Renumber(remaining) {
			positions[id] = pos
		}

		if err := c.MoveTo(dest.ID, positions[c.ID]); err != nil {
			return nil, err
		}
		if err := s.cardRepo.Update(ctx, c); err != nil {
			s.logger.Error("Failed to move card", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to move card")
		}
	}

	if err := s.cardRepo.UpdatePositions(ctx, positions); err != nil {
		s.logger.Error("Failed to renumber cards after move", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to move card")
	}
	c.Position = positions[c.ID]

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionCardMoved,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":      c.Title,
			"fromListId": fromListID.String(),
			"toListId":   dest.ID.String(),
			"position":   positions[c.ID],
		}))
	return c, nil
}

// Reorder applies a complete new ordering of a list's active cards
func (s *CardService) Reorder(ctx context.Context, input ReorderCardsInput) error {
	l, err := s.listRepo.FindByID(ctx, input.ListID)
	if err != nil {
		return shared.ErrNotFound
	}
	if _, _, err := s.guard.board(ctx, l.BoardID, input.ActorID, board.RoleMember); err != nil {
		return err
	}

	current, err := s.activeCardIDs(ctx, l.ID)
	if err != nil {
		return err
	}
	if err := board.ValidateReorder(current, input.CardIDs); err != nil {
		return err
	}

	if err := s.cardRepo.UpdatePositions(ctx, board.Renumber(input.CardIDs)); err != nil {
		s.logger.Error("Failed to reorder cards", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reorder cards")
	}
	return nil
}

// Archive removes a card from its list's active sequence and renumbers
// the remaining cards. The card keeps its stale position value.
func (s *CardService) Archive(ctx context.Context, cardID, actorID uuid.UUID) error {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return err
	}

	if err := c.Archive(); err != nil {
		return err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to archive card", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive card")
	}

	if err := s.renumberList(ctx, c.ListID); err != nil {
		return err
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionCardArchived,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
		}))
	return nil
}

// Restore appends an archived card at the end of its list's active sequence
func (s *CardService) Restore(ctx context.Context, cardID, actorID uuid.UUID) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	count, err := s.cardRepo.CountActiveByList(ctx, c.ListID)
	if err != nil {
		s.logger.Error("Failed to count list cards", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to restore card")
	}

	if err := c.Restore(board.AppendPosition(count)); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to restore card", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to restore card")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionCardRestored,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
		}))
	return c, nil
}

// Delete removes a card permanently and closes the gap it leaves
func (s *CardService) Delete(ctx context.Context, cardID, actorID uuid.UUID) error {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return err
	}

	if err := s.cardRepo.Delete(ctx, c.ID); err != nil {
		s.logger.Error("Failed to delete card", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete card")
	}

	for _, att := range c.Attachments {
		if att.Key == "" {
			continue
		}
		if err := s.storage.Delete(ctx, att.Key); err != nil {
			s.logger.Warn("Failed to delete attachment object",
				zap.String("key", att.Key), zap.Error(err))
		}
	}

	if err := s.renumberList(ctx, c.ListID); err != nil {
		return err
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionCardDeleted,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
		}))
	return nil
}

// ToggleComplete flips the card's completion state
func (s *CardService) ToggleComplete(ctx context.Context, cardID, actorID uuid.UUID) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	c.ToggleComplete()
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update card completion", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update card")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionCardCompleted,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":     c.Title,
			"completed": c.IsCompleted,
		}))
	return c, nil
}

// Assign adds a workspace member to the card's assignees
func (s *CardService) Assign(ctx context.Context, cardID, actorID, assigneeID uuid.UUID) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}
	if !ws.IsMember(assigneeID) {
		return nil, shared.NewDomainError("NOT_A_MEMBER", "assignee must be a workspace member")
	}

	c.Assign(assigneeID)
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to assign card", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to assign card")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionMemberAssigned,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":      c.Title,
			"assigneeId": assigneeID.String(),
		}))
	return c, nil
}

// Unassign removes a member from the card's assignees
func (s *CardService) Unassign(ctx context.Context, cardID, actorID, assigneeID uuid.UUID) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	c.Unassign(assigneeID)
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to unassign card", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to unassign card")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionMemberUnassigned,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":      c.Title,
			"assigneeId": assigneeID.String(),
		}))
	return c, nil
}

// AddLabel adds a label to the card. Adding a label twice is a no-op.
func (s *CardService) AddLabel(ctx context.Context, cardID, actorID uuid.UUID, label string) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	if err := c.AddLabel(label); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to add label", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add label")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionLabelAdded,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
			"label": label,
		}))
	return c, nil
}

// RemoveLabel removes a label from the card
func (s *CardService) RemoveLabel(ctx context.Context, cardID, actorID uuid.UUID, label string) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	c.RemoveLabel(label)
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to remove label", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to remove label")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionLabelRemoved,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
			"label": label,
		}))
	return c, nil
}

// AddChecklistItem appends a checklist item
func (s *CardService) AddChecklistItem(ctx context.Context, input ChecklistItemInput) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, input.CardID, input.ActorID)
	if err != nil {
		return nil, err
	}

	item, err := c.AddChecklistItem(input.Text)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to add checklist item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update checklist")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionChecklistItemAdded,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":    c.Title,
			"itemText": item.Text,
		}))
	return c, nil
}

// SetChecklistItem edits a checklist item's text or completion state
func (s *CardService) SetChecklistItem(ctx context.Context, input ChecklistItemInput) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, input.CardID, input.ActorID)
	if err != nil {
		return nil, err
	}

	wasCompleted := false
	for _, item := range c.Checklist {
		if item.ID == input.ItemID {
			wasCompleted = item.Completed
			break
		}
	}

	item, err := c.SetChecklistItem(input.ItemID, input.Text, input.Completed)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update checklist item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update checklist")
	}

	if item.Completed != wasCompleted {
		action := board.ActionChecklistItemCompleted
		if !item.Completed {
			action = board.ActionChecklistItemReopened
		}
		s.recorder.record(ctx, board.NewActivity(input.ActorID, action,
			board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
				"title":    c.Title,
				"itemText": item.Text,
			}))
	}
	return c, nil
}

// RemoveChecklistItem deletes a checklist item
func (s *CardService) RemoveChecklistItem(ctx context.Context, cardID, actorID, itemID uuid.UUID) (*board.Card, error) {
	c, _, _, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	if err := c.RemoveChecklistItem(itemID); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to remove checklist item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update checklist")
	}
	return c, nil
}

// AddComment adds a comment to the card
func (s *CardService) AddComment(ctx context.Context, input CommentInput) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, input.CardID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if _, err := c.AddComment(input.ActorID, input.Content); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to add comment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to add comment")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionCommentAdded,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
		}))
	return c, nil
}

// UpdateComment edits a comment. Only the author may edit.
func (s *CardService) UpdateComment(ctx context.Context, input CommentInput) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, input.CardID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if _, err := c.UpdateComment(input.CommentID, input.ActorID, input.Content); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to update comment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update comment")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionCommentUpdated,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
		}))
	return c, nil
}

// RemoveComment deletes a comment. The author may always delete their
// own; workspace admins may delete anyone's.
func (s *CardService) RemoveComment(ctx context.Context, cardID, actorID, commentID uuid.UUID) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	isAdmin := ws.HasRole(actorID, board.RoleAdmin)
	if err := c.RemoveComment(commentID, actorID, isAdmin); err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to remove comment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to remove comment")
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionCommentDeleted,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title": c.Title,
		}))
	return c, nil
}

// AddAttachment uploads a file and records it on the card
func (s *CardService) AddAttachment(ctx context.Context, input AttachmentInput) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, input.CardID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if input.FileName == "" || len(input.Data) == 0 {
		return nil, shared.NewDomainError("INVALID_ATTACHMENT", "attachment file name and content are required")
	}

	key := fmt.Sprintf("cards/%s/%s-%s", c.ID, uuid.New(), input.FileName)
	if err := s.storage.Upload(ctx, key, input.Data, input.ContentType); err != nil {
		s.logger.Error("Failed to upload attachment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to upload attachment")
	}

	att, err := c.AddAttachment(input.FileName, key, s.storage.ObjectURL(key), input.ContentType, input.ActorID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to record attachment", zap.Error(err))
		// the orphaned object is cleaned up so retries start fresh
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Failed to delete orphaned attachment object",
				zap.String("key", key), zap.Error(delErr))
		}
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to record attachment")
	}

	s.recorder.record(ctx, board.NewActivity(input.ActorID, board.ActionAttachmentAdded,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":      c.Title,
			"attachment": att.Name,
		}))
	return c, nil
}

// RemoveAttachment drops an attachment and deletes its stored object
func (s *CardService) RemoveAttachment(ctx context.Context, cardID, actorID, attachmentID uuid.UUID) (*board.Card, error) {
	c, b, ws, err := s.loadCard(ctx, cardID, actorID)
	if err != nil {
		return nil, err
	}

	att, err := c.RemoveAttachment(attachmentID)
	if err != nil {
		return nil, err
	}
	if err := s.cardRepo.Update(ctx, c); err != nil {
		s.logger.Error("Failed to remove attachment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to remove attachment")
	}

	if att.Key != "" {
		if err := s.storage.Delete(ctx, att.Key); err != nil {
			s.logger.Warn("Failed to delete attachment object",
				zap.String("key", att.Key), zap.Error(err))
		}
	}

	s.recorder.record(ctx, board.NewActivity(actorID, board.ActionAttachmentRemoved,
		board.TargetCard, c.ID, &b.ID, &ws.ID, map[string]interface{}{
			"title":      c.Title,
			"attachment": att.Name,
		}))
	return c, nil
}

// Search returns the board's active cards matching the filter
func (s *CardService) Search(ctx context.Context, input SearchCardsInput) ([]*board.Card, error) {
	if _, _, err := s.guard.board(ctx, input.BoardID, input.ActorID, board.RoleMember); err != nil {
		return nil, err
	}

	return s.cardRepo.Search(ctx, input.BoardID, board.CardFilter{
		Keyword:    input.Keyword,
		Labels:     input.Labels,
		AssigneeID: input.AssigneeID,
		DueBefore:  input.DueBefore,
		Overdue:    input.Overdue,
		At:         time.Now(),
	})
}

// loadCard resolves a card and checks board access through its workspace
func (s *CardService) loadCard(ctx context.Context, cardID, userID uuid.UUID) (*board.Card, *board.Board, *board.Workspace, error) {
	c, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, nil, nil, shared.ErrNotFound
	}
	b, ws, err := s.guard.board(ctx, c.BoardID, userID, board.RoleMember)
	if err != nil {
		return nil, nil, nil, err
	}
	return c, b, ws, nil
}

func (s *CardService) activeCardIDs(ctx context.Context, listID uuid.UUID) ([]uuid.UUID, error) {
	cards, err := s.cardRepo.FindActiveByList(ctx, listID)
	if err != nil {
		s.logger.Error("Failed to load list cards", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cards")
	}
	ids := make([]uuid.UUID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids, nil
}

// renumberList rewrites a list's active cards back to 0..N-1
func (s *CardService) renumberList(ctx context.Context, listID uuid.UUID) error {
	ordered, err := s.activeCardIDs(ctx, listID)
	if err != nil {
		return err
	}
	if err := s.cardRepo.UpdatePositions(ctx, board.Renumber(ordered)); err != nil {
		s.logger.Error("Failed to renumber cards", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to renumber cards")
	}
	return nil
}
