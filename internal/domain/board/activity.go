package board

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/taskboard/backend/internal/domain/shared"
)

// Action is the closed set of auditable operations. New actions must be
// added here and to FormatMessage together.
type Action string

const (
	ActionCardCreated            Action = "card_created"
	ActionCardUpdated            Action = "card_updated"
	ActionCardDeleted            Action = "card_deleted"
	ActionCardMoved              Action = "card_moved"
	ActionCardArchived           Action = "card_archived"
	ActionCardRestored           Action = "card_restored"
	ActionCardCompleted          Action = "card_completed"
	ActionCommentAdded           Action = "comment_added"
	ActionCommentUpdated         Action = "comment_updated"
	ActionCommentDeleted         Action = "comment_deleted"
	ActionMemberAssigned         Action = "member_assigned"
	ActionMemberUnassigned       Action = "member_unassigned"
	ActionChecklistItemAdded     Action = "checklist_item_added"
	ActionChecklistItemCompleted Action = "checklist_item_completed"
	ActionChecklistItemReopened  Action = "checklist_item_uncompleted"
	ActionListCreated            Action = "list_created"
	ActionListUpdated            Action = "list_updated"
	ActionListDeleted            Action = "list_deleted"
	ActionListArchived           Action = "list_archived"
	ActionBoardCreated           Action = "board_created"
	ActionBoardUpdated           Action = "board_updated"
	ActionBoardDeleted           Action = "board_deleted"
	ActionWorkspaceCreated       Action = "workspace_created"
	ActionWorkspaceUpdated       Action = "workspace_updated"
	ActionWorkspaceMemberAdded   Action = "workspace_member_added"
	ActionWorkspaceMemberRemoved Action = "workspace_member_removed"
	ActionDueDateChanged         Action = "due_date_changed"
	ActionLabelAdded             Action = "label_added"
	ActionLabelRemoved           Action = "label_removed"
	ActionAttachmentAdded        Action = "attachment_added"
	ActionAttachmentRemoved      Action = "attachment_removed"
)

// TargetType names the kind of entity an activity refers to.
type TargetType string

const (
	TargetCard      TargetType = "card"
	TargetList      TargetType = "list"
	TargetBoard     TargetType = "board"
	TargetWorkspace TargetType = "workspace"
	TargetComment   TargetType = "comment"
)

// Activity is an append-only audit record. It is never mutated after
// creation, and a failed write must never abort the operation that
// produced it.
type Activity struct {
	shared.BaseEntity
	ActorID     uuid.UUID              `gorm:"type:uuid;not null;index"`
	Action      Action                 `gorm:"size:50;not null"`
	TargetType  TargetType             `gorm:"size:20;not null"`
	TargetID    uuid.UUID              `gorm:"type:uuid;not null"`
	BoardID     *uuid.UUID             `gorm:"type:uuid;index"`
	WorkspaceID *uuid.UUID             `gorm:"type:uuid;index"`
	Metadata    map[string]interface{} `gorm:"serializer:json"`
}

// NewActivity creates an audit record.
func NewActivity(actorID uuid.UUID, action Action, targetType TargetType, targetID uuid.UUID, boardID, workspaceID *uuid.UUID, metadata map[string]interface{}) *Activity {
	return &Activity{
		BaseEntity:  shared.NewBaseEntity(),
		ActorID:     actorID,
		Action:      action,
		TargetType:  targetType,
		TargetID:    targetID,
		BoardID:     boardID,
		WorkspaceID: workspaceID,
		Metadata:    metadata,
	}
}

// meta returns a metadata value as a display string, or the fallback.
func (a *Activity) meta(key, fallback string) string {
	if v, ok := a.Metadata[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// FormatMessage renders a human-readable sentence for the activity feed.
// The switch is exhaustive over Action so that adding an action without a
// message is caught in review rather than at runtime.
func (a *Activity) FormatMessage(actorName string) string {
	target := a.meta("title", a.meta("name", "an item"))
	switch a.Action {
	case ActionCardCreated:
		return fmt.Sprintf("%s created card %q", actorName, target)
	case ActionCardUpdated:
		return fmt.Sprintf("%s updated card %q", actorName, target)
	case ActionCardDeleted:
		return fmt.Sprintf("%s deleted card %q", actorName, target)
	case ActionCardMoved:
		return fmt.Sprintf("%s moved card %q", actorName, target)
	case ActionCardArchived:
		return fmt.Sprintf("%s archived card %q", actorName, target)
	case ActionCardRestored:
		return fmt.Sprintf("%s restored card %q", actorName, target)
	case ActionCardCompleted:
		return fmt.Sprintf("%s completed card %q", actorName, target)
	case ActionCommentAdded:
		return fmt.Sprintf("%s commented on card %q", actorName, target)
	case ActionCommentUpdated:
		return fmt.Sprintf("%s edited a comment on card %q", actorName, target)
	case ActionCommentDeleted:
		return fmt.Sprintf("%s deleted a comment on card %q", actorName, target)
	case ActionMemberAssigned:
		return fmt.Sprintf("%s assigned %s to card %q", actorName, a.meta("member", "a member"), target)
	case ActionMemberUnassigned:
		return fmt.Sprintf("%s removed %s from card %q", actorName, a.meta("member", "a member"), target)
	case ActionChecklistItemAdded:
		return fmt.Sprintf("%s added a checklist item to card %q", actorName, target)
	case ActionChecklistItemCompleted:
		return fmt.Sprintf("%s completed a checklist item on card %q", actorName, target)
	case ActionChecklistItemReopened:
		return fmt.Sprintf("%s reopened a checklist item on card %q", actorName, target)
	case ActionListCreated:
		return fmt.Sprintf("%s created list %q", actorName, target)
	case ActionListUpdated:
		return fmt.Sprintf("%s updated list %q", actorName, target)
	case ActionListDeleted:
		return fmt.Sprintf("%s deleted list %q", actorName, target)
	case ActionListArchived:
		return fmt.Sprintf("%s archived list %q", actorName, target)
	case ActionBoardCreated:
		return fmt.Sprintf("%s created board %q", actorName, target)
	case ActionBoardUpdated:
		return fmt.Sprintf("%s updated board %q", actorName, target)
	case ActionBoardDeleted:
		return fmt.Sprintf("%s deleted board %q", actorName, target)
	case ActionWorkspaceCreated:
		return fmt.Sprintf("%s created workspace %q", actorName, target)
	case ActionWorkspaceUpdated:
		return fmt.Sprintf("%s updated workspace %q", actorName, target)
	case ActionWorkspaceMemberAdded:
		return fmt.Sprintf("%s added %s to the workspace", actorName, a.meta("member", "a member"))
	case ActionWorkspaceMemberRemoved:
		return fmt.Sprintf("%s removed %s from the workspace", actorName, a.meta("member", "a member"))
	case ActionDueDateChanged:
		return fmt.Sprintf("%s changed the due date of card %q", actorName, target)
	case ActionLabelAdded:
		return fmt.Sprintf("%s added label %s to card %q", actorName, a.meta("label", "a label"), target)
	case ActionLabelRemoved:
		return fmt.Sprintf("%s removed label %s from card %q", actorName, a.meta("label", "a label"), target)
	case ActionAttachmentAdded:
		return fmt.Sprintf("%s attached %s to card %q", actorName, a.meta("attachment", "a file"), target)
	case ActionAttachmentRemoved:
		return fmt.Sprintf("%s removed %s from card %q", actorName, a.meta("attachment", "a file"), target)
	default:
		return fmt.Sprintf("%s performed %s", actorName, a.Action)
	}
}
