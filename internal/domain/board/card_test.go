package board

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCard(t *testing.T) *Card {
	t.Helper()
	card, err := NewCard(uuid.New(), uuid.New(), "Fix login bug", "", 0, uuid.New())
	require.NoError(t, err)
	return card
}

func TestNewCard_Validation(t *testing.T) {
	listID, boardID, author := uuid.New(), uuid.New(), uuid.New()

	_, err := NewCard(listID, boardID, "", "", 0, author)
	assert.Error(t, err)

	_, err = NewCard(listID, boardID, strings.Repeat("x", 201), "", 0, author)
	assert.Error(t, err)

	_, err = NewCard(listID, boardID, "ok", strings.Repeat("x", 2001), 0, author)
	assert.Error(t, err)

	_, err = NewCard(listID, boardID, "ok", "", -1, author)
	assert.Error(t, err)
}

func TestCard_ToggleComplete(t *testing.T) {
	card := newTestCard(t)

	card.ToggleComplete()
	assert.True(t, card.IsCompleted)
	require.NotNil(t, card.CompletedAt)

	card.ToggleComplete()
	assert.False(t, card.IsCompleted)
	assert.Nil(t, card.CompletedAt)
}

func TestCard_IsOverdue(t *testing.T) {
	card := newTestCard(t)
	assert.False(t, card.IsOverdue())

	past := time.Now().Add(-time.Hour)
	require.NoError(t, card.Update("", "", &past, false))
	assert.True(t, card.IsOverdue())

	card.ToggleComplete()
	assert.False(t, card.IsOverdue())
}

func TestCard_ArchiveRestore(t *testing.T) {
	card := newTestCard(t)

	require.NoError(t, card.Archive())
	assert.True(t, card.IsArchived)
	assert.Error(t, card.Archive())

	require.NoError(t, card.Restore(4))
	assert.False(t, card.IsArchived)
	assert.Equal(t, 4, card.Position)
	assert.Error(t, card.Restore(0))
}

func TestCard_Labels(t *testing.T) {
	card := newTestCard(t)

	require.NoError(t, card.AddLabel("urgent"))
	require.NoError(t, card.AddLabel("urgent")) // idempotent
	require.NoError(t, card.AddLabel("backend"))
	assert.Equal(t, []string{"urgent", "backend"}, card.Labels)

	card.RemoveLabel("urgent")
	assert.Equal(t, []string{"backend"}, card.Labels)
	card.RemoveLabel("missing") // no-op
}

func TestCard_Assignees(t *testing.T) {
	card := newTestCard(t)
	user := uuid.New()

	card.Assign(user)
	card.Assign(user)
	assert.Len(t, card.Assignees, 1)
	assert.True(t, card.HasAssignee(user))

	card.Unassign(user)
	assert.False(t, card.HasAssignee(user))
}

func TestCard_Checklist(t *testing.T) {
	card := newTestCard(t)

	item, err := card.AddChecklistItem("write tests")
	require.NoError(t, err)
	_, err = card.AddChecklistItem("ship it")
	require.NoError(t, err)

	updated, err := card.SetChecklistItem(item.ID, "", true)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedAt)

	progress := card.Progress()
	assert.Equal(t, ChecklistProgress{Total: 2, Completed: 1, Percentage: 50}, progress)

	updated, err = card.SetChecklistItem(item.ID, "", false)
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	require.NoError(t, card.RemoveChecklistItem(item.ID))
	assert.Error(t, card.RemoveChecklistItem(item.ID))
}

func TestCard_Comments(t *testing.T) {
	card := newTestCard(t)
	author := uuid.New()
	other := uuid.New()

	comment, err := card.AddComment(author, "looks good")
	require.NoError(t, err)

	_, err = card.UpdateComment(comment.ID, other, "hijacked")
	require.Error(t, err)

	updated, err := card.UpdateComment(comment.ID, author, "looks great")
	require.NoError(t, err)
	assert.Equal(t, "looks great", updated.Content)

	// non-author, non-admin cannot delete
	require.Error(t, card.RemoveComment(comment.ID, other, false))
	// admin can
	require.NoError(t, card.RemoveComment(comment.ID, other, true))
	assert.Empty(t, card.Comments)
}

func TestCard_Attachments(t *testing.T) {
	card := newTestCard(t)
	uploader := uuid.New()

	att, err := card.AddAttachment("design.png", "cards/abc/design.png", "https://bucket/design.png", "image/png", uploader)
	require.NoError(t, err)
	assert.Equal(t, uploader, att.UploadedBy)

	removed, err := card.RemoveAttachment(att.ID)
	require.NoError(t, err)
	assert.Equal(t, att.ID, removed.ID)

	_, err = card.RemoveAttachment(att.ID)
	assert.Error(t, err)
}
