package board

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type cardServiceMocks struct {
	listRepo     *MockListRepository
	cardRepo     *MockCardRepository
	activityRepo *MockActivityRepository
	storage      *MockObjectStorage
}

func newCardService(f *fixture) (*CardService, *cardServiceMocks) {
	m := &cardServiceMocks{
		listRepo:     new(MockListRepository),
		cardRepo:     new(MockCardRepository),
		activityRepo: new(MockActivityRepository),
		storage:      new(MockObjectStorage),
	}
	workspaceRepo := new(MockWorkspaceRepository)
	boardRepo := new(MockBoardRepository)
	workspaceRepo.On("FindByID", mock.Anything, f.workspace.ID).Return(f.workspace, nil).Maybe()
	boardRepo.On("FindByID", mock.Anything, f.board.ID).Return(f.board, nil).Maybe()
	m.activityRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := NewCardService(workspaceRepo, boardRepo, m.listRepo, m.cardRepo, m.activityRepo, m.storage, zap.NewNop())
	return svc, m
}

func makeCards(t *testing.T, listID, boardID, createdBy uuid.UUID, titles ...string) []*board.Card {
	t.Helper()
	cards := make([]*board.Card, len(titles))
	for i, title := range titles {
		c, err := board.NewCard(listID, boardID, title, "", i, createdBy)
		require.NoError(t, err)
		cards[i] = c
	}
	return cards
}

func TestCardService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("appends at the end of the list", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		svc, m := newCardService(f)

		m.listRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		m.cardRepo.On("CountActiveByList", mock.Anything, l.ID).Return(2, nil)
		m.cardRepo.On("Create", mock.Anything, mock.AnythingOfType("*board.Card")).Return(nil)

		c, err := svc.Create(ctx, CreateCardInput{ListID: l.ID, ActorID: f.member, Title: "Ship it"})

		require.NoError(t, err)
		assert.Equal(t, 2, c.Position)
		assert.Equal(t, l.ID, c.ListID)
	})

	t.Run("rejects archived lists", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		require.NoError(t, l.Archive())
		svc, m := newCardService(f)

		m.listRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)

		_, err := svc.Create(ctx, CreateCardInput{ListID: l.ID, ActorID: f.member, Title: "Ship it"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LIST_ARCHIVED", domainErr.Code)
		m.cardRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCardService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("cross list move renumbers both lists in one batch", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "Todo", "Doing")
		source := makeCards(t, lists[0].ID, f.board.ID, f.owner, "A", "B", "C")
		dest := makeCards(t, lists[1].ID, f.board.ID, f.owner, "X", "Y")
		moving := source[1]
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, moving.ID).Return(moving, nil)
		m.listRepo.On("FindByID", mock.Anything, lists[1].ID).Return(lists[1], nil)
		m.cardRepo.On("FindActiveByList", mock.Anything, lists[1].ID).Return(dest, nil)
		m.cardRepo.On("FindActiveByList", mock.Anything, lists[0].ID).Return(source, nil)
		m.cardRepo.On("Update", mock.Anything, moving).Return(nil)

		var got map[uuid.UUID]int
		m.cardRepo.On("UpdatePositions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(map[uuid.UUID]int)
		}).Return(nil)

		c, err := svc.Move(ctx, MoveCardInput{
			CardID:   moving.ID,
			ActorID:  f.member,
			ToListID: lists[1].ID,
			Position: 1,
		})

		require.NoError(t, err)
		assert.Equal(t, lists[1].ID, c.ListID)
		assert.Equal(t, 1, c.Position)
		// destination becomes X, B, Y and the source closes its gap
		assert.Equal(t, map[uuid.UUID]int{
			dest[0].ID:   0,
			moving.ID:    1,
			dest[1].ID:   2,
			source[0].ID: 0,
			source[2].ID: 1,
		}, got)
	})

	t.Run("same list move reorders without touching other lists", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		cards := makeCards(t, l.ID, f.board.ID, f.owner, "A", "B", "C")
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, cards[2].ID).Return(cards[2], nil)
		m.listRepo.On("FindByID", mock.Anything, l.ID).Return(l, nil)
		m.cardRepo.On("FindActiveByList", mock.Anything, l.ID).Return(cards, nil)

		var got map[uuid.UUID]int
		m.cardRepo.On("UpdatePositions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(map[uuid.UUID]int)
		}).Return(nil)

		c, err := svc.Move(ctx, MoveCardInput{
			CardID:   cards[2].ID,
			ActorID:  f.member,
			ToListID: l.ID,
			Position: 0,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, c.Position)
		assert.Equal(t, map[uuid.UUID]int{
			cards[2].ID: 0,
			cards[0].ID: 1,
			cards[1].ID: 2,
		}, got)
		m.cardRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects a destination on another board", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		foreign, err := board.NewList(uuid.New(), "Elsewhere", 0)
		require.NoError(t, err)
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.listRepo.On("FindByID", mock.Anything, foreign.ID).Return(foreign, nil)

		_, err = svc.Move(ctx, MoveCardInput{CardID: card.ID, ActorID: f.member, ToListID: foreign.ID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_MOVE", domainErr.Code)
	})
}

func TestCardService_ArchiveRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("archive closes the gap it leaves", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		cards := makeCards(t, l.ID, f.board.ID, f.owner, "A", "B", "C")
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, cards[1].ID).Return(cards[1], nil)
		m.cardRepo.On("Update", mock.Anything, cards[1]).Return(nil)
		m.cardRepo.On("FindActiveByList", mock.Anything, l.ID).
			Return([]*board.Card{cards[0], cards[2]}, nil)

		var got map[uuid.UUID]int
		m.cardRepo.On("UpdatePositions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(map[uuid.UUID]int)
		}).Return(nil)

		err := svc.Archive(ctx, cards[1].ID, f.member)

		require.NoError(t, err)
		assert.True(t, cards[1].IsArchived)
		assert.Equal(t, 1, cards[1].Position)
		assert.Equal(t, map[uuid.UUID]int{cards[0].ID: 0, cards[2].ID: 1}, got)
	})

	t.Run("restore appends at the end", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		require.NoError(t, card.Archive())
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.cardRepo.On("CountActiveByList", mock.Anything, l.ID).Return(4, nil)
		m.cardRepo.On("Update", mock.Anything, card).Return(nil)

		restored, err := svc.Restore(ctx, card.ID, f.member)

		require.NoError(t, err)
		assert.False(t, restored.IsArchived)
		assert.Equal(t, 4, restored.Position)
	})

	t.Run("archived card cannot move", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		require.NoError(t, card.Archive())
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)

		_, err := svc.Move(ctx, MoveCardInput{CardID: card.ID, ActorID: f.member, ToListID: l.ID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CARD_ARCHIVED", domainErr.Code)
	})
}

func TestCardService_Assign(t *testing.T) {
	ctx := context.Background()

	t.Run("assignee must belong to the workspace", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)

		_, err := svc.Assign(ctx, card.ID, f.member, f.outsider)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_A_MEMBER", domainErr.Code)
		m.cardRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("assigning a member sticks", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.cardRepo.On("Update", mock.Anything, card).Return(nil)

		c, err := svc.Assign(ctx, card.ID, f.owner, f.member)

		require.NoError(t, err)
		assert.True(t, c.HasAssignee(f.member))
	})
}

func TestCardService_Comments(t *testing.T) {
	ctx := context.Background()

	t.Run("only the author can edit a comment", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		comment, err := card.AddComment(f.member, "looks good")
		require.NoError(t, err)
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)

		_, err = svc.UpdateComment(ctx, CommentInput{
			CardID:    card.ID,
			ActorID:   f.owner,
			CommentID: comment.ID,
			Content:   "rewritten",
		})

		require.Error(t, err)
		m.cardRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("an admin can delete another member's comment", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		comment, err := card.AddComment(f.member, "looks good")
		require.NoError(t, err)
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.cardRepo.On("Update", mock.Anything, card).Return(nil)

		c, err := svc.RemoveComment(ctx, card.ID, f.owner, comment.ID)

		require.NoError(t, err)
		assert.Empty(t, c.Comments)
	})
}

func TestCardService_Attachments(t *testing.T) {
	ctx := context.Background()

	t.Run("upload stores the object under the card's prefix", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.cardRepo.On("Update", mock.Anything, card).Return(nil)

		var uploadedKey string
		m.storage.On("Upload", mock.Anything, mock.Anything, []byte("png bytes"), "image/png").
			Run(func(args mock.Arguments) { uploadedKey = args.String(1) }).Return(nil)
		m.storage.On("ObjectURL", mock.Anything).Return("https://cdn.example.com/obj")

		c, err := svc.AddAttachment(ctx, AttachmentInput{
			CardID:      card.ID,
			ActorID:     f.member,
			FileName:    "design.png",
			ContentType: "image/png",
			Data:        []byte("png bytes"),
		})

		require.NoError(t, err)
		require.Len(t, c.Attachments, 1)
		assert.True(t, strings.HasPrefix(uploadedKey, "cards/"+card.ID.String()+"/"))
		assert.True(t, strings.HasSuffix(uploadedKey, "-design.png"))
		assert.Equal(t, uploadedKey, c.Attachments[0].Key)
		assert.Equal(t, "https://cdn.example.com/obj", c.Attachments[0].URL)
	})

	t.Run("removal deletes the stored object", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		att, err := card.AddAttachment("notes.txt", "cards/x/notes.txt", "stub://notes.txt", "text/plain", f.member)
		require.NoError(t, err)
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.cardRepo.On("Update", mock.Anything, card).Return(nil)
		m.storage.On("Delete", mock.Anything, "cards/x/notes.txt").Return(nil)

		c, err := svc.RemoveAttachment(ctx, card.ID, f.member, att.ID)

		require.NoError(t, err)
		assert.Empty(t, c.Attachments)
		m.storage.AssertExpectations(t)
	})

	t.Run("a failed object delete does not fail the removal", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		att, err := card.AddAttachment("notes.txt", "cards/x/notes.txt", "stub://notes.txt", "text/plain", f.member)
		require.NoError(t, err)
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.cardRepo.On("Update", mock.Anything, card).Return(nil)
		m.storage.On("Delete", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err = svc.RemoveAttachment(ctx, card.ID, f.member, att.ID)

		require.NoError(t, err)
	})
}

func TestCardService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the filter through with the current time", func(t *testing.T) {
		f := newFixture(t)
		svc, m := newCardService(f)

		var got board.CardFilter
		m.cardRepo.On("Search", mock.Anything, f.board.ID, mock.Anything).
			Run(func(args mock.Arguments) { got = args.Get(2).(board.CardFilter) }).
			Return([]*board.Card{}, nil)

		before := time.Now()
		_, err := svc.Search(ctx, SearchCardsInput{
			BoardID: f.board.ID,
			ActorID: f.member,
			Keyword: "deploy",
			Labels:  []string{"urgent"},
			Overdue: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "deploy", got.Keyword)
		assert.Equal(t, []string{"urgent"}, got.Labels)
		assert.True(t, got.Overdue)
		assert.False(t, got.At.Before(before))
	})

	t.Run("outsider cannot search", func(t *testing.T) {
		f := newFixture(t)
		svc, m := newCardService(f)

		_, err := svc.Search(ctx, SearchCardsInput{BoardID: f.board.ID, ActorID: f.outsider})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.cardRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCardService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("changing the due date records a due date activity", func(t *testing.T) {
		f := newFixture(t)
		l := makeLists(t, f.board.ID, "Todo")[0]
		card := makeCards(t, l.ID, f.board.ID, f.owner, "A")[0]
		svc, m := newCardService(f)

		m.cardRepo.On("FindByID", mock.Anything, card.ID).Return(card, nil)
		m.cardRepo.On("Update", mock.Anything, card).Return(nil)

		due := time.Now().Add(48 * time.Hour)
		c, err := svc.Update(ctx, UpdateCardInput{CardID: card.ID, ActorID: f.member, DueDate: &due})

		require.NoError(t, err)
		require.NotNil(t, c.DueDate)
		require.Len(t, m.activityRepo.Calls, 1)
		recorded := m.activityRepo.Calls[0].Arguments.Get(1).(*board.Activity)
		assert.Equal(t, board.ActionDueDateChanged, recorded.Action)
	})
}
