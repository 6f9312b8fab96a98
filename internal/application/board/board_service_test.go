package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

type boardServiceMocks struct {
	workspaceRepo *MockWorkspaceRepository
	boardRepo     *MockBoardRepository
	listRepo      *MockListRepository
	cardRepo      *MockCardRepository
	activityRepo  *MockActivityRepository
}

func newBoardService(f *fixture) (*BoardService, *boardServiceMocks) {
	m := &boardServiceMocks{
		workspaceRepo: new(MockWorkspaceRepository),
		boardRepo:     new(MockBoardRepository),
		listRepo:      new(MockListRepository),
		cardRepo:      new(MockCardRepository),
		activityRepo:  new(MockActivityRepository),
	}
	m.workspaceRepo.On("FindByID", mock.Anything, f.workspace.ID).Return(f.workspace, nil).Maybe()
	m.boardRepo.On("FindByID", mock.Anything, f.board.ID).Return(f.board, nil).Maybe()
	m.activityRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	svc := NewBoardService(m.workspaceRepo, m.boardRepo, m.listRepo, m.cardRepo, m.activityRepo, zap.NewNop())
	return svc, m
}

func TestBoardService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles lists and cards in position order", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "Todo", "Doing")
		todoCards := makeCards(t, lists[0].ID, f.board.ID, f.owner, "A", "B")
		svc, m := newBoardService(f)

		m.listRepo.On("FindActiveByBoard", mock.Anything, f.board.ID).Return(lists, nil)
		m.cardRepo.On("FindActiveByList", mock.Anything, lists[0].ID).Return(todoCards, nil)
		m.cardRepo.On("FindActiveByList", mock.Anything, lists[1].ID).Return([]*board.Card{}, nil)

		detail, err := svc.Get(ctx, f.board.ID, f.member)

		require.NoError(t, err)
		require.Len(t, detail.Lists, 2)
		assert.Equal(t, "Todo", detail.Lists[0].List.Name)
		assert.Len(t, detail.Lists[0].Cards, 2)
		assert.Empty(t, detail.Lists[1].Cards)
	})

	t.Run("membership is checked on the parent workspace", func(t *testing.T) {
		f := newFixture(t)
		svc, m := newBoardService(f)

		_, err := svc.Get(ctx, f.board.ID, f.outsider)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		m.listRepo.AssertNotCalled(t, "FindActiveByBoard", mock.Anything, mock.Anything)
	})
}

func TestBoardService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("cascades cards then lists then the board", func(t *testing.T) {
		f := newFixture(t)
		svc, m := newBoardService(f)

		m.cardRepo.On("DeleteByBoard", mock.Anything, f.board.ID).Return(nil)
		m.listRepo.On("DeleteByBoard", mock.Anything, f.board.ID).Return(nil)
		m.boardRepo.On("Delete", mock.Anything, f.board.ID).Return(nil)

		err := svc.Delete(ctx, f.board.ID, f.owner)

		require.NoError(t, err)
		m.cardRepo.AssertExpectations(t)
		m.listRepo.AssertExpectations(t)
		m.boardRepo.AssertExpectations(t)
	})

	t.Run("a plain member cannot delete", func(t *testing.T) {
		f := newFixture(t)
		svc, m := newBoardService(f)

		err := svc.Delete(ctx, f.board.ID, f.member)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		m.boardRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestBoardService_ToggleStar(t *testing.T) {
	ctx := context.Background()

	t.Run("starring flips per caller", func(t *testing.T) {
		f := newFixture(t)
		svc, m := newBoardService(f)
		m.boardRepo.On("Update", mock.Anything, f.board).Return(nil)

		starred, err := svc.ToggleStar(ctx, f.board.ID, f.member)
		require.NoError(t, err)
		assert.True(t, starred)

		starred, err = svc.ToggleStar(ctx, f.board.ID, f.member)
		require.NoError(t, err)
		assert.False(t, starred)
	})
}

func TestBoardService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("any member may create a board", func(t *testing.T) {
		f := newFixture(t)
		svc, m := newBoardService(f)
		m.boardRepo.On("Create", mock.Anything, mock.AnythingOfType("*board.Board")).Return(nil)

		b, err := svc.Create(ctx, CreateBoardInput{
			WorkspaceID: f.workspace.ID,
			ActorID:     f.member,
			Name:        "Roadmap",
		})

		require.NoError(t, err)
		assert.Equal(t, f.workspace.ID, b.WorkspaceID)
		assert.Equal(t, f.member, b.CreatedBy)
	})
}
