package board

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// fixture is the shared scaffolding for application-layer tests: a
// workspace with an owner and one plain member, and a board inside it.
type fixture struct {
	owner     uuid.UUID
	member    uuid.UUID
	outsider  uuid.UUID
	workspace *board.Workspace
	board     *board.Board
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	owner := uuid.New()
	member := uuid.New()

	ws, err := board.NewWorkspace("Engineering", "", owner, board.VisibilityPrivate)
	require.NoError(t, err)
	require.NoError(t, ws.AddMember(member, board.RoleMember))

	b, err := board.NewBoard(ws.ID, "Sprint 12", "", "", owner)
	require.NoError(t, err)

	return &fixture{
		owner:     owner,
		member:    member,
		outsider:  uuid.New(),
		workspace: ws,
		board:     b,
	}
}

func makeLists(t *testing.T, boardID uuid.UUID, names ...string) []*board.List {
	t.Helper()
	lists := make([]*board.List, len(names))
	for i, name := range names {
		l, err := board.NewList(boardID, name, i)
		require.NoError(t, err)
		lists[i] = l
	}
	return lists
}

func newListService(f *fixture, listRepo *MockListRepository, cardRepo *MockCardRepository, activityRepo *MockActivityRepository) (*ListService, *MockWorkspaceRepository, *MockBoardRepository) {
	workspaceRepo := new(MockWorkspaceRepository)
	boardRepo := new(MockBoardRepository)
	workspaceRepo.On("FindByID", mock.Anything, f.workspace.ID).Return(f.workspace, nil).Maybe()
	boardRepo.On("FindByID", mock.Anything, f.board.ID).Return(f.board, nil).Maybe()
	svc := NewListService(workspaceRepo, boardRepo, listRepo, cardRepo, activityRepo, zap.NewNop())
	return svc, workspaceRepo, boardRepo
}

func TestListService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("appends at the end of the board", func(t *testing.T) {
		f := newFixture(t)
		listRepo := new(MockListRepository)
		activityRepo := new(MockActivityRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), activityRepo)

		listRepo.On("CountActiveByBoard", mock.Anything, f.board.ID).Return(3, nil)
		listRepo.On("Create", mock.Anything, mock.AnythingOfType("*board.List")).Return(nil)
		activityRepo.On("Create", mock.Anything, mock.AnythingOfType("*board.Activity")).Return(nil)

		l, err := svc.Create(ctx, CreateListInput{BoardID: f.board.ID, ActorID: f.member, Name: "Done"})

		require.NoError(t, err)
		assert.Equal(t, 3, l.Position)
		listRepo.AssertExpectations(t)
	})

	t.Run("activity log failure does not fail the operation", func(t *testing.T) {
		f := newFixture(t)
		listRepo := new(MockListRepository)
		activityRepo := new(MockActivityRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), activityRepo)

		listRepo.On("CountActiveByBoard", mock.Anything, f.board.ID).Return(0, nil)
		listRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		activityRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := svc.Create(ctx, CreateListInput{BoardID: f.board.ID, ActorID: f.owner, Name: "Backlog"})

		require.NoError(t, err)
		activityRepo.AssertExpectations(t)
	})

	t.Run("outsider sees not found, not forbidden", func(t *testing.T) {
		f := newFixture(t)
		listRepo := new(MockListRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), new(MockActivityRepository))

		_, err := svc.Create(ctx, CreateListInput{BoardID: f.board.ID, ActorID: f.outsider, Name: "Done"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
		listRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListService_Move(t *testing.T) {
	ctx := context.Background()

	t.Run("moving the last list to the front shifts the others", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "Todo", "Doing", "Done")
		listRepo := new(MockListRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), new(MockActivityRepository))

		listRepo.On("FindByID", mock.Anything, lists[2].ID).Return(lists[2], nil)
		listRepo.On("FindActiveByBoard", mock.Anything, f.board.ID).Return(lists, nil)

		var got map[uuid.UUID]int
		listRepo.On("UpdatePositions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(map[uuid.UUID]int)
		}).Return(nil)

		err := svc.Move(ctx, lists[2].ID, f.member, 0)

		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int{
			lists[2].ID: 0,
			lists[0].ID: 1,
			lists[1].ID: 2,
		}, got)
	})

	t.Run("an out of range index clamps to the end", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "Todo", "Doing", "Done")
		listRepo := new(MockListRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), new(MockActivityRepository))

		listRepo.On("FindByID", mock.Anything, lists[0].ID).Return(lists[0], nil)
		listRepo.On("FindActiveByBoard", mock.Anything, f.board.ID).Return(lists, nil)

		var got map[uuid.UUID]int
		listRepo.On("UpdatePositions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(map[uuid.UUID]int)
		}).Return(nil)

		err := svc.Move(ctx, lists[0].ID, f.member, 99)

		require.NoError(t, err)
		assert.Equal(t, 2, got[lists[0].ID])
		assert.Equal(t, 0, got[lists[1].ID])
		assert.Equal(t, 1, got[lists[2].ID])
	})

	t.Run("archived list cannot move", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "Todo")
		require.NoError(t, lists[0].Archive())
		listRepo := new(MockListRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), new(MockActivityRepository))

		listRepo.On("FindByID", mock.Anything, lists[0].ID).Return(lists[0], nil)

		err := svc.Move(ctx, lists[0].ID, f.member, 0)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LIST_ARCHIVED", domainErr.Code)
	})
}

func TestListService_Reorder(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an ordering that is not a permutation", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "Todo", "Doing", "Done")
		listRepo := new(MockListRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), new(MockActivityRepository))

		listRepo.On("FindActiveByBoard", mock.Anything, f.board.ID).Return(lists, nil)

		err := svc.Reorder(ctx, ReorderListsInput{
			BoardID: f.board.ID,
			ActorID: f.member,
			ListIDs: []uuid.UUID{lists[0].ID, lists[1].ID},
		})

		require.Error(t, err)
		listRepo.AssertNotCalled(t, "UpdatePositions", mock.Anything, mock.Anything)
	})

	t.Run("applies a valid permutation densely", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "Todo", "Doing", "Done")
		listRepo := new(MockListRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), new(MockActivityRepository))

		listRepo.On("FindActiveByBoard", mock.Anything, f.board.ID).Return(lists, nil)

		var got map[uuid.UUID]int
		listRepo.On("UpdatePositions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(map[uuid.UUID]int)
		}).Return(nil)

		err := svc.Reorder(ctx, ReorderListsInput{
			BoardID: f.board.ID,
			ActorID: f.member,
			ListIDs: []uuid.UUID{lists[1].ID, lists[2].ID, lists[0].ID},
		})

		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]int{
			lists[1].ID: 0,
			lists[2].ID: 1,
			lists[0].ID: 2,
		}, got)
	})
}

func TestListService_Archive(t *testing.T) {
	ctx := context.Background()

	t.Run("renumbers the survivors and keeps the stale position", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "A", "B", "C")
		listRepo := new(MockListRepository)
		activityRepo := new(MockActivityRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), activityRepo)

		listRepo.On("FindByID", mock.Anything, lists[1].ID).Return(lists[1], nil)
		listRepo.On("Update", mock.Anything, lists[1]).Return(nil)
		listRepo.On("FindActiveByBoard", mock.Anything, f.board.ID).
			Return([]*board.List{lists[0], lists[2]}, nil)
		activityRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		var got map[uuid.UUID]int
		listRepo.On("UpdatePositions", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			got = args.Get(1).(map[uuid.UUID]int)
		}).Return(nil)

		err := svc.Archive(ctx, lists[1].ID, f.member)

		require.NoError(t, err)
		assert.True(t, lists[1].IsArchived)
		assert.Equal(t, 1, lists[1].Position)
		assert.Equal(t, map[uuid.UUID]int{lists[0].ID: 0, lists[2].ID: 1}, got)
	})
}

func TestListService_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("restored list lands at the end regardless of its old slot", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "A", "B", "C")
		require.NoError(t, lists[0].Archive())
		listRepo := new(MockListRepository)
		activityRepo := new(MockActivityRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), activityRepo)

		listRepo.On("FindByID", mock.Anything, lists[0].ID).Return(lists[0], nil)
		listRepo.On("CountActiveByBoard", mock.Anything, f.board.ID).Return(2, nil)
		listRepo.On("Update", mock.Anything, lists[0]).Return(nil)
		activityRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		restored, err := svc.Restore(ctx, lists[0].ID, f.member)

		require.NoError(t, err)
		assert.False(t, restored.IsArchived)
		assert.Equal(t, 2, restored.Position)
	})
}

func TestListService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("requires admin", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "A")
		listRepo := new(MockListRepository)
		svc, _, _ := newListService(f, listRepo, new(MockCardRepository), new(MockActivityRepository))

		listRepo.On("FindByID", mock.Anything, lists[0].ID).Return(lists[0], nil)

		err := svc.Delete(ctx, lists[0].ID, f.member)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		listRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deletes the cards before the list and closes the gap", func(t *testing.T) {
		f := newFixture(t)
		lists := makeLists(t, f.board.ID, "A", "B")
		listRepo := new(MockListRepository)
		cardRepo := new(MockCardRepository)
		activityRepo := new(MockActivityRepository)
		svc, _, _ := newListService(f, listRepo, cardRepo, activityRepo)

		listRepo.On("FindByID", mock.Anything, lists[0].ID).Return(lists[0], nil)
		cardRepo.On("DeleteByList", mock.Anything, lists[0].ID).Return(nil)
		listRepo.On("Delete", mock.Anything, lists[0].ID).Return(nil)
		listRepo.On("FindActiveByBoard", mock.Anything, f.board.ID).
			Return([]*board.List{lists[1]}, nil)
		listRepo.On("UpdatePositions", mock.Anything, map[uuid.UUID]int{lists[1].ID: 0}).Return(nil)
		activityRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		err := svc.Delete(ctx, lists[0].ID, f.owner)

		require.NoError(t, err)
		cardRepo.AssertExpectations(t)
		listRepo.AssertExpectations(t)
	})
}
