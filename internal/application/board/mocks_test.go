package board

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/identity"
)

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *board.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) Update(ctx context.Context, workspace *board.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*board.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*board.Workspace), args.Error(1)
}

type MockBoardRepository struct {
	mock.Mock
}

func (m *MockBoardRepository) Create(ctx context.Context, b *board.Board) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoardRepository) Update(ctx context.Context, b *board.Board) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.Board, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Board), args.Error(1)
}

func (m *MockBoardRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]*board.Board, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*board.Board), args.Error(1)
}

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) Create(ctx context.Context, l *board.List) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListRepository) Update(ctx context.Context, l *board.List) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.List, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.List), args.Error(1)
}

func (m *MockListRepository) FindActiveByBoard(ctx context.Context, boardID uuid.UUID) ([]*board.List, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*board.List), args.Error(1)
}

func (m *MockListRepository) FindByBoard(ctx context.Context, boardID uuid.UUID) ([]*board.List, error) {
	args := m.Called(ctx, boardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*board.List), args.Error(1)
}

func (m *MockListRepository) CountActiveByBoard(ctx context.Context, boardID uuid.UUID) (int, error) {
	args := m.Called(ctx, boardID)
	return args.Int(0), args.Error(1)
}

func (m *MockListRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *MockListRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	args := m.Called(ctx, boardID)
	return args.Error(0)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, c *board.Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, c *board.Card) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*board.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.Card), args.Error(1)
}

func (m *MockCardRepository) FindActiveByList(ctx context.Context, listID uuid.UUID) ([]*board.Card, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*board.Card), args.Error(1)
}

func (m *MockCardRepository) FindByList(ctx context.Context, listID uuid.UUID) ([]*board.Card, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*board.Card), args.Error(1)
}

func (m *MockCardRepository) CountActiveByList(ctx context.Context, listID uuid.UUID) (int, error) {
	args := m.Called(ctx, listID)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) UpdatePositions(ctx context.Context, positions map[uuid.UUID]int) error {
	args := m.Called(ctx, positions)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteByList(ctx context.Context, listID uuid.UUID) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}

func (m *MockCardRepository) DeleteByBoard(ctx context.Context, boardID uuid.UUID) error {
	args := m.Called(ctx, boardID)
	return args.Error(0)
}

func (m *MockCardRepository) Search(ctx context.Context, boardID uuid.UUID, filter board.CardFilter) ([]*board.Card, error) {
	args := m.Called(ctx, boardID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*board.Card), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *board.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) FindByBoard(ctx context.Context, boardID uuid.UUID, page, limit int) (*board.ActivityPage, error) {
	args := m.Called(ctx, boardID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.ActivityPage), args.Error(1)
}

func (m *MockActivityRepository) FindByWorkspace(ctx context.Context, workspaceID uuid.UUID, page, limit int) (*board.ActivityPage, error) {
	args := m.Called(ctx, workspaceID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.ActivityPage), args.Error(1)
}

func (m *MockActivityRepository) FindByCard(ctx context.Context, cardID uuid.UUID, page, limit int) (*board.ActivityPage, error) {
	args := m.Called(ctx, cardID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*board.ActivityPage), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, key, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) ObjectURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
