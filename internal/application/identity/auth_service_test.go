package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	identitydomain "github.com/taskboard/backend/internal/domain/identity"
	"github.com/taskboard/backend/internal/domain/shared"
	"github.com/taskboard/backend/internal/infrastructure/auth"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identitydomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identitydomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identitydomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identitydomain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identitydomain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identitydomain.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*identitydomain.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identitydomain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "taskboard-test",
		MaxRefreshCount:        5,
	})
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	return NewAuthService(repo, newTestJWTService(), auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func testUser(t *testing.T, password string) *identitydomain.User {
	t.Helper()
	user, err := identitydomain.NewUser("Alice", "alice@example.com", password)
	require.NoError(t, err)
	return user
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("registers and returns tokens", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		result, err := svc.Register(ctx, RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "Password1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "Alice", result.User.Name)
		assert.Equal(t, "alice@example.com", result.User.Email)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "Password1",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects weak password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil)

		_, err := svc.Register(ctx, RegisterInput{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "short",
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := testUser(t, "Password1")

		repo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "Password1"})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotNil(t, user.LastLoginAt)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := testUser(t, "Password1")

		repo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, shared.ErrNotFound)
		repo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)

		_, unknownErr := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "Password1"})
		_, wrongErr := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "WrongPass1"})

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())

		var domainErr *shared.DomainError
		require.ErrorAs(t, unknownErr, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("deactivated account cannot log in", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := testUser(t, "Password1")
		user.Deactivate()

		repo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)

		_, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "Password1"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the token pair", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := testUser(t, "Password1")

		repo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)
		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		login, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "Password1"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
		assert.Equal(t, user.ID, refreshed.User.ID)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		_, err := svc.Refresh(ctx, "not-a-token")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})

	t.Run("rejects refresh for deleted user", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := testUser(t, "Password1")

		repo.On("FindByEmail", ctx, "alice@example.com").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)
		repo.On("FindByID", ctx, user.ID).Return(nil, shared.ErrNotFound)

		login, err := svc.Login(ctx, LoginInput{Email: "alice@example.com", Password: "Password1"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, login.RefreshToken)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the access token", func(t *testing.T) {
		repo := new(MockUserRepository)
		blacklist := auth.NewInMemoryTokenBlacklist()
		jwtService := newTestJWTService()
		svc := NewAuthService(repo, jwtService, blacklist, zap.NewNop())
		user := testUser(t, "Password1")

		pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: user.ID,
			Name:   user.Name,
			Email:  user.Email,
		})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, LogoutInput{UserID: user.ID, AccessToken: pair.AccessToken}))

		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		revoked, err := blacklist.IsRevoked(ctx, claims.ID)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("invalid token is a no-op", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		assert.NoError(t, svc.Logout(ctx, LogoutInput{UserID: uuid.New(), AccessToken: "garbage"}))
	})
}
