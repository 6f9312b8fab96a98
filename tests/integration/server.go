package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appboard "github.com/taskboard/backend/internal/application/board"
	identityapp "github.com/taskboard/backend/internal/application/identity"
	"github.com/taskboard/backend/internal/infrastructure/auth"
	"github.com/taskboard/backend/internal/infrastructure/config"
	"github.com/taskboard/backend/internal/infrastructure/persistence"
	"github.com/taskboard/backend/internal/infrastructure/storage"
	"github.com/taskboard/backend/internal/interfaces/http/handler"
	"github.com/taskboard/backend/internal/interfaces/http/middleware"
	"github.com/taskboard/backend/internal/interfaces/http/router"
)

// TestServer wires the full HTTP stack against a real PostgreSQL database.
type TestServer struct {
	DB         *TestDB
	Engine     *gin.Engine
	JWTService *auth.JWTService
	Blacklist  *auth.InMemoryTokenBlacklist
	UserRepo   *persistence.GormUserRepository
}

// NewTestServer builds the API the same way cmd/server does, minus
// telemetry, redis, and the realtime hub.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
	testDB := NewTestDB(t)

	userRepo := persistence.NewGormUserRepository(testDB.DB)
	workspaceRepo := persistence.NewGormWorkspaceRepository(testDB.DB)
	boardRepo := persistence.NewGormBoardRepository(testDB.DB)
	listRepo := persistence.NewGormListRepository(testDB.DB)
	cardRepo := persistence.NewGormCardRepository(testDB.DB)
	activityRepo := persistence.NewGormActivityRepository(testDB.DB)

	jwtConfig := config.JWTConfig{
		Secret:                 "integration-test-secret-key-0123456789",
		RefreshSecret:          "integration-test-refresh-key-0123456789",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "taskboard-test",
		MaxRefreshCount:        10,
	}
	jwtService := auth.NewJWTService(jwtConfig)
	blacklist := auth.NewInMemoryTokenBlacklist()
	log := zap.NewNop()

	objectStore := storage.NewStubObjectStorage()

	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, log)
	userService := identityapp.NewUserService(userRepo, log)
	workspaceService := appboard.NewWorkspaceService(workspaceRepo, boardRepo, userRepo, activityRepo, log)
	boardService := appboard.NewBoardService(workspaceRepo, boardRepo, listRepo, cardRepo, activityRepo, log)
	listService := appboard.NewListService(workspaceRepo, boardRepo, listRepo, cardRepo, activityRepo, log)
	cardService := appboard.NewCardService(workspaceRepo, boardRepo, listRepo, cardRepo, activityRepo, objectStore, log)
	activityService := appboard.NewActivityService(workspaceRepo, boardRepo, cardRepo, activityRepo, userRepo, log)

	cookieConfig := config.CookieConfig{
		Name:     "refreshToken",
		Path:     "/",
		Secure:   false,
		SameSite: "lax",
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.TokenBlacklist = blacklist
	jwtCfg.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtCfg))

	router.NewRouter(engine).
		Register(handler.NewAuthHandler(authService, cookieConfig, jwtConfig.RefreshTokenExpiration)).
		Register(handler.NewUserHandler(userService)).
		Register(handler.NewWorkspaceHandler(workspaceService)).
		Register(handler.NewBoardHandler(boardService)).
		Register(handler.NewListHandler(listService)).
		Register(handler.NewCardHandler(cardService)).
		Register(handler.NewActivityHandler(activityService)).
		Register(handler.NewSystemHandler(testDB.DB)).
		Setup()

	return &TestServer{
		DB:         testDB,
		Engine:     engine,
		JWTService: jwtService,
		Blacklist:  blacklist,
		UserRepo:   userRepo,
	}
}

// Request makes a JSON request to the test server. An optional bearer
// token can be passed as the last argument.
func (ts *TestServer) Request(method, path string, body interface{}, token ...string) *httptest.ResponseRecorder {
	reqBody := bytes.NewBuffer(nil)
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if len(token) > 0 && token[0] != "" {
		req.Header.Set("Authorization", "Bearer "+token[0])
	}

	w := httptest.NewRecorder()
	ts.Engine.ServeHTTP(w, req)
	return w
}

// RegisterUser registers a user through the API and returns its access
// token and user ID.
func (ts *TestServer) RegisterUser(t *testing.T, name, email, password string) (token, userID string) {
	t.Helper()

	w := ts.Request(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	data := decodeData(t, w)
	tokenData := data["token"].(map[string]interface{})
	userData := data["user"].(map[string]interface{})
	return tokenData["access_token"].(string), userData["id"].(string)
}

// decodeData unmarshals a success envelope and returns its data object.
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp["success"].(bool), "expected success envelope: %s", w.Body.String())

	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "expected data object: %s", w.Body.String())
	return data
}

// decodeError unmarshals an error envelope and returns its error code.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp["success"].(bool))

	errMap, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "expected error object: %s", w.Body.String())
	return errMap["code"].(string)
}
