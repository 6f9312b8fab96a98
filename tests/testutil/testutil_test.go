package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)
	defer mockDB.Close()

	require.NotNil(t, mockDB.DB)
	require.NotNil(t, mockDB.Mock)

	mockDB.Mock.ExpectQuery("SELECT 1").WillReturnRows(
		sqlmock.NewRows([]string{"?column?"}).AddRow(1),
	)

	var result int
	err := mockDB.DB.Raw("SELECT 1").Scan(&result).Error
	require.NoError(t, err)
	assert.Equal(t, 1, result)

	mockDB.ExpectationsWereMet(t)
}

func TestNewTestContext(t *testing.T) {
	tc := NewTestContext(t)

	require.NotNil(t, tc.Context)
	require.NotNil(t, tc.Recorder)
	assert.Equal(t, http.MethodGet, tc.Context.Request.Method)

	tc.SetHeader("X-Request-ID", "abc-123")
	assert.Equal(t, "abc-123", tc.Context.Request.Header.Get("X-Request-ID"))
}

func TestNewTestUUID_Deterministic(t *testing.T) {
	a := NewTestUUID("seed")
	b := NewTestUUID("seed")
	c := NewTestUUID("other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, TestUserID(), TestBoardID())
}

func TestRunHTTPTestCase(t *testing.T) {
	handler := func(c *gin.Context) {
		var body map[string]string
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "echo": body["message"]})
	}

	RunHTTPTestCases(t, handler, []HTTPTestCase{
		{
			Name:           "valid body",
			Method:         http.MethodPost,
			Path:           "/echo",
			Body:           map[string]string{"message": "hello"},
			ExpectedStatus: http.StatusOK,
			ExpectedBody:   map[string]interface{}{"success": true, "echo": "hello"},
		},
		{
			Name:           "missing body",
			Method:         http.MethodPost,
			Path:           "/echo",
			ExpectedStatus: http.StatusBadRequest,
			Validate: func(t *testing.T, tc *TestContext) {
				resp := JSONResponse(t, tc)
				assert.False(t, resp["success"].(bool))
			},
		},
	})
}

func TestAssertResponseHelpers(t *testing.T) {
	tc := NewTestContext(t)
	tc.Context.JSON(http.StatusOK, gin.H{"success": true})
	AssertSuccessResponse(t, tc)

	tc = NewTestContext(t)
	tc.Context.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   gin.H{"code": "NOT_FOUND", "message": "Board not found"},
	})
	AssertErrorResponse(t, tc, "NOT_FOUND")
}

func TestRequireEventually(t *testing.T) {
	start := time.Now()
	calls := 0
	RequireEventually(t, func() bool {
		calls++
		return calls >= 3
	}, time.Second, 5*time.Millisecond)

	assert.GreaterOrEqual(t, calls, 3)
	assert.Less(t, time.Since(start), time.Second)
}
