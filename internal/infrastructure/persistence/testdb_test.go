package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskboard/backend/internal/domain/board"
	"github.com/taskboard/backend/internal/domain/identity"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&board.Workspace{},
		&board.Board{},
		&board.List{},
		&board.Card{},
		&board.Activity{},
	)
	require.NoError(t, err)

	return db
}
