package repository

import (
	"context"
	"testing"

	"tasknet-backend/internal/task/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteRepo(t *testing.T) TaskRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Task{}))
	return NewGormTaskRepository(db)
}

func TestUpdateRequiresOwnership(t *testing.T) {
	stores := map[string]func(t *testing.T) TaskRepository{
		"gorm":   newSQLiteRepo,
		"memory": func(t *testing.T) TaskRepository { return NewMemoryTaskRepository() },
	}

	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			theirs := seed(t, repo, "bob", "bob task", domain.StatusTodo, nil)

			spoofed := *theirs
			spoofed.UserID = "alice"
			spoofed.Title = "hijacked"
			err := repo.Update(ctx, &spoofed)
			assert.ErrorIs(t, err, domain.ErrTaskNotFound)

			// Bob's task is untouched.
			found, err := repo.FindByID(ctx, "bob", theirs.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "bob task", found.Title)
		})
	}
}

// Both stores must treat _ and % in a search as plain characters.
func TestListSearchMatchesLikeMetacharacters(t *testing.T) {
	stores := map[string]func(t *testing.T) TaskRepository{
		"gorm":   newSQLiteRepo,
		"memory": func(t *testing.T) TaskRepository { return NewMemoryTaskRepository() },
	}

	for name, newRepo := range stores {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()

			seed(t, repo, "u1", "deploy_v2", domain.StatusTodo, nil)
			seed(t, repo, "u1", "deploy now", domain.StatusTodo, nil)
			seed(t, repo, "u1", "done 100%", domain.StatusDone, nil)

			items, total, err := repo.List(ctx, "u1", ListFilter{Search: "deploy_", Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
			require.Len(t, items, 1)
			assert.Equal(t, "deploy_v2", items[0].Title)

			items, total, err = repo.List(ctx, "u1", ListFilter{Search: "100%", Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
			require.Len(t, items, 1)
			assert.Equal(t, "done 100%", items[0].Title)
		})
	}
}
