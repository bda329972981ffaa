package repository

import (
	"context"
	"testing"
	"time"

	"tasknet-backend/internal/task/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) *time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &t
}

func endOfDay(value string) *time.Time {
	t := day(value).Add(24*time.Hour - time.Second)
	return &t
}

func seed(t *testing.T, repo TaskRepository, userID, title string, status domain.Status, dueDate *time.Time) *domain.Task {
	t.Helper()
	task := &domain.Task{
		UserID:  userID,
		Title:   title,
		Status:  status,
		DueDate: dueDate,
	}
	require.NoError(t, repo.Create(context.Background(), task))
	// Keep created_at strictly increasing so default ordering is deterministic.
	time.Sleep(time.Millisecond)
	return task
}

func TestListDateRangeExcludesUndatedTasks(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	seed(t, repo, "u1", "undated", domain.StatusTodo, nil)
	dated := seed(t, repo, "u1", "dated", domain.StatusTodo, day("2025-03-10"))

	items, total, err := repo.List(ctx, "u1", ListFilter{
		From:  day("2025-03-01"),
		To:    endOfDay("2025-03-31"),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, dated.ID, items[0].ID)
}

func TestListDateRangeBoundsAreInclusive(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	seed(t, repo, "u1", "before", domain.StatusTodo, day("2025-02-28"))
	seed(t, repo, "u1", "first", domain.StatusTodo, day("2025-03-01"))
	seed(t, repo, "u1", "last", domain.StatusTodo, day("2025-03-31"))
	seed(t, repo, "u1", "after", domain.StatusTodo, day("2025-04-01"))

	_, total, err := repo.List(ctx, "u1", ListFilter{
		From:  day("2025-03-01"),
		To:    endOfDay("2025-03-31"),
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestListPaginationReconstructsFilteredSet(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	const n = 7
	for i := 0; i < n; i++ {
		seed(t, repo, "u1", string(rune('a'+i)), domain.StatusTodo, nil)
	}

	const limit = 3
	seen := make(map[string]bool)
	var pages int
	for page := 1; ; page++ {
		items, total, err := repo.List(ctx, "u1", ListFilter{
			Offset: (page - 1) * limit,
			Limit:  limit,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(n), total)
		if len(items) == 0 {
			break
		}
		pages++
		for _, item := range items {
			assert.False(t, seen[item.ID], "pages must be disjoint")
			seen[item.ID] = true
		}
	}

	assert.Equal(t, 3, pages) // ceil(7/3)
	assert.Len(t, seen, n)

	// Last non-empty page carries the remainder.
	items, _, err := repo.List(ctx, "u1", ListFilter{Offset: 2 * limit, Limit: limit})
	require.NoError(t, err)
	assert.Len(t, items, n%limit)
}

func TestListDefaultOrderIsNewestFirst(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	first := seed(t, repo, "u1", "first", domain.StatusTodo, nil)
	second := seed(t, repo, "u1", "second", domain.StatusTodo, nil)
	third := seed(t, repo, "u1", "third", domain.StatusTodo, nil)

	items, _, err := repo.List(ctx, "u1", ListFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, third.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
	assert.Equal(t, first.ID, items[2].ID)
}

func TestListStatusSortOrdering(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	seed(t, repo, "u1", "done task", domain.StatusDone, day("2025-01-01"))
	seed(t, repo, "u1", "todo undated", domain.StatusTodo, nil)
	seed(t, repo, "u1", "todo early", domain.StatusTodo, day("2025-01-02"))
	seed(t, repo, "u1", "doing task", domain.StatusDoing, day("2025-06-01"))

	items, _, err := repo.List(ctx, "u1", ListFilter{SortByStatus: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "doing task", items[0].Title)   // doing first
	assert.Equal(t, "todo early", items[1].Title)   // todo, dated before undated
	assert.Equal(t, "todo undated", items[2].Title) // nulls last within status
	assert.Equal(t, "done task", items[3].Title)    // done last
}

func TestListStatusSortBreaksTiesByTitle(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	due := day("2025-05-05")
	seed(t, repo, "u1", "bravo", domain.StatusDoing, due)
	seed(t, repo, "u1", "alpha", domain.StatusDoing, due)

	items, _, err := repo.List(ctx, "u1", ListFilter{SortByStatus: true, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "alpha", items[0].Title)
	assert.Equal(t, "bravo", items[1].Title)
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	seed(t, repo, "u1", "Buy Milk", domain.StatusTodo, nil)
	seed(t, repo, "u1", "Walk dog", domain.StatusTodo, nil)

	items, total, err := repo.List(ctx, "u1", ListFilter{Search: "milk", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Buy Milk", items[0].Title)
}

func TestOwnershipIsolation(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	mine := seed(t, repo, "alice", "alice task", domain.StatusTodo, nil)
	theirs := seed(t, repo, "bob", "bob task", domain.StatusTodo, nil)

	items, total, err := repo.List(ctx, "alice", ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, mine.ID, items[0].ID)

	found, err := repo.FindByID(ctx, "alice", theirs.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Delete(ctx, "alice", theirs.ID)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	// Bob's task is untouched.
	found, err = repo.FindByID(ctx, "bob", theirs.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestStatsCountsPerStatus(t *testing.T) {
	repo := NewMemoryTaskRepository()
	ctx := context.Background()

	seed(t, repo, "u1", "a", domain.StatusTodo, day("2025-03-05"))
	seed(t, repo, "u1", "b", domain.StatusDoing, day("2025-03-06"))
	seed(t, repo, "u1", "c", domain.StatusDone, day("2025-07-01"))
	seed(t, repo, "u1", "undated", domain.StatusTodo, nil)
	seed(t, repo, "someone-else", "other", domain.StatusTodo, day("2025-03-05"))

	stats, err := repo.Stats(ctx, "u1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Todo)
	assert.Equal(t, int64(1), stats.Doing)
	assert.Equal(t, int64(1), stats.Done)

	// A date range drops the July task and the undated one.
	stats, err = repo.Stats(ctx, "u1", day("2025-03-01"), endOfDay("2025-03-31"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Todo)
	assert.Equal(t, int64(1), stats.Doing)
	assert.Equal(t, int64(0), stats.Done)
}

func TestStatsEmptyCollection(t *testing.T) {
	repo := NewMemoryTaskRepository()

	stats, err := repo.Stats(context.Background(), "nobody", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, &domain.Stats{}, stats)
}
