package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"tasknet-backend/internal/task/domain"

	"github.com/google/uuid"
)

// memoryTaskRepository is an ephemeral TaskRepository backed by a map.
// It exists for tests and for running the server without a database; the
// filter, sort and pagination semantics match the GORM implementation.
type memoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*domain.Task
}

// NewMemoryTaskRepository creates an in-memory TaskRepository.
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{tasks: make(map[string]*domain.Task)}
}

func (r *memoryTaskRepository) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *memoryTaskRepository) FindByID(_ context.Context, userID, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return nil, nil
	}
	found := *task
	return &found, nil
}

func (r *memoryTaskRepository) List(_ context.Context, userID string, filter ListFilter) ([]*domain.Task, int64, error) {
	r.mu.RLock()
	matched := make([]*domain.Task, 0)
	for _, task := range r.tasks {
		if task.UserID == userID && matches(task, filter) {
			copied := *task
			matched = append(matched, &copied)
		}
	}
	r.mu.RUnlock()

	if filter.SortByStatus {
		sort.SliceStable(matched, func(i, j int) bool {
			return statusLess(matched[i], matched[j])
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}

	total := int64(len(matched))

	start := filter.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := start + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return domain.ErrTaskNotFound
	}

	task.UpdatedAt = time.Now()
	stored := *task
	r.tasks[task.ID] = &stored
	return nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[id]
	if !ok || task.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memoryTaskRepository) Stats(_ context.Context, userID string, from, to *time.Time) (*domain.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filter := ListFilter{From: from, To: to}
	stats := &domain.Stats{}
	for _, task := range r.tasks {
		if task.UserID != userID || !matches(task, filter) {
			continue
		}
		stats.Total++
		switch task.Status {
		case domain.StatusTodo:
			stats.Todo++
		case domain.StatusDoing:
			stats.Doing++
		case domain.StatusDone:
			stats.Done++
		}
	}
	return stats, nil
}

// matches applies the status, due-date range and search predicates.
// A task with no due date never matches an active date bound.
func matches(task *domain.Task, filter ListFilter) bool {
	if filter.Status != nil && task.Status != *filter.Status {
		return false
	}
	if filter.From != nil || filter.To != nil {
		if task.DueDate == nil {
			return false
		}
		if filter.From != nil && task.DueDate.Before(*filter.From) {
			return false
		}
		if filter.To != nil && task.DueDate.After(*filter.To) {
			return false
		}
	}
	if filter.Search != "" &&
		!strings.Contains(strings.ToLower(task.Title), strings.ToLower(filter.Search)) {
		return false
	}
	return true
}

// statusLess orders doing -> todo -> done, then due date ascending with
// undated tasks last, then title ascending.
func statusLess(a, b *domain.Task) bool {
	if ra, rb := a.Status.Rank(), b.Status.Rank(); ra != rb {
		return ra < rb
	}
	switch {
	case a.DueDate == nil && b.DueDate == nil:
		// fall through to title
	case a.DueDate == nil:
		return false
	case b.DueDate == nil:
		return true
	case !a.DueDate.Equal(*b.DueDate):
		return a.DueDate.Before(*b.DueDate)
	}
	return a.Title < b.Title
}
