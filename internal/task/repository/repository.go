package repository

import (
	"context"
	"time"

	"tasknet-backend/internal/task/domain"
)

// ListFilter is the normalized form of a list query. All predicates are
// optional; every repository call is additionally scoped to a single user.
type ListFilter struct {
	Status       *domain.Status
	From         *time.Time // inclusive lower bound on due date
	To           *time.Time // inclusive upper bound on due date
	Search       string     // case-insensitive substring match on title
	SortByStatus bool       // doing -> todo -> done, due date asc nulls last, title asc
	Offset       int
	Limit        int
}

// TaskRepository is the storage port for tasks. Implementations must apply
// the userID predicate on every operation so a task is never visible to a
// non-owning caller. Update scopes by the task's own UserID and returns
// ErrTaskNotFound when no owned row matches.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, userID string, filter ListFilter) ([]*domain.Task, int64, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string, from, to *time.Time) (*domain.Stats, error)
}
