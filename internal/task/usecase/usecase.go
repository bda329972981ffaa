package usecase

import (
	"context"

	"tasknet-backend/internal/task/domain"
	"tasknet-backend/internal/task/dto"
)

// TaskUsecase defines task business operations. Every operation is scoped
// to the calling user's records.
type TaskUsecase interface {
	CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*domain.Task, error)
	GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string, req dto.ListTasksRequest) (*dto.TaskListResponse, error)
	UpdateTask(ctx context.Context, userID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
	Stats(ctx context.Context, userID, from, to string) (*domain.Stats, error)

	// SetStatsCache enables cache-aside stats lookups.
	SetStatsCache(c StatsCache)
}

// StatsCache is the optional cache used by Stats. Satisfied by pkg/cache.
type StatsCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeletePattern(ctx context.Context, pattern string) error
}
