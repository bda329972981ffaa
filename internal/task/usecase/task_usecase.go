package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"tasknet-backend/internal/task/domain"
	"tasknet-backend/internal/task/dto"
	"tasknet-backend/internal/task/repository"

	"golang.org/x/sync/singleflight"
)

const (
	defaultLimit = 5
	maxLimit     = 100
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo   repository.TaskRepository
	statsCache StatsCache
	statsGroup singleflight.Group
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository) TaskUsecase {
	return &taskUsecase{taskRepo: taskRepo}
}

// SetStatsCache enables cache-aside stats lookups. Call before serving.
func (u *taskUsecase) SetStatsCache(c StatsCache) {
	u.statsCache = c
}

func (u *taskUsecase) CreateTask(ctx context.Context, userID string, req dto.CreateTaskRequest) (*domain.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", "required")
	}

	// Unknown status values fall back to the default rather than erroring.
	status := domain.Status(req.Status)
	if !status.IsValid() {
		status = domain.StatusTodo
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:  userID,
		Title:   title,
		Status:  status,
		DueDate: dueDate,
	}
	if err := u.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	u.invalidateStats(ctx, userID)
	return task, nil
}

func (u *taskUsecase) GetTaskByID(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (u *taskUsecase) ListTasks(ctx context.Context, userID string, req dto.ListTasksRequest) (*dto.TaskListResponse, error) {
	page := clamp(atoiDefault(req.Page, 1), 1, 1_000_000_000)
	limit := clamp(atoiDefault(req.Limit, defaultLimit), 1, maxLimit)

	filter := repository.ListFilter{
		Search:       strings.TrimSpace(req.Search),
		SortByStatus: req.Sort == "status",
		Offset:       (page - 1) * limit,
		Limit:        limit,
	}

	// Unknown status filters are ignored, not rejected.
	if status := domain.Status(req.Status); status.IsValid() {
		filter.Status = &status
	}
	filter.From, filter.To = parseDateRange(req.From, req.To)

	items, total, err := u.taskRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.Task{}
	}

	return &dto.TaskListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (u *taskUsecase) UpdateTask(ctx context.Context, userID, taskID string, req dto.UpdateTaskRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, domain.NewValidationError("title", "required")
		}
		task.Title = title
	}

	if req.Status != nil {
		status := domain.Status(*req.Status)
		if !status.IsValid() {
			return nil, domain.NewValidationError("status", "invalid")
		}
		task.Status = status
	}

	if req.DueDate != nil {
		if *req.DueDate == "" {
			task.DueDate = nil
		} else {
			dueDate, err := parseDueDate(*req.DueDate)
			if err != nil {
				return nil, err
			}
			task.DueDate = dueDate
		}
	}

	if err := u.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	u.invalidateStats(ctx, userID)
	return task, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := u.taskRepo.Delete(ctx, userID, taskID); err != nil {
		return err
	}
	u.invalidateStats(ctx, userID)
	return nil
}

func (u *taskUsecase) Stats(ctx context.Context, userID, from, to string) (*domain.Stats, error) {
	fromBound, toBound := parseDateRange(from, to)

	if u.statsCache == nil {
		return u.taskRepo.Stats(ctx, userID, fromBound, toBound)
	}

	key := statsKey(userID, fromBound, toBound)

	var cached domain.Stats
	hit, err := u.statsCache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("[WARN] stats cache get failed: %v", err)
	}
	if hit {
		return &cached, nil
	}

	// Collapse concurrent recomputations of the same key.
	result, err, _ := u.statsGroup.Do(key, func() (interface{}, error) {
		stats, err := u.taskRepo.Stats(ctx, userID, fromBound, toBound)
		if err != nil {
			return nil, err
		}
		if err := u.statsCache.Set(ctx, key, stats); err != nil {
			log.Printf("[WARN] stats cache set failed: %v", err)
		}
		return stats, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Stats), nil
}

func (u *taskUsecase) invalidateStats(ctx context.Context, userID string) {
	if u.statsCache == nil {
		return
	}
	if err := u.statsCache.DeletePattern(ctx, "stats:"+userID+":*"); err != nil {
		log.Printf("[WARN] stats cache invalidation failed: %v", err)
	}
}

func statsKey(userID string, from, to *time.Time) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format(time.RFC3339)
	}
	return fmt.Sprintf("stats:%s:%s:%s", userID, format(from), format(to))
}

// parseDueDate accepts a calendar date or an RFC3339 timestamp. An empty
// value means no due date; anything else unparseable is a validation error.
func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, domain.NewValidationError("due_date", "invalid")
}

// parseDateRange turns raw from/to parameters into inclusive bounds: from at
// 00:00:00 and to at 23:59:59 of the named day. An unparseable value degrades
// to no bound on that side.
func parseDateRange(from, to string) (*time.Time, *time.Time) {
	var lower, upper *time.Time
	if t, ok := parseDay(from); ok {
		lower = &t
	}
	if t, ok := parseDay(to); ok {
		end := t.Add(24*time.Hour - time.Second)
		upper = &end
	}
	return lower, upper
}

func parseDay(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), true
	}
	return time.Time{}, false
}

// atoiDefault falls back on empty, unparseable and non-positive input.
func atoiDefault(value string, fallback int) int {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
