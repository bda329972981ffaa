package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"tasknet-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// statusOrder ranks statuses doing -> todo -> done for status sorting.
const statusOrder = "CASE status WHEN 'doing' THEN 0 WHEN 'todo' THEN 1 WHEN 'done' THEN 2 ELSE 3 END"

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTaskRepository) FindByID(ctx context.Context, userID, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) List(ctx context.Context, userID string, filter ListFilter) ([]*domain.Task, int64, error) {
	var total int64
	if err := r.filtered(ctx, userID, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.filtered(ctx, userID, filter)
	if filter.SortByStatus {
		query = query.Order(statusOrder).
			Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
			Order("due_date ASC").
			Order("title ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	var tasks []*domain.Task
	err := query.Offset(filter.Offset).Limit(filter.Limit).Find(&tasks).Error
	return tasks, total, err
}

func (r *gormTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now()
	// Select forces zero values through, so a cleared due date becomes NULL.
	res := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Select("title", "status", "due_date", "updated_at").
		Updates(task)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *gormTaskRepository) Stats(ctx context.Context, userID string, from, to *time.Time) (*domain.Stats, error) {
	query := r.db.WithContext(ctx).Model(&domain.Task{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("due_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("due_date <= ?", *to)
	}

	var stats domain.Stats
	err := query.Select(
		"COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN status = 'todo' THEN 1 ELSE 0 END), 0) AS todo, " +
			"COALESCE(SUM(CASE WHEN status = 'doing' THEN 1 ELSE 0 END), 0) AS doing, " +
			"COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0) AS done").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// filtered builds the user-scoped query with all list predicates applied.
// NULL due dates fall out of range comparisons in SQL, matching the rule
// that undated tasks are excluded whenever a date bound is active.
func (r *gormTaskRepository) filtered(ctx context.Context, userID string, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&domain.Task{}).Where("user_id = ?", userID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("due_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("due_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		// Explicit ESCAPE, sqlite's LIKE has no default escape character.
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+strings.ToLower(escapeLike(filter.Search))+"%")
	}
	return query
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
