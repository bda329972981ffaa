package domain

import "time"

// Status represents the lifecycle state of a task
type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// IsValid reports whether s is one of the three known status values.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

// Rank is the sort priority used by status ordering: doing -> todo -> done.
func (s Status) Rank() int {
	switch s {
	case StatusDoing:
		return 0
	case StatusTodo:
		return 1
	case StatusDone:
		return 2
	}
	return 3
}

// Task represents a user-owned to-do item
type Task struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"index;not null"`
	Title     string     `json:"title" gorm:"not null"`
	Status    Status     `json:"status" gorm:"default:todo"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Stats holds per-status counts over a set of tasks.
type Stats struct {
	Total int64 `json:"total"`
	Todo  int64 `json:"todo"`
	Doing int64 `json:"doing"`
	Done  int64 `json:"done"`
}
