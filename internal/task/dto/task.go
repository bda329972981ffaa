package dto

import "tasknet-backend/internal/task/domain"

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title   string `json:"title"`
	Status  string `json:"status"`
	DueDate string `json:"due_date"`
}

// UpdateTaskRequest carries a partial update; nil fields are left untouched.
// An empty DueDate string clears the due date.
type UpdateTaskRequest struct {
	Title   *string `json:"title"`
	Status  *string `json:"status"`
	DueDate *string `json:"due_date"`
}

// ListTasksRequest carries the raw query parameters of a list request.
// Invalid values degrade per the documented leniency rules instead of erroring.
type ListTasksRequest struct {
	Page   string
	Limit  string
	Status string
	From   string
	To     string
	Search string
	Sort   string
}

// TaskListResponse is the paginated list envelope.
type TaskListResponse struct {
	Items []*domain.Task `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
