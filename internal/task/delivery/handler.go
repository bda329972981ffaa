package delivery

import (
	"errors"
	"log"
	"net/http"

	"tasknet-backend/internal/task/domain"
	"tasknet-backend/internal/task/dto"
	"tasknet-backend/internal/task/usecase"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase}
}

// ListTasks returns the caller's tasks, filtered, sorted and paginated
// GET /api/tasks?page=1&limit=5&status=todo&from=2025-03-01&to=2025-03-31&search=milk&sort=status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID := c.GetString("userID")

	req := dto.ListTasksRequest{
		Page:   c.Query("page"),
		Limit:  c.Query("limit"),
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}

	resp, err := h.taskUsecase.ListTasks(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateTask creates a new task owned by the caller
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// UpdateTask applies a partial update to one of the caller's tasks
// PATCH /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), userID, taskID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask permanently removes one of the caller's tasks
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := c.GetString("userID")
	taskID := c.Param("id")

	if err := h.taskUsecase.DeleteTask(c.Request.Context(), userID, taskID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Stats returns per-status counts over the caller's tasks
// GET /api/tasks/stats?from=2025-03-01&to=2025-03-31
func (h *TaskHandler) Stats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.taskUsecase.Stats(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// respondError maps domain errors onto the HTTP error envelope. Unexpected
// errors are logged with detail and answered with a generic message.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	default:
		log.Printf("[ERROR] task request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
