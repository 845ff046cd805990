package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/bookshelf/internal/tasks"
)

// TaskQueue is the part of the task client the export endpoints use.
type TaskQueue interface {
	EnqueueExport(reason string) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// TasksController handles the export and task status endpoints.
type TasksController struct {
	queue TaskQueue
}

// NewTasksController creates a new TasksController. queue may be nil when
// the task queue is disabled.
func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// TriggerExport handles POST /api/exports
// Queues a JSON snapshot of the catalog. Only JSON requests are accepted;
// cross-origin JSON needs a preflight and this route grants none.
func (tc *TasksController) TriggerExport(c *gin.Context) {
	if c.ContentType() != "application/json" {
		respondError(c, http.StatusUnsupportedMediaType, "request must be application/json")
		return
	}
	if tc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	taskID, err := tc.queue.EnqueueExport("api")
	if err != nil {
		respondInternalError(c, err, "enqueue export")
		return
	}

	respondAccepted(c, "export enqueued", gin.H{"task_id": taskID})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	if tc.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "task queue is disabled")
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": tasks.StatusName(status),
	})
}
