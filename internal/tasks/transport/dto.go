// Package transport defines request/response DTOs for the tasks HTTP surface.
package transport

// AddTaskRequest is the payload for creating a task.
type AddTaskRequest struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	DueDate           string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	PerformanceImpact int    `json:"performanceImpact" binding:"gte=0"`
}

// SetCompletedRequest toggles a task's completion flag.
type SetCompletedRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}
