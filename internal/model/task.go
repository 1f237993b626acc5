package model

import "time"

// TaskPriority orders a student's personal tasks.
type TaskPriority string

const (
	TaskLow    TaskPriority = "low"
	TaskMedium TaskPriority = "medium"
	TaskHigh   TaskPriority = "high"
)

// TaskStatus tracks completion of a task.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskCompleted TaskStatus = "completed"
)

// Task is a student's personal to-do item with an optional deadline.
type Task struct {
	ID        int          `json:"id"`
	StudentID int          `json:"student_id"`
	Title     string       `json:"title"`
	DueAt     *time.Time   `json:"due_at,omitempty"`
	Priority  TaskPriority `json:"priority"`
	Status    TaskStatus   `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// CreateTaskRequest is the payload for creating a task.
type CreateTaskRequest struct {
	Title    string     `json:"title" binding:"required,min=1,max=200"`
	DueAt    *time.Time `json:"due_at" binding:"omitempty"`
	Priority string     `json:"priority" binding:"required,oneof=low medium high"`
}

// UpdateTaskStatusRequest toggles a task's completion state.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed"`
}
