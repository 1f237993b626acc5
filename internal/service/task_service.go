package service

import (
	"context"

	"github.com/unifylabs/unify-backend/internal/model"
	"github.com/unifylabs/unify-backend/internal/repository"
)

// TaskService manages a student's personal task list.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) List(ctx context.Context, studentID int) ([]model.Task, error) {
	return s.taskRepo.ListByStudent(ctx, studentID)
}

func (s *TaskService) Create(ctx context.Context, studentID int, req model.CreateTaskRequest) (*model.Task, error) {
	task := &model.Task{
		StudentID: studentID,
		Title:     req.Title,
		DueAt:     req.DueAt,
		Priority:  model.TaskPriority(req.Priority),
		Status:    model.TaskPending,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, studentID, taskID int, status model.TaskStatus) error {
	return s.taskRepo.UpdateStatus(ctx, studentID, taskID, status)
}

func (s *TaskService) Delete(ctx context.Context, studentID, taskID int) error {
	return s.taskRepo.Delete(ctx, studentID, taskID)
}
