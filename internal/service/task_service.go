package service

import (
	"context"
	"errors"

	"taskmanager/internal/apperror"
	"taskmanager/internal/dto"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TaskService struct {
	repo   repository.TaskRepositoryInterface
	owners OwnerResolver
}

var _ TaskStore = (*TaskService)(nil)

func NewTaskService(repo repository.TaskRepositoryInterface, owners OwnerResolver) *TaskService {
	return &TaskService{repo: repo, owners: owners}
}

func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateTaskRequest) (*model.Task, error) {
	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	status := model.TaskStatus(req.Status)
	if status == "" {
		status = model.TaskStatusPending
	}
	if !status.Valid() {
		return nil, apperror.BadRequest("status must be one of the following values: pending, inProgress, completed")
	}

	task := &model.Task{
		OwnerID:     owner.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Error creating task")
		return nil, apperror.Internal(err)
	}

	task.Owner = owner
	return task, nil
}

func (s *TaskService) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, taskLookupError(err, id)
	}
	stripOwner(task)
	return task, nil
}

// ListByOwner reports NotFound when the page holds no tasks.
func (s *TaskService) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Task, error) {
	if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByOwner(ctx, ownerID, offset(page, limit), limit)
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("Error listing tasks")
		return nil, apperror.Internal(err)
	}
	if len(tasks) == 0 {
		return nil, apperror.NotFound("Tasks do not exist")
	}

	for i := range tasks {
		stripOwner(&tasks[i])
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, req dto.UpdateTaskRequest) (*model.Task, error) {
	if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	task, err := s.repo.GetOwned(ctx, taskID, ownerID)
	if err != nil {
		return nil, taskLookupError(err, taskID)
	}

	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		if !status.Valid() {
			return nil, apperror.BadRequest("status must be one of the following values: pending, inProgress, completed")
		}
		task.Status = status
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, taskLookupError(err, taskID)
	}
	stripOwner(task)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) (string, error) {
	if _, err := s.owners.FindByID(ctx, ownerID); err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, taskID, ownerID); err != nil {
		return "", taskLookupError(err, taskID)
	}
	return "Task deleted successfully", nil
}

func stripOwner(task *model.Task) {
	if task.Owner != nil {
		task.Owner = task.Owner.WithoutPassword()
	}
}

func taskLookupError(err error, taskID uuid.UUID) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return apperror.NotFound("task does not exist")
	}
	log.Error().Err(err).Str("task_id", taskID.String()).Msg("Error loading task")
	return apperror.Internal(err)
}
