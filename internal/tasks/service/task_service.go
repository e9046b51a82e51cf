package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptask/uptask-backend/internal/apperror"
	projectdomain "github.com/uptask/uptask-backend/internal/projects/domain"
	"github.com/uptask/uptask-backend/internal/tasks/domain"
)

// Repository is the task store. Implementations return domain.ErrNotFound
// for unknown ids.
type Repository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}

// ProjectAuthorizer resolves a project and confirms the caller created it.
// It fails with a NotFound or Unauthorized apperror.
type ProjectAuthorizer interface {
	Authorize(ctx context.Context, projectID, userID string) (*projectdomain.Project, error)
}

// TaskService handles task-related business logic
type TaskService struct {
	repo     Repository
	projects ProjectAuthorizer
}

func NewTaskService(repo Repository, projects ProjectAuthorizer) *TaskService {
	return &TaskService{
		repo:     repo,
		projects: projects,
	}
}

// Create stores a task under projectID once the caller is confirmed as the
// project's creator.
func (s *TaskService) Create(ctx context.Context, userID, projectID, name string, state *bool) (*domain.Task, error) {
	if _, err := s.projects.Authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Field("name", domain.MsgNameRequired)
	}

	t := &domain.Task{Name: name, Project: projectID}
	if state != nil {
		t.State = *state
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create task: %w", err))
	}
	return t, nil
}

// List returns the tasks of a project owned by userID, newest first.
func (s *TaskService) List(ctx context.Context, userID, projectID string) ([]domain.Task, error) {
	if _, err := s.projects.Authorize(ctx, projectID, userID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list tasks: %w", err))
	}
	return items, nil
}

// Update applies patch to a task. projectID is the project the caller claims
// the task belongs to and may be empty.
func (s *TaskService) Update(ctx context.Context, userID, taskID, projectID string, patch domain.TaskPatch) (*domain.Task, error) {
	t, err := s.authorize(ctx, userID, taskID, projectID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperror.Field("name", domain.MsgNameRequired)
	}
	if patch.IsEmpty() {
		return t, nil
	}

	patch.Apply(t)
	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(domain.MsgNotFound)
		}
		return nil, apperror.Internal(fmt.Errorf("update task: %w", err))
	}
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID, projectID string) error {
	if _, err := s.authorize(ctx, userID, taskID, projectID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(domain.MsgNotFound)
		}
		return apperror.Internal(fmt.Errorf("delete task: %w", err))
	}
	return nil
}

// authorize loads a task and checks ownership through the task's stored
// project. A claimed project that differs from the stored one is reported as
// an unknown task.
func (s *TaskService) authorize(ctx context.Context, userID, taskID, claimedProject string) (*domain.Task, error) {
	t, err := s.repo.GetByID(ctx, taskID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound(domain.MsgNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("get task: %w", err))
	}

	if _, err := s.projects.Authorize(ctx, t.Project, userID); err != nil {
		return nil, err
	}

	if claimedProject != "" && claimedProject != t.Project {
		return nil, apperror.NotFound(domain.MsgNotFound)
	}
	return t, nil
}
