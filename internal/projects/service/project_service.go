package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptask/uptask-backend/internal/apperror"
	"github.com/uptask/uptask-backend/internal/projects/domain"
)

// Repository is the project store. Implementations return domain.ErrNotFound
// for unknown ids.
type Repository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListByCreator(ctx context.Context, creator string) ([]domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// TaskPurger removes every task that belongs to a project.
type TaskPurger interface {
	DeleteByProject(ctx context.Context, projectID string) (int, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	repo  Repository
	tasks TaskPurger
}

func NewProjectService(repo Repository, tasks TaskPurger) *ProjectService {
	return &ProjectService{
		repo:  repo,
		tasks: tasks,
	}
}

// Create stores a new project owned by creator.
func (s *ProjectService) Create(ctx context.Context, creator, name string) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Field("name", domain.MsgNameRequired)
	}

	p := &domain.Project{Name: name, Creator: creator}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create project: %w", err))
	}
	return p, nil
}

// List returns all projects created by creator, newest first.
func (s *ProjectService) List(ctx context.Context, creator string) ([]domain.Project, error) {
	items, err := s.repo.ListByCreator(ctx, creator)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list projects: %w", err))
	}
	return items, nil
}

// Authorize loads a project and checks that userID created it.
func (s *ProjectService) Authorize(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	p, err := s.repo.GetByID(ctx, projectID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.NotFound(domain.MsgNotFound)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("get project: %w", err))
	}
	if p.Creator != userID {
		return nil, apperror.Unauthorized(domain.MsgUnauthorized)
	}
	return p, nil
}

// Update applies patch to a project owned by userID. An empty patch returns
// the stored project unchanged.
func (s *ProjectService) Update(ctx context.Context, projectID, userID string, patch domain.ProjectPatch) (*domain.Project, error) {
	p, err := s.Authorize(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperror.Field("name", domain.MsgNameRequired)
	}
	if patch.IsEmpty() {
		return p, nil
	}

	patch.Apply(p)
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound(domain.MsgNotFound)
		}
		return nil, apperror.Internal(fmt.Errorf("update project: %w", err))
	}
	return p, nil
}

// Delete removes a project owned by userID together with its tasks.
func (s *ProjectService) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := s.Authorize(ctx, projectID, userID); err != nil {
		return err
	}

	if _, err := s.tasks.DeleteByProject(ctx, projectID); err != nil {
		return apperror.Internal(fmt.Errorf("delete project tasks: %w", err))
	}
	if err := s.repo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound(domain.MsgNotFound)
		}
		return apperror.Internal(fmt.Errorf("delete project: %w", err))
	}
	return nil
}
