package service

import (
	"context"

	"github.com/google/uuid"

	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

// ProjectInput is the DTO for project create/update requests.
type ProjectInput struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	ClientName string `json:"client_name"`
}

// ProjectService defines the project management contract.
type ProjectService interface {
	Create(ctx context.Context, userID uuid.UUID, input ProjectInput) (*domain.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error)
	List(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	ListByCreator(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Project, int, error)
	Update(ctx context.Context, projectID uuid.UUID, input ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
}

type projectService struct {
	projectRepo port.ProjectRepository
}

// NewProjectService creates a new ProjectService implementation.
func NewProjectService(projectRepo port.ProjectRepository) ProjectService {
	return &projectService{projectRepo: projectRepo}
}

func (s *projectService) Create(ctx context.Context, userID uuid.UUID, input ProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Name:       input.Name,
		Address:    input.Address,
		ClientName: input.ClientName,
		CreatedBy:  userID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetByID(ctx context.Context, projectID uuid.UUID) (*domain.Project, error) {
	return s.projectRepo.GetByID(ctx, projectID)
}

func (s *projectService) List(ctx context.Context, offset, limit int) ([]domain.Project, int, error) {
	return s.projectRepo.List(ctx, offset, limit)
}

func (s *projectService) ListByCreator(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Project, int, error) {
	return s.projectRepo.ListByCreator(ctx, userID, offset, limit)
}

func (s *projectService) Update(ctx context.Context, projectID uuid.UUID, input ProjectInput) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project.Name = input.Name
	project.Address = input.Address
	project.ClientName = input.ClientName
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	return s.projectRepo.Delete(ctx, projectID)
}
