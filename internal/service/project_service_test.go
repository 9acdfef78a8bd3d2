package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"takeoffs/internal/domain"
	"takeoffs/internal/service"
	"takeoffs/mocks"
)

func setupProjectService() (service.ProjectService, *mocks.MockProjectRepo) {
	repo := new(mocks.MockProjectRepo)
	return service.NewProjectService(repo), repo
}

func TestProjectService_Create(t *testing.T) {
	svc, repo := setupProjectService()

	userID := uuid.New()
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).Return(nil).Once()

	project, err := svc.Create(context.Background(), userID, service.ProjectInput{
		Name:       "Office Fit-Out",
		Address:    "12 Main St",
		ClientName: "Acme Corp",
	})

	require.NoError(t, err)
	assert.Equal(t, "Office Fit-Out", project.Name)
	assert.Equal(t, userID, project.CreatedBy)
	repo.AssertExpectations(t)
}

func TestProjectService_Update(t *testing.T) {
	svc, repo := setupProjectService()

	existing := &domain.Project{ID: uuid.New(), Name: "Old", ClientName: "Old Client"}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()

	project, err := svc.Update(context.Background(), existing.ID, service.ProjectInput{
		Name:       "Renamed",
		ClientName: "New Client",
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", project.Name)
	assert.Equal(t, "New Client", project.ClientName)
	repo.AssertExpectations(t)
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc, repo := setupProjectService()

	projectID := uuid.New()
	repo.On("GetByID", mock.Anything, projectID).Return(nil, domain.ErrNotFound).Once()

	_, err := svc.Update(context.Background(), projectID, service.ProjectInput{Name: "X"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectService_ListByCreator(t *testing.T) {
	svc, repo := setupProjectService()

	userID := uuid.New()
	projects := []domain.Project{{ID: uuid.New(), CreatedBy: userID}}
	repo.On("ListByCreator", mock.Anything, userID, 0, 10).Return(projects, 1, nil).Once()

	got, total, err := svc.ListByCreator(context.Background(), userID, 0, 10)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, total)
}
