package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"takeoffs/internal/domain"
	"takeoffs/internal/service"
	"takeoffs/mocks"
)

func setupUserService() (service.UserService, *mocks.MockUserRepo) {
	repo := new(mocks.MockUserRepo)
	return service.NewUserService(repo), repo
}

func TestUserService_Create(t *testing.T) {
	svc, repo := setupUserService()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "admin@example.com",
		Password: "password123",
		FullName: "Ada Admin",
		Role:     domain.RoleAdmin,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	repo.AssertExpectations(t)
}

func TestUserService_Create_InvalidRole(t *testing.T) {
	svc, repo := setupUserService()

	_, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    "x@example.com",
		Password: "password123",
		FullName: "X",
		Role:     domain.UserRole("superuser"),
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update(t *testing.T) {
	svc, repo := setupUserService()

	existing := &domain.User{
		ID:       uuid.New(),
		Email:    "old@example.com",
		FullName: "Old Name",
		Role:     domain.RoleMember,
		IsActive: true,
	}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()
	repo.On("Update", mock.Anything, existing).Return(nil).Once()

	newEmail := "new@example.com"
	newRole := domain.RoleAdmin
	inactive := false
	user, err := svc.Update(context.Background(), existing.ID, service.UpdateUserInput{
		Email:    &newEmail,
		Role:     &newRole,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleAdmin, user.Role)
	assert.False(t, user.IsActive)
	assert.Equal(t, "Old Name", user.FullName)
	repo.AssertExpectations(t)
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	svc, repo := setupUserService()

	existing := &domain.User{ID: uuid.New(), Role: domain.RoleMember}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil).Once()

	badRole := domain.UserRole("owner")
	_, err := svc.Update(context.Background(), existing.ID, service.UpdateUserInput{Role: &badRole})

	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_List(t *testing.T) {
	svc, repo := setupUserService()

	users := []domain.User{{ID: uuid.New()}, {ID: uuid.New()}}
	repo.On("List", mock.Anything, 0, 20).Return(users, 42, nil).Once()

	got, total, err := svc.List(context.Background(), 0, 20)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, 42, total)
}
