package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"takeoffs/internal/config"
	"takeoffs/internal/domain"
	"takeoffs/internal/service"
	"takeoffs/mocks"
)

func setupAuthService() (service.AuthService, *mocks.MockUserRepo) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "takeoffs",
	})
	return svc, userRepo
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "estimator@example.com",
		PasswordHash: string(hash),
		FullName:     "Sam Estimator",
		Role:         domain.RoleMember,
		IsActive:     true,
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, userRepo := setupAuthService()

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = uuid.New()
		}).Return(nil).Once()

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, userRepo := setupAuthService()
	user := activeUser(t, "password123")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleMember, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, userRepo := setupAuthService()
	user := activeUser(t, "password123")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, userRepo := setupAuthService()

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound).Once()

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	svc, userRepo := setupAuthService()
	user := activeUser(t, "password123")
	user.IsActive = false

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	_, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, userRepo := setupAuthService()
	user := activeUser(t, "password123")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "password123",
	})
	require.NoError(t, err)

	newPair, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)

	claims, err := svc.ValidateToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, userRepo := setupAuthService()
	user := activeUser(t, "password123")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    user.Email,
		Password: "password123",
	})
	require.NoError(t, err)

	// An access token must not pass the refresh audience check.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_BadToken(t *testing.T) {
	svc, _ := setupAuthService()

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
