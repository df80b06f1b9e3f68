package service

import (
	"testing"
	"time"

	"github.com/rentease/rentease-backend/internal/app/repository"
	"github.com/rentease/rentease-backend/internal/db"
	"github.com/rentease/rentease-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) (AuthService, repository.UserRepository) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	authService := NewAuthService(userRepo, "test-jwt-secret", time.Hour)

	return authService, userRepo
}

func TestAuthService_Signup(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid signup",
			userName: "Test User",
			email:    "test@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "Duplicate email",
			userName: "Another User",
			email:    "test@example.com",
			password: "password456",
			wantErr:  ErrEmailAlreadyExists,
		},
		{
			name:     "Duplicate email different case",
			userName: "Shouty User",
			email:    "TEST@Example.COM",
			password: "password789",
			wantErr:  ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := authService.Signup(tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "test@example.com", user.Email)
				assert.Equal(t, tt.userName, user.Name)
			}
		})
	}
}

func TestAuthService_Signup_StoresHashedPassword(t *testing.T) {
	authService, userRepo := setupAuthServiceTest(t)

	_, err := authService.Signup("Test User", "hash@example.com", "plaintext-password")
	require.NoError(t, err)

	stored, err := userRepo.FindByEmail("hash@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext-password", stored.PasswordHash)
	assert.True(t, util.VerifyPassword(stored.PasswordHash, "plaintext-password"))
}

func TestAuthService_Login(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	_, err := authService.Signup("Test User", "test@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid login",
			email:    "test@example.com",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "Uppercase email",
			email:    "TEST@EXAMPLE.COM",
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Unknown email",
			email:    "nobody@example.com",
			password: "password123",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, token, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotEmpty(t, token)

				claims, err := util.ValidateToken(token, "test-jwt-secret")
				require.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, user.Email, claims.Email)
			}
		})
	}
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService, _ := setupAuthServiceTest(t)

	created, err := authService.Signup("Test User", "byid@example.com", "password123")
	require.NoError(t, err)

	user, err := authService.GetUserByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, user.Email)

	_, err = authService.GetUserByID(created.ID + 1000)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
