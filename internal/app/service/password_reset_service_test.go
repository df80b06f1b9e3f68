package service

import (
	"errors"
	"testing"
	"time"

	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/internal/app/repository"
	"github.com/rentease/rentease-backend/internal/db"
	"github.com/rentease/rentease-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeMailer captures outgoing mail instead of talking to an SMTP server
type fakeMailer struct {
	sent []fakeMail
	err  error
}

type fakeMail struct {
	To      string
	Subject string
	Body    string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, fakeMail{To: to, Subject: subject, Body: body})
	return nil
}

func setupPasswordResetTest(t *testing.T) (PasswordResetService, repository.PasswordResetRepository, repository.UserRepository, *fakeMailer, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	resetRepo := repository.NewPasswordResetRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	mail := &fakeMailer{}
	svc := NewPasswordResetService(resetRepo, userRepo, mail)

	return svc, resetRepo, userRepo, mail, testDB
}

func createResetTestUser(t *testing.T, userRepo repository.UserRepository, email string) *model.User {
	hash, err := util.HashPassword("old-password")
	require.NoError(t, err)

	user := &model.User{Name: "Reset User", Email: email, PasswordHash: hash}
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestPasswordResetService_RequestReset(t *testing.T) {
	svc, resetRepo, userRepo, mail, _ := setupPasswordResetTest(t)
	createResetTestUser(t, userRepo, "user@example.com")

	t.Run("Unknown email", func(t *testing.T) {
		err := svc.RequestReset("nobody@example.com")
		assert.ErrorIs(t, err, ErrEmailNotFound)
		assert.Empty(t, mail.sent)
	})

	t.Run("Known email sends code", func(t *testing.T) {
		err := svc.RequestReset("user@example.com")
		require.NoError(t, err)

		require.Len(t, mail.sent, 1)
		assert.Equal(t, "user@example.com", mail.sent[0].To)

		reset, err := resetRepo.FindByEmail("user@example.com")
		require.NoError(t, err)
		assert.Len(t, reset.Code, 6)
		assert.Contains(t, mail.sent[0].Body, reset.Code)
		assert.WithinDuration(t, time.Now().Add(ResetCodeExpiry), reset.ExpiresAt, 5*time.Second)
	})

	t.Run("Second request replaces the code", func(t *testing.T) {
		require.NoError(t, svc.RequestReset("user@example.com"))

		stored, err := resetRepo.FindByEmail("user@example.com")
		require.NoError(t, err)

		// Only the code from the latest mail is valid
		require.Len(t, mail.sent, 2)
		assert.Contains(t, mail.sent[1].Body, stored.Code)
	})

	t.Run("Mailer failure fails the request", func(t *testing.T) {
		mail.err = errors.New("smtp unavailable")
		defer func() { mail.err = nil }()

		err := svc.RequestReset("user@example.com")
		assert.Error(t, err)
	})
}

func TestPasswordResetService_ResetPassword(t *testing.T) {
	svc, resetRepo, userRepo, _, _ := setupPasswordResetTest(t)
	createResetTestUser(t, userRepo, "user@example.com")

	require.NoError(t, svc.RequestReset("user@example.com"))
	reset, err := resetRepo.FindByEmail("user@example.com")
	require.NoError(t, err)

	t.Run("Wrong code", func(t *testing.T) {
		err := svc.ResetPassword("user@example.com", "000000", "new-password")
		assert.ErrorIs(t, err, ErrInvalidResetCode)
	})

	t.Run("Unknown email", func(t *testing.T) {
		err := svc.ResetPassword("nobody@example.com", reset.Code, "new-password")
		assert.ErrorIs(t, err, ErrInvalidResetCode)
	})

	t.Run("Valid code updates password and is single-use", func(t *testing.T) {
		require.NoError(t, svc.ResetPassword("user@example.com", reset.Code, "new-password"))

		user, err := userRepo.FindByEmail("user@example.com")
		require.NoError(t, err)
		assert.True(t, util.VerifyPassword(user.PasswordHash, "new-password"))
		assert.False(t, util.VerifyPassword(user.PasswordHash, "old-password"))

		// Code was consumed, a replay fails
		err = svc.ResetPassword("user@example.com", reset.Code, "another-password")
		assert.ErrorIs(t, err, ErrInvalidResetCode)
	})
}

func TestPasswordResetService_ResetPassword_ExpiredCode(t *testing.T) {
	svc, _, userRepo, _, testDB := setupPasswordResetTest(t)
	createResetTestUser(t, userRepo, "late@example.com")

	// Insert a back-dated code directly, as if it had lapsed in storage
	expired := &model.PasswordReset{
		Email:     "late@example.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, testDB.Create(expired).Error)

	err := svc.ResetPassword("late@example.com", "123456", "new-password")
	assert.ErrorIs(t, err, ErrInvalidResetCode)

	// Old password still works
	user, err := userRepo.FindByEmail("late@example.com")
	require.NoError(t, err)
	assert.True(t, util.VerifyPassword(user.PasswordHash, "old-password"))
}

func TestPasswordResetService_DeleteExpired(t *testing.T) {
	svc, resetRepo, userRepo, _, testDB := setupPasswordResetTest(t)
	createResetTestUser(t, userRepo, "sweep@example.com")

	expired := &model.PasswordReset{
		Email:     "sweep@example.com",
		Code:      "111111",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	live := &model.PasswordReset{
		Email:     "keep@example.com",
		Code:      "222222",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, testDB.Create(expired).Error)
	require.NoError(t, testDB.Create(live).Error)

	deleted, err := svc.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = resetRepo.FindByEmail("sweep@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	kept, err := resetRepo.FindByEmail("keep@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", kept.Code)
}
