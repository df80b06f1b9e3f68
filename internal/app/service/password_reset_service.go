package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/internal/app/repository"
	"github.com/rentease/rentease-backend/internal/mailer"
	"github.com/rentease/rentease-backend/pkg/logger"
	"github.com/rentease/rentease-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	// ErrEmailNotFound is returned to the caller on forgot-password for an
	// unknown address. This deliberately reveals account existence and is
	// inconsistent with login's generic failure; kept as-is pending a
	// product decision.
	ErrEmailNotFound = errors.New("email not found")
	// ErrInvalidResetCode covers wrong, expired and already-consumed codes
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
)

// ResetCodeExpiry is the lifetime of a one-time reset code
const ResetCodeExpiry = 5 * time.Minute

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(email, code, newPassword string) error
	DeleteExpired() (int64, error)
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	userRepo  repository.UserRepository
	mailer    mailer.Mailer
}

func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
	m mailer.Mailer,
) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
		mailer:    m,
	}
}

func (s *passwordResetService) RequestReset(email string) error {
	email = util.NormalizeEmail(email)

	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	if _, err := s.userRepo.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for unknown email", map[string]interface{}{
				"email": email,
			})
			return ErrEmailNotFound
		}
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	code, err := util.GenerateResetCode()
	if err != nil {
		logger.Error("Failed to generate reset code", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	reset := &model.PasswordReset{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(ResetCodeExpiry),
	}

	if err := s.resetRepo.Replace(reset); err != nil {
		logger.Error("Failed to store reset code", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	body := fmt.Sprintf("Your OTP for password reset is %s. It is valid for 5 minutes.", code)
	if err := s.mailer.Send(email, "Password Reset OTP", body); err != nil {
		logger.Error("Failed to send reset code email", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	logger.Info("Password reset code sent", map[string]interface{}{
		"email":      email,
		"expires_at": reset.ExpiresAt,
	})

	return nil
}

func (s *passwordResetService) ResetPassword(email, code, newPassword string) error {
	email = util.NormalizeEmail(email)

	logger.Info("Processing password reset", map[string]interface{}{
		"email": email,
	})

	reset, err := s.resetRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("No reset code on record", map[string]interface{}{
				"email": email,
			})
			return ErrInvalidResetCode
		}
		logger.Error("Failed to find reset code", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	if reset.Code != code {
		logger.Warn("Reset code mismatch", map[string]interface{}{
			"email": email,
		})
		return ErrInvalidResetCode
	}
	if time.Now().After(reset.ExpiresAt) {
		logger.Warn("Reset code expired", map[string]interface{}{
			"email":      email,
			"expires_at": reset.ExpiresAt,
		})
		return ErrInvalidResetCode
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		logger.Error("Failed to find user for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		logger.Error("Failed to update user password", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return err
	}

	// Consume the code: single-use once a reset succeeds
	if err := s.resetRepo.DeleteByEmail(email); err != nil {
		logger.Error("Failed to delete consumed reset code", err, map[string]interface{}{
			"email": email,
		})
		// password already updated, do not fail the request
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
	})

	return nil
}

// DeleteExpired removes lapsed codes; called from the cleanup scheduler.
func (s *passwordResetService) DeleteExpired() (int64, error) {
	return s.resetRepo.DeleteExpired()
}
