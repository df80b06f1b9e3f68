package repository

import (
	"time"

	"github.com/rentease/rentease-backend/internal/app/model"
	"github.com/rentease/rentease-backend/pkg/logger"
	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Replace(reset *model.PasswordReset) error
	FindByEmail(email string) (*model.PasswordReset, error)
	DeleteByEmail(email string) error
	DeleteExpired() (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Replace deletes any previous code for the email and stores the new one in
// a single transaction. Two concurrent requests for the same email resolve
// to last write wins.
func (r *passwordResetRepository) Replace(reset *model.PasswordReset) error {
	logger.Debug("Replacing password reset code in database", map[string]interface{}{
		"email": reset.Email,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", reset.Email).Delete(&model.PasswordReset{}).Error; err != nil {
			return err
		}
		return tx.Create(reset).Error
	})
	if err != nil {
		logger.Error("Failed to replace password reset code in database", err, map[string]interface{}{
			"email": reset.Email,
		})
		return err
	}
	return nil
}

func (r *passwordResetRepository) FindByEmail(email string) (*model.PasswordReset, error) {
	var reset model.PasswordReset
	err := r.db.Where("email = ?", email).Order("created_at DESC").First(&reset).Error
	if err != nil {
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepository) DeleteByEmail(email string) error {
	if err := r.db.Where("email = ?", email).Delete(&model.PasswordReset{}).Error; err != nil {
		logger.Error("Failed to delete password reset code from database", err, map[string]interface{}{
			"email": email,
		})
		return err
	}
	return nil
}

func (r *passwordResetRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&model.PasswordReset{})
	if result.Error != nil {
		logger.Error("Failed to delete expired password reset codes from database", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
