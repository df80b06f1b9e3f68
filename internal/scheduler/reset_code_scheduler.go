package scheduler

import (
	"github.com/rentease/rentease-backend/internal/app/service"
	"github.com/rentease/rentease-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ResetCodeScheduler periodically removes expired password reset codes
type ResetCodeScheduler struct {
	cron                 *cron.Cron
	passwordResetService service.PasswordResetService
}

func NewResetCodeScheduler(passwordResetService service.PasswordResetService) *ResetCodeScheduler {
	return &ResetCodeScheduler{
		cron:                 cron.New(),
		passwordResetService: passwordResetService,
	}
}

// Start schedules the cleanup job. Codes live 5 minutes, so a sweep every
// minute keeps the table small without mattering for correctness: expiry is
// always checked at verification time.
func (s *ResetCodeScheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		deleted, err := s.passwordResetService.DeleteExpired()
		if err != nil {
			logger.Error("Failed to delete expired reset codes", err)
			return
		}
		if deleted > 0 {
			logger.Info("Deleted expired reset codes", map[string]interface{}{
				"count": deleted,
			})
		}
	})

	if err != nil {
		logger.Error("Failed to add cron job for reset code cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Reset code scheduler started (every minute)", nil)

	return nil
}

func (s *ResetCodeScheduler) Stop() {
	logger.Info("Stopping reset code scheduler...", nil)
	s.cron.Stop()
	logger.Info("Reset code scheduler stopped", nil)
}
