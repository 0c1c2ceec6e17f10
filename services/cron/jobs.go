package cron

import (
	"log"
	"time"

	"github.com/sahilchouksey/health-platform-api/model"
)

// CleanupTokenBlacklist deletes blacklist rows whose tokens have expired.
// An expired token fails validation anyway, so the row is pure bloat.
func (m *CronManager) CleanupTokenBlacklist() {
	result := m.db.
		Where("expires_at < ?", time.Now()).
		Delete(&model.TokenBlacklist{})

	if result.Error != nil {
		log.Printf("[cron] token blacklist cleanup failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[cron] removed %d expired blacklist entries", result.RowsAffected)
	}
}

// CleanupExpiredResetTokens nulls out password reset tokens past their expiry
func (m *CronManager) CleanupExpiredResetTokens() {
	result := m.db.
		Model(&model.User{}).
		Where("reset_token IS NOT NULL AND reset_token_expiry < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})

	if result.Error != nil {
		log.Printf("[cron] reset token cleanup failed: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[cron] cleared %d expired reset tokens", result.RowsAffected)
	}
}
