package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// Validate reports every required key that is missing in one error.
func (c *InternalConfig) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"JWT_SECRET", c.JWT.Secret},
		{"APP_ADMIN_API_KEY", c.App.AdminAPIKey},
		{"MOMO_PARTNER_CODE", c.Momo.PartnerCode},
		{"MOMO_ACCESS_KEY", c.Momo.AccessKey},
		{"MOMO_SECRET_KEY", c.Momo.SecretKey},
		{"MOMO_REDIRECT_URL", c.Momo.RedirectUrl},
		{"MOMO_IPN_URL", c.Momo.IpnUrl},
		{"MOMO_ENDPOINT", c.Momo.Endpoint},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.JWT.ExpTimeInHour <= 0 {
		return fmt.Errorf("JWT_EXP_TIME_IN_HOUR must be positive, got %d", c.JWT.ExpTimeInHour)
	}
	if c.Booking.LockTTL <= 0 {
		return fmt.Errorf("BOOKING_LOCK_TTL must be positive, got %s", c.Booking.LockTTL)
	}
	if c.Booking.LockRetryAttempts < 1 {
		return fmt.Errorf("BOOKING_LOCK_RETRY_ATTEMPTS must be at least 1, got %d", c.Booking.LockRetryAttempts)
	}
	if c.Worker.ReconcilerEnabled {
		if _, err := cron.ParseStandard(c.Worker.ReconcilerCronSpec); err != nil {
			return fmt.Errorf("WORKER_RECONCILER_CRON_SPEC is invalid: %w", err)
		}
		if c.Worker.ReconcilerLockTTL <= 0 {
			return fmt.Errorf("WORKER_RECONCILER_LOCK_TTL must be positive, got %s", c.Worker.ReconcilerLockTTL)
		}
	}
	return nil
}
