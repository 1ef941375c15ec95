package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{AdminAPIKey: "admin-key"},
		JWT: AppJWT{Secret: "secret", ExpTimeInHour: 1},
		Momo: AppMomo{
			PartnerCode: "MOMO",
			AccessKey:   "access",
			SecretKey:   "secret",
			RedirectUrl: "http://localhost:5173/my-appointments",
			IpnUrl:      "http://localhost:4000/api/v1/payments/momo/ipn",
			Endpoint:    "https://test-payment.momo.vn/v2/gateway/api/create",
		},
		Booking: AppBooking{LockTTL: time.Second, LockRetryAttempts: 1},
		Worker:  AppWorker{ReconcilerEnabled: true, ReconcilerCronSpec: "@every 15m", ReconcilerLockTTL: time.Minute},
	}
}

func TestInternalConfig_Validate(t *testing.T) {
	t.Run("Valid Config", func(t *testing.T) {
		assert.NoError(t, validInternalConfig().Validate())
	})

	t.Run("Lists Every Missing Gateway Key", func(t *testing.T) {
		cfg := validInternalConfig()
		cfg.Momo.SecretKey = ""
		cfg.Momo.IpnUrl = " "

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MOMO_SECRET_KEY")
		assert.Contains(t, err.Error(), "MOMO_IPN_URL")
		assert.NotContains(t, err.Error(), "MOMO_ACCESS_KEY")
	})

	t.Run("Rejects Invalid Cron Spec", func(t *testing.T) {
		cfg := validInternalConfig()
		cfg.Worker.ReconcilerCronSpec = "every now and then"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Ignores Cron Spec When Worker Disabled", func(t *testing.T) {
		cfg := validInternalConfig()
		cfg.Worker.ReconcilerEnabled = false
		cfg.Worker.ReconcilerCronSpec = ""
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Rejects Zero Reconciler Lock TTL", func(t *testing.T) {
		cfg := validInternalConfig()
		cfg.Worker.ReconcilerLockTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("Rejects Zero Lock Attempts", func(t *testing.T) {
		cfg := validInternalConfig()
		cfg.Booking.LockRetryAttempts = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestNewInternalConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("MOMO_PARTNER_CODE", "MOMOTEST")
	t.Setenv("BOOKING_LOCK_RETRY_ATTEMPTS", "9")
	t.Setenv("MONGODB_USE_TRANSACTION", "true")

	cfg := NewInternalConfig()

	assert.Equal(t, "MOMOTEST", cfg.Momo.PartnerCode)
	assert.Equal(t, 9, cfg.Booking.LockRetryAttempts)
	assert.True(t, cfg.MongoDB.UseTransaction)
}
