package logger

import (
	"clinic-service/internal/app/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zap.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zap.InfoLevel, parseLevel("verbose"))
}

func TestOutputPaths(t *testing.T) {
	driverConfig := &config.DriverConfig{Logger: config.Logger{
		OutputFileName:      "app.log",
		OutputErrorFileName: "app_error.log",
	}}

	t.Run("Development Writes To Console", func(t *testing.T) {
		std, errs := outputPaths(driverConfig, "development")
		assert.Equal(t, []string{"stdout"}, std)
		assert.Equal(t, []string{"stderr"}, errs)
	})

	t.Run("Production Writes To Files", func(t *testing.T) {
		std, errs := outputPaths(driverConfig, "production")
		assert.Equal(t, []string{"app.log"}, std)
		assert.Equal(t, []string{"stderr", "app_error.log"}, errs)
	})
}
