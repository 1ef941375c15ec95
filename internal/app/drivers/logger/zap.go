package logger

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/pkg/constvars"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.InfoLevel
	}
	return parsed
}

func outputPaths(driverConfig *config.DriverConfig, env string) ([]string, []string) {
	if env == constvars.AppEnvProduction {
		return []string{driverConfig.Logger.OutputFileName},
			[]string{"stderr", driverConfig.Logger.OutputErrorFileName}
	}
	return []string{"stdout"}, []string{"stderr"}
}

func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	isProduction := internalConfig.App.Env == constvars.AppEnvProduction
	stdPaths, errorPaths := outputPaths(driverConfig, internalConfig.App.Env)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var sampling *zap.SamplingConfig
	if isProduction {
		sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(driverConfig.Logger.Level)),
		Development:      internalConfig.App.Env == constvars.AppEnvDevelopment,
		Sampling:         sampling,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      stdPaths,
		ErrorOutputPaths: errorPaths,
	}

	zapLogger, err := cfg.Build(zap.Fields(
		zap.String("service", "clinic-service"),
		zap.String("version", internalConfig.App.Version),
	))
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger
}
