package middlewares

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	PatientTokens  contracts.TokenManager
	DoctorTokens   contracts.TokenManager
	Limiter        contracts.ResourceLimiter
}

func NewMiddlewares(logger *zap.Logger, internalConfig *config.InternalConfig, patientTokens, doctorTokens contracts.TokenManager, limiter contracts.ResourceLimiter) *Middlewares {
	return &Middlewares{
		Log:            logger,
		InternalConfig: internalConfig,
		PatientTokens:  patientTokens,
		DoctorTokens:   doctorTokens,
		Limiter:        limiter,
	}
}
