package utils

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/dto/responses"
	"clinic-service/internal/pkg/exceptions"
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildErrorResponse writes the failure envelope. Errors that are not a
// CustomError surface as a generic internal error; dev details and call
// locations are only exposed outside production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) {
		customErr = exceptions.ErrServerProcess(err)
	}

	fields := []zap.Field{
		zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
		zap.String(constvars.LoggingErrorTypeKey, customErr.ErrorCode),
		zap.Any("locations", customErr.Locations),
	}
	if customErr.StatusCode >= http.StatusInternalServerError {
		log.Error(customErr.DevMessage, fields...)
	} else {
		log.Warn(customErr.DevMessage, fields...)
	}

	body := exceptions.CustomError{
		StatusCode:    customErr.StatusCode,
		Success:       false,
		ErrorCode:     customErr.ErrorCode,
		ClientMessage: customErr.ClientMessage,
	}
	if GetEnvString("APP_ENV", constvars.AppEnvDevelopment) != constvars.AppEnvProduction {
		body.DevMessage = customErr.DevMessage
		body.Locations = customErr.Locations
	}
	writeJSON(w, customErr.StatusCode, body)
}
