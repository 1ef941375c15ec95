package middlewares

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// AuthenticatePatient reads the patient session from the "token" header.
func (m *Middlewares) AuthenticatePatient(next http.Handler) http.Handler {
	return m.authenticate(constvars.HeaderPatientToken, m.PatientTokens, constvars.CONTEXT_USER_ID_KEY, next)
}

// AuthenticateDoctor reads the doctor session from the "dtoken" header.
func (m *Middlewares) AuthenticateDoctor(next http.Handler) http.Handler {
	return m.authenticate(constvars.HeaderDoctorToken, m.DoctorTokens, constvars.CONTEXT_DOCTOR_ID_KEY, next)
}

func (m *Middlewares) authenticate(header string, tokens contracts.TokenManager, key constvars.ContextKey, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		token := strings.TrimSpace(r.Header.Get(header))
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		subjectID, err := tokens.Verify(r.Context(), token)
		if err != nil {
			m.Log.Info("Middlewares.authenticate rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String("header", header),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), key, subjectID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
