package middlewares

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

const bookingLimiterGroup = "BOOKING"

// LimitByIP is the global per-address limit applied to every route.
func (m *Middlewares) LimitByIP() func(next http.Handler) http.Handler {
	return httprate.LimitByIP(m.InternalConfig.App.MaxRequests, time.Second)
}

// LimitBookingAttempts caps booking attempts per authenticated patient.
// It must run after AuthenticatePatient. Limiter failures let the request through.
func (m *Middlewares) LimitBookingAttempts(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		userID, _ := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)

		if m.Limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		out, err := m.Limiter.ApplyResourceLimiter(r.Context(), &contracts.ApplyResourceLimiterInput{
			ResourceName:     userID,
			LimiterGroupName: bookingLimiterGroup,
			WindowDuration:   m.InternalConfig.Booking.AttemptWindow,
			MaxQuota:         m.InternalConfig.Booking.AttemptsPerWindow,
		})
		if err != nil {
			m.Log.Warn("Middlewares.LimitBookingAttempts limiter unavailable",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		if !out.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(out.RetryAfter.Seconds()))))
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil, bookingLimiterGroup))
			return
		}
		next.ServeHTTP(w, r)
	})
}
