package utils

import (
	"clinic-service/internal/pkg/constvars"
	"fmt"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func BuildBookingLockKey(doctorID string) string {
	return fmt.Sprintf(constvars.BookingLockKeyFormat, doctorID)
}
