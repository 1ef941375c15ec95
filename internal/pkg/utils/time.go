package utils

import "time"

// EpochMillis matches the millisecond timestamps stored on appointments.
func EpochMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
