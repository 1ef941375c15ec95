package exceptions

import (
	"clinic-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

const maxLocationDepth = 3

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ErrorCode     string     `json:"error_code,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	cause         error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if len(e.Locations) == 0 {
		return e.DevMessage
	}
	location := e.Locations[0]
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, location.File, location.Line, location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.cause
}

// BuildNewCustomError records the call site of the constructor that invoked it.
// The cause, when present, is appended to the dev message and kept for errors.Is.
func BuildNewCustomError(err error, statusCode int, errorCode, clientMessage, devMessage string) *CustomError {
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		Success:       false,
		ErrorCode:     errorCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     getLocations(3),
		cause:         err,
	}
}

// CodeOf returns the ErrorCode of the first CustomError in err's chain.
func CodeOf(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.ErrorCode
	}
	return ""
}

func HasCode(err error, errorCode string) bool {
	return CodeOf(err) == errorCode
}

func getLocations(skip int) []Location {
	pcs := make([]uintptr, maxLocationDepth)
	n := runtime.Callers(skip+1, pcs)
	if n == 0 {
		return []Location{{
			File:         constvars.ResponseUnknown,
			FunctionName: constvars.ResponseUnknown,
		}}
	}

	locations := make([]Location, 0, n)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		locations = append(locations, Location{
			File:         frame.File,
			Line:         frame.Line,
			FunctionName: frame.Function,
		})
		if !more {
			break
		}
	}
	return locations
}
