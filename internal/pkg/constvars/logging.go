package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingRequestKey        = "request"
	LoggingResponseKey       = "response"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingCountKey          = "count"
	LoggingUserIDKey         = "user_id"
	LoggingDoctorIDKey       = "doctor_id"
	LoggingAppointmentIDKey  = "appointment_id"
	LoggingSlotDateKey       = "slot_date"
	LoggingSlotTimeKey       = "slot_time"
	LoggingEmailKey          = "email"
	LoggingAmountKey         = "amount"
	LoggingOrderIDKey        = "order_id"
	LoggingResultCodeKey     = "result_code"
	LoggingEventTypeKey      = "event_type"
	LoggingRedisKey          = "redis_key"
	LoggingLockValueKey      = "lock_value"
	LoggingLockAttemptKey    = "lock_attempt"
	LoggingLockStoredValue   = "lock_stored_value"
	LoggingLockExpectedValue = "lock_expected_value"
	LoggingLockExpirationKey = "lock_expiration"
	LoggingCronSpecKey       = "cron_spec"
)
