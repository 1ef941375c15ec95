package constvars

// Stable machine-readable codes returned to clients.
const (
	ErrCodeUnauthorized         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeSlotUnavailable      = "SLOT_UNAVAILABLE"
	ErrCodeGatewayError         = "GATEWAY_ERROR"
	ErrCodeStorageError         = "STORAGE_ERROR"
	ErrCodeDoctorUnavailable    = "DOCTOR_UNAVAILABLE"
	ErrCodeDoctorBusy           = "DOCTOR_BUSY"
	ErrCodeValidationError      = "VALIDATION_ERROR"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeEmailExists          = "EMAIL_EXISTS"
	ErrCodeAppointmentCancelled = "APPOINTMENT_CANCELLED"
	ErrCodeAppointmentPaid      = "APPOINTMENT_PAID"
	ErrCodeAmountMismatch       = "AMOUNT_MISMATCH"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeDeadlineExceeded     = "DEADLINE_EXCEEDED"
	ErrCodeTooManyRequests      = "TOO_MANY_REQUESTS"
)

// Client messages
const (
	ErrClientCannotProcessRequest          = "We couldn't process your request. Please check your input and try again"
	ErrClientSomethingWrongWithApplication = "Something went wrong on our side. Please try again later"
	ErrClientServerLongRespond             = "The server took too long to respond. Please try again later"
	ErrClientNotAuthorized                 = "Not authorized. Please login again"
	ErrClientForbidden                     = "You don't have access to this resource"
	ErrClientInvalidEmailOrPassword        = "Invalid email or password"
	ErrClientEmailAlreadyExists            = "An account with this email already exists"
	ErrClientDoctorNotFound                = "Doctor not found"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientUserNotFound                  = "User not found"
	ErrClientDoctorNotAvailable            = "Doctor not available"
	ErrClientDoctorBusy                    = "The doctor's schedule is being updated. Please try again"
	ErrClientSlotNotAvailable              = "Slot not available"
	ErrClientPaymentGatewayFailed          = "Payment provider is unavailable. Please try again later"
	ErrClientAppointmentCancelled          = "Appointment has been cancelled"
	ErrClientAppointmentAlreadyPaid        = "Appointment has already been paid"
	ErrClientPaymentAmountMismatch         = "Payment amount does not match the appointment fee"
	ErrClientInvalidSlotDate               = "slotdate is invalid"
	ErrClientTooManyRequests               = "Too many attempts. Please wait and try again"
)

// Developer messages
const (
	ErrDevValidationFailed          = "input validation failed"
	ErrDevInvalidInput              = "invalid input"
	ErrDevCannotParseJSON           = "cannot parse JSON request body"
	ErrDevCannotMarshalJSON         = "cannot marshal JSON"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevServerProcess             = "server failed to process the request"
	ErrDevMissingRequestID          = "request id missing from context"
	ErrDevFailedToHashPassword      = "failed to hash password"
	ErrDevInvalidCredentials        = "email or password mismatch"
	ErrDevEmailAlreadyExists        = "email already registered"
	ErrDevAuthTokenMissing          = "auth token header missing"
	ErrDevAuthTokenInvalidOrExpired = "auth token invalid or expired"
	ErrDevAuthGenerateToken         = "failed to sign auth token"
	ErrDevAuthSigningMethod         = "unexpected token signing method"
	ErrDevAuthSubjectMissing        = "auth token has no subject claim"
	ErrDevInvalidAPIKey             = "api key missing or mismatched"
	ErrDevAppointmentNotOwned       = "appointment does not belong to requester"
	ErrDevDoctorNotExists           = "doctor does not exist"
	ErrDevAppointmentNotExists      = "appointment does not exist"
	ErrDevUserNotExists             = "user does not exist"
	ErrDevDoctorNotAvailable        = "doctor is marked unavailable"
	ErrDevDoctorLockNotAcquired     = "booking lock for doctor not acquired"
	ErrDevSlotAlreadyBooked         = "slot already reserved"
	ErrDevInvalidSlotDate           = "slot date contains characters not allowed in a field path"
	ErrDevAppointmentCancelled      = "appointment already cancelled"
	ErrDevAppointmentAlreadyPaid    = "appointment already paid"
	ErrDevPaymentAmountMismatch     = "notification amount %d does not match appointment amount %d"
	ErrDevInvalidGatewaySignature   = "gateway notification signature mismatch"
	ErrDevRateLimitExceeded         = "rate limit exceeded for %s"

	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToInsertDocument   = "failed to insert document"
	ErrDevDBFailedToUpdateDocument   = "failed to update document"
	ErrDevDBFailedToCountDocuments   = "failed to count documents"
	ErrDevDBFailedToCreateIndex      = "failed to create index"
	ErrDevDBStringNotObjectID        = "string is not a valid object id"
	ErrDevDBTransaction              = "mongo transaction failed"

	ErrDevRedisGetNoData  = "redis has no data for key %s"
	ErrDevRedisSetData    = "failed to set redis data"
	ErrDevRedisDeleteData = "failed to delete redis data"
	ErrDevRedisExpire     = "failed to set redis key expiry"
	ErrDevRedisUnlock     = "failed to release redis lock"

	ErrDevRabbitMQPublishMessage = "failed to publish message to exchange %s"

	ErrDevCreateHTTPRequest       = "failed to create HTTP request"
	ErrDevSendHTTPRequest         = "failed to send HTTP request"
	ErrDevGatewayBadStatus        = "payment gateway responded with status %d"
	ErrDevGatewayRejected         = "payment gateway rejected the request with result code %d: %s"
	ErrDevGatewayMissingPayURL    = "payment gateway response has no payUrl"
	ErrDevGatewayRateLimiterWait  = "payment gateway rate limiter wait failed"
	ErrDevGatewayExtraDataInvalid = "payment gateway extraData cannot be decoded"
)

var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"email":       "should be a valid email",
	"min":         "should have at least %s characters",
	"max":         "should have at most %s characters",
	"gte":         "should be greater than or equal to %s",
	"gt":          "should be greater than %s",
	"len":         "should have exactly %s characters",
	"hexadecimal": "should be a valid id",
	"slotdate":    "is invalid",
	"slottime":    "is invalid",
}

var TagsWithParams = map[string]bool{
	"min": true,
	"max": true,
	"gte": true,
	"gt":  true,
	"len": true,
}
