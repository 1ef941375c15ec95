package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_USER_ID_KEY              ContextKey = "user_id"
	CONTEXT_DOCTOR_ID_KEY            ContextKey = "doctor_id"
	CONTEXT_API_KEY_AUTH_KEY         ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "CLINIC_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	JWTClaimSubjectID = "id"
	JWTClaimExpiry    = "exp"
	JWTClaimIssuedAt  = "iat"
)

const (
	// appointment dashboards show this many of the most recent bookings
	DashboardLatestAppointmentsLimit = 5
)

const (
	BookingLockKeyFormat    = "booking:doctor:%s"
	ReconcilerLeaderLockKey = "reconciler:leader"
)

const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventAppointmentPaid      = "appointment.paid"
)
