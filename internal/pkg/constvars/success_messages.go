package constvars

const (
	ResponseSuccess = "success"
	ResponseUnknown = "unknown"
)

const (
	RegisterUserSuccessMessage        = "user registered successfully"
	LoginUserSuccessMessage           = "user logged in successfully"
	LoginDoctorSuccessMessage         = "doctor logged in successfully"
	AddDoctorSuccessMessage           = "doctor added successfully"
	GetDoctorListSuccessMessage       = "doctor list retrieved successfully"
	ChangeAvailabilitySuccessMessage  = "availability changed successfully"
	BookAppointmentSuccessMessage     = "appointment booked"
	CancelAppointmentSuccessMessage   = "appointment cancelled"
	CompleteAppointmentSuccessMessage = "appointment completed"
	GetAppointmentsSuccessMessage     = "appointments retrieved successfully"
	GetDashboardSuccessMessage        = "dashboard retrieved successfully"
	InitiatePaymentSuccessMessage     = "payment initiated"
	ConfirmPaymentSuccessMessage      = "payment confirmed"
	PaymentNotificationSuccessMessage = "payment notification processed"
)
