package constvars

const (
	MongoCollectionUsers        = "users"
	MongoCollectionDoctors      = "doctors"
	MongoCollectionAppointments = "appointments"
)

const (
	MongoIndexUsersEmail           = "users_email_unique"
	MongoIndexDoctorsEmail         = "doctors_email_unique"
	MongoIndexAppointmentsSlot     = "appointments_active_slot_unique"
	MongoIndexAppointmentsUserID   = "appointments_user_id"
	MongoIndexAppointmentsDoctorID = "appointments_doctor_id"
)

const (
	// mongo server error code for duplicate key violations
	MongoDuplicateKeyErrorCode = 11000
)
