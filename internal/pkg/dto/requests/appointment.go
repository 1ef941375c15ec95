package requests

type BookAppointment struct {
	DoctorID string `json:"docId" validate:"required,hexadecimal,len=24"`
	SlotDate string `json:"slotDate" validate:"required,max=32,slotdate"`
	SlotTime string `json:"slotTime" validate:"required,max=32,slottime"`
	UserID   string `json:"-"`
}

type CancelAppointment struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
	UserID        string `json:"-"`
}

type DoctorAppointmentAction struct {
	AppointmentID string `json:"appointmentId" validate:"required"`
	DoctorID      string `json:"-"`
}
