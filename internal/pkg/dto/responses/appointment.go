package responses

type BookAppointment struct {
	AppointmentID string `json:"appointmentId"`
	DoctorID      string `json:"docId"`
	SlotDate      string `json:"slotDate"`
	SlotTime      string `json:"slotTime"`
	Amount        int64  `json:"amount"`
}

type UserSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type DoctorSnapshot struct {
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
	Fees       int64  `json:"fees"`
}

type Appointment struct {
	ID          string         `json:"_id"`
	UserID      string         `json:"userId"`
	DoctorID    string         `json:"docId"`
	SlotDate    string         `json:"slotDate"`
	SlotTime    string         `json:"slotTime"`
	Amount      int64          `json:"amount"`
	Date        int64          `json:"date"`
	IsCompleted bool           `json:"isCompleted"`
	Cancelled   bool           `json:"cancelled"`
	Payment     bool           `json:"payment"`
	UserData    UserSnapshot   `json:"userData"`
	DocData     DoctorSnapshot `json:"docData"`
}
