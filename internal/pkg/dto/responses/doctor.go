package responses

type Doctor struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
	Fees       int64  `json:"fees"`
	Available  bool   `json:"available"`
}

type DoctorDashboard struct {
	Earnings           int64         `json:"earnings"`
	Appointments       int           `json:"appointments"`
	Patients           int           `json:"patients"`
	LatestAppointments []Appointment `json:"latestAppointments"`
}
