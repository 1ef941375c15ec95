package models

type AppointmentEvent struct {
	Type          string `json:"type"`
	AppointmentID string `json:"appointmentId"`
	UserID        string `json:"userId"`
	DoctorID      string `json:"docId"`
	SlotDate      string `json:"slotDate"`
	SlotTime      string `json:"slotTime"`
	Amount        int64  `json:"amount"`
	OccurredAt    int64  `json:"occurredAt"`
}

func NewAppointmentEvent(eventType string, appointment *Appointment, occurredAt int64) *AppointmentEvent {
	return &AppointmentEvent{
		Type:          eventType,
		AppointmentID: appointment.ID.Hex(),
		UserID:        appointment.UserID,
		DoctorID:      appointment.DocID,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
		Amount:        appointment.Amount,
		OccurredAt:    occurredAt,
	}
}
