package models

import (
	"clinic-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserSnapshot struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

type DoctorSnapshot struct {
	Name       string `bson:"name"`
	Speciality string `bson:"speciality"`
	Fees       int64  `bson:"fees"`
}

type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"userId"`
	DocID       string             `bson:"docId"`
	SlotDate    string             `bson:"slotDate"`
	SlotTime    string             `bson:"slotTime"`
	Amount      int64              `bson:"amount"`
	Date        int64              `bson:"date"`
	IsCompleted bool               `bson:"isCompleted"`
	Cancelled   bool               `bson:"cancelled"`
	Payment     bool               `bson:"payment"`
	UserData    UserSnapshot       `bson:"userData"`
	DocData     DoctorSnapshot     `bson:"docData"`
}

func (a *Appointment) IsActive() bool {
	return !a.Cancelled
}

func (a *Appointment) ToResponse() responses.Appointment {
	return responses.Appointment{
		ID:          a.ID.Hex(),
		UserID:      a.UserID,
		DoctorID:    a.DocID,
		SlotDate:    a.SlotDate,
		SlotTime:    a.SlotTime,
		Amount:      a.Amount,
		Date:        a.Date,
		IsCompleted: a.IsCompleted,
		Cancelled:   a.Cancelled,
		Payment:     a.Payment,
		UserData: responses.UserSnapshot{
			Name:  a.UserData.Name,
			Email: a.UserData.Email,
		},
		DocData: responses.DoctorSnapshot{
			Name:       a.DocData.Name,
			Speciality: a.DocData.Speciality,
			Fees:       a.DocData.Fees,
		},
	}
}

func AppointmentsToResponse(appointments []Appointment) []responses.Appointment {
	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, appointments[i].ToResponse())
	}
	return result
}
