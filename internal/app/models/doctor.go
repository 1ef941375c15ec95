package models

import (
	"clinic-service/internal/pkg/dto/responses"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SlotsBooked maps a date key to the reserved time strings of that day.
type SlotsBooked map[string][]string

func (s SlotsBooked) IsBooked(date, slotTime string) bool {
	for _, booked := range s[date] {
		if booked == slotTime {
			return true
		}
	}
	return false
}

// Reserve adds slotTime under date and reports false when it was already taken.
func (s SlotsBooked) Reserve(date, slotTime string) bool {
	if s.IsBooked(date, slotTime) {
		return false
	}
	s[date] = append(s[date], slotTime)
	return true
}

// Release removes every occurrence of slotTime under date. Releasing a free slot is a no-op.
func (s SlotsBooked) Release(date, slotTime string) bool {
	times, ok := s[date]
	if !ok {
		return false
	}

	kept := times[:0:0]
	for _, booked := range times {
		if booked != slotTime {
			kept = append(kept, booked)
		}
	}
	s[date] = kept
	return len(kept) != len(times)
}

func (s SlotsBooked) Clone() SlotsBooked {
	clone := make(SlotsBooked, len(s))
	for date, times := range s {
		clone[date] = append([]string(nil), times...)
	}
	return clone
}

type Doctor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Speciality  string             `bson:"speciality"`
	Fees        int64              `bson:"fees"`
	Available   bool               `bson:"available"`
	SlotsBooked SlotsBooked        `bson:"slots_booked"`
	TimeModel   `bson:",inline"`
}

func (d *Doctor) Snapshot() DoctorSnapshot {
	return DoctorSnapshot{
		Name:       d.Name,
		Speciality: d.Speciality,
		Fees:       d.Fees,
	}
}

func (d *Doctor) ToResponse() responses.Doctor {
	return responses.Doctor{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Speciality: d.Speciality,
		Fees:       d.Fees,
		Available:  d.Available,
	}
}
