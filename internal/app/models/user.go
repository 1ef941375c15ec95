package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password"`
	TimeModel `bson:",inline"`
}

func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		Name:  u.Name,
		Email: u.Email,
	}
}
