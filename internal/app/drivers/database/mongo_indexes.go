package database

import (
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexSpec pairs a collection with the indexes it needs.
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

func RequiredIndexes() []IndexSpec {
	return []IndexSpec{
		{
			Collection: constvars.MongoCollectionUsers,
			Models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName(constvars.MongoIndexUsersEmail).SetUnique(true),
			}},
		},
		{
			Collection: constvars.MongoCollectionDoctors,
			Models: []mongo.IndexModel{{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName(constvars.MongoIndexDoctorsEmail).SetUnique(true),
			}},
		},
		{
			Collection: constvars.MongoCollectionAppointments,
			Models: []mongo.IndexModel{
				{
					// at most one live appointment per doctor slot
					Keys: bson.D{
						{Key: "docId", Value: 1},
						{Key: "slotDate", Value: 1},
						{Key: "slotTime", Value: 1},
					},
					Options: options.Index().
						SetName(constvars.MongoIndexAppointmentsSlot).
						SetUnique(true).
						SetPartialFilterExpression(bson.M{"cancelled": false}),
				},
				{
					Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
					Options: options.Index().SetName(constvars.MongoIndexAppointmentsUserID),
				},
				{
					Keys:    bson.D{{Key: "docId", Value: 1}, {Key: "date", Value: -1}},
					Options: options.Index().SetName(constvars.MongoIndexAppointmentsDoctorID),
				},
			},
		},
	}
}

// EnsureIndexes is idempotent. It returns the names of the indexes created or confirmed.
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) ([]string, error) {
	db := client.Database(dbName)

	var names []string
	for _, spec := range RequiredIndexes() {
		created, err := db.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models)
		if err != nil {
			return names, exceptions.ErrMongoDBCreateIndex(err)
		}
		names = append(names, created...)
	}
	return names, nil
}
