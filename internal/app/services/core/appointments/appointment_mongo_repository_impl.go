package appointments

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func buildAppointmentQuery(filter contracts.AppointmentFilter) bson.M {
	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.DocID != "" {
		query["docId"] = filter.DocID
	}
	if filter.SlotDate != "" {
		query["slotDate"] = filter.SlotDate
	}
	if filter.SlotTime != "" {
		query["slotTime"] = filter.SlotTime
	}
	if filter.Cancelled != nil {
		query["cancelled"] = *filter.Cancelled
	}
	return query
}

func (r *AppointmentMongoRepository) Find(ctx context.Context, filter contracts.AppointmentFilter) ([]models.Appointment, error) {
	opts := options.Find()
	if filter.NewestFirst {
		opts.SetSort(bson.D{{Key: "date", Value: -1}})
	} else {
		opts.SetSort(bson.D{{Key: "date", Value: 1}})
	}
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.Collection.Find(ctx, buildAppointmentQuery(filter), opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		// the unique partial index on active (docId, slotDate, slotTime)
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrSlotUnavailable(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	insertedID := result.InsertedID.(primitive.ObjectID)
	appointment.ID = insertedID
	return insertedID.Hex(), nil
}

func (r *AppointmentMongoRepository) UpdateByID(ctx context.Context, appointmentID string, update contracts.AppointmentUpdate) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	set := bson.M{}
	if update.Cancelled != nil {
		set["cancelled"] = *update.Cancelled
	}
	if update.IsCompleted != nil {
		set["isCompleted"] = *update.IsCompleted
	}
	if update.Payment != nil {
		set["payment"] = *update.Payment
	}
	if len(set) == 0 {
		count, err := r.Collection.CountDocuments(ctx, bson.M{"_id": objectID})
		if err != nil {
			return false, exceptions.ErrMongoDBCountDocuments(err)
		}
		return count > 0, nil
	}

	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}
