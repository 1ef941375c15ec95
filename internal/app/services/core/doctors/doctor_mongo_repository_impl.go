package doctors

import (
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName string) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

func slotsBookedField(date string) string {
	return "slots_booked." + date
}

func (r *DoctorMongoRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}

	var doctor models.Doctor
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (r *DoctorMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&doctor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

// Find never returns credentials.
func (r *DoctorMongoRepository) Find(ctx context.Context, filter contracts.DoctorFilter) ([]models.Doctor, error) {
	query := bson.M{}
	if filter.WithBookedSlots {
		query["slots_booked"] = bson.M{"$exists": true, "$ne": bson.M{}}
	}

	opts := options.Find().SetProjection(bson.M{"password": 0, "email": 0})
	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (r *DoctorMongoRepository) Insert(ctx context.Context, doctor *models.Doctor) (string, error) {
	if doctor.SlotsBooked == nil {
		// $addToSet on slots_booked.<date> fails against a null parent
		doctor.SlotsBooked = models.SlotsBooked{}
	}

	result, err := r.Collection.InsertOne(ctx, doctor)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrEmailAlreadyExist(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}

	insertedID := result.InsertedID.(primitive.ObjectID)
	doctor.ID = insertedID
	return insertedID.Hex(), nil
}

func (r *DoctorMongoRepository) UpdateAvailabilityByID(ctx context.Context, doctorID string, available bool) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{"$set": bson.M{"available": available, "updatedAt": time.Now()}}
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

// ReserveSlot is the storage-level guard against double booking: the filter only
// matches while slotTime is absent under date and the doctor is available.
func (r *DoctorMongoRepository) ReserveSlot(ctx context.Context, doctorID, date, slotTime string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return false, exceptions.ErrMongoDBNotObjectID(err)
	}

	field := slotsBookedField(date)
	filter := bson.M{
		"_id":       objectID,
		"available": true,
		field:       bson.M{"$ne": slotTime},
	}
	update := bson.M{
		"$addToSet": bson.M{field: slotTime},
		"$set":      bson.M{"updatedAt": time.Now()},
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *DoctorMongoRepository) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}

	update := bson.M{
		"$pull": bson.M{slotsBookedField(date): slotTime},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
