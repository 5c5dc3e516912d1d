package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/healthease-api/internal/models"
)

// MongoCollection stores records as documents keyed by _id.
type MongoCollection[T Record] struct {
	coll *mongo.Collection
}

func NewMongoCollection[T Record](coll *mongo.Collection) *MongoCollection[T] {
	return &MongoCollection[T]{coll: coll}
}

func (c *MongoCollection[T]) List(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	records := make([]T, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return records, nil
}

func (c *MongoCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return rec, ErrNotFound
	}
	if err != nil {
		return rec, fmt.Errorf("get %s/%s: %w", c.coll.Name(), id, err)
	}
	return rec, nil
}

func (c *MongoCollection[T]) Insert(ctx context.Context, rec T) error {
	if _, err := c.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *MongoCollection[T]) Update(ctx context.Context, rec T) error {
	result, err := c.coll.ReplaceOne(ctx, bson.M{"_id": rec.RecordID()}, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update %s/%s: %w", c.coll.Name(), rec.RecordID(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoCollection[T]) Delete(ctx context.Context, id string) error {
	result, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.coll.Name(), id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoCollection[T]) Count(ctx context.Context) (int, error) {
	n, err := c.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return int(n), nil
}

// NewMongoRepositories maps every collection onto db.
func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Appointments: NewMongoCollection[models.Appointment](db.Collection("appointments")),
		Doctors:      NewMongoCollection[models.Doctor](db.Collection("doctors")),
		Waitlist:     NewMongoCollection[models.WaitlistEntry](db.Collection("waitlist")),
		MedicalNotes: NewMongoCollection[models.MedicalNote](db.Collection("medical_notes")),
		Patients:     NewMongoCollection[models.Patient](db.Collection("patients")),
		Schedule:     NewMongoCollection[models.ScheduleSlot](db.Collection("schedule")),
		Emergencies:  NewMongoCollection[models.EmergencyRequest](db.Collection("emergencies")),
		Users:        NewMongoCollection[models.User](db.Collection("users")),
		Activities:   NewMongoCollection[models.Activity](db.Collection("activities")),
		Profiles:     NewMongoCollection[models.Profile](db.Collection("profiles")),
	}
}

// EnsureIndexes makes account emails unique.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	for _, name := range []string{"users", "doctors"} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("index %s.email: %w", name, err)
		}
	}
	return nil
}
