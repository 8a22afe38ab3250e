package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/reptrack/internal/domain"
	"alcyxob/reptrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const measurementCollectionName = "measurements"

// mongoMeasurementRepository implements repository.MeasurementRepository.
type mongoMeasurementRepository struct {
	collection *mongo.Collection
}

// NewMongoMeasurementRepository creates a new instance of mongoMeasurementRepository.
func NewMongoMeasurementRepository(db *mongo.Database) repository.MeasurementRepository {
	return &mongoMeasurementRepository{
		collection: db.Collection(measurementCollectionName),
	}
}

// Create inserts a new body measurement set.
func (r *mongoMeasurementRepository) Create(ctx context.Context, m *domain.BodyMeasurement) (primitive.ObjectID, error) {
	if m.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("measurement user ID is required")
	}

	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	if m.TakenAt.IsZero() {
		m.TakenAt = m.CreatedAt
	}

	result, err := r.collection.InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves one measurement set.
func (r *mongoMeasurementRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.BodyMeasurement, error) {
	var m domain.BodyMeasurement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// GetByUserID retrieves all measurements for a user, newest first.
func (r *mongoMeasurementRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.BodyMeasurement, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "takenAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var measurements []domain.BodyMeasurement
	if err := cursor.All(ctx, &measurements); err != nil {
		return nil, err
	}
	return measurements, nil
}

// GetLatestByUserID retrieves the most recent measurement for a user.
func (r *mongoMeasurementRepository) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.BodyMeasurement, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "takenAt", Value: -1}})

	var m domain.BodyMeasurement
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}, findOptions).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// EnsureMeasurementIndexes creates the indexes required by the measurement collection.
func EnsureMeasurementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "takenAt", Value: -1}},
	}
	_, _ = collection.Indexes().CreateOne(ctx, indexModel)
}
