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

const sessionCollectionName = "sessions"

// mongoSessionRepository implements repository.SessionRepository.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new instance of mongoSessionRepository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new workout session.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	if session.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session user ID is required")
	}

	session.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByUserID retrieves all sessions for a user, newest first.
func (r *mongoSessionRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutSession, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.WorkoutSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update replaces the whole session document. Sessions are single-writer by
// design (one active screen per session), so a full replace is safe here.
func (r *mongoSessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	session.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": session.ID, "userId": session.UserID}
	result, err := r.collection.ReplaceOne(ctx, filter, session)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListCompletedCardioResults returns every completed cardio result the user
// has logged for the exercise across completed sessions.
func (r *mongoSessionRepository) ListCompletedCardioResults(ctx context.Context, userID, exerciseID primitive.ObjectID) ([]domain.CardioResult, error) {
	filter := bson.M{
		"userId":                   userID,
		"status":                   domain.SessionCompleted,
		"cardioResults.exerciseId": exerciseID,
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []domain.WorkoutSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}

	var results []domain.CardioResult
	for _, session := range sessions {
		for _, result := range session.CardioResults {
			if result.ExerciseID == exerciseID && result.Completed {
				results = append(results, result)
			}
		}
	}
	return results, nil
}

// ClearPersonalRecord unsets the PR flag of the given type on every result
// the user holds for the exercise. Array filters reach into the embedded
// cardioResults documents across all matching sessions.
func (r *mongoSessionRepository) ClearPersonalRecord(ctx context.Context, userID, exerciseID primitive.ObjectID, prType domain.PRType) error {
	filter := bson.M{"userId": userID}
	update := bson.M{"$set": bson.M{
		"cardioResults.$[elem].isPersonalRecord":   false,
		"cardioResults.$[elem].personalRecordType": "",
	}}
	arrayFilters := options.ArrayFilters{
		Filters: []interface{}{bson.M{
			"elem.exerciseId":         exerciseID,
			"elem.personalRecordType": prType,
		}},
	}

	_, err := r.collection.UpdateMany(ctx, filter, update,
		options.Update().SetArrayFilters(arrayFilters))
	return err
}

// EnsureSessionIndexes creates the indexes required by the session collection.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "startedAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "cardioResults.exerciseId", Value: 1}}},
		{Keys: bson.D{{Key: "executionId", Value: 1}}},
	}
	_, _ = collection.Indexes().CreateMany(ctx, models)
}
