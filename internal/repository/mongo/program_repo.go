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

const (
	templateCollectionName  = "program_templates"
	executionCollectionName = "program_executions"
)

// mongoProgramRepository implements repository.ProgramRepository over two
// collections: one for templates, one for executions.
type mongoProgramRepository struct {
	templates  *mongo.Collection
	executions *mongo.Collection
}

// NewMongoProgramRepository creates a new instance of mongoProgramRepository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		templates:  db.Collection(templateCollectionName),
		executions: db.Collection(executionCollectionName),
	}
}

// CreateTemplate inserts a new program template.
func (r *mongoProgramRepository) CreateTemplate(ctx context.Context, tmpl *domain.ProgramTemplate) (primitive.ObjectID, error) {
	if tmpl.Name == "" || tmpl.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("template name and user ID are required")
	}
	if tmpl.Weeks < 1 || tmpl.DaysPerWeek < 1 {
		return primitive.NilObjectID, errors.New("template weeks and days per week must be at least 1")
	}

	tmpl.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	result, err := r.templates.InsertOne(ctx, tmpl)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetTemplateByID retrieves a single program template.
func (r *mongoProgramRepository) GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramTemplate, error) {
	var tmpl domain.ProgramTemplate
	err := r.templates.FindOne(ctx, bson.M{"_id": id}).Decode(&tmpl)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tmpl, nil
}

// GetTemplatesByUserID retrieves all templates owned by the user.
func (r *mongoProgramRepository) GetTemplatesByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramTemplate, error) {
	cursor, err := r.templates.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var templates []domain.ProgramTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// CreateExecution inserts a new program execution.
func (r *mongoProgramRepository) CreateExecution(ctx context.Context, exec *domain.ProgramExecution) (primitive.ObjectID, error) {
	if exec.UserID == primitive.NilObjectID || exec.ProgramID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("execution user ID and program ID are required")
	}

	exec.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exec.CreatedAt = now
	exec.UpdatedAt = now
	if exec.StartedAt.IsZero() {
		exec.StartedAt = now
	}

	result, err := r.executions.InsertOne(ctx, exec)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetExecutionByID retrieves a single program execution.
func (r *mongoProgramRepository) GetExecutionByID(ctx context.Context, id primitive.ObjectID) (*domain.ProgramExecution, error) {
	var exec domain.ProgramExecution
	err := r.executions.FindOne(ctx, bson.M{"_id": id}).Decode(&exec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exec, nil
}

// GetExecutionsByUserID retrieves all executions for a user, newest first.
func (r *mongoProgramRepository) GetExecutionsByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ProgramExecution, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "startedAt", Value: -1}})
	cursor, err := r.executions.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var executions []domain.ProgramExecution
	if err := cursor.All(ctx, &executions); err != nil {
		return nil, err
	}
	return executions, nil
}

// UpdateExecution persists the execution pointers and completion state.
func (r *mongoProgramRepository) UpdateExecution(ctx context.Context, exec *domain.ProgramExecution) error {
	filter := bson.M{"_id": exec.ID, "userId": exec.UserID}
	update := bson.M{"$set": bson.M{
		"currentWeek":         exec.CurrentWeek,
		"currentDay":          exec.CurrentDay,
		"isCompleted":         exec.IsCompleted,
		"endedAt":             exec.EndedAt,
		"completedSessionIds": exec.CompletedSessionIDs,
		"updatedAt":           time.Now().UTC(),
	}}

	result, err := r.executions.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates the indexes required by the program collections.
func EnsureProgramIndexes(ctx context.Context, templates, executions *mongo.Collection) {
	_, _ = templates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	_, _ = executions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isCompleted", Value: 1}},
	})
}
