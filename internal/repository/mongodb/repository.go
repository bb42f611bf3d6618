package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petokpredict/server/internal/domain/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository defines the persistence operations for settings and
// calculation history.
type Repository interface {
	LoadSettings(ctx context.Context, installationID string) (*models.AdvancedSettings, error)
	SaveSettings(ctx context.Context, installationID string, settings models.AdvancedSettings) error

	InsertCalculation(ctx context.Context, record models.CalculationRecord) (models.CalculationRecord, error)
	ListCalculations(ctx context.Context, limit int64) ([]models.CalculationRecord, error)
	DeleteCalculation(ctx context.Context, id string) error
	SetCalculationFavorite(ctx context.Context, id string, favorite bool) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client           *mongo.Client
	dbName           string
	settingsColl     string
	calculationsColl string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:           client,
		dbName:           dbName,
		settingsColl:     "advanced_settings",
		calculationsColl: "calculations",
	}, nil
}

// LoadSettings fetches the stored calibration blob for an installation.
// A missing document is not an error; (nil, nil) means "use defaults".
func (r *MongoDBRepository) LoadSettings(ctx context.Context, installationID string) (*models.AdvancedSettings, error) {
	collection := r.client.Database(r.dbName).Collection(r.settingsColl)

	var doc struct {
		ID       string                  `bson:"_id"`
		Settings models.AdvancedSettings `bson:"settings"`
	}
	err := collection.FindOne(ctx, bson.M{"_id": installationID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &doc.Settings, nil
}

// SaveSettings upserts the calibration blob for an installation.
func (r *MongoDBRepository) SaveSettings(ctx context.Context, installationID string, settings models.AdvancedSettings) error {
	collection := r.client.Database(r.dbName).Collection(r.settingsColl)

	doc := bson.M{"_id": installationID, "settings": settings}
	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, bson.M{"_id": installationID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// InsertCalculation stores one history record and returns it with its
// assigned id.
func (r *MongoDBRepository) InsertCalculation(ctx context.Context, record models.CalculationRecord) (models.CalculationRecord, error) {
	collection := r.client.Database(r.dbName).Collection(r.calculationsColl)

	res, err := collection.InsertOne(ctx, record)
	if err != nil {
		return record, fmt.Errorf("failed to insert calculation: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid
	}
	return record, nil
}

// ListCalculations returns the history, favorites first, newest first
// within each group.
func (r *MongoDBRepository) ListCalculations(ctx context.Context, limit int64) ([]models.CalculationRecord, error) {
	collection := r.client.Database(r.dbName).Collection(r.calculationsColl)

	opts := options.Find().SetSort(bson.D{
		{Key: "is_favorite", Value: -1},
		{Key: "calculation_date", Value: -1},
	})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]models.CalculationRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode calculations: %w", err)
	}
	return records, nil
}

// DeleteCalculation removes one record by id.
func (r *MongoDBRepository) DeleteCalculation(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid calculation id %q: %w", id, err)
	}

	collection := r.client.Database(r.dbName).Collection(r.calculationsColl)
	res, err := collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCalculationFavorite pins or unpins a record in the history list.
func (r *MongoDBRepository) SetCalculationFavorite(ctx context.Context, id string, favorite bool) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid calculation id %q: %w", id, err)
	}

	collection := r.client.Database(r.dbName).Collection(r.calculationsColl)
	res, err := collection.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_favorite": favorite}})
	if err != nil {
		return fmt.Errorf("failed to update calculation: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
