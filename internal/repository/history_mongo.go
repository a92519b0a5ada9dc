package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmednasr/movie-motivator/server/internal/models"
)

// DefaultHistoryLimit is used when a caller asks for a non-positive limit.
const DefaultHistoryLimit = 20

// HistoryRepository provides Mongo-backed persistence for produced
// recommendation sets.
type HistoryRepository struct {
	col *mongo.Collection
}

// NewHistoryRepository returns a HistoryRepository that operates on the "recommendations" collection.
func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{
		col: db.Collection("recommendations"),
	}
}

// EnsureIndexes creates the index Recent sorts on. Safe to call on every start.
func (r *HistoryRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "generated_at", Value: -1}},
		Options: options.Index().SetName("generated_at_desc"),
	})
	return err
}

// Insert stores set under a fresh ObjectID.
func (r *HistoryRepository) Insert(ctx context.Context, set models.RecommendationSet) error {
	set.ID = primitive.NewObjectID().Hex()

	_, err := r.col.InsertOne(ctx, set)
	if err != nil {
		log.Error().Err(err).Str("seed", set.Seed).Str("collection", r.col.Name()).Msg("[History Repository] insert failed")
		return err
	}
	log.Debug().Str("id", set.ID).Str("seed", set.Seed).Int("count", len(set.Recommendations)).Msg("[History Repository] stored recommendation set")
	return nil
}

// Recent returns up to limit sets, newest first.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]models.RecommendationSet, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "generated_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	sets := []models.RecommendationSet{}
	if err := cur.All(ctx, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}
