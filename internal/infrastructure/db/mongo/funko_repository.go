package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/madirex/funko-server/internal/core/domain"
)

const (
	collectionFunkos = "funkos"

	// queryTimeout bounds a single store operation. Dial-time limits live in
	// Connect.
	queryTimeout = 10 * time.Second
)

// FunkoRepository implements the persistent-store contract on a MongoDB
// collection.
type FunkoRepository struct {
	col *mongo.Collection
}

func NewFunkoRepository(db *mongo.Database) *FunkoRepository {
	return &FunkoRepository{col: db.Collection(collectionFunkos)}
}

func (r *FunkoRepository) FindAll(ctx context.Context) ([]domain.Funko, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "number", Value: 1}}))
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

func (r *FunkoRepository) FindByID(ctx context.Context, id string) (*domain.Funko, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var f domain.Funko
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: id %s", domain.ErrFunkoNotFound, id)
		}
		return nil, err
	}
	return &f, nil
}

func (r *FunkoRepository) FindByModel(ctx context.Context, model domain.Model) ([]domain.Funko, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{"model": model})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

func (r *FunkoRepository) FindByReleaseYear(ctx context.Context, year int) ([]domain.Funko, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	cursor, err := r.col.Find(ctx, bson.M{
		"release_date": bson.M{"$gte": start, "$lt": end},
	})
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cursor)
}

func (r *FunkoRepository) Save(ctx context.Context, f domain.Funko) (*domain.Funko, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FunkoRepository) Update(ctx context.Context, id string, f domain.Funko) (*domain.Funko, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	f.ID = id
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": id}, f)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("%w: id %s", domain.ErrFunkoNotFound, id)
	}
	return &f, nil
}

func (r *FunkoRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// EnsureIndexes creates the indexes the repository's queries rely on.
func (r *FunkoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "model", Value: 1}}},
		{Keys: bson.D{{Key: "release_date", Value: 1}}},
		{Keys: bson.D{{Key: "number", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]domain.Funko, error) {
	defer cursor.Close(ctx)
	var out []domain.Funko
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
