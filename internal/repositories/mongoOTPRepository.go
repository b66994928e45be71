package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"otpstore/internal/models"
)

const backendMongo = "mongo"

type mongoOTPRepository struct {
	collection *mongo.Collection
}

// NewMongoOTPRepository stores one document per OTP, keyed by the code.
func NewMongoOTPRepository(db *mongo.Database, collection string) OTPRepository {
	return &mongoOTPRepository{collection: db.Collection(collection)}
}

func (r *mongoOTPRepository) Load(ctx context.Context) (otps []models.OTP, err error) {
	defer func(start time.Time) { observe(backendMongo, "load", start, err) }(time.Now())

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find otps: %w", err)
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &otps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedStorage, err)
	}
	return otps, nil
}

// Save replaces the collection contents in a single ordered bulk write.
func (r *mongoOTPRepository) Save(ctx context.Context, otps []models.OTP) (err error) {
	defer func(start time.Time) { observe(backendMongo, "save", start, err) }(time.Now())

	writes := make([]mongo.WriteModel, 0, len(otps)+1)
	writes = append(writes, mongo.NewDeleteManyModel().SetFilter(bson.M{}))
	for _, otp := range otps {
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(otp))
	}

	if _, err = r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("replace otps: %w", err)
	}
	return nil
}

func (r *mongoOTPRepository) Ping(ctx context.Context) error {
	return r.collection.Database().Client().Ping(ctx, nil)
}
