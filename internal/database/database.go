package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type Service interface {
	Client() *mongo.Client
	Database(name string) *mongo.Database
	Close(ctx context.Context) error
}

type service struct {
	db *mongo.Client
}

func New(ctx context.Context, mongoURI string) (Service, error) {
	if mongoURI == "" {
		return nil, errors.New("MONGO_URI environment variable not set")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	log.Info().Msg("Connected to MongoDB")
	return &service{
		db: client,
	}, nil
}

func (s *service) Client() *mongo.Client {
	return s.db
}

func (s *service) Database(name string) *mongo.Database {
	return s.db.Database(name)
}

func (s *service) Close(ctx context.Context) error {
	return s.db.Disconnect(ctx)
}
