// Package mongo provides a MongoDB-backed implementation of the storage.Store interface.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
)

const (
	accountsCollection     = "accounts"
	groupsCollection       = "groups"
	transactionsCollection = "transactions"

	defaultServerSelectionTimeout = 5 * time.Second
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// MongoStore implements storage.Store using MongoDB.
type MongoStore struct {
	client       *mongodriver.Client
	accounts     *mongodriver.Collection
	groups       *mongodriver.Collection
	transactions *mongodriver.Collection
}

// New connects to MongoDB, verifies the connection and ensures the indexes
// used by the transaction queries exist.
func New(ctx context.Context, uri, database string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri cannot be empty")
	}
	if database == "" {
		return nil, errors.New("mongo database name cannot be empty")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(defaultServerSelectionTimeout)

	client, err := mongodriver.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:       client,
		accounts:     db.Collection(accountsCollection),
		groups:       db.Collection(groupsCollection),
		transactions: db.Collection(transactionsCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	indexes := map[*mongodriver.Collection][]mongodriver.IndexModel{
		s.transactions: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "month", Value: 1}, {Key: "type", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}, {Key: "type", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "person", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "group_id", Value: 1}}},
		},
		s.accounts: {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}}}},
		s.groups:   {{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}}}},
	}

	for coll, idx := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// Ping checks the database connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return storageErr("ping database", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", models.ErrStorage, op, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", models.ErrNotFound, kind, id)
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongodriver.ErrNoDocuments)
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

// byUser scopes a document lookup to its owner.
func byUser(userID, id string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}
