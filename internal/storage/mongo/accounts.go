package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/allocash/internal/models"
)

type accountDoc struct {
	ID        string               `bson:"_id"`
	UserID    string               `bson:"user_id"`
	Name      string               `bson:"name"`
	Balance   primitive.Decimal128 `bson:"balance"`
	CreatedAt int64                `bson:"created_at"`
}

func (d accountDoc) toModel() (*models.Account, error) {
	balance, err := fromDecimal128(d.Balance)
	if err != nil {
		return nil, err
	}
	return &models.Account{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		Balance:   balance,
		CreatedAt: d.CreatedAt,
	}, nil
}

// CreateAccount persists a new account.
func (s *MongoStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	balance, err := toDecimal128(account.Balance)
	if err != nil {
		return storageErr("encode balance", err)
	}

	_, err = s.accounts.InsertOne(ctx, accountDoc{
		ID:        account.ID,
		UserID:    account.UserID,
		Name:      account.Name,
		Balance:   balance,
		CreatedAt: account.CreatedAt,
	})
	if err != nil {
		return storageErr("insert account", err)
	}
	return nil
}

// GetAccount retrieves one of the user's accounts by ID.
func (s *MongoStore) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	var doc accountDoc
	err := s.accounts.FindOne(ctx, byUser(userID, accountID)).Decode(&doc)
	if isNoDocuments(err) {
		return nil, notFound("account", accountID)
	}
	if err != nil {
		return nil, storageErr("get account", err)
	}

	account, err := doc.toModel()
	if err != nil {
		return nil, storageErr("decode account", err)
	}
	return account, nil
}

// ListAccounts retrieves the user's accounts ordered by name.
func (s *MongoStore) ListAccounts(ctx context.Context, userID string) ([]*models.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "created_at", Value: 1}})
	cur, err := s.accounts.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, storageErr("list accounts", err)
	}

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("read accounts", err)
	}

	accounts := make([]*models.Account, 0, len(docs))
	for _, doc := range docs {
		account, err := doc.toModel()
		if err != nil {
			return nil, storageErr("decode account", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

// UpdateAccount updates the name and opening balance of an account.
func (s *MongoStore) UpdateAccount(ctx context.Context, account *models.Account) error {
	balance, err := toDecimal128(account.Balance)
	if err != nil {
		return storageErr("encode balance", err)
	}

	res, err := s.accounts.UpdateOne(ctx, byUser(account.UserID, account.ID), bson.M{
		"$set": bson.M{"name": account.Name, "balance": balance},
	})
	if err != nil {
		return storageErr("update account", err)
	}
	if res.MatchedCount == 0 {
		return notFound("account", account.ID)
	}
	return nil
}

// DeleteAccount removes an account and every transaction in it.
func (s *MongoStore) DeleteAccount(ctx context.Context, userID, accountID string) error {
	res, err := s.accounts.DeleteOne(ctx, byUser(userID, accountID))
	if err != nil {
		return storageErr("delete account", err)
	}
	if res.DeletedCount == 0 {
		return notFound("account", accountID)
	}

	_, err = s.transactions.DeleteMany(ctx, bson.M{"user_id": userID, "account_id": accountID})
	if err != nil {
		return storageErr("delete account transactions", err)
	}
	return nil
}
