package mongo

import (
	"context"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
)

type transactionDoc struct {
	ID          string               `bson:"_id"`
	UserID      string               `bson:"user_id"`
	Type        string               `bson:"type"`
	Category    string               `bson:"category"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Description string               `bson:"description"`
	Date        string               `bson:"date"`
	Month       string               `bson:"month"`
	Person      string               `bson:"person,omitempty"`
	GroupID     string               `bson:"group_id,omitempty"`
	AccountID   string               `bson:"account_id"`
	CreatedAt   int64                `bson:"created_at"`
	UpdatedAt   int64                `bson:"updated_at"`
}

func newTransactionDoc(txn *models.Transaction) (transactionDoc, error) {
	amount, err := toDecimal128(txn.Amount)
	if err != nil {
		return transactionDoc{}, err
	}
	return transactionDoc{
		ID:          txn.ID,
		UserID:      txn.UserID,
		Type:        string(txn.Type),
		Category:    txn.Category,
		Amount:      amount,
		Description: txn.Description,
		Date:        txn.Date,
		Month:       txn.Month,
		Person:      txn.Person,
		GroupID:     txn.GroupID,
		AccountID:   txn.AccountID,
		CreatedAt:   txn.CreatedAt,
		UpdatedAt:   txn.UpdatedAt,
	}, nil
}

func (d transactionDoc) toModel() (*models.Transaction, error) {
	amount, err := fromDecimal128(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.Transaction{
		ID:          d.ID,
		UserID:      d.UserID,
		Type:        models.TransactionType(d.Type),
		Category:    d.Category,
		Amount:      amount,
		Description: d.Description,
		Date:        d.Date,
		Month:       d.Month,
		Person:      d.Person,
		GroupID:     d.GroupID,
		AccountID:   d.AccountID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

// CreateTransaction persists a new transaction.
func (s *MongoStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if txn.CreatedAt == 0 {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now
	txn.Month = models.MonthOf(txn.Date)

	doc, err := newTransactionDoc(txn)
	if err != nil {
		return storageErr("encode transaction", err)
	}
	if _, err := s.transactions.InsertOne(ctx, doc); err != nil {
		return storageErr("insert transaction", err)
	}
	return nil
}

// GetTransaction retrieves one of the user's transactions by ID.
func (s *MongoStore) GetTransaction(ctx context.Context, userID, txnID string) (*models.Transaction, error) {
	var doc transactionDoc
	err := s.transactions.FindOne(ctx, byUser(userID, txnID)).Decode(&doc)
	if isNoDocuments(err) {
		return nil, notFound("transaction", txnID)
	}
	if err != nil {
		return nil, storageErr("get transaction", err)
	}

	txn, err := doc.toModel()
	if err != nil {
		return nil, storageErr("decode transaction", err)
	}
	return txn, nil
}

// UpdateTransaction replaces the stored document, so clearing Person or
// GroupID removes the field.
func (s *MongoStore) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	txn.UpdatedAt = time.Now().Unix()
	txn.Month = models.MonthOf(txn.Date)

	doc, err := newTransactionDoc(txn)
	if err != nil {
		return storageErr("encode transaction", err)
	}

	res, err := s.transactions.ReplaceOne(ctx, byUser(txn.UserID, txn.ID), doc)
	if err != nil {
		return storageErr("update transaction", err)
	}
	if res.MatchedCount == 0 {
		return notFound("transaction", txn.ID)
	}
	return nil
}

// DeleteTransaction removes a transaction by ID.
func (s *MongoStore) DeleteTransaction(ctx context.Context, userID, txnID string) error {
	res, err := s.transactions.DeleteOne(ctx, byUser(userID, txnID))
	if err != nil {
		return storageErr("delete transaction", err)
	}
	if res.DeletedCount == 0 {
		return notFound("transaction", txnID)
	}
	return nil
}

// FindTransactions retrieves the transactions matching the filter.
func (s *MongoStore) FindTransactions(ctx context.Context, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	opts := options.Find().SetSort(sortSpec(filter.Sort))
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := s.transactions.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, storageErr("find transactions", err)
	}

	var docs []transactionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("read transactions", err)
	}

	txns := make([]*models.Transaction, 0, len(docs))
	for _, doc := range docs {
		txn, err := doc.toModel()
		if err != nil {
			return nil, storageErr("decode transaction", err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// ListPeople returns the distinct person names on the user's transactions.
func (s *MongoStore) ListPeople(ctx context.Context, userID string) ([]string, error) {
	values, err := s.transactions.Distinct(ctx, "person", bson.M{
		"user_id": userID,
		"person":  bson.M{"$nin": bson.A{nil, ""}},
	})
	if err != nil {
		return nil, storageErr("list people", err)
	}

	people := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok && name != "" {
			people = append(people, name)
		}
	}
	sort.Strings(people)
	return people, nil
}

func buildQuery(f storage.TransactionFilter) bson.M {
	query := bson.M{"user_id": f.UserID}

	eq := func(field, value string) {
		if value != "" {
			query[field] = value
		}
	}
	eq("account_id", f.AccountID)
	eq("person", f.Person)
	eq("group_id", f.GroupID)
	eq("type", string(f.Type))
	eq("category", f.Category)
	eq("month", f.Month)

	if f.StartDate != "" || f.EndDate != "" {
		dateRange := bson.M{}
		if f.StartDate != "" {
			dateRange["$gte"] = f.StartDate
		}
		if f.EndDate != "" {
			dateRange["$lte"] = f.EndDate
		}
		query["date"] = dateRange
	}

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"description": pattern},
			bson.M{"category": pattern},
			bson.M{"person": pattern},
		}
	}

	return query
}

func sortSpec(order string) bson.D {
	switch order {
	case storage.SortDateAsc:
		return bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}}
	case storage.SortAmountDesc:
		return bson.D{{Key: "amount", Value: -1}, {Key: "date", Value: -1}}
	case storage.SortAmountAsc:
		return bson.D{{Key: "amount", Value: 1}, {Key: "date", Value: -1}}
	default:
		return bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}
	}
}
