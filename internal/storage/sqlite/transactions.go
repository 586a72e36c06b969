package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
)

const transactionColumns = `id, user_id, type, category, amount, description, date, month,
	person, group_id, account_id, created_at, updated_at`

// CreateTransaction persists a new transaction to the database.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if txn.CreatedAt == 0 {
		txn.CreatedAt = now
	}
	txn.UpdatedAt = now
	txn.Month = models.MonthOf(txn.Date)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.UserID, string(txn.Type), txn.Category, txn.Amount, txn.Description, txn.Date, txn.Month,
		nullable(txn.Person), nullable(txn.GroupID), txn.AccountID, txn.CreatedAt, txn.UpdatedAt,
	)
	if err != nil {
		return storageErr("insert transaction", err)
	}

	return nil
}

// GetTransaction retrieves one of the user's transactions by ID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, userID, txnID string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ? AND user_id = ?",
		txnID, userID,
	)
	txn, err := scanTransaction(row)
	if isNoRows(err) {
		return nil, notFound("transaction", txnID)
	}
	if err != nil {
		return nil, storageErr("get transaction", err)
	}
	return txn, nil
}

// UpdateTransaction overwrites every mutable field of a transaction.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, txn *models.Transaction) error {
	txn.UpdatedAt = time.Now().Unix()
	txn.Month = models.MonthOf(txn.Date)

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET type = ?, category = ?, amount = ?, description = ?, date = ?, month = ?,
		     person = ?, group_id = ?, account_id = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		string(txn.Type), txn.Category, txn.Amount, txn.Description, txn.Date, txn.Month,
		nullable(txn.Person), nullable(txn.GroupID), txn.AccountID, txn.UpdatedAt,
		txn.ID, txn.UserID,
	)
	if err != nil {
		return storageErr("update transaction", err)
	}
	return checkAffected(res, "transaction", txn.ID)
}

// DeleteTransaction removes a transaction by ID.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, userID, txnID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ? AND user_id = ?", txnID, userID)
	if err != nil {
		return storageErr("delete transaction", err)
	}
	return checkAffected(res, "transaction", txnID)
}

// FindTransactions retrieves the transactions matching the filter.
func (s *SQLiteStore) FindTransactions(ctx context.Context, filter storage.TransactionFilter) ([]*models.Transaction, error) {
	where, args := buildWhere(filter)

	query := "SELECT " + transactionColumns + " FROM transactions WHERE " + strings.Join(where, " AND ") +
		" ORDER BY " + orderBy(filter.Sort)
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("find transactions", err)
	}
	defer rows.Close()

	var txns []*models.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, storageErr("scan transaction", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate transactions", err)
	}

	return txns, nil
}

// ListPeople returns the distinct person names on the user's transactions.
func (s *SQLiteStore) ListPeople(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT person FROM transactions
		 WHERE user_id = ? AND person IS NOT NULL AND person != ''
		 ORDER BY person`,
		userID,
	)
	if err != nil {
		return nil, storageErr("list people", err)
	}
	defer rows.Close()

	people := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageErr("scan person", err)
		}
		people = append(people, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate people", err)
	}
	return people, nil
}

func buildWhere(f storage.TransactionFilter) ([]string, []interface{}) {
	where := []string{"user_id = ?"}
	args := []interface{}{f.UserID}

	eq := func(column, value string) {
		if value != "" {
			where = append(where, column+" = ?")
			args = append(args, value)
		}
	}
	eq("account_id", f.AccountID)
	eq("person", f.Person)
	eq("group_id", f.GroupID)
	eq("type", string(f.Type))
	eq("category", f.Category)
	eq("month", f.Month)

	if f.StartDate != "" {
		where = append(where, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		where = append(where, "date <= ?")
		args = append(args, f.EndDate)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		where = append(where, `(description LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\' OR COALESCE(person, '') LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	return where, args
}

func orderBy(sort string) string {
	switch sort {
	case storage.SortDateAsc:
		return "date ASC, created_at ASC"
	case storage.SortAmountDesc:
		return "CAST(amount AS REAL) DESC, date DESC"
	case storage.SortAmountAsc:
		return "CAST(amount AS REAL) ASC, date DESC"
	default:
		return "date DESC, created_at DESC"
	}
}

// escapeLike escapes LIKE wildcards so the search term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	txn := &models.Transaction{}
	var typ string
	var person, groupID sql.NullString

	err := row.Scan(&txn.ID, &txn.UserID, &typ, &txn.Category, &txn.Amount, &txn.Description, &txn.Date,
		&txn.Month, &person, &groupID, &txn.AccountID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, err
	}

	txn.Type = models.TransactionType(typ)
	if person.Valid {
		txn.Person = person.String
	}
	if groupID.Valid {
		txn.GroupID = groupID.String
	}
	return txn, nil
}
