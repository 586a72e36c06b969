package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/allocash/internal/models"
)

// CreateAccount persists a new account to the database.
func (s *SQLiteStore) CreateAccount(ctx context.Context, account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO accounts (id, user_id, name, balance, created_at) VALUES (?, ?, ?, ?, ?)",
		account.ID, account.UserID, account.Name, account.Balance, account.CreatedAt,
	)
	if err != nil {
		return storageErr("insert account", err)
	}

	return nil
}

// GetAccount retrieves one of the user's accounts by ID.
func (s *SQLiteStore) GetAccount(ctx context.Context, userID, accountID string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name, balance, created_at FROM accounts WHERE id = ? AND user_id = ?",
		accountID, userID,
	).Scan(&account.ID, &account.UserID, &account.Name, &account.Balance, &account.CreatedAt)
	if isNoRows(err) {
		return nil, notFound("account", accountID)
	}
	if err != nil {
		return nil, storageErr("get account", err)
	}

	return account, nil
}

// ListAccounts retrieves the user's accounts ordered by name.
func (s *SQLiteStore) ListAccounts(ctx context.Context, userID string) ([]*models.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, user_id, name, balance, created_at FROM accounts WHERE user_id = ? ORDER BY name, created_at",
		userID,
	)
	if err != nil {
		return nil, storageErr("list accounts", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		account := &models.Account{}
		if err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Balance, &account.CreatedAt); err != nil {
			return nil, storageErr("scan account", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate accounts", err)
	}

	return accounts, nil
}

// UpdateAccount overwrites the name and opening balance of an account.
func (s *SQLiteStore) UpdateAccount(ctx context.Context, account *models.Account) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE accounts SET name = ?, balance = ? WHERE id = ? AND user_id = ?",
		account.Name, account.Balance, account.ID, account.UserID,
	)
	if err != nil {
		return storageErr("update account", err)
	}
	return checkAffected(res, "account", account.ID)
}

// DeleteAccount removes an account together with its transactions.
func (s *SQLiteStore) DeleteAccount(ctx context.Context, userID, accountID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM transactions WHERE account_id = ? AND user_id = ?",
		accountID, userID,
	); err != nil {
		return storageErr("delete account transactions", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM accounts WHERE id = ? AND user_id = ?", accountID, userID)
	if err != nil {
		return storageErr("delete account", err)
	}
	if err := checkAffected(res, "account", accountID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}
	return nil
}
