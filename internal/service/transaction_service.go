package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
	"github.com/mmynk/allocash/pkg/api"
	"github.com/mmynk/allocash/pkg/api/apiconnect"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// TransactionService implements the Connect TransactionService.
type TransactionService struct {
	apiconnect.UnimplementedTransactionServiceHandler
	store storage.Store
}

// NewTransactionService creates a new TransactionService with the given storage backend.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateTransaction records a new income or expense.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *connect.Request[api.CreateTransactionRequest]) (*connect.Response[api.CreateTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		UserID:      userID,
		Type:        models.TransactionType(req.Msg.Type),
		Category:    req.Msg.Category,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		Date:        req.Msg.Date,
		Person:      req.Msg.Person,
		GroupID:     req.Msg.GroupID,
		AccountID:   req.Msg.AccountID,
	}
	if err := models.ValidateTransaction(txn); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.checkReferences(ctx, txn, nil); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateTransaction(ctx, txn); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Transaction created",
		"transaction_id", txn.ID,
		"user_id", userID,
		"type", txn.Type,
		"amount", txn.Amount.String(),
	)

	return connect.NewResponse(&api.CreateTransactionResponse{Transaction: toAPITransaction(txn)}), nil
}

// GetTransaction retrieves one transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, req *connect.Request[api.GetTransactionRequest]) (*connect.Response[api.GetTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	txn, err := s.store.GetTransaction(ctx, userID, req.Msg.TransactionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTransactionResponse{Transaction: toAPITransaction(txn)}), nil
}

// ListTransactions returns the caller's transactions matching the filters.
func (s *TransactionService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := listFilter(userID, req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}

	txns, err := s.store.FindTransactions(ctx, filter)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: toAPITransactions(txns)}), nil
}

// UpdateTransaction applies a partial update and re-validates the result.
func (s *TransactionService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	msg := req.Msg
	if msg.Type == nil && msg.Category == nil && msg.Amount == nil && msg.Description == nil &&
		msg.Date == nil && msg.Person == nil && msg.GroupID == nil && msg.AccountID == nil {
		return nil, toConnectError(fmt.Errorf("%w: no update data provided", models.ErrValidation))
	}

	existing, err := s.store.GetTransaction(ctx, userID, msg.TransactionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	txn := *existing
	if msg.Type != nil {
		txn.Type = models.TransactionType(*msg.Type)
	}
	if msg.Category != nil {
		txn.Category = *msg.Category
	}
	if msg.Amount != nil {
		txn.Amount = *msg.Amount
	}
	if msg.Description != nil {
		txn.Description = *msg.Description
	}
	if msg.Date != nil {
		txn.Date = *msg.Date
	}
	if msg.Person != nil {
		txn.Person = *msg.Person
	}
	if msg.GroupID != nil {
		txn.GroupID = *msg.GroupID
	}
	if msg.AccountID != nil {
		txn.AccountID = *msg.AccountID
	}

	if err := models.ValidateTransaction(&txn); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.checkReferences(ctx, &txn, existing); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateTransaction(ctx, &txn); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Transaction updated", "transaction_id", txn.ID, "user_id", userID)

	return connect.NewResponse(&api.UpdateTransactionResponse{Transaction: toAPITransaction(&txn)}), nil
}

// DeleteTransaction removes a transaction by ID.
func (s *TransactionService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteTransaction(ctx, userID, req.Msg.TransactionID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Transaction deleted", "transaction_id", req.Msg.TransactionID, "user_id", userID)

	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

// checkReferences verifies that the account and group the transaction points
// at belong to the caller. References unchanged from prev are not re-read.
func (s *TransactionService) checkReferences(ctx context.Context, txn, prev *models.Transaction) error {
	if prev == nil || txn.AccountID != prev.AccountID {
		if _, err := s.store.GetAccount(ctx, txn.UserID, txn.AccountID); err != nil {
			return err
		}
	}
	if txn.GroupID != "" && (prev == nil || txn.GroupID != prev.GroupID) {
		if _, err := s.store.GetGroup(ctx, txn.UserID, txn.GroupID); err != nil {
			return err
		}
	}
	return nil
}

func listFilter(userID string, msg *api.ListTransactionsRequest) (storage.TransactionFilter, error) {
	filter := storage.TransactionFilter{
		UserID:    userID,
		AccountID: msg.AccountID,
		Person:    msg.Person,
		GroupID:   msg.GroupID,
		Type:      models.TransactionType(msg.Type),
		Category:  msg.Category,
		Month:     msg.Month,
		StartDate: msg.StartDate,
		EndDate:   msg.EndDate,
		Search:    msg.Search,
		Sort:      msg.Sort,
		Limit:     msg.Limit,
	}

	if msg.Person != "" && msg.GroupID != "" {
		return filter, fmt.Errorf("%w: filter by person or group_id, not both", models.ErrValidation)
	}
	switch filter.Type {
	case "", models.Income, models.Expense:
	default:
		return filter, fmt.Errorf("%w: type must be one of [income expense]", models.ErrValidation)
	}
	if msg.Month != "" {
		if err := models.ValidateMonth(msg.Month); err != nil {
			return filter, err
		}
	}
	if msg.StartDate != "" {
		if err := models.ValidateDate("start_date", msg.StartDate); err != nil {
			return filter, err
		}
	}
	if msg.EndDate != "" {
		if err := models.ValidateDate("end_date", msg.EndDate); err != nil {
			return filter, err
		}
	}
	if !storage.ValidSort(msg.Sort) {
		return filter, fmt.Errorf("%w: sort must be one of [date_desc date_asc amount_desc amount_asc]", models.ErrValidation)
	}

	switch {
	case msg.Limit == 0:
		filter.Limit = defaultListLimit
	case msg.Limit < 1 || msg.Limit > maxListLimit:
		return filter, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrValidation, maxListLimit)
	}

	return filter, nil
}
