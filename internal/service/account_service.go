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

// AccountService implements the Connect AccountService.
type AccountService struct {
	apiconnect.UnimplementedAccountServiceHandler
	store storage.Store
}

// NewAccountService creates a new AccountService with the given storage backend.
func NewAccountService(store storage.Store) *AccountService {
	return &AccountService{store: store}
}

// CreateAccount creates a new account.
func (s *AccountService) CreateAccount(ctx context.Context, req *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		UserID:  userID,
		Name:    req.Msg.Name,
		Balance: req.Msg.Balance,
	}
	if err := models.ValidateAccount(account); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateAccount(ctx, account); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Account created", "account_id", account.ID, "user_id", userID)

	return connect.NewResponse(&api.CreateAccountResponse{Account: toAPIAccount(account)}), nil
}

// ListAccounts returns the caller's accounts ordered by name.
func (s *AccountService) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	out := make([]*api.Account, len(accounts))
	for i, a := range accounts {
		out[i] = toAPIAccount(a)
	}

	return connect.NewResponse(&api.ListAccountsResponse{Accounts: out}), nil
}

// UpdateAccount changes the name and/or opening balance of an account.
func (s *AccountService) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if req.Msg.Name == nil && req.Msg.Balance == nil {
		return nil, toConnectError(fmt.Errorf("%w: no update data provided", models.ErrValidation))
	}

	account, err := s.store.GetAccount(ctx, userID, req.Msg.AccountID)
	if err != nil {
		return nil, toConnectError(err)
	}

	if req.Msg.Name != nil {
		account.Name = *req.Msg.Name
	}
	if req.Msg.Balance != nil {
		account.Balance = *req.Msg.Balance
	}
	if err := models.ValidateAccount(account); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateAccount(ctx, account); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Account updated", "account_id", account.ID, "user_id", userID)

	return connect.NewResponse(&api.UpdateAccountResponse{Account: toAPIAccount(account)}), nil
}

// DeleteAccount removes an account together with its transactions.
func (s *AccountService) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteAccount(ctx, userID, req.Msg.AccountID); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Account deleted", "account_id", req.Msg.AccountID, "user_id", userID)

	return connect.NewResponse(&api.DeleteAccountResponse{}), nil
}
