package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/allocash/internal/ledger"
	"github.com/mmynk/allocash/internal/models"
	"github.com/mmynk/allocash/internal/storage"
	"github.com/mmynk/allocash/pkg/api"
	"github.com/mmynk/allocash/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService: people, balances and
// settlement.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	store  storage.Store
	ledger *ledger.Ledger
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store storage.Store, l *ledger.Ledger) *LedgerService {
	return &LedgerService{store: store, ledger: l}
}

// ListPeople returns every person the caller has transactions with.
func (s *LedgerService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	people, err := s.store.ListPeople(ctx, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListPeopleResponse{People: people}), nil
}

// GetBalance returns the net balance with a person or a group.
func (s *LedgerService) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	cp := models.Counterparty{Person: req.Msg.Person, GroupID: req.Msg.GroupID}
	net, err := s.ledger.NetBalance(ctx, userID, cp, req.Msg.AccountID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetBalanceResponse{
		Person:     cp.Person,
		GroupID:    cp.GroupID,
		NetBalance: net,
	}), nil
}

// Settle writes the transaction that zeroes the balance with a counterparty.
func (s *LedgerService) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	cp := models.Counterparty{Person: req.Msg.Person, GroupID: req.Msg.GroupID}
	slog.Info("Settle request received",
		"user_id", userID,
		"counterparty", cp.Key(),
		"account_id", req.Msg.AccountID,
	)

	txn, err := s.ledger.Settle(ctx, userID, cp, req.Msg.AccountID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.SettleResponse{Transaction: toAPITransaction(txn)}), nil
}
