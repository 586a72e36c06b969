package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/allocash/internal/auth"
	"github.com/mmynk/allocash/internal/ledger"
	"github.com/mmynk/allocash/internal/lock"
	"github.com/mmynk/allocash/internal/middleware"
	"github.com/mmynk/allocash/internal/storage/sqlite"
	"github.com/mmynk/allocash/pkg/api"
	"github.com/mmynk/allocash/pkg/api/apiconnect"
)

const testSecret = "test-secret"

var testToday = time.Date(2024, 12, 20, 12, 0, 0, 0, time.UTC)

type testServer struct {
	url   string
	jwt   *auth.JWTManager
	stats *StatsService
}

// clients is the set of service clients authenticated as one user.
type clients struct {
	ledger       apiconnect.LedgerServiceClient
	accounts     apiconnect.AccountServiceClient
	groups       apiconnect.GroupServiceClient
	transactions apiconnect.TransactionServiceClient
	stats        apiconnect.StatsServiceClient
}

// setupTestServer serves every service over httptest on a temporary SQLite
// database, behind the JWT interceptor.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	l := ledger.New(store,
		ledger.WithLocker(lock.NewMemory()),
		ledger.WithClock(func() time.Time { return testToday }),
	)
	stats := NewStatsService(store)
	stats.now = func() time.Time { return testToday }

	opts := connect.WithInterceptors(
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewLedgerServiceHandler(NewLedgerService(store, l), opts))
	mux.Handle(apiconnect.NewAccountServiceHandler(NewAccountService(store), opts))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), opts))
	mux.Handle(apiconnect.NewTransactionServiceHandler(NewTransactionService(store), opts))
	mux.Handle(apiconnect.NewStatsServiceHandler(stats, opts))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{url: server.URL, jwt: jwtManager, stats: stats}
}

// clientsFor returns clients that present a token for userID. Read-only
// calls go out as GET requests.
func (ts *testServer) clientsFor(t *testing.T, userID string) *clients {
	t.Helper()
	token, err := ts.jwt.Generate(userID, userID+"@example.com")
	require.NoError(t, err)
	return ts.clientsWithToken(token)
}

func (ts *testServer) clientsWithToken(token string) *clients {
	opts := []connect.ClientOption{connect.WithHTTPGet()}
	if token != "" {
		opts = append(opts, connect.WithInterceptors(bearer(token)))
	}
	return &clients{
		ledger:       apiconnect.NewLedgerServiceClient(http.DefaultClient, ts.url, opts...),
		accounts:     apiconnect.NewAccountServiceClient(http.DefaultClient, ts.url, opts...),
		groups:       apiconnect.NewGroupServiceClient(http.DefaultClient, ts.url, opts...),
		transactions: apiconnect.NewTransactionServiceClient(http.DefaultClient, ts.url, opts...),
		stats:        apiconnect.NewStatsServiceClient(http.DefaultClient, ts.url, opts...),
	}
}

func bearer(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			req.Header().Set("Authorization", "Bearer "+token)
			return next(ctx, req)
		}
	}
}

func (c *clients) createAccount(t *testing.T, name string) *api.Account {
	t.Helper()
	resp, err := c.accounts.CreateAccount(context.Background(), connect.NewRequest(&api.CreateAccountRequest{Name: name}))
	require.NoError(t, err)
	return resp.Msg.Account
}

func (c *clients) createTxn(t *testing.T, req *api.CreateTransactionRequest) *api.Transaction {
	t.Helper()
	resp, err := c.transactions.CreateTransaction(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	return resp.Msg.Transaction
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
