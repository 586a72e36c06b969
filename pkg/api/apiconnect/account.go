package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/allocash/pkg/api"
)

// AccountServiceName is the fully-qualified name of the AccountService service.
const AccountServiceName = "allocash.v1.AccountService"

// Procedure paths of the AccountService RPCs.
const (
	AccountServiceCreateAccountProcedure = "/allocash.v1.AccountService/CreateAccount"
	AccountServiceListAccountsProcedure  = "/allocash.v1.AccountService/ListAccounts"
	AccountServiceUpdateAccountProcedure = "/allocash.v1.AccountService/UpdateAccount"
	AccountServiceDeleteAccountProcedure = "/allocash.v1.AccountService/DeleteAccount"
)

// AccountServiceClient is a client for the allocash.v1.AccountService service.
type AccountServiceClient interface {
	CreateAccount(context.Context, *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
}

// NewAccountServiceClient constructs a client for the allocash.v1.AccountService service. It
// speaks the Connect protocol with the JSON codec; read-only methods are sent
// as GET requests when connect.WithHTTPGet is among opts.
func NewAccountServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AccountServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.NewJSONCodec(codecJSON))}, opts...)
	return &accountServiceClient{
		createAccount: connect.NewClient[api.CreateAccountRequest, api.CreateAccountResponse](
			httpClient,
			baseURL+AccountServiceCreateAccountProcedure,
			connect.WithClientOptions(opts...),
		),
		listAccounts: connect.NewClient[api.ListAccountsRequest, api.ListAccountsResponse](
			httpClient,
			baseURL+AccountServiceListAccountsProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		updateAccount: connect.NewClient[api.UpdateAccountRequest, api.UpdateAccountResponse](
			httpClient,
			baseURL+AccountServiceUpdateAccountProcedure,
			connect.WithClientOptions(opts...),
		),
		deleteAccount: connect.NewClient[api.DeleteAccountRequest, api.DeleteAccountResponse](
			httpClient,
			baseURL+AccountServiceDeleteAccountProcedure,
			connect.WithClientOptions(opts...),
		),
	}
}

type accountServiceClient struct {
	createAccount *connect.Client[api.CreateAccountRequest, api.CreateAccountResponse]
	listAccounts  *connect.Client[api.ListAccountsRequest, api.ListAccountsResponse]
	updateAccount *connect.Client[api.UpdateAccountRequest, api.UpdateAccountResponse]
	deleteAccount *connect.Client[api.DeleteAccountRequest, api.DeleteAccountResponse]
}

func (c *accountServiceClient) CreateAccount(ctx context.Context, req *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error) {
	return c.createAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) ListAccounts(ctx context.Context, req *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	return c.listAccounts.CallUnary(ctx, req)
}

func (c *accountServiceClient) UpdateAccount(ctx context.Context, req *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	return c.updateAccount.CallUnary(ctx, req)
}

func (c *accountServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}

// AccountServiceHandler is implemented by the server side of allocash.v1.AccountService.
type AccountServiceHandler interface {
	CreateAccount(context.Context, *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error)
	ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error)
	UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error)
	DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error)
}

// NewAccountServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAccountServiceHandler(svc AccountServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)
	createAccountHandler := connect.NewUnaryHandler(
		AccountServiceCreateAccountProcedure,
		svc.CreateAccount,
		connect.WithHandlerOptions(opts...),
	)
	listAccountsHandler := connect.NewUnaryHandler(
		AccountServiceListAccountsProcedure,
		svc.ListAccounts,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	updateAccountHandler := connect.NewUnaryHandler(
		AccountServiceUpdateAccountProcedure,
		svc.UpdateAccount,
		connect.WithHandlerOptions(opts...),
	)
	deleteAccountHandler := connect.NewUnaryHandler(
		AccountServiceDeleteAccountProcedure,
		svc.DeleteAccount,
		connect.WithHandlerOptions(opts...),
	)
	return "/allocash.v1.AccountService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AccountServiceCreateAccountProcedure:
			createAccountHandler.ServeHTTP(w, r)
		case AccountServiceListAccountsProcedure:
			listAccountsHandler.ServeHTTP(w, r)
		case AccountServiceUpdateAccountProcedure:
			updateAccountHandler.ServeHTTP(w, r)
		case AccountServiceDeleteAccountProcedure:
			deleteAccountHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAccountServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAccountServiceHandler struct{}

func (UnimplementedAccountServiceHandler) CreateAccount(context.Context, *connect.Request[api.CreateAccountRequest]) (*connect.Response[api.CreateAccountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.AccountService.CreateAccount is not implemented"))
}

func (UnimplementedAccountServiceHandler) ListAccounts(context.Context, *connect.Request[api.ListAccountsRequest]) (*connect.Response[api.ListAccountsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.AccountService.ListAccounts is not implemented"))
}

func (UnimplementedAccountServiceHandler) UpdateAccount(context.Context, *connect.Request[api.UpdateAccountRequest]) (*connect.Response[api.UpdateAccountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.AccountService.UpdateAccount is not implemented"))
}

func (UnimplementedAccountServiceHandler) DeleteAccount(context.Context, *connect.Request[api.DeleteAccountRequest]) (*connect.Response[api.DeleteAccountResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.AccountService.DeleteAccount is not implemented"))
}
