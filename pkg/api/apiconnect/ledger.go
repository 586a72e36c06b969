package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/allocash/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "allocash.v1.LedgerService"

// Procedure paths of the LedgerService RPCs.
const (
	LedgerServiceListPeopleProcedure = "/allocash.v1.LedgerService/ListPeople"
	LedgerServiceGetBalanceProcedure = "/allocash.v1.LedgerService/GetBalance"
	LedgerServiceSettleProcedure     = "/allocash.v1.LedgerService/Settle"
)

// LedgerServiceClient is a client for the allocash.v1.LedgerService service.
type LedgerServiceClient interface {
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error)
	Settle(context.Context, *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error)
}

// NewLedgerServiceClient constructs a client for the allocash.v1.LedgerService service. It
// speaks the Connect protocol with the JSON codec; read-only methods are sent
// as GET requests when connect.WithHTTPGet is among opts.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.NewJSONCodec(codecJSON))}, opts...)
	return &ledgerServiceClient{
		listPeople: connect.NewClient[api.ListPeopleRequest, api.ListPeopleResponse](
			httpClient,
			baseURL+LedgerServiceListPeopleProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		getBalance: connect.NewClient[api.GetBalanceRequest, api.GetBalanceResponse](
			httpClient,
			baseURL+LedgerServiceGetBalanceProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		settle: connect.NewClient[api.SettleRequest, api.SettleResponse](
			httpClient,
			baseURL+LedgerServiceSettleProcedure,
			connect.WithClientOptions(opts...),
		),
	}
}

type ledgerServiceClient struct {
	listPeople *connect.Client[api.ListPeopleRequest, api.ListPeopleResponse]
	getBalance *connect.Client[api.GetBalanceRequest, api.GetBalanceResponse]
	settle     *connect.Client[api.SettleRequest, api.SettleResponse]
}

func (c *ledgerServiceClient) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalance(ctx context.Context, req *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	return c.getBalance.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

// LedgerServiceHandler is implemented by the server side of allocash.v1.LedgerService.
type LedgerServiceHandler interface {
	ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error)
	GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error)
	Settle(context.Context, *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)
	listPeopleHandler := connect.NewUnaryHandler(
		LedgerServiceListPeopleProcedure,
		svc.ListPeople,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	getBalanceHandler := connect.NewUnaryHandler(
		LedgerServiceGetBalanceProcedure,
		svc.GetBalance,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	settleHandler := connect.NewUnaryHandler(
		LedgerServiceSettleProcedure,
		svc.Settle,
		connect.WithHandlerOptions(opts...),
	)
	return "/allocash.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceListPeopleProcedure:
			listPeopleHandler.ServeHTTP(w, r)
		case LedgerServiceGetBalanceProcedure:
			getBalanceHandler.ServeHTTP(w, r)
		case LedgerServiceSettleProcedure:
			settleHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) ListPeople(context.Context, *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.LedgerService.ListPeople is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetBalance(context.Context, *connect.Request[api.GetBalanceRequest]) (*connect.Response[api.GetBalanceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.LedgerService.GetBalance is not implemented"))
}

func (UnimplementedLedgerServiceHandler) Settle(context.Context, *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.LedgerService.Settle is not implemented"))
}
