package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/allocash/pkg/api"
)

// StatsServiceName is the fully-qualified name of the StatsService service.
const StatsServiceName = "allocash.v1.StatsService"

// Procedure paths of the StatsService RPCs.
const (
	StatsServiceGetMonthlyStatsProcedure   = "/allocash.v1.StatsService/GetMonthlyStats"
	StatsServiceGetCategoryStatsProcedure  = "/allocash.v1.StatsService/GetCategoryStats"
	StatsServiceGetTrendsProcedure         = "/allocash.v1.StatsService/GetTrends"
	StatsServiceGetDashboardProcedure      = "/allocash.v1.StatsService/GetDashboard"
	StatsServiceGetPeopleStatsProcedure    = "/allocash.v1.StatsService/GetPeopleStats"
	StatsServiceGetGroupSummariesProcedure = "/allocash.v1.StatsService/GetGroupSummaries"
)

// StatsServiceClient is a client for the allocash.v1.StatsService service.
type StatsServiceClient interface {
	GetMonthlyStats(context.Context, *connect.Request[api.GetMonthlyStatsRequest]) (*connect.Response[api.GetMonthlyStatsResponse], error)
	GetCategoryStats(context.Context, *connect.Request[api.GetCategoryStatsRequest]) (*connect.Response[api.GetCategoryStatsResponse], error)
	GetTrends(context.Context, *connect.Request[api.GetTrendsRequest]) (*connect.Response[api.GetTrendsResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	GetPeopleStats(context.Context, *connect.Request[api.GetPeopleStatsRequest]) (*connect.Response[api.GetPeopleStatsResponse], error)
	GetGroupSummaries(context.Context, *connect.Request[api.GetGroupSummariesRequest]) (*connect.Response[api.GetGroupSummariesResponse], error)
}

// NewStatsServiceClient constructs a client for the allocash.v1.StatsService service. It
// speaks the Connect protocol with the JSON codec; read-only methods are sent
// as GET requests when connect.WithHTTPGet is among opts.
func NewStatsServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) StatsServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.NewJSONCodec(codecJSON))}, opts...)
	return &statsServiceClient{
		getMonthlyStats: connect.NewClient[api.GetMonthlyStatsRequest, api.GetMonthlyStatsResponse](
			httpClient,
			baseURL+StatsServiceGetMonthlyStatsProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		getCategoryStats: connect.NewClient[api.GetCategoryStatsRequest, api.GetCategoryStatsResponse](
			httpClient,
			baseURL+StatsServiceGetCategoryStatsProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		getTrends: connect.NewClient[api.GetTrendsRequest, api.GetTrendsResponse](
			httpClient,
			baseURL+StatsServiceGetTrendsProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		getDashboard: connect.NewClient[api.GetDashboardRequest, api.GetDashboardResponse](
			httpClient,
			baseURL+StatsServiceGetDashboardProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		getPeopleStats: connect.NewClient[api.GetPeopleStatsRequest, api.GetPeopleStatsResponse](
			httpClient,
			baseURL+StatsServiceGetPeopleStatsProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
		getGroupSummaries: connect.NewClient[api.GetGroupSummariesRequest, api.GetGroupSummariesResponse](
			httpClient,
			baseURL+StatsServiceGetGroupSummariesProcedure,
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
			connect.WithClientOptions(opts...),
		),
	}
}

type statsServiceClient struct {
	getMonthlyStats   *connect.Client[api.GetMonthlyStatsRequest, api.GetMonthlyStatsResponse]
	getCategoryStats  *connect.Client[api.GetCategoryStatsRequest, api.GetCategoryStatsResponse]
	getTrends         *connect.Client[api.GetTrendsRequest, api.GetTrendsResponse]
	getDashboard      *connect.Client[api.GetDashboardRequest, api.GetDashboardResponse]
	getPeopleStats    *connect.Client[api.GetPeopleStatsRequest, api.GetPeopleStatsResponse]
	getGroupSummaries *connect.Client[api.GetGroupSummariesRequest, api.GetGroupSummariesResponse]
}

func (c *statsServiceClient) GetMonthlyStats(ctx context.Context, req *connect.Request[api.GetMonthlyStatsRequest]) (*connect.Response[api.GetMonthlyStatsResponse], error) {
	return c.getMonthlyStats.CallUnary(ctx, req)
}

func (c *statsServiceClient) GetCategoryStats(ctx context.Context, req *connect.Request[api.GetCategoryStatsRequest]) (*connect.Response[api.GetCategoryStatsResponse], error) {
	return c.getCategoryStats.CallUnary(ctx, req)
}

func (c *statsServiceClient) GetTrends(ctx context.Context, req *connect.Request[api.GetTrendsRequest]) (*connect.Response[api.GetTrendsResponse], error) {
	return c.getTrends.CallUnary(ctx, req)
}

func (c *statsServiceClient) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

func (c *statsServiceClient) GetPeopleStats(ctx context.Context, req *connect.Request[api.GetPeopleStatsRequest]) (*connect.Response[api.GetPeopleStatsResponse], error) {
	return c.getPeopleStats.CallUnary(ctx, req)
}

func (c *statsServiceClient) GetGroupSummaries(ctx context.Context, req *connect.Request[api.GetGroupSummariesRequest]) (*connect.Response[api.GetGroupSummariesResponse], error) {
	return c.getGroupSummaries.CallUnary(ctx, req)
}

// StatsServiceHandler is implemented by the server side of allocash.v1.StatsService.
type StatsServiceHandler interface {
	GetMonthlyStats(context.Context, *connect.Request[api.GetMonthlyStatsRequest]) (*connect.Response[api.GetMonthlyStatsResponse], error)
	GetCategoryStats(context.Context, *connect.Request[api.GetCategoryStatsRequest]) (*connect.Response[api.GetCategoryStatsResponse], error)
	GetTrends(context.Context, *connect.Request[api.GetTrendsRequest]) (*connect.Response[api.GetTrendsResponse], error)
	GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error)
	GetPeopleStats(context.Context, *connect.Request[api.GetPeopleStatsRequest]) (*connect.Response[api.GetPeopleStatsResponse], error)
	GetGroupSummaries(context.Context, *connect.Request[api.GetGroupSummariesRequest]) (*connect.Response[api.GetGroupSummariesResponse], error)
}

// NewStatsServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewStatsServiceHandler(svc StatsServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(handlerCodecs(), opts...)
	getMonthlyStatsHandler := connect.NewUnaryHandler(
		StatsServiceGetMonthlyStatsProcedure,
		svc.GetMonthlyStats,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	getCategoryStatsHandler := connect.NewUnaryHandler(
		StatsServiceGetCategoryStatsProcedure,
		svc.GetCategoryStats,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	getTrendsHandler := connect.NewUnaryHandler(
		StatsServiceGetTrendsProcedure,
		svc.GetTrends,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	getDashboardHandler := connect.NewUnaryHandler(
		StatsServiceGetDashboardProcedure,
		svc.GetDashboard,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	getPeopleStatsHandler := connect.NewUnaryHandler(
		StatsServiceGetPeopleStatsProcedure,
		svc.GetPeopleStats,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	getGroupSummariesHandler := connect.NewUnaryHandler(
		StatsServiceGetGroupSummariesProcedure,
		svc.GetGroupSummaries,
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		connect.WithHandlerOptions(opts...),
	)
	return "/allocash.v1.StatsService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case StatsServiceGetMonthlyStatsProcedure:
			getMonthlyStatsHandler.ServeHTTP(w, r)
		case StatsServiceGetCategoryStatsProcedure:
			getCategoryStatsHandler.ServeHTTP(w, r)
		case StatsServiceGetTrendsProcedure:
			getTrendsHandler.ServeHTTP(w, r)
		case StatsServiceGetDashboardProcedure:
			getDashboardHandler.ServeHTTP(w, r)
		case StatsServiceGetPeopleStatsProcedure:
			getPeopleStatsHandler.ServeHTTP(w, r)
		case StatsServiceGetGroupSummariesProcedure:
			getGroupSummariesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedStatsServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedStatsServiceHandler struct{}

func (UnimplementedStatsServiceHandler) GetMonthlyStats(context.Context, *connect.Request[api.GetMonthlyStatsRequest]) (*connect.Response[api.GetMonthlyStatsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.StatsService.GetMonthlyStats is not implemented"))
}

func (UnimplementedStatsServiceHandler) GetCategoryStats(context.Context, *connect.Request[api.GetCategoryStatsRequest]) (*connect.Response[api.GetCategoryStatsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.StatsService.GetCategoryStats is not implemented"))
}

func (UnimplementedStatsServiceHandler) GetTrends(context.Context, *connect.Request[api.GetTrendsRequest]) (*connect.Response[api.GetTrendsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.StatsService.GetTrends is not implemented"))
}

func (UnimplementedStatsServiceHandler) GetDashboard(context.Context, *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.StatsService.GetDashboard is not implemented"))
}

func (UnimplementedStatsServiceHandler) GetPeopleStats(context.Context, *connect.Request[api.GetPeopleStatsRequest]) (*connect.Response[api.GetPeopleStatsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.StatsService.GetPeopleStats is not implemented"))
}

func (UnimplementedStatsServiceHandler) GetGroupSummaries(context.Context, *connect.Request[api.GetGroupSummariesRequest]) (*connect.Response[api.GetGroupSummariesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("allocash.v1.StatsService.GetGroupSummaries is not implemented"))
}
