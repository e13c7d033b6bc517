// Package service implements the Connect RPC services. Messages are plain
// Go structs carried by JSONCodec.
package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/housemate/internal/api"
	"github.com/mmynk/housemate/internal/middleware"
	"github.com/mmynk/housemate/internal/models"
	"github.com/mmynk/housemate/internal/storage"
)

const (
	// DashboardServiceName is the fully-qualified name of the DashboardService.
	DashboardServiceName = "housemate.v1.DashboardService"

	// DashboardServiceGetCalendarProcedure is the route of GetCalendar.
	DashboardServiceGetCalendarProcedure = "/" + DashboardServiceName + "/GetCalendar"
	// DashboardServiceListAccountCardsProcedure is the route of ListAccountCards.
	DashboardServiceListAccountCardsProcedure = "/" + DashboardServiceName + "/ListAccountCards"
)

// GetCalendarRequest selects a month (YYYY-MM); empty means every month.
type GetCalendarRequest struct {
	Month string `json:"month"`
}

// ListAccountCardsRequest selects a card view.
type ListAccountCardsRequest struct {
	View string `json:"view"`
}

// DashboardService serves the read models behind the calendar and
// settlement screens.
type DashboardService struct {
	store storage.Store
}

// NewDashboardService creates a new DashboardService with the given storage backend.
func NewDashboardService(store storage.Store) *DashboardService {
	return &DashboardService{store: store}
}

// GetCalendar returns the day-bucketed markers of the caller's group.
func (s *DashboardService) GetCalendar(ctx context.Context, req *connect.Request[GetCalendarRequest]) (*connect.Response[api.CalendarResponse], error) {
	if err := api.ValidMonth(req.Msg.Month); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	group, err := s.callerGroup(ctx)
	if err != nil {
		return nil, err
	}

	puzzles, err := s.store.ListPuzzlesByMonth(ctx, group.ID, req.Msg.Month)
	if err != nil {
		slog.Error("Failed to list puzzles", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	resp := api.NewCalendarResponse(req.Msg.Month, puzzles, middleware.GetLoginID(ctx))
	return connect.NewResponse(&resp), nil
}

// ListAccountCards returns the caller's group accounts as cards.
func (s *DashboardService) ListAccountCards(ctx context.Context, req *connect.Request[ListAccountCardsRequest]) (*connect.Response[api.CardsResponse], error) {
	group, err := s.callerGroup(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.store.ListAllAccounts(ctx, group.ID)
	if err != nil {
		slog.Error("Failed to list accounts", "group_id", group.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp, err := api.NewCardsResponse(req.Msg.View, accounts, middleware.GetLoginID(ctx))
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return connect.NewResponse(&resp), nil
}

func (s *DashboardService) callerGroup(ctx context.Context) (*models.Group, error) {
	member, err := s.store.GetMemberByID(ctx, middleware.GetMemberID(ctx))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, connect.NewError(connect.CodeUnauthenticated, err)
		}
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if member.GroupID == 0 {
		return nil, connect.NewError(connect.CodePermissionDenied, errors.New("join or create a group first"))
	}
	group, err := s.store.GetGroup(ctx, member.GroupID)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return group, nil
}

// NewDashboardServiceHandler builds an HTTP handler for every procedure of
// svc. It returns the path to mount it on.
func NewDashboardServiceHandler(svc *DashboardService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(DashboardServiceGetCalendarProcedure, connect.NewUnaryHandler(
		DashboardServiceGetCalendarProcedure,
		svc.GetCalendar,
		opts...,
	))
	mux.Handle(DashboardServiceListAccountCardsProcedure, connect.NewUnaryHandler(
		DashboardServiceListAccountCardsProcedure,
		svc.ListAccountCards,
		opts...,
	))
	return "/" + DashboardServiceName + "/", mux
}

// DashboardServiceClient calls a DashboardService over Connect.
type DashboardServiceClient struct {
	getCalendar      *connect.Client[GetCalendarRequest, api.CalendarResponse]
	listAccountCards *connect.Client[ListAccountCardsRequest, api.CardsResponse]
}

// NewDashboardServiceClient creates a client for the service at baseURL.
func NewDashboardServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DashboardServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &DashboardServiceClient{
		getCalendar: connect.NewClient[GetCalendarRequest, api.CalendarResponse](
			httpClient, baseURL+DashboardServiceGetCalendarProcedure, opts...,
		),
		listAccountCards: connect.NewClient[ListAccountCardsRequest, api.CardsResponse](
			httpClient, baseURL+DashboardServiceListAccountCardsProcedure, opts...,
		),
	}
}

// GetCalendar calls housemate.v1.DashboardService.GetCalendar.
func (c *DashboardServiceClient) GetCalendar(ctx context.Context, req *connect.Request[GetCalendarRequest]) (*connect.Response[api.CalendarResponse], error) {
	return c.getCalendar.CallUnary(ctx, req)
}

// ListAccountCards calls housemate.v1.DashboardService.ListAccountCards.
func (c *DashboardServiceClient) ListAccountCards(ctx context.Context, req *connect.Request[ListAccountCardsRequest]) (*connect.Response[api.CardsResponse], error) {
	return c.listAccountCards.CallUnary(ctx, req)
}
