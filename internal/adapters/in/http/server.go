package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/adminslot"
	"workshop/internal/generated/servers"
	"workshop/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AdminTokenHeader carries the shared secret of the admin API.
const AdminTokenHeader = "X-Admin-Token"

var _ servers.ServerInterface = (*Server)(nil)

// Server implements the generated ServerInterface for the read-only
// administrator API. It coordinates between HTTP handlers and the listing
// queries.
type Server struct {
	listOrdersHandler   queries.ListOrdersQueryHandler
	searchOrdersHandler queries.SearchOrdersQueryHandler
	getOrderHandler     queries.GetOrderQueryHandler

	adminToken string
	logger     *slog.Logger
}

// NewServer creates the API server. An empty adminToken disables the
// /api routes.
func NewServer(
	listOrdersHandler queries.ListOrdersQueryHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	adminToken string,
	logger *slog.Logger,
) *Server {
	return &Server{
		listOrdersHandler:   listOrdersHandler,
		searchOrdersHandler: searchOrdersHandler,
		getOrderHandler:     getOrderHandler,
		adminToken:          adminToken,
		logger:              logger.With("component", "http_server"),
	}
}

// NewEcho builds an echo instance with the generated routes, request
// validation against the embedded OpenAPI document and the API browser.
func NewEcho(s *Server) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = registerDocs(swagger); err != nil {
		return nil, err
	}
	validator, err := newRequestValidator(swagger, s.authenticate)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(validator)

	e.GET("/swagger/*", docsHandler)
	servers.RegisterHandlers(e, s)
	return e, nil
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var filterID string
	if params.Status != nil {
		filterID = string(*params.Status)
	}
	filter, err := queries.ParseStatusFilter(filterID)
	if err != nil {
		return s.fail(ctx, err)
	}

	page := 0
	if params.Page != nil {
		page = *params.Page
	}

	result, err := s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery(filter, page))
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.OrderPage{
		Filter:    servers.StatusFilter(result.Filter),
		Orders:    toSummaries(result.Orders),
		Page:      result.Page,
		PageCount: result.PageCount,
		Total:     result.Total,
	})
}

// SearchOrders handles GET /api/v1/orders/search.
func (s *Server) SearchOrders(ctx echo.Context, params servers.SearchOrdersParams) error {
	by := adminslot.SearchByName
	if params.By != nil {
		switch *params.By {
		case servers.Name:
		case servers.Id:
			by = adminslot.SearchByID
		default:
			return s.fail(ctx, errs.NewValueIsInvalidError("by"))
		}
	}

	query, err := queries.NewSearchOrdersQuery(by, params.Q)
	if err != nil {
		return s.fail(ctx, err)
	}
	found, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toSummaries(found))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id int64) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDetail(detail))
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code, message := statusOf(err)
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"path", ctx.Path(),
			"request_id", ctx.Response().Header().Get(echo.HeaderXRequestID),
			"error", err,
		)
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "Order not found"
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "Failed to retrieve orders"
	}
}

func toSummaries(summaries []queries.OrderSummary) []servers.OrderSummary {
	response := make([]servers.OrderSummary, len(summaries))
	for i, summary := range summaries {
		response[i] = toSummary(summary)
	}
	return response
}

func toSummary(summary queries.OrderSummary) servers.OrderSummary {
	return servers.OrderSummary{
		Id:         summary.ID,
		Number:     summary.Number,
		Status:     servers.OrderStatus(summary.Status),
		Service:    servers.ServiceCategory(summary.Service),
		ClientName: summary.ClientName,
		CreatedAt:  summary.CreatedAt,
	}
}

func toDetail(detail queries.OrderDetail) servers.OrderDetail {
	targets := make([]servers.OrderStatus, len(detail.AllowedTargets))
	for i, target := range detail.AllowedTargets {
		targets[i] = servers.OrderStatus(target)
	}

	summary := toSummary(detail.OrderSummary)
	return servers.OrderDetail{
		Id:                summary.Id,
		Number:            summary.Number,
		Status:            summary.Status,
		Service:           summary.Service,
		ClientName:        summary.ClientName,
		CreatedAt:         summary.CreatedAt,
		UserId:            detail.UserID,
		Description:       optional(detail.Description),
		PhotoRef:          optional(detail.PhotoRef),
		ClientPhone:       optional(detail.ClientPhone),
		AcceptedAt:        detail.AcceptedAt,
		IssuedAt:          detail.IssuedAt,
		ReadyDate:         optional(detail.ReadyDate),
		MasterComment:     optional(detail.MasterComment),
		ClientReminded:    detail.ClientReminded,
		FeedbackRequested: detail.FeedbackRequested,
		ClientOrderCount:  detail.ClientOrderCount,
		RegularClient:     detail.RegularClient,
		AllowedTargets:    targets,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
