// Package http exposes the order ledger over a JSON API built on echo.
//
// Routes:
//
//	POST /api/v1/orders                        create an order
//	GET  /api/v1/orders                        list package ids in creation order
//	GET  /api/v1/orders/{packageId}            read an order
//	GET  /api/v1/orders/{packageId}/history    read an order's history, oldest first
//	PUT  /api/v1/orders/{packageId}/status     update the status (owner only)
//	GET  /health                               liveness
//
// The caller identity of a status update is taken from the X-Caller-Identity
// header. Failures are returned as {"code", "error", "message", "packageId"}
// where "error" is a stable name such as OrderNotFound.
package http

import (
	"net/http"

	"ordertracker/internal/core/application/usecases/commands"
	"ordertracker/internal/core/application/usecases/queries"
	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CallerIdentityHeader names the caller of a status update. A missing header
// is an anonymous caller and is rejected as unauthorized.
const CallerIdentityHeader = "X-Caller-Identity"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler
	getListOfOrdersHandler queries.GetListOfOrdersQueryHandler

	logger *zap.Logger
}

// NewServer builds the API handlers. logger receives the causes of 5xx
// responses.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	getListOfOrdersHandler queries.GetListOfOrdersQueryHandler,
	logger *zap.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		updateOrderStatusHandler: updateOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		getOrderHistoryHandler:   getOrderHistoryHandler,
		getListOfOrdersHandler:   getListOfOrdersHandler,
		logger:                   logger.With(zap.String("component", "http")),
	}
}

// RegisterRoutes mounts the ledger API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders", s.GetListOfOrders)
	v1.GET("/orders/:packageId", s.GetOrder)
	v1.GET("/orders/:packageId/history", s.GetOrderHistory)
	v1.PUT("/orders/:packageId/status", s.UpdateOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders.
//
// Request:
//
//	{"packageId": 100, "sender": "alice", "recipient": "bob",
//	 "dispatchTime": 1700000000, "deliveryTime": 1700086400}
//
// Responses:
//   - 201 Created with an empty body
//   - 400 InvalidArgument for a malformed body or package id
//   - 409 OrderAlreadyExists when the package id was used before
//   - 422 StatusShouldBeDispatched when "status" is given and not Dispatched
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.writeError(ctx, err)
	}

	status := order.Dispatched
	if body.Status != nil {
		status = *body.Status
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.PackageID(body.PackageID),
		body.Sender,
		body.Recipient,
		body.DispatchTime,
		body.DeliveryTime,
		status,
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// UpdateOrderStatus handles PUT /api/v1/orders/{packageId}/status. The caller
// is read from CallerIdentityHeader and must be the ledger owner.
//
// Request:
//
//	{"status": "InTransit", "note": "left the depot"}
//
// Responses:
//   - 204 No Content
//   - 400 InvalidArgument when status is missing or unknown
//   - 403 Unauthorized for any caller but the owner
//   - 404 OrderNotFound
//   - 409 CannotUpdateWithTheSameStatus
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	id, err := kernel.ParsePackageID(ctx.Param("packageId"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	var body StatusUpdate
	if err = ctx.Bind(&body); err != nil {
		return s.writeError(ctx, err)
	}
	if body.Status == nil {
		return s.writeError(ctx, errs.NewValueIsRequiredError("status"))
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(callerIdentity(ctx), id, *body.Status, body.Note)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err = s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/{packageId}.
//
// Response:
//
//	{"packageId": 100, "sender": "alice", "recipient": "bob",
//	 "dispatchTime": 1700000000, "deliveryTime": 1700086400, "status": "Dispatched"}
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := kernel.ParsePackageID(ctx.Param("packageId"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrder(resp))
}

// GetOrderHistory handles GET /api/v1/orders/{packageId}/history. Entries are
// returned oldest first with updatedTime in unix seconds.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	id, err := kernel.ParsePackageID(ctx.Param("packageId"))
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toHistory(resp))
}

// GetListOfOrders handles GET /api/v1/orders. It returns every package id in
// creation order, or an empty array.
func (s *Server) GetListOfOrders(ctx echo.Context) error {
	ids, err := s.getListOfOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetListOfOrdersQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toPackageIDs(ids))
}

// callerIdentity returns the anonymous identity when the header is absent.
func callerIdentity(ctx echo.Context) kernel.Identity {
	identity, err := kernel.NewIdentity(ctx.Request().Header.Get(CallerIdentityHeader))
	if err != nil {
		return kernel.Identity{}
	}
	return identity
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	return writeError(ctx, s.logger, err)
}
