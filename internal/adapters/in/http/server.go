// Package http exposes the board over a small REST API: the display queries
// and the two mutation endpoints staff UIs call. It is an in-adapter; all
// semantics live in the use case handlers.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

// requestIDHeader carries the correlation id end to end: UI request, backend
// write, broadcast.
const requestIDHeader = "X-Request-Id"

// Server coordinates between HTTP handlers and the application use cases.
type Server struct {
	// Command handlers
	changeOrderStatusHandler     commands.ChangeOrderStatusCommandHandler
	changeOrderItemStatusHandler commands.ChangeOrderItemStatusCommandHandler

	// Query handlers
	getActiveOrdersHandler    queries.GetActiveOrdersQueryHandler
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler
	getItemStatsHandler       queries.GetItemStatsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	changeOrderItemStatusHandler commands.ChangeOrderItemStatusCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getCompletedOrdersHandler queries.GetCompletedOrdersQueryHandler,
	getItemStatsHandler queries.GetItemStatsQueryHandler,
) *Server {
	return &Server{
		changeOrderStatusHandler:     changeOrderStatusHandler,
		changeOrderItemStatusHandler: changeOrderItemStatusHandler,
		getActiveOrdersHandler:       getActiveOrdersHandler,
		getCompletedOrdersHandler:    getCompletedOrdersHandler,
		getItemStatsHandler:          getItemStatsHandler,
	}
}

// RegisterRoutes mounts the API on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/completed", s.GetCompletedOrders)
	api.GET("/orders/stats", s.GetItemStats)
	api.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/items/:itemId/status", s.ChangeOrderItemStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query, err := queries.NewGetActiveOrdersQuery()
	if err != nil {
		return internalError(ctx, "Failed to build query")
	}

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve active orders")
	}
	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetCompletedOrders handles GET /api/v1/orders/completed.
func (s *Server) GetCompletedOrders(ctx echo.Context) error {
	query, err := queries.NewGetCompletedOrdersQuery()
	if err != nil {
		return internalError(ctx, "Failed to build query")
	}

	orders, err := s.getCompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve completed orders")
	}
	return ctx.JSON(http.StatusOK, toOrderResponses(orders))
}

// GetItemStats handles GET /api/v1/orders/stats.
func (s *Server) GetItemStats(ctx echo.Context) error {
	query, err := queries.NewGetItemStatsQuery()
	if err != nil {
		return internalError(ctx, "Failed to build query")
	}

	stats, err := s.getItemStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve item stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	var body ChangeStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+body.Status)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		ctx.Param("orderId"), target, requestCorrelationID(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrFetchFailed) {
			return ctx.JSON(http.StatusBadGateway, Error{
				Code:    http.StatusBadGateway,
				Message: "Order backend rejected the status change",
			})
		}
		return internalError(ctx, "Failed to change order status")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderItemStatus handles POST /api/v1/orders/:orderId/items/:itemId/status.
func (s *Server) ChangeOrderItemStatus(ctx echo.Context) error {
	var body ChangeStatusRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderItemStatusCommand(
		ctx.Param("orderId"), ctx.Param("itemId"),
		ports.ItemStatus(body.Status), requestCorrelationID(ctx))
	if err != nil {
		return badRequest(ctx, "Invalid item status change: "+err.Error())
	}

	if err := s.changeOrderItemStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrFetchFailed) {
			return ctx.JSON(http.StatusBadGateway, Error{
				Code:    http.StatusBadGateway,
				Message: "Order backend rejected the item status change",
			})
		}
		return internalError(ctx, "Failed to change item status")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// requestCorrelationID reads the request id header, minting a fresh id when
// the caller sent none so the write and its broadcast stay traceable.
func requestCorrelationID(ctx echo.Context) kernel.CorrelationID {
	header := ctx.Request().Header.Get(requestIDHeader)
	if header == "" {
		return kernel.NewCorrelationID()
	}
	correlationID, err := kernel.CorrelationIDFromString(header)
	if err != nil {
		return kernel.NewCorrelationID()
	}
	return correlationID
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
