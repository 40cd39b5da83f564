// Package http exposes the order aggregation core over a REST API. Callers
// authenticate out of band; the X-Vendor-Ids header carries the vendor scope
// every request is restricted to.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const vendorScopeHeader = "X-Vendor-Ids"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	executeTransitionHandler    commands.ExecuteTransitionCommandHandler
	correctBookingHandler       commands.CorrectBookingCommandHandler
	updateBookingCommentHandler commands.UpdateBookingCommentCommandHandler
	markBookingsExportedHandler commands.MarkBookingsExportedCommandHandler
	stockConfirmationHandler    commands.RegisterStockConfirmationCommandHandler

	getOrderViewHandler queries.GetOrderViewQueryHandler
	listOrdersHandler   queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	executeTransitionHandler commands.ExecuteTransitionCommandHandler,
	correctBookingHandler commands.CorrectBookingCommandHandler,
	updateBookingCommentHandler commands.UpdateBookingCommentCommandHandler,
	markBookingsExportedHandler commands.MarkBookingsExportedCommandHandler,
	stockConfirmationHandler commands.RegisterStockConfirmationCommandHandler,
	getOrderViewHandler queries.GetOrderViewQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		executeTransitionHandler:    executeTransitionHandler,
		correctBookingHandler:       correctBookingHandler,
		updateBookingCommentHandler: updateBookingCommentHandler,
		markBookingsExportedHandler: markBookingsExportedHandler,
		stockConfirmationHandler:    stockConfirmationHandler,
		getOrderViewHandler:         getOrderViewHandler,
		listOrdersHandler:           listOrdersHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/by-number/:ordernumber", s.GetOrderByOrdernumber)
	api.POST("/orders/:orderId/transitions", s.ExecuteTransition)

	api.POST("/bookings/:bookingId/correction", s.CorrectBooking)
	api.PUT("/bookings/:bookingId/comment", s.UpdateBookingComment)
	api.POST("/bookings/exported", s.MarkBookingsExported)

	api.POST("/stock-confirmations", s.RegisterStockConfirmation)
}

// ListOrders handles GET /api/v1/orders - lists orders visible to the scope.
func (s *Server) ListOrders(ctx echo.Context) error {
	scope, err := scopeFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	filter := queries.ListOrdersFilter{
		Creator:  ctx.QueryParam("creator"),
		State:    ctx.QueryParam("state"),
		Salaried: ctx.QueryParam("salaried"),
		Search:   ctx.QueryParam("search"),
	}
	if raw := ctx.QueryParam("vendorId"); raw != "" {
		vendorID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("vendorId", idErr))
		}
		filter.VendorID = &vendorID
	}
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("limit", convErr))
		}
		filter.Limit = limit
	}
	if raw := ctx.QueryParam("offset"); raw != "" {
		offset, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("offset", convErr))
		}
		filter.Offset = offset
	}

	query, err := queries.NewListOrdersQuery(scope, filter)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = OrderSummaryResponse{
			OrderID:     o.OrderID.String(),
			Ordernumber: o.Ordernumber,
			Creator:     o.Creator,
			CreatedAt:   o.CreatedAt,
			Bookings:    listedBookingResponses(o.Bookings),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - a checkout creating an order
// with its bookings.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := checkoutCommand(request)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetOrder handles GET /api/v1/orders/:orderId - the aggregated order view.
func (s *Server) GetOrder(ctx echo.Context) error {
	scope, err := scopeFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	query, err := queries.NewGetOrderViewQuery(orderID, scope)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return s.respondWithOrderView(ctx, query)
}

// GetOrderByOrdernumber handles GET /api/v1/orders/by-number/:ordernumber.
func (s *Server) GetOrderByOrdernumber(ctx echo.Context) error {
	scope, err := scopeFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetOrderViewQueryByOrdernumber(ctx.Param("ordernumber"), scope)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return s.respondWithOrderView(ctx, query)
}

func (s *Server) respondWithOrderView(ctx echo.Context, query queries.GetOrderViewQuery) error {
	result, err := s.getOrderViewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	response := orderViewResponse(result.View)
	response.PaymentLabel = result.PaymentLabel
	response.ShippingLabel = result.ShippingLabel
	response.Attrs = result.Attrs
	response.Bookings = bookingResponses(result.Bookings)

	return ctx.JSON(http.StatusOK, response)
}

// ExecuteTransition handles POST /api/v1/orders/:orderId/transitions - runs a
// state transition on one booking or on the whole order.
func (s *Server) ExecuteTransition(ctx echo.Context) error {
	scope, err := scopeFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var request ExecuteTransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	var bookingID *kernel.UUID
	if request.BookingID != "" {
		id, idErr := kernel.UUIDFromString(request.BookingID)
		if idErr != nil {
			return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("bookingId", idErr))
		}
		bookingID = &id
	}

	cmd, err := commands.NewExecuteTransitionCommand(orderID, bookingID, request.Transition, scope)
	if err != nil {
		return errorResponse(ctx, err)
	}

	view, err := s.executeTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderViewResponse(view))
}

// CorrectBooking handles POST /api/v1/bookings/:bookingId/correction -
// replaces the pricing of a booking.
func (s *Server) CorrectBooking(ctx echo.Context) error {
	scope, err := scopeFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	bookingID, err := kernel.UUIDFromString(ctx.Param("bookingId"))
	if err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("bookingId", err))
	}

	var request CorrectBookingRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	unitNet, err := kernel.NewMoneyFromString(request.UnitNet, request.Currency)
	if err != nil {
		return errorResponse(ctx, err)
	}
	discountNet, err := kernel.NewMoneyFromString(request.DiscountNet, request.Currency)
	if err != nil {
		return errorResponse(ctx, err)
	}
	vatRate, err := kernel.NewVATRateFromString(request.VATRate)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCorrectBookingCommand(bookingID, unitNet, discountNet, vatRate, scope)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.correctBookingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateBookingComment handles PUT /api/v1/bookings/:bookingId/comment.
func (s *Server) UpdateBookingComment(ctx echo.Context) error {
	scope, err := scopeFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	bookingID, err := kernel.UUIDFromString(ctx.Param("bookingId"))
	if err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("bookingId", err))
	}

	var request UpdateCommentRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewUpdateBookingCommentCommand(bookingID, request.Comment, scope)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.updateBookingCommentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkBookingsExported handles POST /api/v1/bookings/exported - flags a batch
// of bookings as handed over to the downstream export.
func (s *Server) MarkBookingsExported(ctx echo.Context) error {
	scope, err := scopeFromRequest(ctx)
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request MarkExportedRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	bookingIDs := make([]kernel.UUID, 0, len(request.BookingIDs))
	for _, raw := range request.BookingIDs {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("bookingIds", idErr))
		}
		bookingIDs = append(bookingIDs, id)
	}

	cmd, err := commands.NewMarkBookingsExportedCommand(bookingIDs, scope)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.markBookingsExportedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterStockConfirmation handles POST /api/v1/stock-confirmations - the
// inventory side reporting confirmed stock of a buyable. Reserved bookings of
// the buyable are promoted by the scheduled confirmation run.
func (s *Server) RegisterStockConfirmation(ctx echo.Context) error {
	var request StockConfirmationRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	buyableID, err := kernel.UUIDFromString(request.BuyableID)
	if err != nil {
		return errorResponse(ctx, errs.NewValueIsInvalidErrorWithCause("buyableId", err))
	}

	cmd, err := commands.NewRegisterStockConfirmationCommand(buyableID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err := s.stockConfirmationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// scopeFromRequest parses the comma-separated vendor ids of the scope header.
func scopeFromRequest(ctx echo.Context) (kernel.Scope, error) {
	raw := ctx.Request().Header.Get(vendorScopeHeader)
	if raw == "" {
		return kernel.Scope{}, errs.NewUnauthorizedError("missing " + vendorScopeHeader + " header")
	}

	var vendorIDs []kernel.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := kernel.UUIDFromString(part)
		if err != nil {
			return kernel.Scope{}, errs.NewUnauthorizedError("malformed vendor id in " + vendorScopeHeader + " header")
		}
		vendorIDs = append(vendorIDs, id)
	}

	return kernel.NewScope(vendorIDs...)
}

// checkoutCommand converts a checkout request into the application command.
func checkoutCommand(request CreateOrderRequest) (commands.CreateOrderCommand, error) {
	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return commands.CreateOrderCommand{}, errs.NewValueIsInvalidErrorWithCause("orderId", err)
	}

	shippingNet, err := kernel.NewMoneyFromString(request.ShippingNet, request.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	shippingVat, err := kernel.NewMoneyFromString(request.ShippingVat, request.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	cartDiscountNet, err := kernel.NewMoneyFromString(request.CartDiscountNet, request.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}
	cartDiscountVat, err := kernel.NewMoneyFromString(request.CartDiscountVat, request.Currency)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]commands.OrderItem, 0, len(request.Items))
	for _, line := range request.Items {
		item, itemErr := checkoutItem(line, request.Currency)
		if itemErr != nil {
			return commands.CreateOrderCommand{}, itemErr
		}
		items = append(items, item)
	}

	return commands.NewCreateOrderCommand(
		orderID,
		request.Ordernumber,
		request.Creator,
		shippingNet,
		shippingVat,
		cartDiscountNet,
		cartDiscountVat,
		request.PaymentLabel,
		request.ShippingLabel,
		request.Attrs,
		items,
	)
}

func checkoutItem(line OrderItemRequest, currency string) (commands.OrderItem, error) {
	bookingID, err := kernel.UUIDFromString(line.BookingID)
	if err != nil {
		return commands.OrderItem{}, errs.NewValueIsInvalidErrorWithCause("bookingId", err)
	}
	buyableID, err := kernel.UUIDFromString(line.BuyableID)
	if err != nil {
		return commands.OrderItem{}, errs.NewValueIsInvalidErrorWithCause("buyableId", err)
	}
	vendorID, err := kernel.UUIDFromString(line.VendorID)
	if err != nil {
		return commands.OrderItem{}, errs.NewValueIsInvalidErrorWithCause("vendorId", err)
	}

	quantity, err := decimal.NewFromString(line.Quantity)
	if err != nil {
		return commands.OrderItem{}, errs.NewValueIsInvalidErrorWithCause("quantity", err)
	}
	unitNet, err := kernel.NewMoneyFromString(line.UnitNet, currency)
	if err != nil {
		return commands.OrderItem{}, err
	}
	discountNet, err := kernel.NewMoneyFromString(line.DiscountNet, currency)
	if err != nil {
		return commands.OrderItem{}, err
	}
	vatRate, err := kernel.NewVATRateFromString(line.VATRate)
	if err != nil {
		return commands.OrderItem{}, err
	}

	return commands.OrderItem{
		BookingID:    bookingID,
		BuyableID:    buyableID,
		VendorID:     vendorID,
		Title:        line.Title,
		Comment:      line.Comment,
		Quantity:     quantity,
		QuantityUnit: line.QuantityUnit,
		UnitNet:      unitNet,
		DiscountNet:  discountNet,
		VATRate:      vatRate,
		Reserved:     line.Reserved,
	}, nil
}

// errorResponse maps domain errors onto HTTP status codes.
func errorResponse(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrConcurrentModification):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrInvalidBookingData),
		errors.Is(err, errs.ErrCurrencyMismatch):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
