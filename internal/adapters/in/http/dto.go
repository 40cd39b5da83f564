package http

import (
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
)

// Error is the uniform error payload of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderItemRequest is one cart line of a checkout request.
type OrderItemRequest struct {
	BookingID    string `json:"bookingId"`
	BuyableID    string `json:"buyableId"`
	VendorID     string `json:"vendorId"`
	Title        string `json:"title"`
	Comment      string `json:"comment,omitempty"`
	Quantity     string `json:"quantity"`
	QuantityUnit string `json:"quantityUnit"`
	UnitNet      string `json:"unitNet"`
	DiscountNet  string `json:"discountNet"`
	VATRate      string `json:"vatRate"`
	Reserved     bool   `json:"reserved"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	OrderID         string             `json:"orderId"`
	Ordernumber     string             `json:"ordernumber"`
	Creator         string             `json:"creator"`
	Currency        string             `json:"currency"`
	ShippingNet     string             `json:"shippingNet"`
	ShippingVat     string             `json:"shippingVat"`
	CartDiscountNet string             `json:"cartDiscountNet"`
	CartDiscountVat string             `json:"cartDiscountVat"`
	PaymentLabel    string             `json:"paymentLabel"`
	ShippingLabel   string             `json:"shippingLabel"`
	Attrs           map[string]string  `json:"attrs,omitempty"`
	Items           []OrderItemRequest `json:"items"`
}

// ExecuteTransitionRequest names the transition to run. BookingID empty means
// an order-level transition fanning out over all visible active bookings.
type ExecuteTransitionRequest struct {
	Transition string `json:"transition"`
	BookingID  string `json:"bookingId,omitempty"`
}

// CorrectBookingRequest carries replacement pricing for a booking.
type CorrectBookingRequest struct {
	UnitNet     string `json:"unitNet"`
	DiscountNet string `json:"discountNet"`
	Currency    string `json:"currency"`
	VATRate     string `json:"vatRate"`
}

// UpdateCommentRequest replaces the free-text comment of a booking.
type UpdateCommentRequest struct {
	Comment string `json:"comment"`
}

// MarkExportedRequest names the bookings to flag as exported.
type MarkExportedRequest struct {
	BookingIDs []string `json:"bookingIds"`
}

// StockConfirmationRequest reports confirmed stock of a buyable.
type StockConfirmationRequest struct {
	BuyableID string `json:"buyableId"`
}

// OrderSummaryResponse is one row of the order listing.
type OrderSummaryResponse struct {
	OrderID     string                  `json:"orderId"`
	Ordernumber string                  `json:"ordernumber"`
	Creator     string                  `json:"creator"`
	CreatedAt   time.Time               `json:"createdAt"`
	Bookings    []ListedBookingResponse `json:"bookings,omitempty"`
}

// ListedBookingResponse is one booking line of a listed order.
type ListedBookingResponse struct {
	Title    string `json:"title"`
	Quantity string `json:"quantity"`
	Net      string `json:"net"`
	Discount string `json:"discount"`
	Currency string `json:"currency"`
	State    string `json:"state"`
	Salaried string `json:"salaried"`
}

func listedBookingResponses(lines []queries.ListedBooking) []ListedBookingResponse {
	out := make([]ListedBookingResponse, len(lines))
	for i, line := range lines {
		out[i] = ListedBookingResponse{
			Title:    line.Title,
			Quantity: line.Quantity.String(),
			Net:      line.Net.StringFixed(2),
			Discount: line.Discount.StringFixed(2),
			Currency: line.Currency,
			State:    line.State,
			Salaried: line.Salaried,
		}
	}
	return out
}

// OrderViewResponse is the aggregate view of one order.
type OrderViewResponse struct {
	OrderID       string            `json:"orderId"`
	Ordernumber   string            `json:"ordernumber"`
	Creator       string            `json:"creator"`
	CreatedAt     time.Time         `json:"createdAt"`
	Net           string            `json:"net"`
	Vat           string            `json:"vat"`
	DiscountNet   string            `json:"discountNet"`
	DiscountVat   string            `json:"discountVat"`
	ShippingNet   string            `json:"shippingNet"`
	ShippingVat   string            `json:"shippingVat"`
	Total         string            `json:"total"`
	Currency      *string           `json:"currency"`
	MainState     string            `json:"mainState"`
	Salaried      string            `json:"salaried"`
	PaymentLabel  string            `json:"paymentLabel,omitempty"`
	ShippingLabel string            `json:"shippingLabel,omitempty"`
	Attrs         map[string]string `json:"attrs,omitempty"`
	Bookings      []BookingResponse `json:"bookings,omitempty"`
}

// BookingResponse is one booking row inside an order view. The transition
// lists carry the codes legal from the booking's current states, ready for
// action menus.
type BookingResponse struct {
	BookingID           string    `json:"bookingId"`
	Title               string    `json:"title"`
	Comment             string    `json:"comment,omitempty"`
	Quantity            string    `json:"quantity"`
	QuantityUnit        string    `json:"quantityUnit"`
	Net                 string    `json:"net"`
	Vat                 string    `json:"vat"`
	DiscountNet         string    `json:"discountNet"`
	Currency            string    `json:"currency"`
	State               string    `json:"state"`
	Salaried            string    `json:"salaried"`
	Exported            bool      `json:"exported"`
	ChangedAt           time.Time `json:"changedAt"`
	Transitions         []string  `json:"transitions"`
	SalariedTransitions []string  `json:"salariedTransitions"`
}

func orderViewResponse(view services.OrderView) OrderViewResponse {
	return OrderViewResponse{
		OrderID:     view.OrderID.String(),
		Ordernumber: view.Ordernumber,
		Creator:     view.Creator,
		CreatedAt:   view.CreatedAt,
		Net:         view.Net.StringFixed(2),
		Vat:         view.Vat.StringFixed(2),
		DiscountNet: view.DiscountNet.StringFixed(2),
		DiscountVat: view.DiscountVat.StringFixed(2),
		ShippingNet: view.ShippingNet.StringFixed(2),
		ShippingVat: view.ShippingVat.StringFixed(2),
		Total:       view.Total.StringFixed(2),
		Currency:    view.Currency,
		MainState:   string(view.MainState),
		Salaried:    view.Salaried.String(),
	}
}

func bookingResponses(rows []queries.BookingRow) []BookingResponse {
	out := make([]BookingResponse, len(rows))
	for i, row := range rows {
		out[i] = BookingResponse{
			BookingID:           row.BookingID.String(),
			Title:               row.Title,
			Comment:             row.Comment,
			Quantity:            row.Quantity.String(),
			QuantityUnit:        row.QuantityUnit,
			Net:                 row.Net.StringFixed(2),
			Vat:                 row.Vat.StringFixed(2),
			DiscountNet:         row.DiscountNet.StringFixed(2),
			Currency:            row.Currency,
			State:               row.State,
			Salaried:            row.Salaried,
			Exported:            row.Exported,
			ChangedAt:           row.ChangedAt,
			Transitions:         row.Transitions,
			SalariedTransitions: row.SalariedTransitions,
		}
	}
	return out
}
