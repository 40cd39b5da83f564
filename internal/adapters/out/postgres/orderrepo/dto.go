// Package orderrepo persists order aggregates. It handles the mapping
// between the Order domain aggregate and its relational representation; the
// booking identity list is derived from the bookings table rather than
// stored redundantly.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database row of an order aggregate. All amounts
// share the Currency column; Attrs holds the opaque checkout attributes as
// JSON.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Ordernumber string    `gorm:"uniqueIndex;not null"`
	Creator     string    `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"index"`

	ShippingNet     decimal.Decimal `gorm:"type:numeric"`
	ShippingVat     decimal.Decimal `gorm:"type:numeric"`
	CartDiscountNet decimal.Decimal `gorm:"type:numeric"`
	CartDiscountVat decimal.Decimal `gorm:"type:numeric"`
	Currency        string          `gorm:"not null"`

	PaymentLabel  string
	ShippingLabel string
	Attrs         map[string]string `gorm:"serializer:json"`
}

// TableName overrides GORM's default naming to "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		Ordernumber:     aggregate.Ordernumber(),
		Creator:         aggregate.Creator(),
		CreatedAt:       aggregate.CreatedAt(),
		ShippingNet:     aggregate.ShippingNet().Amount(),
		ShippingVat:     aggregate.ShippingVat().Amount(),
		CartDiscountNet: aggregate.CartDiscountNet().Amount(),
		CartDiscountVat: aggregate.CartDiscountVat().Amount(),
		Currency:        aggregate.ShippingNet().Currency(),
		PaymentLabel:    aggregate.PaymentLabel(),
		ShippingLabel:   aggregate.ShippingLabel(),
		Attrs:           aggregate.Attrs(),
	}
}

// toDomain reconstructs the aggregate from its row and the identity list of
// its bookings.
func toDomain(dto OrderDTO, bookingIDs []kernel.UUID) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shippingNet, err := kernel.NewMoney(dto.ShippingNet, dto.Currency)
	if err != nil {
		return nil, err
	}
	shippingVat, err := kernel.NewMoney(dto.ShippingVat, dto.Currency)
	if err != nil {
		return nil, err
	}
	cartDiscountNet, err := kernel.NewMoney(dto.CartDiscountNet, dto.Currency)
	if err != nil {
		return nil, err
	}
	cartDiscountVat, err := kernel.NewMoney(dto.CartDiscountVat, dto.Currency)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.Ordernumber, dto.Creator,
		shippingNet, shippingVat, cartDiscountNet, cartDiscountVat,
		dto.PaymentLabel, dto.ShippingLabel,
		dto.Attrs, bookingIDs, dto.CreatedAt,
	)
}
