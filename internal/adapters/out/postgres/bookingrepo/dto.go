package bookingrepo

import (
	"time"

	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingDTO is the database representation of a booking.
type BookingDTO struct {
	ID             uuid.UUID       `gorm:"primaryKey;type:uuid"`
	OrderID        uuid.UUID       `gorm:"type:uuid;index"`
	BuyableID      uuid.UUID       `gorm:"type:uuid;index"`
	VendorID       uuid.UUID       `gorm:"type:uuid;index"`
	Title          string          `gorm:"type:text"`
	Comment        string          `gorm:"type:text"`
	Quantity       decimal.Decimal `gorm:"type:numeric"`
	QuantityUnit   string          `gorm:"type:text"`
	UnitNet        decimal.Decimal `gorm:"type:numeric"`
	DiscountNet    decimal.Decimal `gorm:"type:numeric"`
	Currency       string          `gorm:"type:text"`
	VatRate        decimal.Decimal `gorm:"type:numeric"`
	Status         string          `gorm:"type:text;index"`
	Salaried       string          `gorm:"type:text;index"`
	Exported       bool            `gorm:""`
	Position       int             `gorm:""`
	StateChangedAt time.Time       `gorm:"index"`
}

// TableName overrides the table name used by GORM.
func (BookingDTO) TableName() string {
	return "bookings"
}

func fromDomain(b *booking.Booking) BookingDTO {
	return BookingDTO{
		ID:             b.ID().Bytes(),
		OrderID:        b.OrderID().Bytes(),
		BuyableID:      b.BuyableID().Bytes(),
		VendorID:       b.VendorID().Bytes(),
		Title:          b.Title(),
		Comment:        b.Comment(),
		Quantity:       b.Quantity(),
		QuantityUnit:   b.QuantityUnit(),
		UnitNet:        b.UnitNet().Amount(),
		DiscountNet:    b.DiscountNet().Amount(),
		Currency:       b.UnitNet().Currency(),
		VatRate:        b.VATRate().Value(),
		Status:         b.Status().String(),
		Salaried:       b.Salaried().String(),
		Exported:       b.Exported(),
		Position:       b.Position(),
		StateChangedAt: b.StateChangedAt(),
	}
}

func toDomain(dto BookingDTO) (*booking.Booking, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	buyableID, err := kernel.UUIDFromBytes(dto.BuyableID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	unitNet, err := kernel.NewMoney(dto.UnitNet, dto.Currency)
	if err != nil {
		return nil, err
	}
	discountNet, err := kernel.NewMoney(dto.DiscountNet, dto.Currency)
	if err != nil {
		return nil, err
	}
	vatRate, err := kernel.NewVATRate(dto.VatRate)
	if err != nil {
		return nil, err
	}

	status, err := booking.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	salaried, err := booking.ParseSalaried(dto.Salaried)
	if err != nil {
		return nil, err
	}

	return booking.RestoreBooking(
		id,
		orderID,
		buyableID,
		vendorID,
		dto.Title,
		dto.Comment,
		dto.Quantity,
		dto.QuantityUnit,
		unitNet,
		discountNet,
		vatRate,
		status,
		salaried,
		dto.Exported,
		dto.Position,
		dto.StateChangedAt,
	)
}
