package commands

import (
	"context"
)

// RegisterStockConfirmationCommandHandler records confirmed buyables.
// Registration is idempotent: a buyable already pending stays pending, a
// processed one is reopened.
type RegisterStockConfirmationCommandHandler struct {
	uowFactory ReservationUoWFactory
}

// NewRegisterStockConfirmationCommandHandler creates a handler for recording
// stock confirmations.
func NewRegisterStockConfirmationCommandHandler(
	uowFactory ReservationUoWFactory,
) RegisterStockConfirmationCommandHandler {
	return RegisterStockConfirmationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the confirmation.
func (h RegisterStockConfirmationCommandHandler) Handle(
	ctx context.Context, cmd RegisterStockConfirmationCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.StockConfirmationRepository().Add(ctx, cmd.BuyableID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
