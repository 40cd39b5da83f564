package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterStockConfirmationCommandHandler_Handle_RecordsBuyable(t *testing.T) {
	ctx := t.Context()
	buyableID := kernel.NewUUID()

	cmd, err := commands.NewRegisterStockConfirmationCommand(buyableID)
	require.NoError(t, err)

	stockRepo := new(MockStockConfirmationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StockConfirmationRepository").Return(stockRepo)
	stockRepo.On("Add", mock.Anything, buyableID).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockReservationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterStockConfirmationCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	stockRepo.AssertExpectations(t)
}

func TestRegisterStockConfirmationCommandHandler_Handle_AddFailureRollsBack(t *testing.T) {
	ctx := t.Context()
	buyableID := kernel.NewUUID()

	cmd, err := commands.NewRegisterStockConfirmationCommand(buyableID)
	require.NoError(t, err)

	stockRepo := new(MockStockConfirmationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StockConfirmationRepository").Return(stockRepo)
	stockRepo.On("Add", mock.Anything, buyableID).Return(errors.New("insert failed")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockReservationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRegisterStockConfirmationCommandHandler(factory)
	require.Error(t, h.Handle(ctx, cmd))
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewRegisterStockConfirmationCommand_RequiresBuyableID(t *testing.T) {
	_, err := commands.NewRegisterStockConfirmationCommand(kernel.UUID{})
	require.Error(t, err)
}
