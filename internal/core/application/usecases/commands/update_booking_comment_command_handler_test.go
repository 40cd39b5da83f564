package commands_test

import (
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"
	"orders/internal/pkg/orderlock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateBookingCommentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	vendorID := kernel.NewUUID()
	ord := fixtureOrder(t)
	b := fixtureBooking(t, ord.ID(), vendorID, booking.StatusNew)

	cmd, err := commands.NewUpdateBookingCommentCommand(b.ID(), "ring twice", scopeOf(t, vendorID))
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BookingRepository").Return(bookingRepo)
	bookingRepo.On("Get", mock.Anything, b.ID()).Return(b, nil).Twice()
	bookingRepo.On("Update", mock.Anything, b).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateBookingCommentCommandHandler(factory, orderlock.NewRegistry())
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, "ring twice", b.Comment())
}

func TestUpdateBookingCommentCommandHandler_Handle_Unauthorized(t *testing.T) {
	ctx := t.Context()
	ord := fixtureOrder(t)
	b := fixtureBooking(t, ord.ID(), kernel.NewUUID(), booking.StatusNew)

	cmd, err := commands.NewUpdateBookingCommentCommand(b.ID(), "x", scopeOf(t, kernel.NewUUID()))
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BookingRepository").Return(bookingRepo)
	bookingRepo.On("Get", mock.Anything, b.ID()).Return(b, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateBookingCommentCommandHandler(factory, orderlock.NewRegistry())
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Empty(t, b.Comment())
}

func TestUpdateBookingCommentCommandHandler_Handle_OrderLockContention(t *testing.T) {
	ctx := t.Context()
	vendorID := kernel.NewUUID()
	ord := fixtureOrder(t)
	b := fixtureBooking(t, ord.ID(), vendorID, booking.StatusNew)

	cmd, err := commands.NewUpdateBookingCommentCommand(b.ID(), "late", scopeOf(t, vendorID))
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BookingRepository").Return(bookingRepo)
	bookingRepo.On("Get", mock.Anything, b.ID()).Return(b, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	locks := orderlock.NewRegistry()
	release, err := locks.Acquire(ord.ID())
	require.NoError(t, err)
	defer release()

	h := commands.NewUpdateBookingCommentCommandHandler(factory, locks)
	err = h.Handle(ctx, cmd)
	assert.ErrorIs(t, err, errs.ErrConcurrentModification)
	bookingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Empty(t, b.Comment())
}
