package cmd

import (
	"log/slog"

	"orders/internal/adapters/out/notify"
	"orders/internal/adapters/out/postgres"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/services"
	"orders/internal/jobs"
	"orders/internal/pkg/orderlock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	locks      *orderlock.Registry
	aggregator services.OrderAggregator
	bus        *notify.Bus
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		locks:      orderlock.NewRegistry(),
		aggregator: services.NewOrderAggregator(),
		bus:        notify.NewBus(logger),
		logger:     logger,
	}
}

// TransitionBus exposes the in-process event bus so subscribers can be
// registered at startup.
func (c *CompositionRoot) TransitionBus() *notify.Bus {
	return c.bus
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateExecuteTransitionCommandHandler() commands.ExecuteTransitionCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExecuteTransitionCommandHandler(f, c.locks, c.aggregator, c.bus)
}

func (c *CompositionRoot) CreateCorrectBookingCommandHandler() commands.CorrectBookingCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCorrectBookingCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateUpdateBookingCommentCommandHandler() commands.UpdateBookingCommentCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateBookingCommentCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateMarkBookingsExportedCommandHandler() commands.MarkBookingsExportedCommandHandler {
	var f commands.BookingUoWFactory = FuncBookingUoWFactory(func() commands.BookingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkBookingsExportedCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateRegisterStockConfirmationCommandHandler() commands.RegisterStockConfirmationCommandHandler {
	var f commands.ReservationUoWFactory = FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterStockConfirmationCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmReservationsCommandHandler() commands.ConfirmReservationsCommandHandler {
	var f commands.ReservationUoWFactory = FuncReservationUoWFactory(func() commands.ReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmReservationsCommandHandler(f, c.locks, c.bus)
}

func (c *CompositionRoot) CreateGetOrderViewQueryHandler() queries.GetOrderViewQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderViewQueryHandler(uow.OrderRepository(), uow.BookingRepository(), c.aggregator)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateConfirmReservationsCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBookingUoWFactory func() commands.BookingUoW

func (f FuncBookingUoWFactory) Create() commands.BookingUoW {
	return f()
}

type FuncReservationUoWFactory func() commands.ReservationUoW

func (f FuncReservationUoWFactory) Create() commands.ReservationUoW {
	return f()
}
