package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/postgres/bookingrepo"
	"orders/internal/adapters/out/postgres/orderrepo"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/booking"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/domain/services"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderViewQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
	handler   queries.GetOrderViewQueryHandler
}

func (suite *GetOrderViewQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &bookingrepo.BookingDTO{})
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)

	uow := suite.factory.Create()
	suite.handler = queries.NewGetOrderViewQueryHandler(
		uow.OrderRepository(),
		uow.BookingRepository(),
		services.NewOrderAggregator(),
	)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOrderViewQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, bookings").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_AggregatesPersistedOrder() {
	ctx := context.Background()
	vendorID := kernel.NewUUID()
	ord, bookings := suite.seedOrder(vendorID)

	scope, err := kernel.NewScope(vendorID)
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderViewQuery(ord.ID(), scope)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(ord.ID(), response.View.OrderID)
	suite.Equal(ord.Ordernumber(), response.View.Ordernumber)
	suite.Equal("invoice", response.PaymentLabel)
	suite.Equal("standard", response.ShippingLabel)
	suite.Equal(map[string]string{"channel": "web"}, response.Attrs)

	// 2 × 12.50 net at 21% VAT.
	suite.True(decimal.RequireFromString("25.00").Equal(response.View.Net))
	suite.True(decimal.RequireFromString("5.25").Equal(response.View.Vat))
	suite.True(decimal.RequireFromString("30.25").Equal(response.View.Total))
	suite.Require().NotNil(response.View.Currency)
	suite.Equal("EUR", *response.View.Currency)
	suite.Equal(order.MainStateNew, response.View.MainState)

	suite.Require().Len(response.Bookings, 1)
	suite.Equal(bookings[0].ID(), response.Bookings[0].BookingID)
	suite.Equal("Conference ticket", response.Bookings[0].Title)
	suite.Equal("new", response.Bookings[0].State)
	suite.Equal([]string{"process", "cancel"}, response.Bookings[0].Transitions)
	suite.Equal([]string{"mark_paid"}, response.Bookings[0].SalariedTransitions)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_ByOrdernumber() {
	ctx := context.Background()
	vendorID := kernel.NewUUID()
	ord, _ := suite.seedOrder(vendorID)

	scope, err := kernel.NewScope(vendorID)
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderViewQueryByOrdernumber(ord.Ordernumber(), scope)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(ord.ID(), response.View.OrderID)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_ForeignScope_HidesBookings() {
	ctx := context.Background()
	ord, _ := suite.seedOrder(kernel.NewUUID())

	scope, err := kernel.NewScope(kernel.NewUUID())
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderViewQuery(ord.ID(), scope)
	suite.Require().NoError(err)

	response, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Empty(response.Bookings)
	suite.True(response.View.Net.IsZero())
	suite.Equal(order.MainStateCancelled, response.View.MainState)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	scope, err := kernel.NewScope(kernel.NewUUID())
	suite.Require().NoError(err)
	query, err := queries.NewGetOrderViewQuery(kernel.NewUUID(), scope)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderViewQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderViewQuery{})
	suite.Require().Error(err)
}

func (suite *GetOrderViewQueryHandlerTestSuite) seedOrder(vendorID kernel.UUID) (*order.Order, []*booking.Booking) {
	ctx := context.Background()

	zero, err := kernel.ZeroMoney("EUR")
	suite.Require().NoError(err)

	ord, err := order.NewOrder(
		kernel.NewUUID(),
		"2026-0042",
		"alice@example.com",
		zero, zero, zero, zero,
		"invoice",
		"standard",
		map[string]string{"channel": "web"},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	unitNet, err := kernel.NewMoneyFromString("12.50", "EUR")
	suite.Require().NoError(err)
	vatRate, err := kernel.NewVATRateFromString("21")
	suite.Require().NoError(err)

	b, err := booking.NewBooking(
		kernel.NewUUID(),
		ord.ID(),
		kernel.NewUUID(),
		vendorID,
		"Conference ticket",
		"",
		decimal.NewFromInt(2),
		"piece",
		unitNet,
		zero,
		vatRate,
		0,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)

	err = ord.AddBooking(b.ID())
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ord))
	suite.Require().NoError(uow.BookingRepository().Add(ctx, b))

	return ord, []*booking.Booking{b}
}

func TestGetOrderViewQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderViewQueryHandlerTestSuite))
}
