package queries_test

import (
	"context"
	"testing"
	"time"

	"ordertracker/internal/adapters/out/storage"
	"ordertracker/internal/adapters/out/storage/storagetest"
	"ordertracker/internal/core/application/usecases/queries"
	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/core/ports"
	"ordertracker/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var createdAt = time.Date(2024, 3, 5, 7, 0, 0, 0, time.UTC)

type QueriesTestSuite struct {
	suite.Suite
	db      *gorm.DB
	factory ports.UnitOfWorkFactory
}

func TestQueriesTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesTestSuite))
}

func (suite *QueriesTestSuite) SetupTest() {
	suite.db = storagetest.NewSQLite(suite.T())
	suite.factory = storage.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *QueriesTestSuite) createOrder(id kernel.PackageID, sender, recipient string) *order.Order {
	ctx := context.Background()
	o, err := order.NewOrder(id, sender, recipient, 1709600000, 1709686400, order.Dispatched, createdAt)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	return o
}

func (suite *QueriesTestSuite) updateStatus(o *order.Order, status order.Status, note string, at time.Time) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	_, err := o.UpdateStatus(status, note, at)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *QueriesTestSuite) TestGetOrder() {
	suite.createOrder(100, "Jakarta warehouse", "Bandung store")
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(100)
	suite.Require().NoError(err)

	resp, err := handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(queries.GetOrderQueryResponse{
		PackageID:    100,
		Sender:       "Jakarta warehouse",
		Recipient:    "Bandung store",
		DispatchTime: 1709600000,
		DeliveryTime: 1709686400,
		Status:       order.Dispatched,
	}, resp)
}

func (suite *QueriesTestSuite) TestGetOrder_ReflectsLatestStatus() {
	o := suite.createOrder(100, "a", "b")
	suite.updateStatus(o, order.InTransit, "Just transit in Jakarta", createdAt.Add(time.Hour))

	query, _ := queries.NewGetOrderQuery(100)
	resp, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(order.InTransit, resp.Status)
}

func (suite *QueriesTestSuite) TestGetOrder_NotFound() {
	query, _ := queries.NewGetOrderQuery(999)

	_, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, order.ErrOrderNotFound)
	var pkgErr *order.PackageError
	suite.Require().ErrorAs(err, &pkgErr)
	suite.Equal(kernel.PackageID(999), pkgErr.PackageID)
}

func (suite *QueriesTestSuite) TestGetOrderHistory_OldestFirst() {
	o := suite.createOrder(100, "a", "b")
	suite.updateStatus(o, order.InTransit, "Just transit in Jakarta", createdAt.Add(time.Hour))
	suite.updateStatus(o, order.Delivered, "left at front door", createdAt.Add(2*time.Hour))
	suite.createOrder(200, "c", "d")

	query, _ := queries.NewGetOrderHistoryQuery(100)
	history, err := queries.NewGetOrderHistoryQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(history, 3)
	suite.Equal(order.Dispatched, history[0].Status)
	suite.Empty(history[0].Note)
	suite.Equal(createdAt, history[0].UpdatedTime)
	suite.Equal(order.InTransit, history[1].Status)
	suite.Equal("Just transit in Jakarta", history[1].Note)
	suite.Equal(order.Delivered, history[2].Status)

	for i := 1; i < len(history); i++ {
		suite.NotEqual(history[i-1].Status, history[i].Status)
		suite.False(history[i].UpdatedTime.Before(history[i-1].UpdatedTime))
		suite.Equal(kernel.PackageID(100), history[i].PackageID)
	}
}

func (suite *QueriesTestSuite) TestGetOrderHistory_NotFound() {
	query, _ := queries.NewGetOrderHistoryQuery(999)

	_, err := queries.NewGetOrderHistoryQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().ErrorIs(err, order.ErrOrderNotFound)
}

func (suite *QueriesTestSuite) TestGetListOfOrders() {
	handler := queries.NewGetListOfOrdersQueryHandler(suite.db)

	empty, err := handler.Handle(context.Background(), queries.NewGetListOfOrdersQuery())
	suite.Require().NoError(err)
	suite.Empty(empty)

	suite.createOrder(300, "a", "b")
	suite.createOrder(100, "a", "b")
	suite.createOrder(200, "a", "b")

	ids, err := handler.Handle(context.Background(), queries.NewGetListOfOrdersQuery())
	suite.Require().NoError(err)
	suite.Equal([]kernel.PackageID{300, 100, 200}, ids)
}

func (suite *QueriesTestSuite) TestQueriesRejectZeroValues() {
	ctx := context.Background()

	_, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, queries.GetOrderQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)

	_, err = queries.NewGetOrderHistoryQueryHandler(suite.db).Handle(ctx, queries.GetOrderHistoryQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetOrderHistoryQueryIsNotConstructed)

	_, err = queries.NewGetListOfOrdersQueryHandler(suite.db).Handle(ctx, queries.GetListOfOrdersQuery{})
	suite.Require().ErrorIs(err, queries.ErrGetListOfOrdersQueryIsNotConstructed)
}

func (suite *QueriesTestSuite) TestQueryConstructorsValidateID() {
	_, err := queries.NewGetOrderQuery(0)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)

	_, err = queries.NewGetOrderHistoryQuery(0)
	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
}
