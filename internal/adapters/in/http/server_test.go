package http_test

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apihttp "ordertracker/internal/adapters/in/http"
	"ordertracker/internal/adapters/out/storage"
	"ordertracker/internal/adapters/out/storage/storagetest"
	"ordertracker/internal/core/application/usecases/commands"
	"ordertracker/internal/core/application/usecases/queries"
	"ordertracker/internal/core/domain/model/kernel"
	"ordertracker/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

const owner = "0xowner"

type orderUoWFactory func() commands.OrderUoW

func (f orderUoWFactory) Create() commands.OrderUoW { return f() }

type uowFactory func() commands.UoW

func (f uowFactory) Create() commands.UoW { return f() }

type ledgerUoWFactory func() commands.LedgerUoW

func (f ledgerUoWFactory) Create() commands.LedgerUoW { return f() }

type ServerTestSuite struct {
	suite.Suite
	e    *echo.Echo
	db   *gorm.DB
	logs *observer.ObservedLogs
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (suite *ServerTestSuite) SetupTest() {
	db := storagetest.NewSQLite(suite.T())
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	suite.db = db
	suite.logs = logs
	factory := storage.NewGormUnitOfWorkFactory(db)
	clock := kernel.SystemClock{}

	deploy := commands.NewDeployLedgerCommandHandler(
		ledgerUoWFactory(func() commands.LedgerUoW { return factory.Create() }), clock)
	ownerID, err := kernel.NewIdentity(owner)
	suite.Require().NoError(err)
	deployCmd, err := commands.NewDeployLedgerCommand(ownerID)
	suite.Require().NoError(err)
	suite.Require().NoError(deploy.Handle(context.Background(), deployCmd))

	server := apihttp.NewServer(
		commands.NewCreateOrderCommandHandler(
			orderUoWFactory(func() commands.OrderUoW { return factory.Create() }), clock),
		commands.NewUpdateOrderStatusCommandHandler(
			uowFactory(func() commands.UoW { return factory.Create() }), clock),
		queries.NewGetOrderQueryHandler(db),
		queries.NewGetOrderHistoryQueryHandler(db),
		queries.NewGetListOfOrdersQueryHandler(db),
		logger,
	)

	suite.e = apihttp.NewEcho(logger, false)
	server.RegisterRoutes(suite.e)
}

func (suite *ServerTestSuite) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *ServerTestSuite) decodeError(rec *httptest.ResponseRecorder) apihttp.Error {
	var body apihttp.Error
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (suite *ServerTestSuite) createOrder(id string) {
	rec := suite.do(nethttp.MethodPost, "/api/v1/orders",
		`{"packageId":`+id+`,"sender":"Jakarta warehouse","recipient":"Bandung store","dispatchTime":1709600000,"deliveryTime":1709686400,"status":"Dispatched"}`)
	suite.Require().Equal(nethttp.StatusCreated, rec.Code, rec.Body.String())
}

func (suite *ServerTestSuite) TestHealth() {
	rec := suite.do(nethttp.MethodGet, "/health", "")

	suite.Equal(nethttp.StatusOK, rec.Code)
	suite.Equal("Healthy", rec.Body.String())
}

func (suite *ServerTestSuite) TestCreateAndRead() {
	suite.createOrder("100")

	rec := suite.do(nethttp.MethodGet, "/api/v1/orders/100", "")
	suite.Require().Equal(nethttp.StatusOK, rec.Code)
	var got apihttp.Order
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	suite.Equal(apihttp.Order{
		PackageID:    100,
		Sender:       "Jakarta warehouse",
		Recipient:    "Bandung store",
		DispatchTime: 1709600000,
		DeliveryTime: 1709686400,
		Status:       order.Dispatched,
	}, got)
	suite.Contains(rec.Body.String(), `"status":"Dispatched"`)

	rec = suite.do(nethttp.MethodGet, "/api/v1/orders", "")
	suite.Require().Equal(nethttp.StatusOK, rec.Code)
	suite.JSONEq(`[100]`, rec.Body.String())

	rec = suite.do(nethttp.MethodGet, "/api/v1/orders/100/history", "")
	suite.Require().Equal(nethttp.StatusOK, rec.Code)
	var history []apihttp.HistoryEntry
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &history))
	suite.Require().Len(history, 1)
	suite.Equal(order.Dispatched, history[0].Status)
	suite.Empty(history[0].Note)
}

func (suite *ServerTestSuite) TestCreateDefaultsToDispatched() {
	rec := suite.do(nethttp.MethodPost, "/api/v1/orders", `{"packageId":5,"sender":"a","recipient":"b"}`)
	suite.Require().Equal(nethttp.StatusCreated, rec.Code)

	rec = suite.do(nethttp.MethodGet, "/api/v1/orders/5", "")
	suite.Contains(rec.Body.String(), `"status":"Dispatched"`)
}

func (suite *ServerTestSuite) TestListIsEmptyArray() {
	rec := suite.do(nethttp.MethodGet, "/api/v1/orders", "")

	suite.Equal(nethttp.StatusOK, rec.Code)
	suite.JSONEq(`[]`, rec.Body.String())
}

func (suite *ServerTestSuite) TestCreateNotDispatched() {
	rec := suite.do(nethttp.MethodPost, "/api/v1/orders", `{"packageId":7,"sender":"a","recipient":"b","status":"In_Transit"}`)

	suite.Equal(nethttp.StatusUnprocessableEntity, rec.Code)
	body := suite.decodeError(rec)
	suite.Equal(apihttp.ErrorNameStatusShouldBeDispatched, body.Name)
	suite.Require().NotNil(body.PackageID)
	suite.Equal(uint64(7), *body.PackageID)

	rec = suite.do(nethttp.MethodGet, "/api/v1/orders", "")
	suite.JSONEq(`[]`, rec.Body.String())
}

func (suite *ServerTestSuite) TestCreateDuplicate() {
	suite.createOrder("100")

	rec := suite.do(nethttp.MethodPost, "/api/v1/orders", `{"packageId":100,"sender":"x","recipient":"y"}`)

	suite.Equal(nethttp.StatusConflict, rec.Code)
	suite.Equal(apihttp.ErrorNameOrderAlreadyExists, suite.decodeError(rec).Name)
}

func (suite *ServerTestSuite) TestCreateInvalidBody() {
	rec := suite.do(nethttp.MethodPost, "/api/v1/orders", `{"packageId":"abc"`)
	suite.Equal(nethttp.StatusBadRequest, rec.Code)
	suite.Equal(apihttp.ErrorNameInvalidArgument, suite.decodeError(rec).Name)

	rec = suite.do(nethttp.MethodPost, "/api/v1/orders", `{"packageId":0,"sender":"a","recipient":"b"}`)
	suite.Equal(nethttp.StatusBadRequest, rec.Code)
	suite.Equal(apihttp.ErrorNameInvalidArgument, suite.decodeError(rec).Name)

	rec = suite.do(nethttp.MethodPost, "/api/v1/orders", `{"packageId":1,"status":"Lost"}`)
	suite.Equal(nethttp.StatusBadRequest, rec.Code)
}

func (suite *ServerTestSuite) TestUpdateStatus() {
	suite.createOrder("100")

	rec := suite.do(nethttp.MethodPut, "/api/v1/orders/100/status",
		`{"status":"InTransit","note":"Just transit in Jakarta"}`,
		apihttp.CallerIdentityHeader, owner)
	suite.Require().Equal(nethttp.StatusNoContent, rec.Code, rec.Body.String())

	rec = suite.do(nethttp.MethodGet, "/api/v1/orders/100", "")
	suite.Contains(rec.Body.String(), `"status":"InTransit"`)

	rec = suite.do(nethttp.MethodGet, "/api/v1/orders/100/history", "")
	var history []apihttp.HistoryEntry
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &history))
	suite.Require().Len(history, 2)
	suite.Equal(order.InTransit, history[1].Status)
	suite.Equal("Just transit in Jakarta", history[1].Note)
	suite.GreaterOrEqual(history[1].UpdatedTime, history[0].UpdatedTime)
}

func (suite *ServerTestSuite) TestUpdateStatusNumericCode() {
	suite.createOrder("100")

	rec := suite.do(nethttp.MethodPut, "/api/v1/orders/100/status", `{"status":2}`,
		apihttp.CallerIdentityHeader, owner)

	suite.Require().Equal(nethttp.StatusNoContent, rec.Code)
	rec = suite.do(nethttp.MethodGet, "/api/v1/orders/100", "")
	suite.Contains(rec.Body.String(), `"status":"Delivered"`)
}

func (suite *ServerTestSuite) TestUpdateStatusFailures() {
	suite.createOrder("100")

	tests := []struct {
		name     string
		target   string
		body     string
		caller   string
		wantCode int
		wantName string
	}{
		{"anonymous", "/api/v1/orders/100/status", `{"status":"InTransit"}`, "", nethttp.StatusForbidden, apihttp.ErrorNameUnauthorized},
		{"not owner", "/api/v1/orders/100/status", `{"status":"InTransit"}`, "0xstranger", nethttp.StatusForbidden, apihttp.ErrorNameUnauthorized},
		{"unknown order", "/api/v1/orders/999/status", `{"status":"InTransit"}`, owner, nethttp.StatusNotFound, apihttp.ErrorNameOrderNotFound},
		{"same status", "/api/v1/orders/100/status", `{"status":"Dispatched"}`, owner, nethttp.StatusConflict, apihttp.ErrorNameCannotUpdateWithTheSameStatus},
		{"missing status", "/api/v1/orders/100/status", `{"note":"x"}`, owner, nethttp.StatusBadRequest, apihttp.ErrorNameInvalidArgument},
		{"bad id", "/api/v1/orders/abc/status", `{"status":"InTransit"}`, owner, nethttp.StatusBadRequest, apihttp.ErrorNameInvalidArgument},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			headers := []string{}
			if tt.caller != "" {
				headers = append(headers, apihttp.CallerIdentityHeader, tt.caller)
			}

			rec := suite.do(nethttp.MethodPut, tt.target, tt.body, headers...)

			suite.Equal(tt.wantCode, rec.Code)
			suite.Equal(tt.wantName, suite.decodeError(rec).Name)
		})
	}

	rec := suite.do(nethttp.MethodGet, "/api/v1/orders/100/history", "")
	var history []apihttp.HistoryEntry
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &history))
	suite.Len(history, 1)
}

func (suite *ServerTestSuite) TestReadUnknownOrder() {
	for _, target := range []string{"/api/v1/orders/42", "/api/v1/orders/42/history"} {
		rec := suite.do(nethttp.MethodGet, target, "")

		suite.Equal(nethttp.StatusNotFound, rec.Code)
		body := suite.decodeError(rec)
		suite.Equal(apihttp.ErrorNameOrderNotFound, body.Name)
		suite.Require().NotNil(body.PackageID)
		suite.Equal(uint64(42), *body.PackageID)
	}
}

func (suite *ServerTestSuite) TestUnknownRoute() {
	rec := suite.do(nethttp.MethodGet, "/api/v2/nothing", "")

	suite.Equal(nethttp.StatusNotFound, rec.Code)
	suite.Equal(apihttp.ErrorNameNotFound, suite.decodeError(rec).Name)
}

func (suite *ServerTestSuite) TestMaxInt64BoundaryOnPackageID() {
	rec := suite.do(nethttp.MethodPost, "/api/v1/orders",
		`{"packageId":9223372036854775807,"sender":"a","recipient":"b"}`)
	suite.Require().Equal(nethttp.StatusCreated, rec.Code, rec.Body.String())

	rec = suite.do(nethttp.MethodGet, "/api/v1/orders/9223372036854775807", "")
	suite.Equal(nethttp.StatusOK, rec.Code)

	for _, target := range []string{
		"/api/v1/orders/9223372036854775808",
		"/api/v1/orders/9223372036854775808/history",
		"/api/v1/orders/18446744073709551615",
	} {
		rec = suite.do(nethttp.MethodGet, target, "")

		suite.Equal(nethttp.StatusBadRequest, rec.Code, target)
		suite.Equal(apihttp.ErrorNameInvalidArgument, suite.decodeError(rec).Name, target)
	}

	rec = suite.do(nethttp.MethodPost, "/api/v1/orders",
		`{"packageId":9223372036854775808,"sender":"a","recipient":"b"}`)
	suite.Equal(nethttp.StatusBadRequest, rec.Code)
	suite.Equal(apihttp.ErrorNameInvalidArgument, suite.decodeError(rec).Name)

	rec = suite.do(nethttp.MethodPut, "/api/v1/orders/9223372036854775808/status",
		`{"status":"InTransit"}`, apihttp.CallerIdentityHeader, owner)
	suite.Equal(nethttp.StatusBadRequest, rec.Code)

	suite.Zero(suite.logs.FilterMessage("Request failed").Len())
}

func (suite *ServerTestSuite) TestServerErrorsAreLoggedWithCause() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	suite.Require().NoError(sqlDB.Close())

	rec := suite.do(nethttp.MethodGet, "/api/v1/orders/100", "")

	suite.Equal(nethttp.StatusInternalServerError, rec.Code)
	body := suite.decodeError(rec)
	suite.Equal(apihttp.ErrorNameInternal, body.Name)
	suite.Equal("internal error", body.Message)

	failures := suite.logs.FilterMessage("Request failed").All()
	suite.Require().Len(failures, 1)
	fields := failures[0].ContextMap()
	suite.Equal("http", fields["component"])
	suite.Equal(nethttp.MethodGet, fields["method"])
	suite.Equal("/api/v1/orders/100", fields["uri"])
	suite.Contains(fields["error"], "closed")
}

func (suite *ServerTestSuite) TestClientErrorsAreNotLoggedAsFailures() {
	rec := suite.do(nethttp.MethodGet, "/api/v1/orders/42", "")

	suite.Equal(nethttp.StatusNotFound, rec.Code)
	suite.Zero(suite.logs.FilterMessage("Request failed").Len())
}
