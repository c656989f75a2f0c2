package http

import (
	"errors"
	"net/http"

	"ordertracker/internal/core/domain/model/ledger"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Stable error names returned in the "error" field.
const (
	ErrorNameStatusShouldBeDispatched      = "StatusShouldBeDispatched"
	ErrorNameOrderNotFound                 = "OrderNotFound"
	ErrorNameCannotUpdateWithTheSameStatus = "CannotUpdateWithTheSameStatus"
	ErrorNameOrderAlreadyExists            = "OrderAlreadyExists"
	ErrorNameUnauthorized                  = "Unauthorized"
	ErrorNameLedgerNotDeployed             = "LedgerNotDeployed"
	ErrorNameInvalidArgument               = "InvalidArgument"
	ErrorNameNotFound                      = "NotFound"
	ErrorNameInternal                      = "Internal"
)

// packageErrors maps ledger rule violations to their status codes.
var packageErrors = []struct {
	kind error
	code int
	name string
}{
	{order.ErrStatusShouldBeDispatched, http.StatusUnprocessableEntity, ErrorNameStatusShouldBeDispatched},
	{order.ErrOrderNotFound, http.StatusNotFound, ErrorNameOrderNotFound},
	{order.ErrCannotUpdateWithTheSameStatus, http.StatusConflict, ErrorNameCannotUpdateWithTheSameStatus},
	{order.ErrOrderAlreadyExists, http.StatusConflict, ErrorNameOrderAlreadyExists},
}

// errorBody maps err to a status code and a wire error.
//
//	| Error                        | Code | Name                          |
//	|------------------------------|------|-------------------------------|
//	| ErrStatusShouldBeDispatched  | 422  | StatusShouldBeDispatched      |
//	| ErrOrderNotFound             | 404  | OrderNotFound                 |
//	| ErrCannotUpdateWithTheSame.. | 409  | CannotUpdateWithTheSameStatus |
//	| ErrOrderAlreadyExists        | 409  | OrderAlreadyExists            |
//	| errs.ErrUnauthorized         | 403  | Unauthorized                  |
//	| ErrLedgerNotDeployed         | 503  | LedgerNotDeployed             |
//	| errs validation errors       | 400  | InvalidArgument               |
//	| anything else                | 500  | Internal                      |
//
// Internal errors never expose their message.
func errorBody(err error) Error {
	var pkgErr *order.PackageError
	if errors.As(err, &pkgErr) {
		for _, e := range packageErrors {
			if errors.Is(pkgErr.Kind, e.kind) {
				id := pkgErr.PackageID.Uint64()
				return Error{Code: e.code, Name: e.name, Message: err.Error(), PackageID: &id}
			}
		}
	}

	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		return Error{Code: http.StatusForbidden, Name: ErrorNameUnauthorized, Message: err.Error()}
	case errors.Is(err, ledger.ErrLedgerNotDeployed):
		return Error{Code: http.StatusServiceUnavailable, Name: ErrorNameLedgerNotDeployed, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return Error{Code: http.StatusBadRequest, Name: ErrorNameInvalidArgument, Message: err.Error()}
	case errors.As(err, &httpErr):
		return echoErrorBody(httpErr)
	default:
		return Error{Code: http.StatusInternalServerError, Name: ErrorNameInternal, Message: "internal error"}
	}
}

// echoErrorBody keeps echo's status code and replaces the message with its status text.
func echoErrorBody(httpErr *echo.HTTPError) Error {
	name := ErrorNameInternal
	switch {
	case httpErr.Code == http.StatusNotFound:
		name = ErrorNameNotFound
	case httpErr.Code >= 400 && httpErr.Code < 500:
		name = ErrorNameInvalidArgument
	}
	return Error{Code: httpErr.Code, Name: name, Message: http.StatusText(httpErr.Code)}
}

// writeError renders err as a JSON error body. Server errors hide their cause
// from the client, so it is logged here together with the request line.
func writeError(c echo.Context, logger *zap.Logger, err error) error {
	body := errorBody(err)
	if body.Code >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Int("status", body.Code),
			zap.Error(err),
		)
	}
	return c.JSON(body.Code, body)
}

// NewHTTPErrorHandler renders errors escaping handlers, such as unknown
// routes or panics caught by the recover middleware, in the same body shape.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		if werr := writeError(c, logger, err); werr != nil {
			logger.Error("Write error response", zap.Error(werr))
		}
	}
}
