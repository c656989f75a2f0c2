package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ordertracker/internal/core/domain/model/ledger"
	"ordertracker/internal/core/domain/model/order"
	"ordertracker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorBody(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantName string
	}{
		{"status should be dispatched", order.NewStatusShouldBeDispatchedError(1), http.StatusUnprocessableEntity, ErrorNameStatusShouldBeDispatched},
		{"order not found", order.NewOrderNotFoundError(1), http.StatusNotFound, ErrorNameOrderNotFound},
		{"same status", order.NewCannotUpdateWithTheSameStatusError(1), http.StatusConflict, ErrorNameCannotUpdateWithTheSameStatus},
		{"already exists", fmt.Errorf("create: %w", order.NewOrderAlreadyExistsError(1)), http.StatusConflict, ErrorNameOrderAlreadyExists},
		{"unauthorized", errs.NewUnauthorizedError("x"), http.StatusForbidden, ErrorNameUnauthorized},
		{"not deployed", ledger.ErrLedgerNotDeployed, http.StatusServiceUnavailable, ErrorNameLedgerNotDeployed},
		{"required", errs.NewValueIsRequiredError("packageId"), http.StatusBadRequest, ErrorNameInvalidArgument},
		{"out of range", errs.NewValueIsOutOfRangeError("status", 9, 0, 2), http.StatusBadRequest, ErrorNameInvalidArgument},
		{"echo 405", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, ErrorNameInvalidArgument},
		{"other", errors.New("disk full"), http.StatusInternalServerError, ErrorNameInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := errorBody(tt.err)

			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantName, body.Name)
		})
	}
}

func TestErrorBody_HidesInternalMessages(t *testing.T) {
	body := errorBody(errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	assert.Equal(t, "internal error", body.Message)
	assert.Nil(t, body.PackageID)
}
