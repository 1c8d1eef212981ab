package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ferryops/internal/adapters/in/http/auth"
	"ferryops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"unauthenticated", fmt.Errorf("%w: expired", auth.ErrUnauthenticated), http.StatusUnauthorized},
		{"role mismatch", auth.ErrForbidden, http.StatusForbidden},
		{"receipt not available", errs.NewForbiddenError("not paid"), http.StatusForbidden},
		{"not found", errs.NewObjectNotFoundError("order_id", "x"), http.StatusNotFound},
		{"invalid state", errs.NewInvalidStateError("order", "confirm", "pending"), http.StatusConflict},
		{"required", errs.NewValueIsRequiredError("name"), http.StatusBadRequest},
		{"invalid", errs.NewValueIsInvalidError("amount"), http.StatusBadRequest},
		{"out of range", errs.NewValueIsOutOfRangeError("limit", 500, 1, 100), http.StatusBadRequest},
		{"joined validation", errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsRequiredError("b")), http.StatusBadRequest},
		{"echo error", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{"version conflict", errs.NewVersionIsInvalidError("order"), http.StatusInternalServerError},
		{"store", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := classify(tt.err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestClassify_HidesDetails(t *testing.T) {
	_, msg := classify(errs.NewObjectNotFoundError("order_id", "4b1c"))
	assert.Equal(t, "not found", msg)

	_, msg = classify(errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal error", msg)
}

func TestErrorHandler_LogsServerErrors(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(zap.New(core))
	e.GET("/boom", func(echo.Context) error { return errors.New("disk full") })
	e.GET("/missing", func(echo.Context) error { return errs.NewObjectNotFoundError("id", 1) })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"code":500,"message":"internal error"}`, rec.Body.String())
	require.Equal(t, 1, logs.FilterMessage("request failed").Len())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
}
