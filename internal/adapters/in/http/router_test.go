package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "ferryops/internal/adapters/in/http"
	"ferryops/internal/adapters/in/http/auth"
	"ferryops/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// RouterTestSuite covers everything that is decided before a use case runs:
// routing, roles, request validation and parameter binding.
type RouterTestSuite struct {
	suite.Suite
	e    *echo.Echo
	gate *auth.Gate
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) SetupSuite() {
	s.gate = auth.NewGate("router-secret")

	e, err := httpadapter.NewRouter(context.Background(), httpadapter.RouterDeps{
		Server: httpadapter.NewServer(httpadapter.Handlers{}),
		Gate:   s.gate,
		Logger: zap.NewNop(),
	})
	s.Require().NoError(err)
	s.e = e
}

func (s *RouterTestSuite) token(role auth.Role) string {
	token, err := s.gate.Issue(kernel.NewUUID(), role, time.Minute)
	s.Require().NoError(err)
	return token
}

func (s *RouterTestSuite) do(method, target string, role auth.Role, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if role != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(role))
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *RouterTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *RouterTestSuite) TestMetrics() {
	rec := s.do(http.MethodGet, "/metrics", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "ferryops_")
}

func (s *RouterTestSuite) TestSwaggerDocument() {
	rec := s.do(http.MethodGet, "/swagger/doc.json", "", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "/api/v1/orders/{id}/received")
}

func (s *RouterTestSuite) TestRoleGate() {
	tests := []struct {
		name   string
		method string
		target string
		role   auth.Role
		code   int
	}{
		{"no token", http.MethodGet, "/api/v1/orders", "", http.StatusUnauthorized},
		{"passenger on orders", http.MethodGet, "/api/v1/orders", auth.RolePassenger, http.StatusForbidden},
		{"supplier creating order", http.MethodPost, "/api/v1/orders", auth.RoleSupplier, http.StatusForbidden},
		{"inventory accepting order", http.MethodPut, "/api/v1/orders/" + kernel.NewUUID().String() + "/accept", auth.RoleInventory, http.StatusForbidden},
		{"supplier confirming receipt", http.MethodPut, "/api/v1/orders/" + kernel.NewUUID().String() + "/received", auth.RoleSupplier, http.StatusForbidden},
		{"passenger on finance", http.MethodGet, "/api/v1/finance/summary", auth.RolePassenger, http.StatusForbidden},
		{"inventory registering supplier", http.MethodPost, "/api/v1/suppliers", auth.RoleInventory, http.StatusForbidden},
		{"finance in chat", http.MethodGet, "/api/v1/chat/rooms/r1/messages", auth.RoleFinance, http.StatusForbidden},
		{"operating staff on items", http.MethodGet, "/api/v1/items", auth.Role("operating"), http.StatusForbidden},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.target, tt.role, "")
			s.Equal(tt.code, rec.Code, rec.Body.String())
		})
	}
}

func (s *RouterTestSuite) TestRequestValidation() {
	tests := []struct {
		name   string
		method string
		target string
		role   auth.Role
		body   string
	}{
		{"order without supplier", http.MethodPost, "/api/v1/orders", auth.RoleInventory,
			`{"item_id":"` + kernel.NewUUID().String() + `","quantity":3}`},
		{"order with negative quantity", http.MethodPost, "/api/v1/orders", auth.RoleInventory,
			`{"supplier_id":"` + kernel.NewUUID().String() + `","item_id":"` + kernel.NewUUID().String() + `","quantity":-1}`},
		{"supply without amount", http.MethodPut, "/api/v1/orders/" + kernel.NewUUID().String() + "/supply", auth.RoleSupplier, `{}`},
		{"supply with text amount", http.MethodPut, "/api/v1/orders/" + kernel.NewUUID().String() + "/supply", auth.RoleSupplier, `{"amount":"lots"}`},
		{"unknown finance decision", http.MethodPut, "/api/v1/orders/" + kernel.NewUUID().String() + "/finance", auth.RoleFinance, `{"decision":"maybe"}`},
		{"malformed order id", http.MethodPut, "/api/v1/orders/42/accept", auth.RoleSupplier, ""},
		{"booking of unknown type", http.MethodPost, "/api/v1/bookings", auth.RolePassenger,
			`{"booking_type":"plane","travel_date":"2026-12-01","travel_time":"08:00","route":"Likoni"}`},
		{"booking with zero passengers", http.MethodPost, "/api/v1/bookings", auth.RolePassenger,
			`{"booking_type":"passenger","travel_date":"2026-12-01","travel_time":"08:00","route":"Likoni","num_passengers":0}`},
		{"page size above limit", http.MethodGet, "/api/v1/bookings/mine?limit=500", auth.RolePassenger, ""},
		{"unknown booking status", http.MethodGet, "/api/v1/finance/bookings?status=lost", auth.RoleFinance, ""},
		{"item without unit", http.MethodPost, "/api/v1/items", auth.RoleInventory, `{"name":"Diesel","category":"fuel"}`},
		{"empty chat message", http.MethodPost, "/api/v1/chat/rooms/r1/messages", auth.RoleSupplier, `{"message":""}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.target, tt.role, tt.body)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func (s *RouterTestSuite) TestUnknownRoute() {
	rec := s.do(http.MethodGet, "/api/v1/couriers", auth.RoleAdmin, "")

	s.Equal(http.StatusNotFound, rec.Code)
}

func TestRouter_ChatSocketRequiresChatRole(t *testing.T) {
	gate := auth.NewGate("router-secret")
	reached := false
	e, err := httpadapter.NewRouter(context.Background(), httpadapter.RouterDeps{
		Server: httpadapter.NewServer(httpadapter.Handlers{}),
		Gate:   gate,
		ChatSocket: func(c echo.Context) error {
			reached = true
			return c.NoContent(http.StatusNoContent)
		},
		Logger: zap.NewNop(),
	})
	require.NoError(t, err)

	token, err := gate.Issue(kernel.NewUUID(), auth.RoleFinance, time.Minute)
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/chat?token="+token, nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}
