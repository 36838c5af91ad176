package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	testIssuer = "marketplace-auth"
)

// memoryOrders is an order store that ignores locking and versions.
type memoryOrders struct {
	mu     sync.Mutex
	orders map[kernel.UUID]*order.Order
}

func (m *memoryOrders) Add(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID()] = o
	return nil
}

func (m *memoryOrders) Update(ctx context.Context, o *order.Order) error {
	return m.Add(ctx, o)
}

func (m *memoryOrders) GetForUpdate(_ context.Context, id kernel.UUID) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

type memoryUoW struct {
	orders *memoryOrders
}

func (memoryUoW) Begin(context.Context) error    { return nil }
func (memoryUoW) Commit(context.Context) error   { return nil }
func (memoryUoW) Rollback(context.Context) error { return nil }

func (u memoryUoW) OrderRepository() ports.OrderRepository { return u.orders }

type memoryUoWFactory struct {
	orders *memoryOrders
}

func (f memoryUoWFactory) Create() commands.OrderUoW {
	return memoryUoW(f)
}

type silentNotifier struct{}

func (silentNotifier) OrderPlaced(context.Context, *order.Order)                      {}
func (silentNotifier) OrderStatusChanged(context.Context, *order.Order, order.Status) {}
func (silentNotifier) AgentAssigned(context.Context, *order.Order, *agent.Agent)      {}

type fixture struct {
	echo     *echo.Echo
	orders   *memoryOrders
	auth     httpadapter.Authenticator
	customer customer.Principal
	admin    customer.Principal
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	orders := &memoryOrders{orders: make(map[kernel.UUID]*order.Order)}
	factory := memoryUoWFactory{orders: orders}
	auth := httpadapter.NewAuthenticator(testSecret, testIssuer)

	server := httpadapter.NewServer(httpadapter.Handlers{
		ConfirmOrder: commands.NewConfirmOrderCommandHandler(factory, silentNotifier{}),
		CancelOrder:  commands.NewCancelOrderCommandHandler(factory, silentNotifier{}),
	}, auth, nil)

	e := echo.New()
	server.Register(e)

	c, err := customer.NewPrincipal(42, "9123456789", customer.RoleCustomer)
	require.NoError(t, err)
	a, err := customer.NewPrincipal(1, "9000000001", customer.RoleAdmin)
	require.NoError(t, err)

	return fixture{echo: e, orders: orders, auth: auth, customer: c, admin: a}
}

func (f fixture) do(t *testing.T, method, path, body string, principal *customer.Principal) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if principal != nil {
		token, err := f.auth.Issue(*principal, time.Hour)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f fixture) seedOrder(t *testing.T, customerID int64) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), 1, "Paneer Tikka", kernel.MustMoney("100.00"), 3, "")
	require.NoError(t, err)
	pricing, err := order.NewPricing(kernel.MustMoney("300.00"), kernel.MustMoney("15.00"), kernel.MustMoney("50.00"))
	require.NoError(t, err)
	now := time.Now()
	o, err := order.NewOrder(kernel.NewUUID(), customerID, 7, []order.Item{item}, pricing, "", now.Add(45*time.Minute), now)
	require.NoError(t, err)
	require.NoError(t, f.orders.Add(t.Context(), o))
	return o
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpadapter.Error {
	t.Helper()
	var body httpadapter.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, rec.Code, body.Code)
	return body
}

func TestHealth(t *testing.T) {
	rec := newFixture(t).do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestRoutes_Authorization(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name      string
		method    string
		path      string
		principal *customer.Principal
		want      int
	}{
		{name: "orders without token", method: http.MethodGet, path: "/api/orders", want: http.StatusUnauthorized},
		{name: "delivery desk without token", method: http.MethodGet, path: "/api/delivery/agents", want: http.StatusUnauthorized},
		{name: "delivery desk as customer", method: http.MethodGet, path: "/api/delivery/agents", principal: &f.customer, want: http.StatusForbidden},
		{name: "assign as customer", method: http.MethodPost, path: "/api/delivery/assign", principal: &f.customer, want: http.StatusForbidden},
		{name: "confirm as customer", method: http.MethodPost, path: "/api/orders/" + kernel.NewUUID().String() + "/confirm", principal: &f.customer, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, "{}", tt.principal)

			assert.Equal(t, tt.want, rec.Code)
			decodeError(t, rec)
		})
	}
}

func TestRoutes_RejectInvalidInput(t *testing.T) {
	f := newFixture(t)
	missing := kernel.NewUUID().String()

	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		principal *customer.Principal
	}{
		{name: "malformed order id", method: http.MethodGet, path: "/api/orders/not-a-uuid", principal: &f.customer},
		{name: "page zero", method: http.MethodGet, path: "/api/orders?page=0", principal: &f.customer},
		{name: "page not a number", method: http.MethodGet, path: "/api/orders?page=abc", principal: &f.customer},
		{name: "unknown order status filter", method: http.MethodGet, path: "/api/orders?status=lost", principal: &f.customer},
		{name: "unknown order status_filter", method: http.MethodGet, path: "/api/orders?status_filter=lost", principal: &f.customer},
		{name: "status_filter wins over status", method: http.MethodGet, path: "/api/orders?status=pending&status_filter=lost", principal: &f.customer},
		{name: "order without items", method: http.MethodPost, path: "/api/orders", body: `{"delivery_address_id":7,"items":[]}`, principal: &f.customer},
		{name: "order with zero quantity", method: http.MethodPost, path: "/api/orders", body: `{"delivery_address_id":7,"items":[{"menu_item_id":1,"quantity":0}]}`, principal: &f.customer},
		{name: "malformed body", method: http.MethodPost, path: "/api/orders", body: `{"items":`, principal: &f.customer},
		{name: "update with unknown status", method: http.MethodPatch, path: "/api/orders/" + missing, body: `{"status":"lost"}`, principal: &f.customer},
		{name: "assign with malformed agent id", method: http.MethodPost, path: "/api/delivery/assign", body: fmt.Sprintf(`{"order_id":%q,"agent_id":"x"}`, missing), principal: &f.admin},
		{name: "agent with short phone", method: http.MethodPost, path: "/api/delivery/agents", body: `{"name":"Ravi","phone":"12345"}`, principal: &f.admin},
		{name: "location without longitude", method: http.MethodPost, path: "/api/delivery/agents/" + missing + "/location", body: `{"latitude":12.9}`, principal: &f.admin},
		{name: "agent status assigned", method: http.MethodPost, path: "/api/delivery/agents/" + missing + "/status", body: `{"status":"assigned"}`, principal: &f.admin},
		{name: "unknown agent status filter", method: http.MethodGet, path: "/api/delivery/agents?status=busy", principal: &f.admin},
		{name: "unknown agent status_filter", method: http.MethodGet, path: "/api/delivery/agents?status_filter=busy", principal: &f.admin},
		{name: "page size above max", method: http.MethodGet, path: "/api/delivery/agents?size=1000", principal: &f.admin},
		{name: "delivery status unknown", method: http.MethodPost, path: "/api/delivery/orders/" + missing + "/status", body: `{"status":"lost"}`, principal: &f.admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, tt.method, tt.path, tt.body, tt.principal)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			decodeError(t, rec)
		})
	}
}

func TestConfirmOrder(t *testing.T) {
	f := newFixture(t)
	o := f.seedOrder(t, 42)
	path := "/api/orders/" + o.ID().String() + "/confirm"

	rec := f.do(t, http.MethodPost, path, "", &f.admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body httpadapter.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, o.ID().String(), body.ID)
	assert.Equal(t, "confirmed", body.Status)
	assert.Equal(t, "365.00", body.TotalAmount)
	assert.Nil(t, body.DeliveryAgentID)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "100.00", body.Items[0].ItemPrice)

	rec = f.do(t, http.MethodPost, path, "", &f.admin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	decodeError(t, rec)

	rec = f.do(t, http.MethodPost, "/api/orders/"+kernel.NewUUID().String()+"/confirm", "", &f.admin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	decodeError(t, rec)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	own := f.seedOrder(t, 42)
	foreign := f.seedOrder(t, 77)

	rec := f.do(t, http.MethodPost, "/api/orders/"+foreign.ID().String()+"/cancel", "", &f.customer)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/orders/"+own.ID().String()+"/cancel", "", &f.customer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body httpadapter.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "cancelled", body.Status)

	rec = f.do(t, http.MethodPost, "/api/orders/"+foreign.ID().String()+"/cancel", "", &f.admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatusOf(t *testing.T) {
	id := kernel.NewUUID().String()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "required", err: errs.NewValueIsRequiredError("name"), want: http.StatusBadRequest},
		{name: "invalid", err: errs.NewValueIsInvalidError("phone"), want: http.StatusBadRequest},
		{name: "out of range", err: errs.NewValueIsOutOfRangeError("size", 500, 1, 100), want: http.StatusBadRequest},
		{name: "joined validation", err: errors.Join(errs.NewValueIsInvalidError("a"), errs.NewValueIsRequiredError("b")), want: http.StatusBadRequest},
		{name: "not found", err: errs.NewObjectNotFoundError("order", id), want: http.StatusNotFound},
		{name: "invalid transition", err: errs.NewInvalidTransitionError("order", id, order.Delivered, order.Cancelled), want: http.StatusConflict},
		{name: "conflict", err: errs.NewConflictError("order", id, 3), want: http.StatusConflict},
		{
			name: "missing order during assignment",
			err:  fmt.Errorf("%w: %w", services.ErrOrderNotAssignable, errs.NewObjectNotFoundError("order", id)),
			want: http.StatusConflict,
		},
		{
			name: "missing agent during assignment",
			err:  fmt.Errorf("%w: %w", services.ErrAgentUnavailable, errs.NewObjectNotFoundError("delivery agent", id)),
			want: http.StatusConflict,
		},
		{name: "catalog down", err: fmt.Errorf("%w: timeout", ports.ErrCatalogUnavailable), want: http.StatusServiceUnavailable},
		{name: "unexpected", err: errors.New("disk full"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpadapter.StatusOf(tt.err))
		})
	}
}

func TestAuthenticator_Parse(t *testing.T) {
	auth := httpadapter.NewAuthenticator(testSecret, testIssuer)
	admin, err := customer.NewPrincipal(1, "9000000001", customer.RoleAdmin)
	require.NoError(t, err)

	token, err := auth.Issue(admin, time.Hour)
	require.NoError(t, err)

	parsed, err := auth.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), parsed.CustomerID())
	assert.Equal(t, "9000000001", parsed.Phone())
	assert.True(t, parsed.IsAdmin())

	sign := func(claims httpadapter.Claims, secret string) string {
		signed, signErr := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, signErr)
		return signed
	}
	valid := jwt.RegisteredClaims{
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong secret", token: sign(httpadapter.Claims{UserID: 42, RegisteredClaims: valid}, "other")},
		{
			name: "expired",
			token: sign(httpadapter.Claims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    testIssuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}}, testSecret),
		},
		{name: "without expiry", token: sign(httpadapter.Claims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{Issuer: testIssuer}}, testSecret)},
		{
			name: "foreign issuer",
			token: sign(httpadapter.Claims{UserID: 42, RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "someone-else",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}, testSecret),
		},
		{name: "unknown role", token: sign(httpadapter.Claims{UserID: 42, Role: "root", RegisteredClaims: valid}, testSecret)},
		{name: "missing user id", token: sign(httpadapter.Claims{RegisteredClaims: valid}, testSecret)},
		{name: "garbage", token: "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Parse(tt.token)
			require.Error(t, err)
		})
	}
}
