package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apihttp "workshop/internal/adapters/in/http"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports/mocks"
	"workshop/internal/generated/servers"
	"workshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const token = "s3cret"

var created = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestEcho(t *testing.T, orders *mocks.OrderRepository) *echo.Echo {
	t.Helper()
	server := apihttp.NewServer(
		queries.NewListOrdersQueryHandler(orders),
		queries.NewSearchOrdersQueryHandler(orders),
		queries.NewGetOrderQueryHandler(orders),
		token,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	e, err := apihttp.NewEcho(server)
	require.NoError(t, err)
	return e
}

func storedOrder(t *testing.T, id int64, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:         id,
		UserID:     100,
		Status:     status,
		Service:    order.ServiceDress,
		ClientName: "Maria",
		CreatedAt:  created.Add(time.Duration(id) * time.Minute),
	})
	require.NoError(t, err)
	return o
}

func get(e *echo.Echo, target string, withToken bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if withToken {
		req.Header.Set(apihttp.AdminTokenHeader, token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestServer(t *testing.T) {
	t.Run("should answer health checks without a token", func(t *testing.T) {
		e := newTestEcho(t, &mocks.OrderRepository{})

		rec := get(e, "/health", false)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Healthy", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("should reject api calls without the admin token", func(t *testing.T) {
		orders := &mocks.OrderRepository{}
		e := newTestEcho(t, orders)

		rec := get(e, "/api/v1/orders", false)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		orders.AssertExpectations(t)
	})

	t.Run("should list a filtered page newest first", func(t *testing.T) {
		orders := &mocks.OrderRepository{}
		orders.On("ListByStatus", mock.Anything, []order.Status{order.Accepted}).
			Return([]*order.Order{storedOrder(t, 1, order.Accepted), storedOrder(t, 2, order.Accepted)}, nil)
		e := newTestEcho(t, orders)

		rec := get(e, "/api/v1/orders?status=accepted&page=3", true)

		require.Equal(t, http.StatusOK, rec.Code)
		var page servers.OrderPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, servers.StatusFilterAccepted, page.Filter)
		assert.Equal(t, 0, page.Page)
		assert.Equal(t, 2, page.Total)
		require.Len(t, page.Orders, 2)
		assert.Equal(t, "#2", page.Orders[0].Number)
	})

	t.Run("should reject an unknown status filter", func(t *testing.T) {
		orders := &mocks.OrderRepository{}
		e := newTestEcho(t, orders)

		rec := get(e, "/api/v1/orders?status=lost", true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body servers.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Message, "status")
		orders.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything)
	})

	t.Run("should reject a wrong admin token", func(t *testing.T) {
		e := newTestEcho(t, &mocks.OrderRepository{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/9", nil)
		req.Header.Set(apihttp.AdminTokenHeader, "guess")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should require a search query", func(t *testing.T) {
		e := newTestEcho(t, &mocks.OrderRepository{})

		rec := get(e, "/api/v1/orders/search?by=name", true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject a non-numeric order id", func(t *testing.T) {
		e := newTestEcho(t, &mocks.OrderRepository{})

		rec := get(e, "/api/v1/orders/abc", true)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should search by order number", func(t *testing.T) {
		orders := &mocks.OrderRepository{}
		orders.On("Get", mock.Anything, int64(5)).Return(storedOrder(t, 5, order.New), nil)
		e := newTestEcho(t, orders)

		rec := get(e, "/api/v1/orders/search?by=id&q=%235", true)

		require.Equal(t, http.StatusOK, rec.Code)
		var found []servers.OrderSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
		require.Len(t, found, 1)
		assert.Equal(t, int64(5), found[0].Id)
		assert.Equal(t, servers.OrderStatusNew, found[0].Status)
		assert.Equal(t, servers.Dress, found[0].Service)
	})

	t.Run("should return the order detail", func(t *testing.T) {
		orders := &mocks.OrderRepository{}
		orders.On("Get", mock.Anything, int64(9)).Return(storedOrder(t, 9, order.New), nil)
		orders.On("CountByUser", mock.Anything, int64(100)).Return(int64(3), nil)
		e := newTestEcho(t, orders)

		rec := get(e, "/api/v1/orders/9", true)

		require.Equal(t, http.StatusOK, rec.Code)
		var detail servers.OrderDetail
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
		assert.True(t, detail.RegularClient)
		assert.Equal(t, []servers.OrderStatus{servers.OrderStatusAccepted, servers.OrderStatusCancelled}, detail.AllowedTargets)
		assert.Nil(t, detail.ReadyDate)
		assert.NotContains(t, rec.Body.String(), "readyDate")
	})

	t.Run("should map a missing order to 404", func(t *testing.T) {
		orders := &mocks.OrderRepository{}
		orders.On("Get", mock.Anything, int64(404)).Return(nil, errs.NewObjectNotFoundError("orderId", int64(404)))
		e := newTestEcho(t, orders)

		rec := get(e, "/api/v1/orders/404", true)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body servers.Error
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusNotFound, body.Code)
	})

	t.Run("should hide persistence failures", func(t *testing.T) {
		orders := &mocks.OrderRepository{}
		orders.On("Get", mock.Anything, int64(3)).Return(nil, errs.NewPersistenceError("get order"))
		e := newTestEcho(t, orders)

		rec := get(e, "/api/v1/orders/3", true)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "get order")
	})
	t.Run("should serve the openapi document", func(t *testing.T) {
		e := newTestEcho(t, &mocks.OrderRepository{})

		rec := get(e, "/swagger/doc.json", false)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "/api/v1/orders/search")
		assert.Contains(t, rec.Body.String(), "X-Admin-Token")
	})
}
