package service_test

import (
	"context"
	"testing"

	"github.com/gleysonwener/new-lu/internal/domain"
	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/model"
	"github.com/gleysonwener/new-lu/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrderSvc() (service.OrderService, *stubOrderRepo, *stubProductRepo, *stubClientRepo) {
	productRepo := newStubProductRepo()
	clientRepo := newStubClientRepo()
	orderRepo := newStubOrderRepo(productRepo)
	svc := service.NewOrderService(orderRepo, productRepo, clientRepo)
	return svc, orderRepo, productRepo, clientRepo
}

func TestCreateOrder_DecrementsStockAndComputesTotal(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 5)

	resp, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, resp.Status)
	assert.Equal(t, "30", resp.TotalOrderPrice.String())
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "30", resp.Items[0].Subtotal.String())
	assert.Equal(t, 2, productRepo.products[widget.ID].InitialStock)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	svc, orderRepo, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 5)

	_, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 6}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The whole order rolled back: nothing stored, stock untouched.
	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, orderRepo.items)
	assert.Equal(t, 5, productRepo.products[widget.ID].InitialStock)
}

func TestCreateOrder_SameProductTwiceExceedsStock(t *testing.T) {
	// Two lines for the same product must count against a shared pool:
	// 3 + 3 on a stock of 5 fails even though each line alone fits.
	svc, orderRepo, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 5)

	_, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items: []dto.OrderItemRequest{
			{ProductID: widget.ID.String(), Quantity: 3},
			{ProductID: widget.ID.String(), Quantity: 3},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// The first line's decrement must not survive the failed transaction.
	assert.Empty(t, orderRepo.orders)
	assert.Empty(t, orderRepo.items)
	assert.Equal(t, 5, productRepo.products[widget.ID].InitialStock)
}

func TestCreateOrder_SameProductTwiceWithinStock(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 5)

	resp, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items: []dto.OrderItemRequest{
			{ProductID: widget.ID.String(), Quantity: 2},
			{ProductID: widget.ID.String(), Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "40", resp.TotalOrderPrice.String())
	assert.Equal(t, 1, productRepo.products[widget.ID].InitialStock)
}

func TestCreateOrder_CrossOwnerClient(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	otherOwner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", otherOwner)
	widget := seedProduct(productRepo, "Widget", 10, 5)

	_, err := svc.Create(context.Background(), uuid.New(), dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	svc, _, _, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)

	_, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: uuid.New().String(), Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateOrder_ReviseQuantity(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	require.Equal(t, "30", created.TotalOrderPrice.String())

	revised, err := svc.Update(context.Background(), owner, uuid.MustParse(created.ID), dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, "50", revised.TotalOrderPrice.String())
	require.Len(t, revised.Items, 1)
	assert.Equal(t, 5, revised.Items[0].Quantity)

	// Revision does not touch stock: 10 - 3 from the original order.
	assert.Equal(t, 7, productRepo.products[widget.ID].InitialStock)
}

func TestUpdateOrder_RepricesAtCurrentPrice(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)

	// Price changes after the sale; the revision reprices the line.
	productRepo.products[widget.ID].SalePrice = decimal.NewFromInt(12)

	revised, err := svc.Update(context.Background(), owner, uuid.MustParse(created.ID), dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "36", revised.TotalOrderPrice.String())
}

func TestUpdateOrder_AddAndRemoveItems(t *testing.T) {
	svc, orderRepo, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 10)
	gadget := seedProduct(productRepo, "Gadget", 25, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	revised, err := svc.Update(context.Background(), owner, uuid.MustParse(created.ID), dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: gadget.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	require.Len(t, revised.Items, 1)
	assert.Equal(t, gadget.ID.String(), revised.Items[0].ProductID)
	assert.Equal(t, "25", revised.TotalOrderPrice.String())

	// The widget item is gone from storage too.
	stored, err := orderRepo.FindByID(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, gadget.ID, stored.Items[0].ProductID)
	assert.Equal(t, "25", stored.TotalPrice.String())
}

func TestUpdateOrder_MixedAddAndReviseKeepsTotalConsistent(t *testing.T) {
	// A new product line followed by a quantity change for an existing one:
	// the persisted total must equal the sum of the persisted subtotals.
	svc, orderRepo, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 10)
	gadget := seedProduct(productRepo, "Gadget", 25, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 2}},
	})
	require.NoError(t, err)

	revised, err := svc.Update(context.Background(), owner, uuid.MustParse(created.ID), dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: gadget.ID.String(), Quantity: 1},
			{ProductID: widget.ID.String(), Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "75", revised.TotalOrderPrice.String())

	stored, err := orderRepo.FindByID(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	require.Len(t, stored.Items, 2)
	sum := decimal.Zero
	for _, item := range stored.Items {
		sum = sum.Add(item.Subtotal)
	}
	assert.Equal(t, "75", sum.String())
	assert.True(t, stored.TotalPrice.Equal(sum))
}

func TestUpdateOrder_CancelledRejectsItemChanges(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	orderID := uuid.MustParse(created.ID)

	cancelled := model.OrderStatusCancelled
	_, err = svc.Update(context.Background(), owner, orderID, dto.UpdateOrderRequest{Status: &cancelled})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), owner, orderID, dto.UpdateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 2}},
	})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
}

func TestUpdateOrder_CancelledCannotReopen(t *testing.T) {
	svc, orderRepo, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)
	orderID := uuid.MustParse(created.ID)

	cancelled := model.OrderStatusCancelled
	_, err = svc.Update(context.Background(), owner, orderID, dto.UpdateOrderRequest{Status: &cancelled})
	require.NoError(t, err)

	// Cancelled is terminal: no reopening to pending or fulfilled.
	pending := model.OrderStatusPending
	_, err = svc.Update(context.Background(), owner, orderID, dto.UpdateOrderRequest{Status: &pending})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)

	stored, err := orderRepo.FindByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, stored.Status)
}

func TestUpdateOrder_InvalidStatus(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	bogus := "shipped"
	_, err = svc.Update(context.Background(), owner, uuid.MustParse(created.ID), dto.UpdateOrderRequest{Status: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdateOrder_ReassignClientOwnerScoped(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	foreign := seedClient(clientRepo, "Bruno Lima", "bruno@example.com", "98765432109", uuid.New())
	widget := seedProduct(productRepo, "Widget", 10, 10)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	foreignID := foreign.ID.String()
	_, err = svc.Update(context.Background(), owner, uuid.MustParse(created.ID), dto.UpdateOrderRequest{ClientID: &foreignID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteOrder_NoRestock(t *testing.T) {
	svc, orderRepo, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 5)

	created, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
		ClientID: client.ID.String(),
		Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 3}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uuid.MustParse(created.ID)))
	assert.Empty(t, orderRepo.orders)
	// Deleting an order never restores stock.
	assert.Equal(t, 2, productRepo.products[widget.ID].InitialStock)
}

func TestDeleteOrder_NotFound(t *testing.T) {
	svc, _, _, _ := buildOrderSvc()
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders_SortedByNumber(t *testing.T) {
	svc, _, productRepo, clientRepo := buildOrderSvc()
	owner := uuid.New()
	client := seedClient(clientRepo, "Ana Souza", "ana@example.com", "12345678901", owner)
	widget := seedProduct(productRepo, "Widget", 10, 100)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), owner, dto.CreateOrderRequest{
			ClientID: client.ID.String(),
			Items:    []dto.OrderItemRequest{{ProductID: widget.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
	}

	orders, err := svc.List(context.Background(), dto.OrderFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, 1, orders[0].Number)
	assert.Equal(t, 2, orders[1].Number)
	assert.Equal(t, 3, orders[2].Number)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, _, _, _ := buildOrderSvc()
	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
