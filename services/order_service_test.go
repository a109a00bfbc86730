package services

import (
	"testing"
	"time"

	"oficina.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderFixture(t *testing.T) (*OrderService, *OrderItemService, *gorm.DB, *models.Client, *models.Vehicle) {
	t.Helper()

	db := newTestDB(t)
	client, vehicle := seedClientAndVehicle(t, db)

	bus := newTestBus()
	orders := NewOrderService(db, bus)
	orders.now = func() time.Time { return testNow }
	items := NewOrderItemService(db, bus)
	items.orders.now = orders.now
	return orders, items, db, client, vehicle
}

func TestOrderTotalFollowsItems(t *testing.T) {
	orders, items, _, client, vehicle := newOrderFixture(t)

	order, err := orders.Create(testCtx(), CreateOrderInput{ClientID: client.ID, VehicleID: vehicle.ID})
	require.NoError(t, err)
	assert.Equal(t, models.OrderOpen, order.Status)
	assert.Zero(t, order.TotalAmount)

	labor, err := items.Create(testCtx(), CreateOrderItemInput{
		OrderID: order.ID, Description: "Brake pad replacement", Quantity: 2, UnitPrice: 80, Kind: models.ItemService,
	})
	require.NoError(t, err)
	_, err = items.Create(testCtx(), CreateOrderItemInput{
		OrderID: order.ID, Description: "Brake pads", Quantity: 2, UnitPrice: 120, Kind: models.ItemPart,
	})
	require.NoError(t, err)

	order, err = orders.FindByID(testCtx(), order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 400.0, order.TotalAmount, 0.001)

	newPrice := 100.0
	_, err = items.Update(testCtx(), labor.ID, UpdateOrderItemInput{UnitPrice: &newPrice})
	require.NoError(t, err)
	order, err = orders.FindByID(testCtx(), order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 440.0, order.TotalAmount, 0.001)

	require.NoError(t, items.Delete(testCtx(), labor.ID))
	order, err = orders.FindByID(testCtx(), order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 240.0, order.TotalAmount, 0.001)
}

func TestOrderClosingStatusStampsClosedAt(t *testing.T) {
	orders, _, _, client, vehicle := newOrderFixture(t)

	order, err := orders.Create(testCtx(), CreateOrderInput{ClientID: client.ID, VehicleID: vehicle.ID})
	require.NoError(t, err)
	assert.Nil(t, order.ClosedAt)

	order, err = orders.SetStatus(testCtx(), order.ID, models.OrderCompleted)
	require.NoError(t, err)
	require.NotNil(t, order.ClosedAt)

	// reopening clears the stamp
	order, err = orders.SetStatus(testCtx(), order.ID, models.OrderInProgress)
	require.NoError(t, err)
	assert.Nil(t, order.ClosedAt)

	_, err = orders.SetStatus(testCtx(), order.ID, models.OrderStatus("arquivada"))
	assert.ErrorIs(t, err, ErrOrderBadStatus)
}

func TestOrderInvoiceCreatesIncomeEntry(t *testing.T) {
	orders, items, db, client, vehicle := newOrderFixture(t)

	order, err := orders.Create(testCtx(), CreateOrderInput{ClientID: client.ID, VehicleID: vehicle.ID})
	require.NoError(t, err)
	_, err = items.Create(testCtx(), CreateOrderItemInput{
		OrderID: order.ID, Description: "Oil change", Quantity: 1, UnitPrice: 150,
	})
	require.NoError(t, err)

	invoiced, err := orders.Invoice(testCtx(), order.ID, models.PayPix)
	require.NoError(t, err)
	assert.Equal(t, models.OrderInvoiced, invoiced.Status)
	require.NotNil(t, invoiced.ClosedAt)

	var entries []models.FinanceEntry
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, models.EntryIncome, entries[0].Kind)
	assert.InDelta(t, 150.0, entries[0].Amount, 0.001)
	assert.Equal(t, models.PayPix, entries[0].PaymentMethod)

	_, err = orders.Invoice(testCtx(), order.ID, models.PayPix)
	assert.ErrorIs(t, err, ErrOrderAlreadyInvoiced)
}
