package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartStockMovements(t *testing.T) {
	svc := NewPartService(newTestDB(t), newTestBus())

	part, err := svc.Create(testCtx(), CreatePartInput{
		Name: "Oil filter", InternalCode: "FLT-001", Quantity: 5, CostPrice: 10, SalePrice: 25, MinStock: 3,
	})
	require.NoError(t, err)

	part, err = svc.Move(testCtx(), part.ID, StockIn, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, part.Quantity)

	part, err = svc.Move(testCtx(), part.ID, StockOut, 15)
	require.NoError(t, err)
	assert.Equal(t, 0, part.Quantity)

	_, err = svc.Move(testCtx(), part.ID, StockOut, 1)
	assert.ErrorIs(t, err, ErrPartInsufficient)

	_, err = svc.Move(testCtx(), part.ID, StockIn, 0)
	assert.ErrorIs(t, err, ErrPartBadMovement)
}

func TestPartDuplicateInternalCode(t *testing.T) {
	svc := NewPartService(newTestDB(t), newTestBus())

	_, err := svc.Create(testCtx(), CreatePartInput{Name: "Spark plug", InternalCode: "SPK-01"})
	require.NoError(t, err)

	_, err = svc.Create(testCtx(), CreatePartInput{Name: "Another plug", InternalCode: "SPK-01"})
	assert.ErrorIs(t, err, ErrPartCodeTaken)
}

func TestPartStats(t *testing.T) {
	svc := NewPartService(newTestDB(t), newTestBus())

	_, err := svc.Create(testCtx(), CreatePartInput{
		Name: "Air filter", InternalCode: "AF-1", Quantity: 10, CostPrice: 8, MinStock: 2,
	})
	require.NoError(t, err)
	low, err := svc.Create(testCtx(), CreatePartInput{
		Name: "Timing belt", InternalCode: "TB-1", Quantity: 1, CostPrice: 50, MinStock: 2,
	})
	require.NoError(t, err)
	_, err = svc.Create(testCtx(), CreatePartInput{
		Name: "Wiper blade", InternalCode: "WB-1", Quantity: 0, CostPrice: 12, MinStock: 1,
	})
	require.NoError(t, err)

	stats, err := svc.Stats(testCtx())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.LowStock)
	assert.Equal(t, int64(1), stats.ZeroStock)
	assert.InDelta(t, 10*8.0+1*50.0, stats.StockValue, 0.001)

	names := make([]string, 0, len(stats.Alerts))
	for _, a := range stats.Alerts {
		names = append(names, a.Name)
	}
	assert.Contains(t, names, low.Name)

	parts, err := svc.FindLowStock(testCtx())
	require.NoError(t, err)
	for _, p := range parts {
		assert.True(t, p.LowStock())
	}
}
