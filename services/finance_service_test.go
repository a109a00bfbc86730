package services

import (
	"testing"
	"time"

	"oficina.app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceTotals(t *testing.T) {
	svc := NewFinanceService(newTestDB(t), newTestBus())
	svc.now = func() time.Time { return testNow }

	entries := []CreateFinanceEntryInput{
		{Kind: models.EntryIncome, Description: "Order payment", Amount: 500, PaymentMethod: models.PayCard},
		{Kind: models.EntryIncome, Description: "Parts sale", Amount: 120, PaymentMethod: models.PayCash},
		{Kind: models.EntryExpense, Description: "Supplier invoice", Amount: 300, PaymentMethod: models.PayBankSlip},
	}
	for _, e := range entries {
		_, err := svc.Create(testCtx(), e)
		require.NoError(t, err)
	}

	totals, err := svc.Totals(testCtx(), nil, nil)
	require.NoError(t, err)
	assert.InDelta(t, 620.0, totals.Income, 0.001)
	assert.InDelta(t, 300.0, totals.Expense, 0.001)
	assert.InDelta(t, 320.0, totals.Balance, 0.001)
}

func TestFinanceValidation(t *testing.T) {
	svc := NewFinanceService(newTestDB(t), newTestBus())

	_, err := svc.Create(testCtx(), CreateFinanceEntryInput{Kind: "transfer", Amount: 10})
	assert.ErrorIs(t, err, ErrFinanceBadKind)

	_, err = svc.Create(testCtx(), CreateFinanceEntryInput{Kind: models.EntryIncome, Amount: 0})
	assert.ErrorIs(t, err, ErrFinanceBadAmount)

	_, err = svc.Create(testCtx(), CreateFinanceEntryInput{
		Kind: models.EntryIncome, Amount: 10, PaymentMethod: "check",
	})
	assert.ErrorIs(t, err, ErrFinanceBadPayment)
}

func TestFinanceDefaultDateAndMethod(t *testing.T) {
	svc := NewFinanceService(newTestDB(t), newTestBus())
	svc.now = func() time.Time { return testNow }

	entry, err := svc.Create(testCtx(), CreateFinanceEntryInput{
		Kind: models.EntryExpense, Description: "Rent", Amount: 900,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PayCash, entry.PaymentMethod)
	assert.Equal(t, testNow.Format("2006-01-02"), entry.EntryDate.Format("2006-01-02"))
}
