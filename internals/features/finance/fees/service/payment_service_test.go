package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

func testAssignment(total, outstanding int64, status m.FeeAssignmentStatus) *m.FeeAssignment {
	return &m.FeeAssignment{
		FeeAssignmentID:          uuid.New(),
		FeeAssignmentTotal:       money.FromInt(total),
		FeeAssignmentOutstanding: money.FromInt(outstanding),
		FeeAssignmentStatus:      status,
	}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	fe, ok := err.(*fiber.Error)
	require.True(t, ok, "expected *fiber.Error, got %T", err)
	return fe.Code
}

func TestValidatePayment(t *testing.T) {
	a := testAssignment(5000, 3000, m.FeeAssignmentPartial)

	assert.NoError(t, validatePayment(a, money.FromInt(3000)))
	assert.NoError(t, validatePayment(a, money.FromInt(1)))

	err := validatePayment(a, money.Zero)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	err = validatePayment(a, money.FromInt(-100))
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	err = validatePayment(a, money.FromInt(3001))
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Contains(t, err.Error(), "exceeds outstanding")

	settled := testAssignment(5000, 0, m.FeeAssignmentPaid)
	err = validatePayment(settled, money.FromInt(100))
	assert.Equal(t, fiber.StatusConflict, fiberCode(t, err))
}

func TestApplyPaymentPartial(t *testing.T) {
	a := testAssignment(5000, 5000, m.FeeAssignmentPending)

	e := applyPayment(a, money.FromInt(2000), "Payment received via CASH")

	assert.True(t, a.FeeAssignmentOutstanding.Equal(money.FromInt(3000)))
	assert.Equal(t, m.FeeAssignmentPartial, a.FeeAssignmentStatus)

	assert.Equal(t, a.FeeAssignmentID, e.FeeLedgerAssignmentID)
	assert.Equal(t, m.FeeLedgerPayment, e.FeeLedgerEntryType)
	assert.True(t, e.FeeLedgerAmount.Equal(money.FromInt(2000)))
	assert.True(t, e.FeeLedgerBalanceAfter.Equal(a.FeeAssignmentOutstanding),
		"ledger balance_after must equal the new outstanding")
}

func TestApplyPaymentSettles(t *testing.T) {
	a := testAssignment(5000, 2000, m.FeeAssignmentPartial)

	e := applyPayment(a, money.FromInt(2000), "Payment received via UPI")

	assert.True(t, a.FeeAssignmentOutstanding.IsZero())
	assert.Equal(t, m.FeeAssignmentPaid, a.FeeAssignmentStatus)
	assert.True(t, e.FeeLedgerBalanceAfter.IsZero())
	assert.True(t, a.IsSettled())
}

func TestApplyPaymentLedgerReplays(t *testing.T) {
	a := testAssignment(5000, 5000, m.FeeAssignmentPending)
	charge := newLedgerEntry(a.FeeAssignmentID, m.FeeLedgerCharge, money.FromInt(5000), money.FromInt(5000), "Initial fee assigned")

	e1 := applyPayment(a, money.FromInt(1500), "")
	e2 := applyPayment(a, money.FromInt(3500), "")

	final, err := ReplayLedger([]m.FeeLedger{charge, e1, e2})
	require.NoError(t, err)
	assert.True(t, final.IsZero())
	assert.True(t, final.Equal(a.FeeAssignmentOutstanding))
}

func TestValidateHeadSplit(t *testing.T) {
	headID := uuid.New()

	// empty split is fine
	assert.NoError(t, validateHeadSplit(money.FromInt(100), nil))

	ok := []dto.PaymentHeadInput{
		{FeeHeadID: headID, Amount: money.FromInt(60)},
		{FeeHeadID: uuid.New(), Amount: money.FromInt(40)},
	}
	assert.NoError(t, validateHeadSplit(money.FromInt(100), ok))

	short := []dto.PaymentHeadInput{
		{FeeHeadID: headID, Amount: money.FromInt(60)},
	}
	err := validateHeadSplit(money.FromInt(100), short)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	negative := []dto.PaymentHeadInput{
		{FeeHeadID: headID, Amount: money.FromInt(-10)},
		{FeeHeadID: uuid.New(), Amount: money.FromInt(110)},
	}
	err = validateHeadSplit(money.FromInt(100), negative)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}
