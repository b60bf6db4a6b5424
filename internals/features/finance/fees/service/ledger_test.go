package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

func entry(t m.FeeLedgerEntryType, amount, after int64) m.FeeLedger {
	return m.FeeLedger{
		FeeLedgerAssignmentID: uuid.New(),
		FeeLedgerEntryType:    t,
		FeeLedgerAmount:       money.FromInt(amount),
		FeeLedgerBalanceAfter: money.FromInt(after),
	}
}

func TestNextBalance(t *testing.T) {
	b, err := NextBalance(money.FromInt(1000), m.FeeLedgerCharge, money.FromInt(500))
	require.NoError(t, err)
	assert.True(t, b.Equal(money.FromInt(1500)))

	b, err = NextBalance(money.FromInt(1500), m.FeeLedgerPayment, money.FromInt(400))
	require.NoError(t, err)
	assert.True(t, b.Equal(money.FromInt(1100)))

	// ADJUSTMENT carries its own sign
	b, err = NextBalance(money.FromInt(1100), m.FeeLedgerAdjustment, money.FromInt(-100))
	require.NoError(t, err)
	assert.True(t, b.Equal(money.FromInt(1000)))

	_, err = NextBalance(money.Zero, m.FeeLedgerEntryType("REFUND"), money.FromInt(10))
	assert.Error(t, err)
}

func TestReplayLedger(t *testing.T) {
	entries := []m.FeeLedger{
		entry(m.FeeLedgerCharge, 5000, 5000),
		entry(m.FeeLedgerPayment, 2000, 3000),
		entry(m.FeeLedgerPayment, 3000, 0),
	}
	final, err := ReplayLedger(entries)
	require.NoError(t, err)
	assert.True(t, final.IsZero())
}

func TestReplayLedgerDetectsDrift(t *testing.T) {
	entries := []m.FeeLedger{
		entry(m.FeeLedgerCharge, 5000, 5000),
		entry(m.FeeLedgerPayment, 2000, 2500), // stored balance wrong
	}
	_, err := ReplayLedger(entries)
	assert.Error(t, err)
}

func TestReplayLedgerRejectsNegativeBalance(t *testing.T) {
	entries := []m.FeeLedger{
		entry(m.FeeLedgerCharge, 1000, 1000),
		entry(m.FeeLedgerPayment, 1500, -500),
	}
	_, err := ReplayLedger(entries)
	assert.Error(t, err)
}

func TestReplayLedgerEmpty(t *testing.T) {
	final, err := ReplayLedger(nil)
	require.NoError(t, err)
	assert.True(t, final.IsZero())
}
