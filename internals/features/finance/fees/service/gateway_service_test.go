package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

func TestSignCallbackIsDeterministic(t *testing.T) {
	s1 := SignCallback("FEE-20250301-120000-ABCD1234", "pay_123", "secret")
	s2 := SignCallback("FEE-20250301-120000-ABCD1234", "pay_123", "secret")
	assert.Equal(t, s1, s2)
	assert.Len(t, s1, 64, "hex-encoded SHA-256")
}

func TestVerifyCallbackSignature(t *testing.T) {
	orderID := "FEE-20250301-120000-ABCD1234"
	paymentID := "pay_123"
	secret := "callback-secret"

	sig := SignCallback(orderID, paymentID, secret)
	assert.True(t, VerifyCallbackSignature(orderID, paymentID, sig, secret))

	// any tampered component fails
	assert.False(t, VerifyCallbackSignature("FEE-other", paymentID, sig, secret))
	assert.False(t, VerifyCallbackSignature(orderID, "pay_999", sig, secret))
	assert.False(t, VerifyCallbackSignature(orderID, paymentID, sig, "wrong-secret"))
	assert.False(t, VerifyCallbackSignature(orderID, paymentID, sig+"00", secret))

	// unset secret rejects everything, including an "empty-secret" signature
	emptySig := SignCallback(orderID, paymentID, "")
	assert.False(t, VerifyCallbackSignature(orderID, paymentID, emptySig, ""))
}

func TestVerifyCallbackSignatureSeparatorMatters(t *testing.T) {
	// "a|bc" and "ab|c" must not collide
	sig := SignCallback("a", "bc", "s")
	assert.False(t, VerifyCallbackSignature("ab", "c", sig, "s"))
}

// A replayed callback for an order that already settled must own nothing:
// markSettled grants the settlement exactly once, so the second delivery
// cannot re-apply the amount or overwrite the gateway payment id.
func TestMarkSettledAppliesOnce(t *testing.T) {
	now := time.Now()
	p := &m.FeePayment{
		FeePaymentStatus: m.FeePaymentPending,
		FeePaymentAmount: money.FromInt(60),
	}

	require.True(t, markSettled(p, "pay_1", now))
	assert.Equal(t, m.FeePaymentPaid, p.FeePaymentStatus)
	require.NotNil(t, p.FeePaymentGatewayPaymentID)
	assert.Equal(t, "pay_1", *p.FeePaymentGatewayPaymentID)
	assert.Equal(t, now, p.FeePaymentDate)

	// second delivery of the same confirmation
	assert.False(t, markSettled(p, "pay_2", now.Add(time.Minute)))
	assert.Equal(t, "pay_1", *p.FeePaymentGatewayPaymentID)
	assert.Equal(t, now, p.FeePaymentDate)
}

func TestGenOrderID(t *testing.T) {
	id := GenOrderID("FEE")
	assert.True(t, strings.HasPrefix(id, "FEE-"))

	parts := strings.Split(id, "-")
	assert.Len(t, parts, 4)
	assert.Len(t, parts[1], 8, "date segment")
	assert.Len(t, parts[2], 6, "time segment")
	assert.Len(t, parts[3], 8, "uuid segment")
	assert.Equal(t, strings.ToUpper(parts[3]), parts[3])

	assert.NotEqual(t, GenOrderID("FEE"), GenOrderID("FEE"))
}
