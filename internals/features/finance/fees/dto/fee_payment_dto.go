package dto

import (
	"github.com/google/uuid"

	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

/* ================== REQUESTS ================== */

type PaymentHeadInput struct {
	FeeHeadID uuid.UUID    `json:"fee_head_id" validate:"required"`
	Amount    money.Amount `json:"amount" validate:"required"`
}

// Offline collection (cash/cheque/transfer/UPI at the counter). ONLINE goes
// through the two-phase gateway endpoints instead.
type CollectPaymentRequest struct {
	FeeAssignmentID uuid.UUID          `json:"fee_assignment_id" validate:"required"`
	Amount          money.Amount       `json:"amount" validate:"required"`
	PaymentMode     m.FeePaymentMode   `json:"payment_mode" validate:"required,oneof=CASH CHEQUE BANK_TRANSFER UPI"`
	Note            *string            `json:"note" validate:"omitempty"`
	Heads           []PaymentHeadInput `json:"payment_heads" validate:"omitempty,dive"`
}

// Phase 1: create the gateway order; no balance effect.
type CreateGatewayOrderRequest struct {
	FeeAssignmentID uuid.UUID    `json:"fee_assignment_id" validate:"required"`
	Amount          money.Amount `json:"amount" validate:"required"`
	Note            *string      `json:"note" validate:"omitempty"`
}

// Phase 2: inbound confirmation callback. The signature is
// HMAC-SHA256(order_id|payment_id) with the shared callback secret.
type GatewayCallbackRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

/* ================== RESPONSES ================== */

type CollectPaymentResponse struct {
	Payment    m.FeePayment          `json:"payment"`
	Assignment FeeAssignmentResponse `json:"updated_assignment"`
}

type GatewayOrderResponse struct {
	Payment m.FeePayment `json:"payment"`
	OrderID string       `json:"order_id"`

	// CheckoutReady is false when the gateway did not return a checkout
	// token; the order row exists and the callback path still works, but
	// the client must retry checkout rather than redirect.
	CheckoutReady bool   `json:"checkout_ready"`
	SnapToken     string `json:"snap_token,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
}
