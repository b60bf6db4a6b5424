package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
)

/* =========================================================
   Gateway client
========================================================= */

var (
	snapClient     snap.Client
	snapReady      bool
	callbackSecret string
)

// InitGateway must be called at bootstrap. useProduction=false targets the
// sandbox. The callback secret is the shared key for confirmation
// signatures; without it every callback is rejected.
func InitGateway(serverKey, secret string, useProduction bool) {
	callbackSecret = strings.TrimSpace(secret)
	if strings.TrimSpace(serverKey) == "" {
		snapReady = false
		return
	}
	if useProduction {
		snapClient.New(serverKey, midtrans.Production)
	} else {
		snapClient.New(serverKey, midtrans.Sandbox)
	}
	snapReady = true
}

// GenOrderID builds an order id with the given prefix, e.g.
// FEE-20250301-154522-9F3A21BC.
func GenOrderID(prefix string) string {
	now := time.Now().In(time.Local).Format("20060102-150405")
	u := uuid.New().String()
	if len(u) > 8 {
		u = u[:8]
	}
	return prefix + "-" + now + "-" + strings.ToUpper(u)
}

/* =========================================================
   Callback signature — HMAC-SHA256 over "orderID|paymentID"
   with the shared secret. A payment must never touch the
   ledger before this check passes; it is the only thing
   standing between a forged callback and a credited balance.
========================================================= */

func SignCallback(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyCallbackSignature(orderID, paymentID, signature, secret string) bool {
	if secret == "" {
		return false
	}
	expected := SignCallback(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

/* =========================================================
   Phase 1 — create the order. A PENDING payment row carries
   the gateway order id; the balance is untouched.
========================================================= */

func CreateGatewayOrder(
	ctx context.Context,
	db *gorm.DB,
	institutionID uuid.UUID,
	req dto.CreateGatewayOrderRequest,
) (*dto.GatewayOrderResponse, error) {
	if !snapReady {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "payment gateway is not configured")
	}

	var (
		payment m.FeePayment
		orderID = GenOrderID("FEE")
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockAssignment(tx, req.FeeAssignmentID, institutionID)
		if err != nil {
			return err
		}
		// Same preconditions as settlement; catching them now avoids
		// creating orders that can never settle.
		if err := validatePayment(a, req.Amount); err != nil {
			return err
		}

		payment = m.FeePayment{
			FeePaymentInstitutionID:  institutionID,
			FeePaymentAssignmentID:   a.FeeAssignmentID,
			FeePaymentStudentID:      a.FeeAssignmentStudentID,
			FeePaymentMode:           m.FeePaymentModeOnline,
			FeePaymentAmount:         req.Amount,
			FeePaymentStatus:         m.FeePaymentPending,
			FeePaymentGatewayOrderID: &orderID,
			FeePaymentNote:           req.Note,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.GatewayOrderResponse{Payment: payment, OrderID: orderID}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: req.Amount.IntPart(),
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       payment.FeePaymentID.String(),
				Price:    req.Amount.IntPart(),
				Qty:      1,
				Name:     "Fee payment",
				Category: "FEES",
			},
		},
	}
	snapResp, snapErr := snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		// Order row stays PENDING; the client may retry checkout with the
		// same order id, and the callback path still works. CheckoutReady
		// stays false so a token-less response is never mistaken for a
		// redirectable checkout.
		log.Printf("[GATEWAY] snap order %s create failed: %v", orderID, snapErr)
		return resp, nil
	}
	resp.CheckoutReady = true
	resp.SnapToken = snapResp.Token
	resp.RedirectURL = snapResp.RedirectURL
	return resp, nil
}

/* =========================================================
   Phase 2 — verify the confirmation callback, then settle
   through the exact same locked path as offline payments.
========================================================= */

func VerifyPayment(
	ctx context.Context,
	db *gorm.DB,
	req dto.GatewayCallbackRequest,
) (*m.FeePayment, *m.FeeAssignment, error) {
	if !VerifyCallbackSignature(req.OrderID, req.PaymentID, req.Signature, callbackSecret) {
		recordGatewayEvent(ctx, db, req, false, "rejected", "invalid signature")
		return nil, nil, fiber.NewError(fiber.StatusUnauthorized, "invalid gateway signature")
	}

	var (
		payment    m.FeePayment
		assignment *m.FeeAssignment
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the payment row first: concurrent callbacks for the same
		// order serialize here, so the replay check below always sees the
		// committed status, never a stale PENDING.
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fee_payment_gateway_order_id = ?", req.OrderID).
			First(&payment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "payment order not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		now := time.Now()

		// Replayed callback for an already settled order: no-op success,
		// nothing is double-applied.
		if !markSettled(&payment, req.PaymentID, now) {
			var a m.FeeAssignment
			if err := tx.Where("fee_assignment_id = ?", payment.FeePaymentAssignmentID).First(&a).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			assignment = &a
			return nil
		}

		a, err := lockAssignment(tx, payment.FeePaymentAssignmentID, payment.FeePaymentInstitutionID)
		if err != nil {
			return err
		}
		if err := validatePayment(a, payment.FeePaymentAmount); err != nil {
			return err
		}

		// Compare-and-swap on the status so the flip can only ever land
		// once even if the row lock were bypassed.
		res := tx.Model(&m.FeePayment{}).
			Where("fee_payment_id = ? AND fee_payment_status = ?", payment.FeePaymentID, m.FeePaymentPending).
			Updates(map[string]interface{}{
				"fee_payment_status":             m.FeePaymentPaid,
				"fee_payment_gateway_payment_id": req.PaymentID,
				"fee_payment_date":               now,
				"fee_payment_updated_at":         now,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "payment order is already settled")
		}

		entry := applyPayment(a, payment.FeePaymentAmount, "Payment received via ONLINE")
		if err := tx.Model(&m.FeeAssignment{}).
			Where("fee_assignment_id = ?", a.FeeAssignmentID).
			Updates(map[string]interface{}{
				"fee_assignment_outstanding": a.FeeAssignmentOutstanding,
				"fee_assignment_status":      a.FeeAssignmentStatus,
				"fee_assignment_updated_at":  now,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		assignment = a
		return nil
	})
	if err != nil {
		recordGatewayEvent(ctx, db, req, true, "failed", err.Error())
		return nil, nil, err
	}

	recordGatewayEvent(ctx, db, req, true, "settled", "")
	return &payment, assignment, nil
}

// markSettled flips a pending payment to PAID in memory and reports whether
// the caller owns the settlement. A payment that is already PAID applies
// nothing, so a replayed callback cannot touch the balance a second time.
// Must be called on a row held FOR UPDATE.
func markSettled(p *m.FeePayment, gatewayPaymentID string, now time.Time) bool {
	if p.FeePaymentStatus == m.FeePaymentPaid {
		return false
	}
	p.FeePaymentStatus = m.FeePaymentPaid
	p.FeePaymentGatewayPaymentID = &gatewayPaymentID
	p.FeePaymentDate = now
	return true
}

// recordGatewayEvent journals every callback, verified or not. Audit only;
// failures here must not break the settlement result.
func recordGatewayEvent(ctx context.Context, db *gorm.DB, req dto.GatewayCallbackRequest, verified bool, outcome, errMsg string) {
	payload, _ := sonic.Marshal(req)
	ev := m.FeeGatewayEvent{
		FeeGatewayEventOrderID:  req.OrderID,
		FeeGatewayEventVerified: verified,
		FeeGatewayEventOutcome:  outcome,
		FeeGatewayEventPayload:  datatypes.JSON(payload),
	}
	if req.PaymentID != "" {
		ev.FeeGatewayEventPaymentID = &req.PaymentID
	}
	if errMsg != "" {
		ev.FeeGatewayEventError = &errMsg
	}
	if err := db.WithContext(ctx).Create(&ev).Error; err != nil {
		log.Printf("[GATEWAY] event journal failed for order %s: %v", req.OrderID, err)
	}
}
