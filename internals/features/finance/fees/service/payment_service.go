package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

/* =========================================================
   Fee Payment Processor — the only component allowed to
   lower an assignment's outstanding balance. Every balance
   write runs under a FOR UPDATE lock on the assignment row
   inside one transaction: payment row + assignment update +
   ledger append land together or not at all.
========================================================= */

// validatePayment checks the preconditions against a freshly locked
// assignment. Each violation names itself so callers can tell
// "already paid" from "amount too large" from "not found".
func validatePayment(a *m.FeeAssignment, amount money.Amount) error {
	if !amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "payment amount must be greater than zero")
	}
	if a.IsSettled() {
		return fiber.NewError(fiber.StatusConflict, "fee assignment is already fully paid")
	}
	if amount.Cmp(a.FeeAssignmentOutstanding) > 0 {
		return fiber.NewError(fiber.StatusBadRequest, "payment amount exceeds outstanding balance")
	}
	return nil
}

// applyPayment mutates the assignment for a validated amount and returns
// the paired PAYMENT ledger row. Status flips to PAID exactly when the
// balance reaches zero, PARTIAL otherwise.
func applyPayment(a *m.FeeAssignment, amount money.Amount, note string) m.FeeLedger {
	newOutstanding := a.FeeAssignmentOutstanding.Sub(amount)
	a.FeeAssignmentOutstanding = newOutstanding
	if newOutstanding.IsZero() {
		a.FeeAssignmentStatus = m.FeeAssignmentPaid
	} else {
		a.FeeAssignmentStatus = m.FeeAssignmentPartial
	}
	return newLedgerEntry(a.FeeAssignmentID, m.FeeLedgerPayment, amount, newOutstanding, note)
}

// validateHeadSplit ensures an itemized split adds up to the payment amount.
func validateHeadSplit(amount money.Amount, heads []dto.PaymentHeadInput) error {
	if len(heads) == 0 {
		return nil
	}
	sum := money.Zero
	for _, h := range heads {
		if !h.Amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "payment head amounts must be greater than zero")
		}
		sum = sum.Add(h.Amount)
	}
	if !sum.Equal(amount) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("payment heads sum to %s but payment amount is %s", sum, amount))
	}
	return nil
}

// lockAssignment loads the assignment row FOR UPDATE inside tx, scoped to
// the institution. Concurrent payments against the same assignment
// serialize here.
func lockAssignment(tx *gorm.DB, assignmentID, institutionID uuid.UUID) (*m.FeeAssignment, error) {
	var a m.FeeAssignment
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("fee_assignment_id = ? AND fee_assignment_institution_id = ?", assignmentID, institutionID).
		First(&a).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "fee assignment not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &a, nil
}

// CollectPayment records an offline payment (cash/cheque/transfer/UPI) and
// settles it immediately.
func CollectPayment(
	ctx context.Context,
	db *gorm.DB,
	institutionID, receivedBy uuid.UUID,
	req dto.CollectPaymentRequest,
) (*m.FeePayment, *m.FeeAssignment, error) {
	if err := validateHeadSplit(req.Amount, req.Heads); err != nil {
		return nil, nil, err
	}

	var (
		payment    m.FeePayment
		assignment *m.FeeAssignment
	)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := lockAssignment(tx, req.FeeAssignmentID, institutionID)
		if err != nil {
			return err
		}
		if err := validatePayment(a, req.Amount); err != nil {
			return err
		}

		payment = m.FeePayment{
			FeePaymentInstitutionID: institutionID,
			FeePaymentAssignmentID:  a.FeeAssignmentID,
			FeePaymentStudentID:     a.FeeAssignmentStudentID,
			FeePaymentMode:          req.PaymentMode,
			FeePaymentAmount:        req.Amount,
			FeePaymentStatus:        m.FeePaymentPaid,
			FeePaymentReceivedByID:  &receivedBy,
			FeePaymentDate:          time.Now(),
			FeePaymentNote:          req.Note,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		for _, h := range req.Heads {
			ph := m.FeePaymentHead{
				FeePaymentHeadPaymentID: payment.FeePaymentID,
				FeePaymentHeadHeadID:    h.FeeHeadID,
				FeePaymentHeadAmount:    h.Amount,
			}
			if err := tx.Create(&ph).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}

		note := fmt.Sprintf("Payment received via %s", req.PaymentMode)
		entry := applyPayment(a, req.Amount, note)

		if err := tx.Model(&m.FeeAssignment{}).
			Where("fee_assignment_id = ?", a.FeeAssignmentID).
			Updates(map[string]interface{}{
				"fee_assignment_outstanding": a.FeeAssignmentOutstanding,
				"fee_assignment_status":      a.FeeAssignmentStatus,
				"fee_assignment_updated_at":  time.Now(),
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
		return nil, nil, err
	}
	return &payment, assignment, nil
}
