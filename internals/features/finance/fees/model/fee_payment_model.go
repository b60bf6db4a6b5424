package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/money"
)

/* ===================== Enums (string) ===================== */

type FeePaymentMode string

const (
	FeePaymentModeCash         FeePaymentMode = "CASH"
	FeePaymentModeCheque       FeePaymentMode = "CHEQUE"
	FeePaymentModeBankTransfer FeePaymentMode = "BANK_TRANSFER"
	FeePaymentModeUPI          FeePaymentMode = "UPI"
	FeePaymentModeOnline       FeePaymentMode = "ONLINE"
)

type FeePaymentStatus string

const (
	FeePaymentPending FeePaymentStatus = "PENDING"
	FeePaymentPaid    FeePaymentStatus = "PAID"
	FeePaymentFailed  FeePaymentStatus = "FAILED"
)

/* ===================== Model ===================== */

// FeePayment records one collection attempt against an assignment. Offline
// modes are created directly PAID inside the settlement transaction; the
// ONLINE mode is created PENDING with the gateway order id and only settles
// after its callback signature verifies.
type FeePayment struct {
	FeePaymentID            uuid.UUID `gorm:"column:fee_payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_payment_id"`
	FeePaymentInstitutionID uuid.UUID `gorm:"column:fee_payment_institution_id;type:uuid;not null;index" json:"fee_payment_institution_id"`

	FeePaymentAssignmentID uuid.UUID `gorm:"column:fee_payment_assignment_id;type:uuid;not null;index:ix_fee_payment_assignment" json:"fee_payment_assignment_id"`
	FeePaymentStudentID    uuid.UUID `gorm:"column:fee_payment_student_id;type:uuid;not null;index" json:"fee_payment_student_id"`

	FeePaymentMode   FeePaymentMode   `gorm:"column:fee_payment_mode;type:varchar(20);not null" json:"fee_payment_mode"`
	FeePaymentAmount money.Amount     `gorm:"column:fee_payment_amount;type:numeric(14,2);not null" json:"fee_payment_amount"`
	FeePaymentStatus FeePaymentStatus `gorm:"column:fee_payment_status;type:varchar(20);not null;default:'PENDING';index" json:"fee_payment_status"`

	// FK → users(id), cashier/collector for offline modes
	FeePaymentReceivedByID *uuid.UUID `gorm:"column:fee_payment_received_by_id;type:uuid" json:"fee_payment_received_by_id,omitempty"`

	// Gateway correlation (ONLINE mode only)
	FeePaymentGatewayOrderID   *string `gorm:"column:fee_payment_gateway_order_id;type:varchar(100);uniqueIndex" json:"fee_payment_gateway_order_id,omitempty"`
	FeePaymentGatewayPaymentID *string `gorm:"column:fee_payment_gateway_payment_id;type:varchar(100)" json:"fee_payment_gateway_payment_id,omitempty"`

	FeePaymentDate time.Time `gorm:"column:fee_payment_date;not null;default:now()" json:"fee_payment_date"`
	FeePaymentNote *string   `gorm:"column:fee_payment_note" json:"fee_payment_note,omitempty"`

	FeePaymentCreatedAt time.Time      `gorm:"column:fee_payment_created_at;not null;default:now()" json:"fee_payment_created_at"`
	FeePaymentUpdatedAt time.Time      `gorm:"column:fee_payment_updated_at;not null;default:now()" json:"fee_payment_updated_at"`
	FeePaymentDeletedAt gorm.DeletedAt `gorm:"column:fee_payment_deleted_at;index" json:"-"`

	Heads []FeePaymentHead `gorm:"foreignKey:FeePaymentHeadPaymentID;references:FeePaymentID" json:"heads,omitempty"`
}

func (FeePayment) TableName() string { return "fee_payments" }

func (m *FeePayment) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.FeePaymentCreatedAt.IsZero() {
		m.FeePaymentCreatedAt = now
	}
	if m.FeePaymentDate.IsZero() {
		m.FeePaymentDate = now
	}
	m.FeePaymentUpdatedAt = now
	return nil
}

func (m *FeePayment) BeforeUpdate(tx *gorm.DB) (err error) {
	m.FeePaymentUpdatedAt = time.Now()
	return nil
}

func (m *FeePayment) IsGateway() bool {
	return m.FeePaymentMode == FeePaymentModeOnline
}

/* ===================== Payment head split ===================== */

// FeePaymentHead optionally itemizes a payment amount per catalog head.
type FeePaymentHead struct {
	FeePaymentHeadID        uuid.UUID `gorm:"column:fee_payment_head_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_payment_head_id"`
	FeePaymentHeadPaymentID uuid.UUID `gorm:"column:fee_payment_head_payment_id;type:uuid;not null;index" json:"fee_payment_head_payment_id"`
	FeePaymentHeadHeadID    uuid.UUID `gorm:"column:fee_payment_head_head_id;type:uuid;not null" json:"fee_payment_head_head_id"`

	FeePaymentHeadAmount money.Amount `gorm:"column:fee_payment_head_amount;type:numeric(14,2);not null" json:"fee_payment_head_amount"`

	FeePaymentHeadCreatedAt time.Time `gorm:"column:fee_payment_head_created_at;not null;default:now()" json:"fee_payment_head_created_at"`
}

func (FeePaymentHead) TableName() string { return "fee_payment_heads" }
