package model

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/money"
)

/* =========================================================
   ENUM — ledger entry type (sign is implied by the type)
========================================================= */

type FeeLedgerEntryType string

const (
	FeeLedgerCharge     FeeLedgerEntryType = "CHARGE"
	FeeLedgerPayment    FeeLedgerEntryType = "PAYMENT"
	FeeLedgerAdjustment FeeLedgerEntryType = "ADJUSTMENT"
)

/* =========================================================
   MODEL — append-only journal. One row per balance-changing
   event; balance_after must equal the assignment outstanding
   right after the entry is applied. Rows are never updated
   or deleted (no soft-delete column on purpose).
========================================================= */

type FeeLedger struct {
	FeeLedgerID           uuid.UUID `gorm:"column:fee_ledger_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_ledger_id"`
	FeeLedgerAssignmentID uuid.UUID `gorm:"column:fee_ledger_assignment_id;type:uuid;not null;index:ix_fee_ledger_assignment" json:"fee_ledger_assignment_id"`

	FeeLedgerEntryType    FeeLedgerEntryType `gorm:"column:fee_ledger_entry_type;type:varchar(20);not null" json:"fee_ledger_entry_type"`
	FeeLedgerAmount       money.Amount       `gorm:"column:fee_ledger_amount;type:numeric(14,2);not null" json:"fee_ledger_amount"`
	FeeLedgerBalanceAfter money.Amount       `gorm:"column:fee_ledger_balance_after;type:numeric(14,2);not null" json:"fee_ledger_balance_after"`
	FeeLedgerNote         *string            `gorm:"column:fee_ledger_note" json:"fee_ledger_note,omitempty"`

	FeeLedgerCreatedAt time.Time `gorm:"column:fee_ledger_created_at;not null;default:now();index:ix_fee_ledger_created_at" json:"fee_ledger_created_at"`
}

func (FeeLedger) TableName() string { return "fee_ledgers" }
