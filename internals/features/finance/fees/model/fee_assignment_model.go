package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/money"
)

/* =========================================================
   ENUM — assignment status
========================================================= */

type FeeAssignmentStatus string

const (
	FeeAssignmentPending FeeAssignmentStatus = "PENDING"
	FeeAssignmentPartial FeeAssignmentStatus = "PARTIAL"
	FeeAssignmentPaid    FeeAssignmentStatus = "PAID"
)

/* =========================================================
   MODEL — one structure bound to one student, with its own
   running balance. Outstanding is the single canonical
   remaining-balance column; the legacy due_amount is only a
   derived DTO alias. Mutated exclusively by ledger-writing
   operations.
========================================================= */

type FeeAssignment struct {
	FeeAssignmentID            uuid.UUID `gorm:"column:fee_assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_assignment_id"`
	FeeAssignmentInstitutionID uuid.UUID `gorm:"column:fee_assignment_institution_id;type:uuid;not null;index:ix_fee_assignment_institution" json:"fee_assignment_institution_id"`

	// FK → student_registrations(id); one assignment per (student, structure)
	FeeAssignmentStudentID   uuid.UUID `gorm:"column:fee_assignment_student_id;type:uuid;not null;uniqueIndex:uniq_assignment_student_structure,priority:1" json:"fee_assignment_student_id"`
	FeeAssignmentStructureID uuid.UUID `gorm:"column:fee_assignment_structure_id;type:uuid;not null;uniqueIndex:uniq_assignment_student_structure,priority:2" json:"fee_assignment_structure_id"`

	// FK → users(id), actor who issued the assignment
	FeeAssignmentAssignedByID uuid.UUID `gorm:"column:fee_assignment_assigned_by_id;type:uuid;not null" json:"fee_assignment_assigned_by_id"`
	FeeAssignmentAssignedOn   time.Time `gorm:"column:fee_assignment_assigned_on;not null;default:now()" json:"fee_assignment_assigned_on"`

	// Snapshot total at assign time; 0 <= outstanding <= total always.
	FeeAssignmentTotal       money.Amount `gorm:"column:fee_assignment_total;type:numeric(14,2);not null" json:"fee_assignment_total"`
	FeeAssignmentOutstanding money.Amount `gorm:"column:fee_assignment_outstanding;type:numeric(14,2);not null" json:"fee_assignment_outstanding"`

	FeeAssignmentDueDate *time.Time          `gorm:"column:fee_assignment_due_date" json:"fee_assignment_due_date,omitempty"`
	FeeAssignmentStatus  FeeAssignmentStatus `gorm:"column:fee_assignment_status;type:varchar(20);not null;default:'PENDING';index:ix_fee_assignment_status" json:"fee_assignment_status"`

	FeeAssignmentCreatedAt time.Time      `gorm:"column:fee_assignment_created_at;not null;default:now()" json:"fee_assignment_created_at"`
	FeeAssignmentUpdatedAt time.Time      `gorm:"column:fee_assignment_updated_at;not null;default:now()" json:"fee_assignment_updated_at"`
	FeeAssignmentDeletedAt gorm.DeletedAt `gorm:"column:fee_assignment_deleted_at;index" json:"-"`

	Structure *FeeStructure `gorm:"foreignKey:FeeAssignmentStructureID;references:FeeStructureID" json:"structure,omitempty"`
	Ledger    []FeeLedger   `gorm:"foreignKey:FeeLedgerAssignmentID;references:FeeAssignmentID" json:"ledger,omitempty"`
}

func (FeeAssignment) TableName() string { return "fee_assignments" }

func (m *FeeAssignment) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.FeeAssignmentCreatedAt.IsZero() {
		m.FeeAssignmentCreatedAt = now
	}
	if m.FeeAssignmentAssignedOn.IsZero() {
		m.FeeAssignmentAssignedOn = now
	}
	m.FeeAssignmentUpdatedAt = now
	return nil
}

func (m *FeeAssignment) BeforeUpdate(tx *gorm.DB) (err error) {
	m.FeeAssignmentUpdatedAt = time.Now()
	return nil
}

// IsSettled reports the terminal state: nothing left to collect.
func (m *FeeAssignment) IsSettled() bool {
	return m.FeeAssignmentStatus == FeeAssignmentPaid || m.FeeAssignmentOutstanding.IsZero()
}
