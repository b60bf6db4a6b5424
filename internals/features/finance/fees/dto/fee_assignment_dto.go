package dto

import (
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

/* ================== REQUESTS ================== */

type AssignFeesRequest struct {
	FeeStructureID uuid.UUID   `json:"fee_structure_id" validate:"required"`
	StudentIDs     []uuid.UUID `json:"student_ids" validate:"required,min=1,dive,required"`
	DueDate        *time.Time  `json:"due_date" validate:"omitempty"`
}

/* ================== RESPONSES ================== */

// FeeAssignmentResponse exposes the stored assignment plus the legacy
// due_amount alias (same value as outstanding; older consumers still read
// both names).
type FeeAssignmentResponse struct {
	FeeAssignmentID uuid.UUID `json:"fee_assignment_id"`
	InstitutionID   uuid.UUID `json:"institution_id"`
	StudentID       uuid.UUID `json:"student_registration_id"`
	FeeStructureID  uuid.UUID `json:"fee_structure_id"`
	AssignedByID    uuid.UUID `json:"assigned_by_id"`
	AssignedOn      time.Time `json:"assigned_on"`

	TotalAmount       money.Amount `json:"total_amount"`
	DueAmount         money.Amount `json:"due_amount"`
	OutstandingAmount money.Amount `json:"outstanding_amount"`

	DueDate *time.Time            `json:"due_date,omitempty"`
	Status  m.FeeAssignmentStatus `json:"status"`

	Structure *m.FeeStructure `json:"structure,omitempty"`
	Ledger    []m.FeeLedger   `json:"ledger,omitempty"`
}

func FromFeeAssignmentModel(a m.FeeAssignment) FeeAssignmentResponse {
	return FeeAssignmentResponse{
		FeeAssignmentID:   a.FeeAssignmentID,
		InstitutionID:     a.FeeAssignmentInstitutionID,
		StudentID:         a.FeeAssignmentStudentID,
		FeeStructureID:    a.FeeAssignmentStructureID,
		AssignedByID:      a.FeeAssignmentAssignedByID,
		AssignedOn:        a.FeeAssignmentAssignedOn,
		TotalAmount:       a.FeeAssignmentTotal,
		DueAmount:         a.FeeAssignmentOutstanding,
		OutstandingAmount: a.FeeAssignmentOutstanding,
		DueDate:           a.FeeAssignmentDueDate,
		Status:            a.FeeAssignmentStatus,
		Structure:         a.Structure,
		Ledger:            a.Ledger,
	}
}

func FromFeeAssignmentModels(rows []m.FeeAssignment) []FeeAssignmentResponse {
	out := make([]FeeAssignmentResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromFeeAssignmentModel(r))
	}
	return out
}
