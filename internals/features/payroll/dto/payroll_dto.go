package dto

import (
	"github.com/google/uuid"

	"schoolku_backend/internals/features/finance/money"
	m "schoolku_backend/internals/features/payroll/model"
)

/* ================== SALARY STRUCTURE ================== */

type CreateSalaryStructureRequest struct {
	StaffID    uuid.UUID    `json:"staff_id" validate:"required"`
	BasicPay   money.Amount `json:"basic_pay" validate:"required"`
	HRA        money.Amount `json:"hra"`
	Allowances money.Amount `json:"allowances"`
	Deductions money.Amount `json:"deductions"`
}

func (r CreateSalaryStructureRequest) ToModel(institutionID uuid.UUID) *m.SalaryStructure {
	return &m.SalaryStructure{
		SalaryStructureInstitutionID: institutionID,
		SalaryStructureStaffID:       r.StaffID,
		SalaryStructureBasicPay:      r.BasicPay,
		SalaryStructureHRA:           r.HRA,
		SalaryStructureAllowances:    r.Allowances,
		SalaryStructureDeductions:    r.Deductions,
	}
}

// Partial update: only the recognized fields present in the body change.
type UpdateSalaryStructureRequest struct {
	BasicPay   *money.Amount `json:"basic_pay" validate:"omitempty"`
	HRA        *money.Amount `json:"hra" validate:"omitempty"`
	Allowances *money.Amount `json:"allowances" validate:"omitempty"`
	Deductions *money.Amount `json:"deductions" validate:"omitempty"`
}

/* ================== PAYROLL ================== */

type GeneratePayrollRequest struct {
	StaffID uuid.UUID `json:"staff_id" validate:"required"`
	Month   int       `json:"month" validate:"required,gte=1,lte=12"`
	Year    int       `json:"year" validate:"required,gte=2000,lte=2100"`
}

type PayrollItemRequest struct {
	Label  string            `json:"label" validate:"required,min=2,max=120"`
	Amount money.Amount      `json:"amount" validate:"required"`
	Type   m.PayrollItemType `json:"type" validate:"required,oneof=EARNING DEDUCTION"`
}

/* ================== RESPONSES ================== */

// PayrollSummaryResponse aggregates one period across the institution.
type PayrollSummaryResponse struct {
	Month          int          `json:"month"`
	Year           int          `json:"year"`
	TotalPayrolls  int64        `json:"total_payrolls"`
	Paid           int64        `json:"paid"`
	Pending        int64        `json:"pending"`
	TotalNetSalary money.Amount `json:"total_net_salary"`
}
