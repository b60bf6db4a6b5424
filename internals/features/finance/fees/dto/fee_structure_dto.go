package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/money"
)

/* ================== REQUESTS ================== */

// Create
type CreateFeeStructureRequest struct {
	FeeStructureName        string  `json:"fee_structure_name" validate:"required,min=2,max=120"`
	FeeStructureCode        *string `json:"fee_structure_code" validate:"omitempty,max=60"`
	FeeStructureDescription *string `json:"fee_structure_description" validate:"omitempty"`

	// Explicit total wins over the computed head sum (no reconciliation).
	FeeStructureTotalAmount *money.Amount `json:"fee_structure_total_amount" validate:"omitempty"`
}

func (r CreateFeeStructureRequest) ToModel(institutionID uuid.UUID) *m.FeeStructure {
	return &m.FeeStructure{
		FeeStructureInstitutionID: institutionID,
		FeeStructureName:          strings.TrimSpace(r.FeeStructureName),
		FeeStructureCode:          r.FeeStructureCode,
		FeeStructureDescription:   r.FeeStructureDescription,
		FeeStructureTotalAmount:   r.FeeStructureTotalAmount,
	}
}

// One head to link; either an existing fee_head_id or enough data to create
// the catalog entry on the fly (code derived from name when omitted).
type StructureHeadInput struct {
	FeeHeadID   *uuid.UUID `json:"fee_head_id" validate:"omitempty"`
	Name        string     `json:"name" validate:"required_without=FeeHeadID,omitempty,min=2,max=120"`
	Code        *string    `json:"code" validate:"omitempty,max=60"`
	Description *string    `json:"description" validate:"omitempty"`
	IsMandatory *bool      `json:"is_mandatory" validate:"omitempty"`
	IsOptional  bool       `json:"is_optional"`
	Currency    *string    `json:"currency" validate:"omitempty,len=3"`

	Amount money.Amount `json:"amount" validate:"required"`
}

// DeriveCode builds the catalog code from the head name ("Library Fee" →
// "LIBRARY_FEE") when none was supplied.
func (h StructureHeadInput) DeriveCode() string {
	if h.Code != nil && strings.TrimSpace(*h.Code) != "" {
		return strings.TrimSpace(*h.Code)
	}
	return strings.ToUpper(strings.Join(strings.Fields(h.Name), "_"))
}

type AddStructureHeadsRequest struct {
	Heads []StructureHeadInput `json:"heads" validate:"required,min=1,dive"`
}

type InstallmentInput struct {
	InstallmentNo   int          `json:"installment_no" validate:"required,gte=1"`
	InstallmentType *string      `json:"installment_type" validate:"omitempty,max=30"`
	DueDate         *time.Time   `json:"due_date" validate:"omitempty"`
	Amount          money.Amount `json:"amount" validate:"required"`
}

type AddInstallmentsRequest struct {
	Installments []InstallmentInput `json:"installments" validate:"required,min=1,dive"`
}

type DiscountInput struct {
	Name            string       `json:"name" validate:"required,min=2,max=120"`
	Description     *string      `json:"description" validate:"omitempty"`
	DiscountType    string       `json:"discount_type" validate:"required,oneof=FLAT PERCENT"`
	Amount          money.Amount `json:"amount" validate:"required"`
	AppliesToHeadID *uuid.UUID   `json:"applies_to_head_id" validate:"omitempty"`
}

type AddDiscountsRequest struct {
	Discounts []DiscountInput `json:"discounts" validate:"required,min=1,dive"`
}

type FineRuleInput struct {
	Name        string       `json:"name" validate:"required,min=2,max=120"`
	Description *string      `json:"description" validate:"omitempty"`
	FineType    string       `json:"fine_type" validate:"required,oneof=FLAT PER_DAY PERCENT"`
	Value       money.Amount `json:"value" validate:"required"`
	GraceDays   int          `json:"grace_period_days" validate:"omitempty,gte=0"`
}

type AddFineRulesRequest struct {
	FineRules []FineRuleInput `json:"fine_rules" validate:"required,min=1,dive"`
}
