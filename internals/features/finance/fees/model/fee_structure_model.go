package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/money"
)

/* =========================================================
   FEE STRUCTURE — chargeable template (heads, installments,
   discounts, fine rules). Totals are copied into assignments
   at assign time, so editing a structure never retroactively
   changes an issued assignment.
========================================================= */

type FeeStructure struct {
	FeeStructureID            uuid.UUID `gorm:"column:fee_structure_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_structure_id"`
	FeeStructureInstitutionID uuid.UUID `gorm:"column:fee_structure_institution_id;type:uuid;not null;index:ix_fee_structure_institution" json:"fee_structure_institution_id"`

	FeeStructureName        string  `gorm:"column:fee_structure_name;type:varchar(120);not null" json:"fee_structure_name"`
	FeeStructureCode        *string `gorm:"column:fee_structure_code;type:varchar(60)" json:"fee_structure_code,omitempty"`
	FeeStructureDescription *string `gorm:"column:fee_structure_description" json:"fee_structure_description,omitempty"`

	// Explicit total; when NULL the total is derived from the linked heads.
	FeeStructureTotalAmount *money.Amount `gorm:"column:fee_structure_total_amount;type:numeric(14,2)" json:"fee_structure_total_amount,omitempty"`

	FeeStructureCreatedAt time.Time      `gorm:"column:fee_structure_created_at;not null;default:now()" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time      `gorm:"column:fee_structure_updated_at;not null;default:now()" json:"fee_structure_updated_at"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;index" json:"-"`

	// Children
	Heads        []FeeStructureHead `gorm:"foreignKey:FeeStructureHeadStructureID;references:FeeStructureID" json:"heads,omitempty"`
	Installments []FeeInstallment   `gorm:"foreignKey:FeeInstallmentStructureID;references:FeeStructureID" json:"installments,omitempty"`
	Discounts    []FeeDiscount      `gorm:"foreignKey:FeeDiscountStructureID;references:FeeStructureID" json:"discounts,omitempty"`
	FineRules    []FeeFineRule      `gorm:"foreignKey:FeeFineRuleStructureID;references:FeeStructureID" json:"fine_rules,omitempty"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

func (m *FeeStructure) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.FeeStructureCreatedAt.IsZero() {
		m.FeeStructureCreatedAt = now
	}
	m.FeeStructureUpdatedAt = now
	return nil
}

func (m *FeeStructure) BeforeUpdate(tx *gorm.DB) (err error) {
	m.FeeStructureUpdatedAt = time.Now()
	return nil
}

/* =========================================================
   STRUCTURE HEAD — structure-specific amount override for a
   shared FeeHead catalog entry.
========================================================= */

type FeeStructureHead struct {
	FeeStructureHeadID          uuid.UUID `gorm:"column:fee_structure_head_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_structure_head_id"`
	FeeStructureHeadStructureID uuid.UUID `gorm:"column:fee_structure_head_structure_id;type:uuid;not null;uniqueIndex:uniq_structure_head,priority:1" json:"fee_structure_head_structure_id"`
	FeeStructureHeadHeadID      uuid.UUID `gorm:"column:fee_structure_head_head_id;type:uuid;not null;uniqueIndex:uniq_structure_head,priority:2" json:"fee_structure_head_head_id"`

	FeeStructureHeadAmount     money.Amount `gorm:"column:fee_structure_head_amount;type:numeric(14,2);not null" json:"fee_structure_head_amount"`
	FeeStructureHeadIsOptional bool         `gorm:"column:fee_structure_head_is_optional;not null;default:false" json:"fee_structure_head_is_optional"`

	FeeStructureHeadCreatedAt time.Time `gorm:"column:fee_structure_head_created_at;not null;default:now()" json:"fee_structure_head_created_at"`

	Head *FeeHead `gorm:"foreignKey:FeeStructureHeadHeadID;references:FeeHeadID" json:"head,omitempty"`
}

func (FeeStructureHead) TableName() string { return "fee_structure_heads" }

/* =========================================================
   INSTALLMENT / DISCOUNT / FINE RULE — catalog children
========================================================= */

type FeeInstallment struct {
	FeeInstallmentID          uuid.UUID `gorm:"column:fee_installment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_installment_id"`
	FeeInstallmentStructureID uuid.UUID `gorm:"column:fee_installment_structure_id;type:uuid;not null;index" json:"fee_installment_structure_id"`

	FeeInstallmentNo      int          `gorm:"column:fee_installment_no;not null" json:"fee_installment_no"`
	FeeInstallmentType    *string      `gorm:"column:fee_installment_type;type:varchar(30)" json:"fee_installment_type,omitempty"`
	FeeInstallmentDueDate *time.Time   `gorm:"column:fee_installment_due_date" json:"fee_installment_due_date,omitempty"`
	FeeInstallmentAmount  money.Amount `gorm:"column:fee_installment_amount;type:numeric(14,2);not null" json:"fee_installment_amount"`

	FeeInstallmentCreatedAt time.Time `gorm:"column:fee_installment_created_at;not null;default:now()" json:"fee_installment_created_at"`
}

func (FeeInstallment) TableName() string { return "fee_installments" }

type FeeDiscountType string

const (
	FeeDiscountFlat    FeeDiscountType = "FLAT"
	FeeDiscountPercent FeeDiscountType = "PERCENT"
)

type FeeDiscount struct {
	FeeDiscountID          uuid.UUID `gorm:"column:fee_discount_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_discount_id"`
	FeeDiscountStructureID uuid.UUID `gorm:"column:fee_discount_structure_id;type:uuid;not null;index" json:"fee_discount_structure_id"`

	FeeDiscountName        string          `gorm:"column:fee_discount_name;type:varchar(120);not null" json:"fee_discount_name"`
	FeeDiscountDescription *string         `gorm:"column:fee_discount_description" json:"fee_discount_description,omitempty"`
	FeeDiscountType        FeeDiscountType `gorm:"column:fee_discount_type;type:varchar(20);not null;default:'FLAT'" json:"fee_discount_type"`
	FeeDiscountAmount      money.Amount    `gorm:"column:fee_discount_amount;type:numeric(14,2);not null" json:"fee_discount_amount"`

	// Optional narrowing of the discount to one head
	FeeDiscountAppliesToHeadID *uuid.UUID `gorm:"column:fee_discount_applies_to_head_id;type:uuid" json:"fee_discount_applies_to_head_id,omitempty"`

	FeeDiscountCreatedAt time.Time `gorm:"column:fee_discount_created_at;not null;default:now()" json:"fee_discount_created_at"`
}

func (FeeDiscount) TableName() string { return "fee_discounts" }

type FeeFineType string

const (
	FeeFineFlat    FeeFineType = "FLAT"
	FeeFinePerDay  FeeFineType = "PER_DAY"
	FeeFinePercent FeeFineType = "PERCENT"
)

type FeeFineRule struct {
	FeeFineRuleID          uuid.UUID `gorm:"column:fee_fine_rule_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"fee_fine_rule_id"`
	FeeFineRuleStructureID uuid.UUID `gorm:"column:fee_fine_rule_structure_id;type:uuid;not null;index" json:"fee_fine_rule_structure_id"`

	FeeFineRuleName        string       `gorm:"column:fee_fine_rule_name;type:varchar(120);not null" json:"fee_fine_rule_name"`
	FeeFineRuleDescription *string      `gorm:"column:fee_fine_rule_description" json:"fee_fine_rule_description,omitempty"`
	FeeFineRuleType        FeeFineType  `gorm:"column:fee_fine_rule_type;type:varchar(20);not null;default:'FLAT'" json:"fee_fine_rule_type"`
	FeeFineRuleValue       money.Amount `gorm:"column:fee_fine_rule_value;type:numeric(14,2);not null" json:"fee_fine_rule_value"`
	FeeFineRuleGraceDays   int          `gorm:"column:fee_fine_rule_grace_days;not null;default:0" json:"fee_fine_rule_grace_days"`

	FeeFineRuleCreatedAt time.Time `gorm:"column:fee_fine_rule_created_at;not null;default:now()" json:"fee_fine_rule_created_at"`
}

func (FeeFineRule) TableName() string { return "fee_fine_rules" }
