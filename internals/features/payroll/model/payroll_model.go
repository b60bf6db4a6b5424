package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/money"
)

/* =========================================================
   ENUMS — payroll run status & item type
========================================================= */

type PayrollStatus string

const (
	PayrollGenerated PayrollStatus = "GENERATED"
	PayrollPaid      PayrollStatus = "PAID" // terminal; items are locked
)

type PayrollItemType string

const (
	PayrollItemEarning   PayrollItemType = "EARNING"
	PayrollItemDeduction PayrollItemType = "DEDUCTION"
)

/* =========================================================
   MODEL — one staff member's computed pay for one period.
   Unique on (staff, month, year): one run per period.
   Totals are always a fold over the items (the base salary
   is seeded as an EARNING item at generation time).
========================================================= */

type Payroll struct {
	PayrollID            uuid.UUID `gorm:"column:payroll_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_id"`
	PayrollInstitutionID uuid.UUID `gorm:"column:payroll_institution_id;type:uuid;not null;index" json:"payroll_institution_id"`

	PayrollStaffID uuid.UUID `gorm:"column:payroll_staff_id;type:uuid;not null;uniqueIndex:uniq_payroll_period,priority:1" json:"payroll_staff_id"`
	PayrollMonth   int       `gorm:"column:payroll_month;not null;check:payroll_month BETWEEN 1 AND 12;uniqueIndex:uniq_payroll_period,priority:2" json:"payroll_month"`
	PayrollYear    int       `gorm:"column:payroll_year;not null;uniqueIndex:uniq_payroll_period,priority:3" json:"payroll_year"`

	PayrollGrossSalary     money.Amount `gorm:"column:payroll_gross_salary;type:numeric(14,2);not null" json:"payroll_gross_salary"`
	PayrollTotalDeductions money.Amount `gorm:"column:payroll_total_deductions;type:numeric(14,2);not null;default:0" json:"payroll_total_deductions"`
	PayrollNetSalary       money.Amount `gorm:"column:payroll_net_salary;type:numeric(14,2);not null" json:"payroll_net_salary"`

	PayrollStatus PayrollStatus `gorm:"column:payroll_status;type:varchar(20);not null;default:'GENERATED';index" json:"payroll_status"`
	PayrollPaidAt *time.Time    `gorm:"column:payroll_paid_at" json:"payroll_paid_at,omitempty"`

	PayrollCreatedAt time.Time      `gorm:"column:payroll_created_at;not null;default:now()" json:"payroll_created_at"`
	PayrollUpdatedAt time.Time      `gorm:"column:payroll_updated_at;not null;default:now()" json:"payroll_updated_at"`
	PayrollDeletedAt gorm.DeletedAt `gorm:"column:payroll_deleted_at;index" json:"-"`

	Items []PayrollItem `gorm:"foreignKey:PayrollItemPayrollID;references:PayrollID" json:"items,omitempty"`
}

func (Payroll) TableName() string { return "payrolls" }

func (m *Payroll) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.PayrollCreatedAt.IsZero() {
		m.PayrollCreatedAt = now
	}
	m.PayrollUpdatedAt = now
	return nil
}

func (m *Payroll) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PayrollUpdatedAt = time.Now()
	return nil
}

func (m *Payroll) IsLocked() bool {
	return m.PayrollStatus == PayrollPaid
}

/* =========================================================
   PAYROLL ITEM — one earning or deduction line
========================================================= */

type PayrollItem struct {
	PayrollItemID        uuid.UUID `gorm:"column:payroll_item_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payroll_item_id"`
	PayrollItemPayrollID uuid.UUID `gorm:"column:payroll_item_payroll_id;type:uuid;not null;index:ix_payroll_item_payroll" json:"payroll_item_payroll_id"`

	PayrollItemLabel  string          `gorm:"column:payroll_item_label;type:varchar(120);not null" json:"payroll_item_label"`
	PayrollItemAmount money.Amount    `gorm:"column:payroll_item_amount;type:numeric(14,2);not null" json:"payroll_item_amount"`
	PayrollItemType   PayrollItemType `gorm:"column:payroll_item_type;type:varchar(20);not null" json:"payroll_item_type"`

	PayrollItemCreatedAt time.Time `gorm:"column:payroll_item_created_at;not null;default:now()" json:"payroll_item_created_at"`
	PayrollItemUpdatedAt time.Time `gorm:"column:payroll_item_updated_at;not null;default:now()" json:"payroll_item_updated_at"`
}

func (PayrollItem) TableName() string { return "payroll_items" }

func (m *PayrollItem) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.PayrollItemCreatedAt.IsZero() {
		m.PayrollItemCreatedAt = now
	}
	m.PayrollItemUpdatedAt = now
	return nil
}

func (m *PayrollItem) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PayrollItemUpdatedAt = time.Now()
	return nil
}
