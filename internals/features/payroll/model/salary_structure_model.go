package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/money"
)

// SalaryStructure is the one active pay template per staff member. Updates
// replace recognized fields only; payroll runs snapshot its numbers at
// generation time.
type SalaryStructure struct {
	SalaryStructureID            uuid.UUID `gorm:"column:salary_structure_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"salary_structure_id"`
	SalaryStructureInstitutionID uuid.UUID `gorm:"column:salary_structure_institution_id;type:uuid;not null;index" json:"salary_structure_institution_id"`

	// FK → staff_registrations(id); unique: one structure per staff
	SalaryStructureStaffID uuid.UUID `gorm:"column:salary_structure_staff_id;type:uuid;not null;uniqueIndex:uniq_salary_structure_staff" json:"salary_structure_staff_id"`

	SalaryStructureBasicPay   money.Amount `gorm:"column:salary_structure_basic_pay;type:numeric(14,2);not null" json:"salary_structure_basic_pay"`
	SalaryStructureHRA        money.Amount `gorm:"column:salary_structure_hra;type:numeric(14,2);not null;default:0" json:"salary_structure_hra"`
	SalaryStructureAllowances money.Amount `gorm:"column:salary_structure_allowances;type:numeric(14,2);not null;default:0" json:"salary_structure_allowances"`
	SalaryStructureDeductions money.Amount `gorm:"column:salary_structure_deductions;type:numeric(14,2);not null;default:0" json:"salary_structure_deductions"`

	SalaryStructureCreatedAt time.Time      `gorm:"column:salary_structure_created_at;not null;default:now()" json:"salary_structure_created_at"`
	SalaryStructureUpdatedAt time.Time      `gorm:"column:salary_structure_updated_at;not null;default:now()" json:"salary_structure_updated_at"`
	SalaryStructureDeletedAt gorm.DeletedAt `gorm:"column:salary_structure_deleted_at;index" json:"-"`
}

func (SalaryStructure) TableName() string { return "salary_structures" }

func (m *SalaryStructure) BeforeCreate(tx *gorm.DB) (err error) {
	now := time.Now()
	if m.SalaryStructureCreatedAt.IsZero() {
		m.SalaryStructureCreatedAt = now
	}
	m.SalaryStructureUpdatedAt = now
	return nil
}

func (m *SalaryStructure) BeforeUpdate(tx *gorm.DB) (err error) {
	m.SalaryStructureUpdatedAt = time.Now()
	return nil
}
