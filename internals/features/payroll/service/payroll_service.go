package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/finance/money"
	"schoolku_backend/internals/features/payroll/dto"
	m "schoolku_backend/internals/features/payroll/model"
	helper "schoolku_backend/internals/helpers"
)

/* =========================================================
   Payroll Engine — salary structure → payroll run → items.

   Totals are ALWAYS a fold over the items: generation seeds
   the computed gross as a "Base salary" EARNING item (and the
   fixed deductions as a DEDUCTION item when present), so
   recalculation after any item mutation is a pure re-fold and
   never loses the original gross.
========================================================= */

/* ---------------- pure arithmetic ---------------- */

// computeFromStructure derives the generation-time numbers.
// gross = basic + hra + allowances; net = gross - fixed deductions.
func computeFromStructure(s *m.SalaryStructure) (gross, deductions, net money.Amount) {
	gross = s.SalaryStructureBasicPay.
		Add(s.SalaryStructureHRA).
		Add(s.SalaryStructureAllowances)
	deductions = s.SalaryStructureDeductions
	net = gross.Sub(deductions)
	return gross, deductions, net
}

// recalcTotals folds the item lines into the payroll totals.
func recalcTotals(items []m.PayrollItem) (gross, totalDeductions, net money.Amount) {
	gross = money.Zero
	totalDeductions = money.Zero
	for _, it := range items {
		switch it.PayrollItemType {
		case m.PayrollItemEarning:
			gross = gross.Add(it.PayrollItemAmount)
		case m.PayrollItemDeduction:
			totalDeductions = totalDeductions.Add(it.PayrollItemAmount)
		}
	}
	net = gross.Sub(totalDeductions)
	return gross, totalDeductions, net
}

/* ---------------- salary structure ---------------- */

func CreateSalaryStructure(ctx context.Context, db *gorm.DB, institutionID uuid.UUID, req dto.CreateSalaryStructureRequest) (*m.SalaryStructure, error) {
	if !req.BasicPay.IsPositive() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "basic pay must be greater than zero")
	}
	if req.HRA.IsNegative() || req.Allowances.IsNegative() || req.Deductions.IsNegative() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "salary components must not be negative")
	}
	if err := ensureStaffExists(ctx, db, institutionID, req.StaffID); err != nil {
		return nil, err
	}

	s := req.ToModel(institutionID)
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, helper.MapDBError(err, "salary structure already exists for staff")
	}
	return s, nil
}

// UpdateSalaryStructure replaces only the fields present in the body.
// Existing payroll runs keep their generation-time snapshot.
func UpdateSalaryStructure(ctx context.Context, db *gorm.DB, institutionID, staffID uuid.UUID, req dto.UpdateSalaryStructureRequest) (*m.SalaryStructure, error) {
	s, err := GetSalaryStructure(ctx, db, institutionID, staffID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.BasicPay != nil {
		if !req.BasicPay.IsPositive() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "basic pay must be greater than zero")
		}
		updates["salary_structure_basic_pay"] = *req.BasicPay
		s.SalaryStructureBasicPay = *req.BasicPay
	}
	if req.HRA != nil {
		if req.HRA.IsNegative() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "salary components must not be negative")
		}
		updates["salary_structure_hra"] = *req.HRA
		s.SalaryStructureHRA = *req.HRA
	}
	if req.Allowances != nil {
		if req.Allowances.IsNegative() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "salary components must not be negative")
		}
		updates["salary_structure_allowances"] = *req.Allowances
		s.SalaryStructureAllowances = *req.Allowances
	}
	if req.Deductions != nil {
		if req.Deductions.IsNegative() {
			return nil, fiber.NewError(fiber.StatusBadRequest, "salary components must not be negative")
		}
		updates["salary_structure_deductions"] = *req.Deductions
		s.SalaryStructureDeductions = *req.Deductions
	}
	if len(updates) == 0 {
		return s, nil
	}
	updates["salary_structure_updated_at"] = time.Now()

	if err := db.WithContext(ctx).Model(&m.SalaryStructure{}).
		Where("salary_structure_id = ?", s.SalaryStructureID).
		Updates(updates).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return s, nil
}

func GetSalaryStructure(ctx context.Context, db *gorm.DB, institutionID, staffID uuid.UUID) (*m.SalaryStructure, error) {
	var s m.SalaryStructure
	if err := db.WithContext(ctx).
		Where("salary_structure_staff_id = ? AND salary_structure_institution_id = ?", staffID, institutionID).
		First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "salary structure not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &s, nil
}

func ensureStaffExists(ctx context.Context, db *gorm.DB, institutionID, staffID uuid.UUID) error {
	var count int64
	if err := db.WithContext(ctx).
		Table("staff_registrations").
		Where("id = ? AND institution_id = ?", staffID, institutionID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusNotFound,
			fmt.Sprintf("staff registration %s not found", staffID))
	}
	return nil
}

/* ---------------- payroll run ---------------- */

// GeneratePayroll creates exactly one run per (staff, month, year). The
// unique index is the idempotency boundary: a concurrent duplicate surfaces
// as a conflict, never as two rows.
func GeneratePayroll(ctx context.Context, db *gorm.DB, institutionID uuid.UUID, req dto.GeneratePayrollRequest) (*m.Payroll, error) {
	structure, err := GetSalaryStructure(ctx, db, institutionID, req.StaffID)
	if err != nil {
		return nil, err
	}

	gross, deductions, net := computeFromStructure(structure)

	var payroll m.Payroll
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		payroll = m.Payroll{
			PayrollInstitutionID:   institutionID,
			PayrollStaffID:         req.StaffID,
			PayrollMonth:           req.Month,
			PayrollYear:            req.Year,
			PayrollGrossSalary:     gross,
			PayrollTotalDeductions: deductions,
			PayrollNetSalary:       net,
			PayrollStatus:          m.PayrollGenerated,
		}
		if err := tx.Create(&payroll).Error; err != nil {
			return helper.MapDBError(err, "payroll already generated for this period")
		}

		items := []m.PayrollItem{
			{
				PayrollItemPayrollID: payroll.PayrollID,
				PayrollItemLabel:     "Base salary",
				PayrollItemAmount:    gross,
				PayrollItemType:      m.PayrollItemEarning,
			},
		}
		if deductions.IsPositive() {
			items = append(items, m.PayrollItem{
				PayrollItemPayrollID: payroll.PayrollID,
				PayrollItemLabel:     "Fixed deductions",
				PayrollItemAmount:    deductions,
				PayrollItemType:      m.PayrollItemDeduction,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		payroll.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}

// lockPayroll loads the run FOR UPDATE and enforces the terminal-state lock.
func lockPayroll(tx *gorm.DB, payrollID, institutionID uuid.UUID) (*m.Payroll, error) {
	var p m.Payroll
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payroll_id = ? AND payroll_institution_id = ?", payrollID, institutionID).
		First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "payroll not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if p.IsLocked() {
		return nil, fiber.NewError(fiber.StatusConflict, "payroll is already paid and locked")
	}
	return &p, nil
}

// recalcLocked re-folds the items of a locked payroll and persists the
// totals. Must run inside the same transaction as the item mutation.
func recalcLocked(tx *gorm.DB, payrollID uuid.UUID) error {
	var items []m.PayrollItem
	if err := tx.
		Where("payroll_item_payroll_id = ?", payrollID).
		Order("payroll_item_created_at ASC").
		Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	gross, totalDeductions, net := recalcTotals(items)
	if err := tx.Model(&m.Payroll{}).
		Where("payroll_id = ?", payrollID).
		Updates(map[string]interface{}{
			"payroll_gross_salary":     gross,
			"payroll_total_deductions": totalDeductions,
			"payroll_net_salary":       net,
			"payroll_updated_at":       time.Now(),
		}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return nil
}

func validateItem(req dto.PayrollItemRequest) error {
	if !req.Amount.IsPositive() {
		return fiber.NewError(fiber.StatusBadRequest, "item amount must be greater than zero")
	}
	return nil
}

func AddItem(ctx context.Context, db *gorm.DB, institutionID, payrollID uuid.UUID, req dto.PayrollItemRequest) (*m.Payroll, error) {
	if err := validateItem(req); err != nil {
		return nil, err
	}
	return mutateItems(ctx, db, institutionID, payrollID, func(tx *gorm.DB, p *m.Payroll) error {
		item := m.PayrollItem{
			PayrollItemPayrollID: p.PayrollID,
			PayrollItemLabel:     req.Label,
			PayrollItemAmount:    req.Amount,
			PayrollItemType:      req.Type,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return nil
	})
}

func UpdateItem(ctx context.Context, db *gorm.DB, institutionID, payrollID, itemID uuid.UUID, req dto.PayrollItemRequest) (*m.Payroll, error) {
	if err := validateItem(req); err != nil {
		return nil, err
	}
	return mutateItems(ctx, db, institutionID, payrollID, func(tx *gorm.DB, p *m.Payroll) error {
		res := tx.Model(&m.PayrollItem{}).
			Where("payroll_item_id = ? AND payroll_item_payroll_id = ?", itemID, p.PayrollID).
			Updates(map[string]interface{}{
				"payroll_item_label":      req.Label,
				"payroll_item_amount":     req.Amount,
				"payroll_item_type":       req.Type,
				"payroll_item_updated_at": time.Now(),
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "payroll item not found")
		}
		return nil
	})
}

func DeleteItem(ctx context.Context, db *gorm.DB, institutionID, payrollID, itemID uuid.UUID) (*m.Payroll, error) {
	return mutateItems(ctx, db, institutionID, payrollID, func(tx *gorm.DB, p *m.Payroll) error {
		res := tx.
			Where("payroll_item_id = ? AND payroll_item_payroll_id = ?", itemID, p.PayrollID).
			Delete(&m.PayrollItem{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, res.Error.Error())
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "payroll item not found")
		}
		return nil
	})
}

// mutateItems wraps lock → mutation → recalc in one transaction and returns
// the reloaded payroll with items.
func mutateItems(ctx context.Context, db *gorm.DB, institutionID, payrollID uuid.UUID, fn func(tx *gorm.DB, p *m.Payroll) error) (*m.Payroll, error) {
	var out m.Payroll
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPayroll(tx, payrollID, institutionID)
		if err != nil {
			return err
		}
		if err := fn(tx, p); err != nil {
			return err
		}
		if err := recalcLocked(tx, p.PayrollID); err != nil {
			return err
		}
		return tx.
			Preload("Items", func(db *gorm.DB) *gorm.DB {
				return db.Order("payroll_item_created_at ASC")
			}).
			Where("payroll_id = ?", p.PayrollID).
			First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkPayrollPaid flips the run to its terminal state. Idempotent rejection:
// paying twice is a conflict, not a double payment.
func MarkPayrollPaid(ctx context.Context, db *gorm.DB, institutionID, payrollID uuid.UUID) (*m.Payroll, error) {
	var out m.Payroll
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockPayroll(tx, payrollID, institutionID)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&m.Payroll{}).
			Where("payroll_id = ?", p.PayrollID).
			Updates(map[string]interface{}{
				"payroll_status":     m.PayrollPaid,
				"payroll_paid_at":    now,
				"payroll_updated_at": now,
			}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		p.PayrollStatus = m.PayrollPaid
		p.PayrollPaidAt = &now
		out = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

/* ---------------- read models ---------------- */

func GetPayrollForStaff(ctx context.Context, db *gorm.DB, institutionID, staffID uuid.UUID, month, year int) (*m.Payroll, error) {
	var p m.Payroll
	if err := db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("payroll_item_created_at ASC")
		}).
		Where("payroll_staff_id = ? AND payroll_institution_id = ? AND payroll_month = ? AND payroll_year = ?",
			staffID, institutionID, month, year).
		First(&p).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "payroll not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &p, nil
}

// GetPayrollSummary aggregates one period: counts by status plus the net
// salary total across all runs.
func GetPayrollSummary(ctx context.Context, db *gorm.DB, institutionID uuid.UUID, month, year int) (*dto.PayrollSummaryResponse, error) {
	base := db.WithContext(ctx).Model(&m.Payroll{}).
		Where("payroll_institution_id = ? AND payroll_month = ? AND payroll_year = ?", institutionID, month, year)

	var total, paid int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if err := base.Session(&gorm.Session{}).
		Where("payroll_status = ?", m.PayrollPaid).
		Count(&paid).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var netTotal money.Amount
	row := base.Session(&gorm.Session{}).
		Select("COALESCE(SUM(payroll_net_salary), 0)").
		Row()
	if err := row.Scan(&netTotal); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return &dto.PayrollSummaryResponse{
		Month:          month,
		Year:           year,
		TotalPayrolls:  total,
		Paid:           paid,
		Pending:        total - paid,
		TotalNetSalary: netTotal,
	}, nil
}
