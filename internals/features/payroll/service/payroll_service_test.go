package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/finance/money"
	"schoolku_backend/internals/features/payroll/dto"
	m "schoolku_backend/internals/features/payroll/model"
)

func TestComputeFromStructure(t *testing.T) {
	s := &m.SalaryStructure{
		SalaryStructureBasicPay:   money.FromInt(30000),
		SalaryStructureHRA:        money.FromInt(5000),
		SalaryStructureAllowances: money.FromInt(2000),
		SalaryStructureDeductions: money.FromInt(1000),
	}

	gross, deductions, net := computeFromStructure(s)
	assert.True(t, gross.Equal(money.FromInt(37000)))
	assert.True(t, deductions.Equal(money.FromInt(1000)))
	assert.True(t, net.Equal(money.FromInt(36000)))
}

func TestComputeFromStructureNoDeductions(t *testing.T) {
	s := &m.SalaryStructure{
		SalaryStructureBasicPay: money.FromInt(25000),
	}

	gross, deductions, net := computeFromStructure(s)
	assert.True(t, gross.Equal(money.FromInt(25000)))
	assert.True(t, deductions.IsZero())
	assert.True(t, net.Equal(gross))
}

func TestRecalcTotals(t *testing.T) {
	items := []m.PayrollItem{
		{PayrollItemLabel: "Base salary", PayrollItemAmount: money.FromInt(37000), PayrollItemType: m.PayrollItemEarning},
		{PayrollItemLabel: "Fixed deductions", PayrollItemAmount: money.FromInt(1000), PayrollItemType: m.PayrollItemDeduction},
		{PayrollItemLabel: "Exam duty bonus", PayrollItemAmount: money.FromInt(2500), PayrollItemType: m.PayrollItemEarning},
		{PayrollItemLabel: "Unpaid leave", PayrollItemAmount: money.FromInt(1200), PayrollItemType: m.PayrollItemDeduction},
	}

	gross, totalDeductions, net := recalcTotals(items)
	assert.True(t, gross.Equal(money.FromInt(39500)))
	assert.True(t, totalDeductions.Equal(money.FromInt(2200)))
	assert.True(t, net.Equal(money.FromInt(37300)))
}

// Generation seeds the computed gross as a "Base salary" EARNING item, so a
// recalculation straight after generation reproduces exactly the
// generation-time totals instead of discarding the gross.
func TestRecalcMatchesGenerationSeed(t *testing.T) {
	s := &m.SalaryStructure{
		SalaryStructureBasicPay:   money.FromInt(30000),
		SalaryStructureHRA:        money.FromInt(5000),
		SalaryStructureAllowances: money.FromInt(2000),
		SalaryStructureDeductions: money.FromInt(1000),
	}
	gross, deductions, net := computeFromStructure(s)

	seeded := []m.PayrollItem{
		{PayrollItemLabel: "Base salary", PayrollItemAmount: gross, PayrollItemType: m.PayrollItemEarning},
		{PayrollItemLabel: "Fixed deductions", PayrollItemAmount: deductions, PayrollItemType: m.PayrollItemDeduction},
	}
	g2, d2, n2 := recalcTotals(seeded)
	assert.True(t, g2.Equal(gross))
	assert.True(t, d2.Equal(deductions))
	assert.True(t, n2.Equal(net))
}

func TestRecalcTotalsEmpty(t *testing.T) {
	gross, deductions, net := recalcTotals(nil)
	assert.True(t, gross.IsZero())
	assert.True(t, deductions.IsZero())
	assert.True(t, net.IsZero())
}

func TestValidateItem(t *testing.T) {
	assert.NoError(t, validateItem(dto.PayrollItemRequest{
		Label:  "Bonus",
		Amount: money.FromInt(500),
		Type:   m.PayrollItemEarning,
	}))

	err := validateItem(dto.PayrollItemRequest{
		Label:  "Bonus",
		Amount: money.Zero,
		Type:   m.PayrollItemEarning,
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
}

func TestPayrollIsLocked(t *testing.T) {
	p := &m.Payroll{PayrollStatus: m.PayrollGenerated}
	assert.False(t, p.IsLocked())
	p.PayrollStatus = m.PayrollPaid
	assert.True(t, p.IsLocked())
}
