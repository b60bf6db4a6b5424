package controller

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/payroll/dto"
	"schoolku_backend/internals/features/payroll/service"
	helper "schoolku_backend/internals/helpers"
)

/* =======================================================
   PAYROLL (AUTHORIZED + TENANT-SCOPED)
======================================================= */

type PayrollController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPayrollController(db *gorm.DB) *PayrollController {
	return &PayrollController{DB: db, Validate: validator.New()}
}

func parseUUIDParam(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+param)
	}
	return id, nil
}

func parsePeriod(c *fiber.Ctx) (month, year int, err error) {
	month, _ = strconv.Atoi(c.Query("month"))
	year, _ = strconv.Atoi(c.Query("year"))
	if month < 1 || month > 12 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "year is out of range")
	}
	return month, year, nil
}

/* ---------------- salary structure ---------------- */

// POST /api/a/payroll/salary-structures
func (ctl *PayrollController) CreateSalaryStructure(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateSalaryStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	s, err := service.CreateSalaryStructure(c.Context(), ctl.DB, institutionID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "salary structure created", s)
}

// PATCH /api/a/payroll/salary-structures/:staff_id
func (ctl *PayrollController) UpdateSalaryStructure(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := parseUUIDParam(c, "staff_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateSalaryStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	s, err := service.UpdateSalaryStructure(c.Context(), ctl.DB, institutionID, staffID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "salary structure updated", s)
}

// GET /api/a/payroll/salary-structures/:staff_id
func (ctl *PayrollController) GetSalaryStructure(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := parseUUIDParam(c, "staff_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	s, err := service.GetSalaryStructure(c.Context(), ctl.DB, institutionID, staffID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "salary structure", s)
}

/* ---------------- payroll run ---------------- */

// POST /api/a/payroll/generate
func (ctl *PayrollController) Generate(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.GeneratePayrollRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.GeneratePayroll(c.Context(), ctl.DB, institutionID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "payroll generated", p)
}

// POST /api/a/payroll/:id/items
func (ctl *PayrollController) AddItem(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	payrollID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PayrollItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.AddItem(c.Context(), ctl.DB, institutionID, payrollID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "payroll item added", p)
}

// PUT /api/a/payroll/:id/items/:item_id
func (ctl *PayrollController) UpdateItem(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	payrollID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	itemID, err := parseUUIDParam(c, "item_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.PayrollItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p, err := service.UpdateItem(c.Context(), ctl.DB, institutionID, payrollID, itemID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payroll item updated", p)
}

// DELETE /api/a/payroll/:id/items/:item_id
func (ctl *PayrollController) DeleteItem(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	payrollID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	itemID, err := parseUUIDParam(c, "item_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p, err := service.DeleteItem(c.Context(), ctl.DB, institutionID, payrollID, itemID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payroll item deleted", p)
}

// POST /api/a/payroll/:id/mark-paid
func (ctl *PayrollController) MarkPaid(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	payrollID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p, err := service.MarkPayrollPaid(c.Context(), ctl.DB, institutionID, payrollID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payroll marked paid", p)
}

/* ---------------- read models ---------------- */

// GET /api/a/payroll/staff/:staff_id?month=&year=
func (ctl *PayrollController) GetForStaff(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	staffID, err := parseUUIDParam(c, "staff_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	month, year, err := parsePeriod(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p, err := service.GetPayrollForStaff(c.Context(), ctl.DB, institutionID, staffID, month, year)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payroll", p)
}

// GET /api/a/payroll/summary?month=&year=
func (ctl *PayrollController) GetSummary(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	month, year, err := parsePeriod(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	summary, err := service.GetPayrollSummary(c.Context(), ctl.DB, institutionID, month, year)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payroll summary", summary)
}
