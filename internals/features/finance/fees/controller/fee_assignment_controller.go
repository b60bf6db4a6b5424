package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

/* =======================================================
   FEE ASSIGNMENTS (AUTHORIZED + TENANT-SCOPED)
======================================================= */

type FeeAssignmentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFeeAssignmentController(db *gorm.DB) *FeeAssignmentController {
	return &FeeAssignmentController{DB: db, Validate: validator.New()}
}

// POST /api/a/fees/assignments
//
// Assigns one structure to a batch of students. All-or-nothing: if any
// student fails, no assignment from the batch survives.
func (ctl *FeeAssignmentController) Assign(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AssignFeesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	created, err := service.AssignFees(c.Context(), ctl.DB, institutionID, userID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "fees assigned", dto.FromFeeAssignmentModels(created))
}

// GET /api/a/fees/assignments/:id
//
// Full view: the assignment, its structure snapshot source, and the ledger
// in creation order (oldest first — replayable).
func (ctl *FeeAssignmentController) GetByID(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	assignmentID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var a m.FeeAssignment
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Structure").
		Preload("Ledger", func(db *gorm.DB) *gorm.DB {
			return db.Order("fee_ledger_created_at ASC")
		}).
		Where("fee_assignment_id = ? AND fee_assignment_institution_id = ?", assignmentID, institutionID).
		First(&a).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "fee assignment not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee assignment", dto.FromFeeAssignmentModel(a))
}

// GET /api/a/fees/assignments/student/:student_id
func (ctl *FeeAssignmentController) ListForStudent(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := parseUUIDParam(c, "student_id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var rows []m.FeeAssignment
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Structure").
		Where("fee_assignment_student_id = ? AND fee_assignment_institution_id = ?", studentID, institutionID).
		Order("fee_assignment_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee assignments", dto.FromFeeAssignmentModels(rows))
}
