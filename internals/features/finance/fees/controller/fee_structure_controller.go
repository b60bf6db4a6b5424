package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	m "schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
)

/* =======================================================
   FEE STRUCTURE CATALOG (AUTHORIZED + TENANT-SCOPED)
======================================================= */

type FeeStructureController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFeeStructureController(db *gorm.DB) *FeeStructureController {
	return &FeeStructureController{DB: db, Validate: validator.New()}
}

func parseUUIDParam(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+param)
	}
	return id, nil
}

// findStructure loads a structure scoped to the caller's institution.
func (ctl *FeeStructureController) findStructure(c *fiber.Ctx, structureID, institutionID uuid.UUID) (*m.FeeStructure, error) {
	var s m.FeeStructure
	if err := ctl.DB.WithContext(c.Context()).
		Where("fee_structure_id = ? AND fee_structure_institution_id = ?", structureID, institutionID).
		First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "fee structure not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return &s, nil
}

// POST /api/a/fees/structures
func (ctl *FeeStructureController) Create(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	structure := req.ToModel(institutionID)
	if err := ctl.DB.WithContext(c.Context()).Create(structure).Error; err != nil {
		return helper.FromFiberError(c, helper.MapDBError(err, "fee structure code already exists"))
	}
	return helper.JsonCreated(c, "fee structure created", structure)
}

// POST /api/a/fees/structures/:id/heads
//
// Each head line either references an existing catalog entry or carries a
// name, in which case the catalog entry is created on the fly (code derived
// from the name when omitted).
func (ctl *FeeStructureController) AddHeads(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	structureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AddStructureHeadsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	structure, err := ctl.findStructure(c, structureID, institutionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	created := make([]m.FeeStructureHead, 0, len(req.Heads))
	txErr := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		for _, in := range req.Heads {
			headID, err := resolveFeeHead(tx, institutionID, in)
			if err != nil {
				return err
			}
			sh := m.FeeStructureHead{
				FeeStructureHeadStructureID: structure.FeeStructureID,
				FeeStructureHeadHeadID:      headID,
				FeeStructureHeadAmount:      in.Amount,
				FeeStructureHeadIsOptional:  in.IsOptional,
			}
			if err := tx.Create(&sh).Error; err != nil {
				return helper.MapDBError(err, "head already linked to this fee structure")
			}
			created = append(created, sh)
		}
		return nil
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonCreated(c, "fee heads linked", created)
}

// resolveFeeHead returns the referenced catalog head id, creating the
// catalog entry when only a name was given. Reuses an existing entry with
// the same derived code instead of failing on the unique index.
func resolveFeeHead(tx *gorm.DB, institutionID uuid.UUID, in dto.StructureHeadInput) (uuid.UUID, error) {
	if in.FeeHeadID != nil {
		var head m.FeeHead
		if err := tx.
			Where("fee_head_id = ? AND fee_head_institution_id = ?", *in.FeeHeadID, institutionID).
			First(&head).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return uuid.Nil, fiber.NewError(fiber.StatusNotFound, "fee head not found")
			}
			return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return head.FeeHeadID, nil
	}

	code := in.DeriveCode()

	var existing m.FeeHead
	err := tx.
		Where("fee_head_institution_id = ? AND fee_head_code = ?", institutionID, code).
		First(&existing).Error
	if err == nil {
		return existing.FeeHeadID, nil
	}
	if err != gorm.ErrRecordNotFound {
		return uuid.Nil, fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	head := m.FeeHead{
		FeeHeadInstitutionID: institutionID,
		FeeHeadName:          in.Name,
		FeeHeadCode:          code,
		FeeHeadDescription:   in.Description,
		FeeHeadDefaultAmount: in.Amount,
		FeeHeadIsMandatory:   true,
	}
	if in.IsMandatory != nil {
		head.FeeHeadIsMandatory = *in.IsMandatory
	}
	if in.Currency != nil {
		head.FeeHeadCurrency = *in.Currency
	}
	if err := tx.Create(&head).Error; err != nil {
		return uuid.Nil, helper.MapDBError(err, "fee head code already exists")
	}
	return head.FeeHeadID, nil
}

// POST /api/a/fees/structures/:id/installments
func (ctl *FeeStructureController) AddInstallments(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	structureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AddInstallmentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	structure, err := ctl.findStructure(c, structureID, institutionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows := make([]m.FeeInstallment, 0, len(req.Installments))
	for _, in := range req.Installments {
		rows = append(rows, m.FeeInstallment{
			FeeInstallmentStructureID: structure.FeeStructureID,
			FeeInstallmentNo:          in.InstallmentNo,
			FeeInstallmentType:        in.InstallmentType,
			FeeInstallmentDueDate:     in.DueDate,
			FeeInstallmentAmount:      in.Amount,
		})
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "installments added", rows)
}

// POST /api/a/fees/structures/:id/discounts
func (ctl *FeeStructureController) AddDiscounts(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	structureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AddDiscountsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	structure, err := ctl.findStructure(c, structureID, institutionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows := make([]m.FeeDiscount, 0, len(req.Discounts))
	for _, in := range req.Discounts {
		rows = append(rows, m.FeeDiscount{
			FeeDiscountStructureID:     structure.FeeStructureID,
			FeeDiscountName:            in.Name,
			FeeDiscountDescription:     in.Description,
			FeeDiscountType:            m.FeeDiscountType(in.DiscountType),
			FeeDiscountAmount:          in.Amount,
			FeeDiscountAppliesToHeadID: in.AppliesToHeadID,
		})
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "discounts added", rows)
}

// POST /api/a/fees/structures/:id/fine-rules
func (ctl *FeeStructureController) AddFineRules(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	structureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.AddFineRulesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	structure, err := ctl.findStructure(c, structureID, institutionID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows := make([]m.FeeFineRule, 0, len(req.FineRules))
	for _, in := range req.FineRules {
		rows = append(rows, m.FeeFineRule{
			FeeFineRuleStructureID: structure.FeeStructureID,
			FeeFineRuleName:        in.Name,
			FeeFineRuleDescription: in.Description,
			FeeFineRuleType:        m.FeeFineType(in.FineType),
			FeeFineRuleValue:       in.Value,
			FeeFineRuleGraceDays:   in.GraceDays,
		})
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "fine rules added", rows)
}

// GET /api/a/fees/structures
func (ctl *FeeStructureController) List(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).
		Model(&m.FeeStructure{}).
		Where("fee_structure_institution_id = ?", institutionID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []m.FeeStructure
	if err := q.
		Order("fee_structure_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "fee structures", fiber.Map{
		"items":      rows,
		"pagination": helper.BuildPagination(total, p),
	})
}

// GET /api/a/fees/structures/:id
func (ctl *FeeStructureController) GetFull(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	structureID, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var s m.FeeStructure
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Heads.Head").
		Preload("Installments").
		Preload("Discounts").
		Preload("FineRules").
		Where("fee_structure_id = ? AND fee_structure_institution_id = ?", structureID, institutionID).
		First(&s).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "fee structure not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "fee structure", s)
}
