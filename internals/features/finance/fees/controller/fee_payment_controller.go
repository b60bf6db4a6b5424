package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/dto"
	"schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
)

/* =======================================================
   FEE PAYMENTS — offline collection + gateway order/callback
======================================================= */

type FeePaymentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewFeePaymentController(db *gorm.DB) *FeePaymentController {
	return &FeePaymentController{DB: db, Validate: validator.New()}
}

// POST /api/a/fees/payments
//
// Offline collection (cash/cheque/transfer/UPI). Settles immediately:
// payment row + assignment update + ledger entry in one transaction.
func (ctl *FeePaymentController) Collect(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CollectPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	payment, assignment, err := service.CollectPayment(c.Context(), ctl.DB, institutionID, userID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "payment recorded", dto.CollectPaymentResponse{
		Payment:    *payment,
		Assignment: dto.FromFeeAssignmentModel(*assignment),
	})
}

// POST /api/a/fees/payments/gateway/order
//
// Phase 1 of the online flow: a PENDING payment row bound to a gateway
// order id. No balance effect until the verified callback arrives.
func (ctl *FeePaymentController) CreateGatewayOrder(c *fiber.Ctx) error {
	institutionID, err := helper.GetInstitutionIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateGatewayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	resp, err := service.CreateGatewayOrder(c.Context(), ctl.DB, institutionID, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, "gateway order created", resp)
}

// POST /api/webhooks/fees/gateway
//
// Phase 2: inbound confirmation. Unauthenticated on purpose — the HMAC
// signature is the credential. Every callback is journaled, verified or not.
func (ctl *FeePaymentController) GatewayCallback(c *fiber.Ctx) error {
	var req dto.GatewayCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	payment, assignment, err := service.VerifyPayment(c.Context(), ctl.DB, req)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "payment verified", dto.CollectPaymentResponse{
		Payment:    *payment,
		Assignment: dto.FromFeeAssignmentModel(*assignment),
	})
}
