package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/finance/fees/controller"
	"schoolku_backend/internals/middlewares"
)

// FeeAdminRoutes mounts the authenticated fee endpoints under the admin group.
func FeeAdminRoutes(admin fiber.Router, db *gorm.DB) {
	structureCtl := controller.NewFeeStructureController(db)
	assignmentCtl := controller.NewFeeAssignmentController(db)
	paymentCtl := controller.NewFeePaymentController(db)

	fees := admin.Group("/fees")

	// Catalog
	structures := fees.Group("/structures")
	structures.Post("/", structureCtl.Create)
	structures.Get("/", structureCtl.List)
	structures.Get("/:id", structureCtl.GetFull)
	structures.Post("/:id/heads", structureCtl.AddHeads)
	structures.Post("/:id/installments", structureCtl.AddInstallments)
	structures.Post("/:id/discounts", structureCtl.AddDiscounts)
	structures.Post("/:id/fine-rules", structureCtl.AddFineRules)

	// Assignments
	assignments := fees.Group("/assignments")
	assignments.Post("/", assignmentCtl.Assign)
	assignments.Get("/student/:student_id", assignmentCtl.ListForStudent)
	assignments.Get("/:id", assignmentCtl.GetByID)

	// Payments
	payments := fees.Group("/payments")
	payments.Post("/", paymentCtl.Collect)
	payments.Post("/gateway/order", paymentCtl.CreateGatewayOrder)
}

// FeeWebhookRoutes mounts the unauthenticated gateway callback. Signature
// verification is the credential; the rate limiter keeps brute force cheap
// to ignore.
func FeeWebhookRoutes(api fiber.Router, db *gorm.DB) {
	paymentCtl := controller.NewFeePaymentController(db)

	webhooks := api.Group("/webhooks", middlewares.WebhookRateLimiter())
	webhooks.Post("/fees/gateway", paymentCtl.GatewayCallback)
}
