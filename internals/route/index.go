package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	feeRoute "schoolku_backend/internals/features/finance/fees/route"
	payrollRoute "schoolku_backend/internals/features/payroll/route"
	"schoolku_backend/internals/middlewares/auth"
)

// SetupRoutes mounts every route group.
//
//	/api/a        → authenticated admin surface (fees + payroll)
//	/api/webhooks → unauthenticated gateway callbacks (signature-verified)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	log.Println("[INFO] Setting up ADMIN group (JWT)...")
	admin := api.Group("/a",
		auth.AuthJWT(auth.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Setting up FeeRoutes...")
	feeRoute.FeeAdminRoutes(admin, db)

	log.Println("[INFO] Setting up PayrollRoutes...")
	payrollRoute.PayrollAdminRoutes(admin, db)

	log.Println("[INFO] Setting up Webhook routes...")
	feeRoute.FeeWebhookRoutes(api, db)
}
