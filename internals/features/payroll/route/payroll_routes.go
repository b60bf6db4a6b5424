package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/payroll/controller"
)

// PayrollAdminRoutes mounts the authenticated payroll endpoints.
func PayrollAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := controller.NewPayrollController(db)

	payroll := admin.Group("/payroll")

	// Salary structures
	salaries := payroll.Group("/salary-structures")
	salaries.Post("/", ctl.CreateSalaryStructure)
	salaries.Get("/:staff_id", ctl.GetSalaryStructure)
	salaries.Patch("/:staff_id", ctl.UpdateSalaryStructure)

	// Runs & items
	payroll.Post("/generate", ctl.Generate)
	payroll.Get("/summary", ctl.GetSummary)
	payroll.Get("/staff/:staff_id", ctl.GetForStaff)
	payroll.Post("/:id/items", ctl.AddItem)
	payroll.Put("/:id/items/:item_id", ctl.UpdateItem)
	payroll.Delete("/:id/items/:item_id", ctl.DeleteItem)
	payroll.Post("/:id/mark-paid", ctl.MarkPaid)
}
