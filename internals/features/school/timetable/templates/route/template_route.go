// file: internals/features/school/timetable/templates/route/template_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	templatectl "sekolahku_backend/internals/features/school/timetable/templates/controller"
)

// PeriodTemplateRoutes mendaftarkan CRUD template grid.
func PeriodTemplateRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := templatectl.NewPeriodTemplateController(db, v)

	g := api.Group("/timetable-templates")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.GetByID)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
