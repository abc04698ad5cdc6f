// file: internals/features/school/academics/route/academics_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsctl "sekolahku_backend/internals/features/school/academics/controller"
)

// AcademicsRoutes — direktori master data yang ID-nya dirujuk timetable.
func AcademicsRoutes(api fiber.Router, db *gorm.DB, v *validator.Validate) {
	classes := academicsctl.NewClassController(db, v)
	g := api.Group("/classes")
	g.Get("/", classes.List)
	g.Post("/", classes.Create)
	g.Get("/:id", classes.GetByID)
	g.Put("/:id", classes.Update)
	g.Delete("/:id", classes.Delete)

	subjects := academicsctl.NewSubjectController(db, v)
	g = api.Group("/subjects")
	g.Get("/", subjects.List)
	g.Post("/", subjects.Create)
	g.Get("/:id", subjects.GetByID)
	g.Put("/:id", subjects.Update)
	g.Delete("/:id", subjects.Delete)

	teachers := academicsctl.NewTeacherController(db, v)
	g = api.Group("/teachers")
	g.Get("/", teachers.List)
	g.Post("/", teachers.Create)
	g.Get("/:id", teachers.GetByID)
	g.Put("/:id", teachers.Update)
	g.Delete("/:id", teachers.Delete)

	rooms := academicsctl.NewRoomController(db, v)
	g = api.Group("/rooms")
	g.Get("/", rooms.List)
	g.Post("/", rooms.Create)
	g.Get("/:id", rooms.GetByID)
	g.Put("/:id", rooms.Update)
	g.Delete("/:id", rooms.Delete)
}
