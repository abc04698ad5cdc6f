// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsRoute "sekolahku_backend/internals/features/school/academics/route"
	conflictRoute "sekolahku_backend/internals/features/school/timetable/conflicts/route"
	generatorRoute "sekolahku_backend/internals/features/school/timetable/generator/route"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	slotRoute "sekolahku_backend/internals/features/school/timetable/slots/route"
	templateRoute "sekolahku_backend/internals/features/school/timetable/templates/route"
	workloadRoute "sekolahku_backend/internals/features/school/timetable/workload/route"
)

// SetupRoutes memasang seluruh endpoint di bawah /api. Satu SlotStore
// dipakai bersama supaya mutex per-kelas konsisten lintas endpoint.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	validate := validator.New()
	store := repository.NewSlotStore(db)

	api := app.Group("/api")

	log.Println("[INFO] Mounting timetable routes...")
	templateRoute.PeriodTemplateRoutes(api, db, validate)
	slotRoute.TimeSlotRoutes(api, store, validate)
	conflictRoute.ConflictRoutes(api, store)
	generatorRoute.GeneratorRoutes(api, store, validate)
	workloadRoute.TeacherScheduleRoutes(api, store)

	log.Println("[INFO] Mounting academics routes...")
	academicsRoute.AcademicsRoutes(api, db, validate)
}
