// file: internals/features/school/timetable/conflicts/route/conflict_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	conflictctl "sekolahku_backend/internals/features/school/timetable/conflicts/controller"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
)

func ConflictRoutes(api fiber.Router, store *repository.SlotStore) {
	ctl := conflictctl.NewConflictController(store)
	api.Get("/timetable-conflicts", ctl.List)
}
