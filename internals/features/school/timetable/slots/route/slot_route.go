// file: internals/features/school/timetable/slots/route/slot_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	slotctl "sekolahku_backend/internals/features/school/timetable/slots/controller"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
)

// TimeSlotRoutes mendaftarkan endpoint slot store.
func TimeSlotRoutes(api fiber.Router, store *repository.SlotStore, v *validator.Validate) {
	ctl := slotctl.NewTimeSlotController(store, v)

	api.Get("/timetable", ctl.List)
	api.Post("/timetable-slots", ctl.Upsert)
	api.Delete("/timetable-slots/:id", ctl.Delete)
	api.Post("/timetable/swap", ctl.Swap)
}
