// file: internals/features/school/timetable/workload/route/workload_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	workloadctl "sekolahku_backend/internals/features/school/timetable/workload/controller"
)

func TeacherScheduleRoutes(api fiber.Router, store *repository.SlotStore) {
	ctl := workloadctl.NewTeacherScheduleController(store)
	api.Get("/teacher-schedules/:teacherId", ctl.GetByTeacher)
}
