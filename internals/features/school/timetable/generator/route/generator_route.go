// file: internals/features/school/timetable/generator/route/generator_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	genctl "sekolahku_backend/internals/features/school/timetable/generator/controller"
	"sekolahku_backend/internals/features/school/timetable/generator/service"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	"sekolahku_backend/internals/middlewares"
)

// GeneratorRoutes — endpoint generate/optimize dibatasi rate limiter
// khusus karena pencarian jadwal relatif mahal.
func GeneratorRoutes(api fiber.Router, store *repository.SlotStore, v *validator.Validate) {
	ctl := genctl.NewGeneratorController(service.NewGenerator(store), v)

	limited := api.Group("/timetable", middlewares.GeneratorRateLimiter())
	limited.Post("/generate", ctl.Generate)
	limited.Post("/optimize", ctl.Optimize)
}
