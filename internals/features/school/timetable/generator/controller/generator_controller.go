// file: internals/features/school/timetable/generator/controller/generator_controller.go
package controller

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/timetable/generator/dto"
	"sekolahku_backend/internals/features/school/timetable/generator/service"
	slotdto "sekolahku_backend/internals/features/school/timetable/slots/dto"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
	helper "sekolahku_backend/internals/helpers"
)

type GeneratorController struct {
	Gen      *service.Generator
	Validate *validator.Validate
}

func NewGeneratorController(gen *service.Generator, v *validator.Validate) *GeneratorController {
	return &GeneratorController{Gen: gen, Validate: v}
}

func (ctl *GeneratorController) loadTemplate(c *fiber.Ctx, rawID string) (*tplmodel.PeriodTemplateModel, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid template_id")
	}
	var tpl tplmodel.PeriodTemplateModel
	db := ctl.Gen.Store.DB().WithContext(c.UserContext())
	if err := db.First(&tpl, "period_template_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "template not found")
		}
		return nil, err
	}
	return &tpl, nil
}

func (ctl *GeneratorController) writeResult(c *fiber.Ctx, res *service.Result, err error) error {
	if err != nil {
		var capErr *service.CapacityExceededError
		switch {
		case errors.As(err, &capErr):
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, capErr.Error())
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return helper.JsonError(c, fiber.StatusRequestTimeout, "generation cancelled")
		default:
			return helper.FromFiberError(c, err)
		}
	}
	return helper.JsonOK(c, "timetable generated", fiber.Map{
		"slots":                slotdto.NewTimeSlotResponses(res.Slots),
		"generated":            len(res.Slots),
		"unresolved_conflicts": res.Unresolved,
	})
}

// Generate — POST /timetable/generate
func (ctl *GeneratorController) Generate(c *fiber.Ctx) error {
	var req dto.GenerateTimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tpl, err := ctl.loadTemplate(c, req.TemplateID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := ctl.Gen.Generate(c.UserContext(), tpl, req.Classes, req.Constraints)
	return ctl.writeResult(c, res, err)
}

// Optimize — POST /timetable/optimize
// Rencana diturunkan dari assignment kelas yang sudah ada; slot
// terkunci dipertahankan.
func (ctl *GeneratorController) Optimize(c *fiber.Ctx) error {
	var req dto.OptimizeTimetableRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	tpl, err := ctl.loadTemplate(c, req.TemplateID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	res, err := ctl.Gen.Optimize(c.UserContext(), tpl, req.ClassID, req.Constraints)
	if errors.Is(err, service.ErrNothingToOptimize) {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return ctl.writeResult(c, res, err)
}
