// file: internals/features/school/timetable/conflicts/controller/conflict_controller.go
package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/timetable/conflicts/service"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
	helper "sekolahku_backend/internals/helpers"
)

type ConflictController struct {
	Store *repository.SlotStore
}

func NewConflictController(store *repository.SlotStore) *ConflictController {
	return &ConflictController{Store: store}
}

// loadTemplate: pakai template_id kalau diberikan, kalau tidak ambil
// template aktif terbaru. Boleh nil (cek no_break dilewati).
func (ctl *ConflictController) loadTemplate(c *fiber.Ctx) (*tplmodel.PeriodTemplateModel, error) {
	db := ctl.Store.DB().WithContext(c.UserContext())

	if raw := c.Query("template_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "invalid template_id")
		}
		var tpl tplmodel.PeriodTemplateModel
		if err := db.First(&tpl, "period_template_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "template not found")
			}
			return nil, err
		}
		return &tpl, nil
	}

	var tpl tplmodel.PeriodTemplateModel
	err := db.Where("period_templates_is_active = ?", true).
		Order("period_templates_created_at DESC").
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

// List — GET /timetable-conflicts?template_id=&class=&overload_run=
func (ctl *ConflictController) List(c *fiber.Ctx) error {
	tpl, err := ctl.loadTemplate(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	slots, err := ctl.Store.List(c.UserContext(), repository.SlotFilter{ClassID: c.Query("class")})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch slots")
	}

	opt := service.Options{}
	if raw := c.Query("overload_run"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			opt.OverloadRun = n
		}
	}

	conflicts := service.Detect(slots, tpl, opt)

	bySeverity := map[service.Severity]int{}
	for _, cf := range conflicts {
		bySeverity[cf.Severity]++
	}
	return helper.JsonOK(c, "", fiber.Map{
		"conflicts":   conflicts,
		"total":       len(conflicts),
		"by_severity": bySeverity,
	})
}
