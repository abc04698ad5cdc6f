// file: internals/features/school/timetable/workload/controller/teacher_schedule_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
	"sekolahku_backend/internals/features/school/timetable/workload/service"
	helper "sekolahku_backend/internals/helpers"
)

type TeacherScheduleController struct {
	Store *repository.SlotStore
}

func NewTeacherScheduleController(store *repository.SlotStore) *TeacherScheduleController {
	return &TeacherScheduleController{Store: store}
}

// GetByTeacher — GET /teacher-schedules/:teacherId?template_id=&total_periods=
func (ctl *TeacherScheduleController) GetByTeacher(c *fiber.Ctx) error {
	teacherID := strings.TrimSpace(c.Params("teacherId"))
	if teacherID == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "teacher id is required")
	}

	db := ctl.Store.DB().WithContext(c.UserContext())

	var tpl *tplmodel.PeriodTemplateModel
	if raw := c.Query("template_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid template_id")
		}
		var row tplmodel.PeriodTemplateModel
		if err := db.First(&row, "period_template_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "template not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch template")
		}
		tpl = &row
	} else {
		var row tplmodel.PeriodTemplateModel
		err := db.Where("period_templates_is_active = ?", true).
			Order("period_templates_created_at DESC").
			First(&row).Error
		switch {
		case err == nil:
			tpl = &row
		case errors.Is(err, gorm.ErrRecordNotFound):
			// tanpa template: free_slots kosong, total dari assignment
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch template")
		}
	}

	slots, err := ctl.Store.List(c.UserContext(), repository.SlotFilter{})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch slots")
	}

	schedule := service.BuildTeacherSchedule(teacherID, slots, tpl, c.QueryInt("total_periods"))
	return helper.JsonOK(c, "", schedule)
}
