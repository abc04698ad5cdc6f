// file: internals/features/school/timetable/templates/controller/period_template_controller.go
package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/timetable/templates/dto"
	"sekolahku_backend/internals/features/school/timetable/templates/model"
	helper "sekolahku_backend/internals/helpers"
)

type PeriodTemplateController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPeriodTemplateController(db *gorm.DB, v *validator.Validate) *PeriodTemplateController {
	return &PeriodTemplateController{DB: db, Validate: v}
}

func (ctl *PeriodTemplateController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.PeriodTemplateModel{})
	if active := c.Query("is_active"); active != "" {
		db = db.Where("period_templates_is_active = ?", active == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count templates")
	}

	var rows []model.PeriodTemplateModel
	if err := db.Order("period_templates_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch templates")
	}

	out := make([]dto.PeriodTemplateResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.NewPeriodTemplateResponse(&rows[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func (ctl *PeriodTemplateController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid template id")
	}

	var row model.PeriodTemplateModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "period_template_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "template not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch template")
	}
	return helper.JsonOK(c, "", dto.NewPeriodTemplateResponse(&row))
}

func (ctl *PeriodTemplateController) Create(c *fiber.Ctx) error {
	var req dto.CreatePeriodTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(ctl.Validate); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return helper.JsonValidationError(c, err)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var row model.PeriodTemplateModel
	req.ApplyToModel(&row)

	if err := ctl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "template name already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save template")
	}
	return helper.JsonCreated(c, "template created", dto.NewPeriodTemplateResponse(&row))
}

func (ctl *PeriodTemplateController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid template id")
	}

	var req dto.UpdatePeriodTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(ctl.Validate); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return helper.JsonValidationError(c, err)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var row model.PeriodTemplateModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "period_template_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "template not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch template")
	}

	req.ApplyToModel(&row)
	row.PeriodTemplatesUpdatedAt = time.Now()

	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "template name already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update template")
	}
	return helper.JsonUpdated(c, "template updated", dto.NewPeriodTemplateResponse(&row))
}

func (ctl *PeriodTemplateController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid template id")
	}

	tx := ctl.DB.WithContext(c.UserContext()).
		Delete(&model.PeriodTemplateModel{}, "period_template_id = ?", id)
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete template")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "template not found")
	}
	return helper.JsonDeleted(c, "template deleted", fiber.Map{"deleted": true})
}
