// file: internals/features/school/academics/controller/teacher_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/school/academics/dto"
	"sekolahku_backend/internals/features/school/academics/model"
	helper "sekolahku_backend/internals/helpers"
)

type TeacherController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTeacherController(db *gorm.DB, v *validator.Validate) *TeacherController {
	return &TeacherController{DB: db, Validate: v}
}

func (ctl *TeacherController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.TeacherModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("teachers_name ILIKE ?", "%"+q+"%")
	}
	if active := c.Query("is_active"); active != "" {
		db = db.Where("teachers_is_active = ?", active == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count teachers")
	}

	var rows []model.TeacherModel
	if err := db.Order("teacher_id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch teachers")
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func (ctl *TeacherController) GetByID(c *fiber.Ctx) error {
	var row model.TeacherModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "teacher_id = ?", strings.ToUpper(c.Params("id"))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "teacher not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch teacher")
	}
	return helper.JsonOK(c, "", row)
}

func (ctl *TeacherController) Create(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	row := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "teacher id already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save teacher")
	}
	return helper.JsonCreated(c, "teacher created", row)
}

func (ctl *TeacherController) Update(c *fiber.Ctx) error {
	var req dto.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row model.TeacherModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "teacher_id = ?", strings.ToUpper(c.Params("id"))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "teacher not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch teacher")
	}

	req.ApplyToModel(&row)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update teacher")
	}
	return helper.JsonUpdated(c, "teacher updated", row)
}

func (ctl *TeacherController) Delete(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).
		Delete(&model.TeacherModel{}, "teacher_id = ?", strings.ToUpper(c.Params("id")))
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete teacher")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "teacher not found")
	}
	return helper.JsonDeleted(c, "teacher deleted", fiber.Map{"deleted": true})
}
