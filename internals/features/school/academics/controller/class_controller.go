// file: internals/features/school/academics/controller/class_controller.go
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

type ClassController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewClassController(db *gorm.DB, v *validator.Validate) *ClassController {
	return &ClassController{DB: db, Validate: v}
}

func (ctl *ClassController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.ClassModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("classes_name ILIKE ?", "%"+q+"%")
	}
	if active := c.Query("is_active"); active != "" {
		db = db.Where("classes_is_active = ?", active == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count classes")
	}

	var rows []model.ClassModel
	if err := db.Order("class_id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch classes")
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func (ctl *ClassController) GetByID(c *fiber.Ctx) error {
	var row model.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "class_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch class")
	}
	return helper.JsonOK(c, "", row)
}

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	var req dto.CreateClassRequest
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
			return helper.JsonError(c, fiber.StatusConflict, "class id already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save class")
	}
	return helper.JsonCreated(c, "class created", row)
}

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	var req dto.UpdateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row model.ClassModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "class_id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch class")
	}

	req.ApplyToModel(&row)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update class")
	}
	return helper.JsonUpdated(c, "class updated", row)
}

func (ctl *ClassController) Delete(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).
		Delete(&model.ClassModel{}, "class_id = ?", c.Params("id"))
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete class")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "class not found")
	}
	return helper.JsonDeleted(c, "class deleted", fiber.Map{"deleted": true})
}
