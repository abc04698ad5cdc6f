// file: internals/features/school/academics/controller/subject_controller.go
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

type SubjectController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSubjectController(db *gorm.DB, v *validator.Validate) *SubjectController {
	return &SubjectController{DB: db, Validate: v}
}

func (ctl *SubjectController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.SubjectModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("subjects_name ILIKE ?", "%"+q+"%")
	}
	if active := c.Query("is_active"); active != "" {
		db = db.Where("subjects_is_active = ?", active == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count subjects")
	}

	var rows []model.SubjectModel
	if err := db.Order("subject_id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch subjects")
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func (ctl *SubjectController) GetByID(c *fiber.Ctx) error {
	var row model.SubjectModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "subject_id = ?", strings.ToUpper(c.Params("id"))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch subject")
	}
	return helper.JsonOK(c, "", row)
}

func (ctl *SubjectController) Create(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
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
			return helper.JsonError(c, fiber.StatusConflict, "subject id already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save subject")
	}
	return helper.JsonCreated(c, "subject created", row)
}

func (ctl *SubjectController) Update(c *fiber.Ctx) error {
	var req dto.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row model.SubjectModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "subject_id = ?", strings.ToUpper(c.Params("id"))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch subject")
	}

	req.ApplyToModel(&row)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update subject")
	}
	return helper.JsonUpdated(c, "subject updated", row)
}

func (ctl *SubjectController) Delete(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).
		Delete(&model.SubjectModel{}, "subject_id = ?", strings.ToUpper(c.Params("id")))
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete subject")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "subject not found")
	}
	return helper.JsonDeleted(c, "subject deleted", fiber.Map{"deleted": true})
}
