// file: internals/features/school/academics/controller/room_controller.go
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

type RoomController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRoomController(db *gorm.DB, v *validator.Validate) *RoomController {
	return &RoomController{DB: db, Validate: v}
}

func (ctl *RoomController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	db := ctl.DB.WithContext(c.UserContext()).Model(&model.RoomModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		db = db.Where("rooms_name ILIKE ?", "%"+q+"%")
	}
	if active := c.Query("is_active"); active != "" {
		db = db.Where("rooms_is_active = ?", active == "true")
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to count rooms")
	}

	var rows []model.RoomModel
	if err := db.Order("room_id ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch rooms")
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(total, paging.Page, paging.PerPage))
}

func (ctl *RoomController) GetByID(c *fiber.Ctx) error {
	var row model.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "room_id = ?", strings.ToUpper(c.Params("id"))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "room not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch room")
	}
	return helper.JsonOK(c, "", row)
}

func (ctl *RoomController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoomRequest
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
			return helper.JsonError(c, fiber.StatusConflict, "room id already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save room")
	}
	return helper.JsonCreated(c, "room created", row)
}

func (ctl *RoomController) Update(c *fiber.Ctx) error {
	var req dto.UpdateRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var row model.RoomModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&row, "room_id = ?", strings.ToUpper(c.Params("id"))).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "room not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch room")
	}

	req.ApplyToModel(&row)
	if err := ctl.DB.WithContext(c.UserContext()).Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to update room")
	}
	return helper.JsonUpdated(c, "room updated", row)
}

func (ctl *RoomController) Delete(c *fiber.Ctx) error {
	tx := ctl.DB.WithContext(c.UserContext()).
		Delete(&model.RoomModel{}, "room_id = ?", strings.ToUpper(c.Params("id")))
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete room")
	}
	if tx.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "room not found")
	}
	return helper.JsonDeleted(c, "room deleted", fiber.Map{"deleted": true})
}
