// file: internals/features/school/timetable/slots/controller/time_slot_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sekolahku_backend/internals/features/school/timetable/slots/dto"
	"sekolahku_backend/internals/features/school/timetable/slots/model"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	helper "sekolahku_backend/internals/helpers"
)

type TimeSlotController struct {
	Store    *repository.SlotStore
	Validate *validator.Validate
}

func NewTimeSlotController(store *repository.SlotStore, v *validator.Validate) *TimeSlotController {
	return &TimeSlotController{Store: store, Validate: v}
}

// storeErrStatus memetakan error taksonomi store ke status HTTP.
func storeErrStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, repository.ErrSlotNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, repository.ErrSlotLocked):
		return fiber.StatusLocked, true
	case errors.Is(err, repository.ErrDuplicateSlot):
		return fiber.StatusConflict, true
	}
	return 0, false
}

// List — GET /timetable?class=&day=
func (ctl *TimeSlotController) List(c *fiber.Ctx) error {
	f := repository.SlotFilter{
		ClassID: c.Query("class"),
		Day:     c.Query("day"),
	}
	rows, err := ctl.Store.List(c.UserContext(), f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to fetch timetable")
	}
	return helper.JsonOK(c, "", dto.NewTimeSlotResponses(rows))
}

// Upsert — POST /timetable-slots?replace=true&force=true
func (ctl *TimeSlotController) Upsert(c *fiber.Ctx) error {
	var req dto.UpsertTimeSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	req.Normalize()
	if err := req.Validate(ctl.Validate); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			return helper.JsonValidationError(c, err)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var row model.TimeSlotModel
	req.ApplyToModel(&row)

	replace := c.QueryBool("replace")
	force := c.QueryBool("force")

	if err := ctl.Store.Upsert(c.UserContext(), &row, replace, force); err != nil {
		if status, ok := storeErrStatus(err); ok {
			return helper.JsonError(c, status, err.Error())
		}
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, repository.ErrDuplicateSlot.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to save slot")
	}
	return helper.JsonCreated(c, "slot saved", dto.NewTimeSlotResponse(&row))
}

// Delete — DELETE /timetable-slots/:id?force=true
func (ctl *TimeSlotController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid slot id")
	}
	force := c.QueryBool("force")

	if err := ctl.Store.RemoveByID(c.UserContext(), id, force); err != nil {
		if status, ok := storeErrStatus(err); ok {
			return helper.JsonError(c, status, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to delete slot")
	}
	return helper.JsonDeleted(c, "slot deleted", fiber.Map{"deleted": true})
}

// Swap — POST /timetable/swap {slot1_id, slot2_id}
func (ctl *TimeSlotController) Swap(c *fiber.Ctx) error {
	var req dto.SwapSlotsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	id1, id2, err := req.ParseIDs()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctl.Store.Swap(c.UserContext(), id1, id2); err != nil {
		if status, ok := storeErrStatus(err); ok {
			return helper.JsonError(c, status, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to swap slots")
	}
	return helper.JsonUpdated(c, "slots swapped", fiber.Map{"swapped": true})
}
