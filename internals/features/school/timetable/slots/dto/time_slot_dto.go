// file: internals/features/school/timetable/slots/dto/time_slot_dto.go
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	m "sekolahku_backend/internals/features/school/timetable/slots/model"
)

func strPtrOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

/* =======================================================
   Request DTOs
   ======================================================= */

type UpsertTimeSlotRequest struct {
	TimeSlotsClassID string `json:"time_slots_class_id" validate:"required"`
	TimeSlotsDay     string `json:"time_slots_day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TimeSlotsPeriod  int    `json:"time_slots_period" validate:"required,gt=0"`

	TimeSlotsSubjectID *string `json:"time_slots_subject_id,omitempty"`
	TimeSlotsTeacherID *string `json:"time_slots_teacher_id,omitempty"`
	TimeSlotsRoomID    *string `json:"time_slots_room_id,omitempty"`

	TimeSlotsIsBreak  bool `json:"time_slots_is_break"`
	TimeSlotsIsLocked bool `json:"time_slots_is_locked"`
}

func (r *UpsertTimeSlotRequest) Normalize() {
	r.TimeSlotsClassID = strings.TrimSpace(r.TimeSlotsClassID)
	r.TimeSlotsDay = strings.ToLower(strings.TrimSpace(r.TimeSlotsDay))
	r.TimeSlotsSubjectID = strPtrOrNil(r.TimeSlotsSubjectID)
	r.TimeSlotsTeacherID = strPtrOrNil(r.TimeSlotsTeacherID)
	r.TimeSlotsRoomID = strPtrOrNil(r.TimeSlotsRoomID)
}

// Validate: slot istirahat tidak membawa payload pengajaran;
// slot pengajaran wajib punya subject + teacher (room opsional).
func (r *UpsertTimeSlotRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return err
	}
	if r.TimeSlotsIsBreak {
		if r.TimeSlotsSubjectID != nil || r.TimeSlotsTeacherID != nil || r.TimeSlotsRoomID != nil {
			return errors.New("break slot must not carry subject/teacher/room")
		}
		return nil
	}
	if r.TimeSlotsSubjectID == nil {
		return errors.New("time_slots_subject_id is required for a teaching slot")
	}
	if r.TimeSlotsTeacherID == nil {
		return errors.New("time_slots_teacher_id is required for a teaching slot")
	}
	return nil
}

func (r *UpsertTimeSlotRequest) ApplyToModel(dst *m.TimeSlotModel) {
	dst.TimeSlotsClassID = r.TimeSlotsClassID
	dst.TimeSlotsDay = r.TimeSlotsDay
	dst.TimeSlotsPeriod = r.TimeSlotsPeriod
	dst.TimeSlotsSubjectID = r.TimeSlotsSubjectID
	dst.TimeSlotsTeacherID = r.TimeSlotsTeacherID
	dst.TimeSlotsRoomID = r.TimeSlotsRoomID
	dst.TimeSlotsIsBreak = r.TimeSlotsIsBreak
	dst.TimeSlotsIsLocked = r.TimeSlotsIsLocked
}

type SwapSlotsRequest struct {
	Slot1ID string `json:"slot1_id" validate:"required,uuid4"`
	Slot2ID string `json:"slot2_id" validate:"required,uuid4"`
}

func (r *SwapSlotsRequest) ParseIDs() (uuid.UUID, uuid.UUID, error) {
	id1, err := uuid.Parse(r.Slot1ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("slot1_id: invalid uuid")
	}
	id2, err := uuid.Parse(r.Slot2ID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("slot2_id: invalid uuid")
	}
	return id1, id2, nil
}

/* =======================================================
   Response DTO
   ======================================================= */

type TimeSlotResponse struct {
	TimeSlotID         uuid.UUID `json:"time_slot_id"`
	TimeSlotsClassID   string    `json:"time_slots_class_id"`
	TimeSlotsDay       string    `json:"time_slots_day"`
	TimeSlotsPeriod    int       `json:"time_slots_period"`
	TimeSlotsSubjectID *string   `json:"time_slots_subject_id,omitempty"`
	TimeSlotsTeacherID *string   `json:"time_slots_teacher_id,omitempty"`
	TimeSlotsRoomID    *string   `json:"time_slots_room_id,omitempty"`
	TimeSlotsIsBreak   bool      `json:"time_slots_is_break"`
	TimeSlotsIsLocked  bool      `json:"time_slots_is_locked"`
	TimeSlotsCreatedAt time.Time `json:"time_slots_created_at"`
	TimeSlotsUpdatedAt time.Time `json:"time_slots_updated_at"`
}

func NewTimeSlotResponse(src *m.TimeSlotModel) TimeSlotResponse {
	return TimeSlotResponse{
		TimeSlotID:         src.TimeSlotID,
		TimeSlotsClassID:   src.TimeSlotsClassID,
		TimeSlotsDay:       src.TimeSlotsDay,
		TimeSlotsPeriod:    src.TimeSlotsPeriod,
		TimeSlotsSubjectID: src.TimeSlotsSubjectID,
		TimeSlotsTeacherID: src.TimeSlotsTeacherID,
		TimeSlotsRoomID:    src.TimeSlotsRoomID,
		TimeSlotsIsBreak:   src.TimeSlotsIsBreak,
		TimeSlotsIsLocked:  src.TimeSlotsIsLocked,
		TimeSlotsCreatedAt: src.TimeSlotsCreatedAt,
		TimeSlotsUpdatedAt: src.TimeSlotsUpdatedAt,
	}
}

func NewTimeSlotResponses(rows []m.TimeSlotModel) []TimeSlotResponse {
	out := make([]TimeSlotResponse, 0, len(rows))
	for i := range rows {
		out = append(out, NewTimeSlotResponse(&rows[i]))
	}
	return out
}
