// file: internals/features/school/timetable/slots/model/time_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   TimeSlotModel — map ke tabel time_slots
   Key unik: (class_id, day, period). Referensi subject/
   teacher/room adalah foreign key opaque (katalognya milik
   modul academics, store tidak memvalidasi keberadaannya).
   ======================================================= */

type TimeSlotModel struct {
	// PK
	TimeSlotID uuid.UUID `json:"time_slot_id" gorm:"type:uuid;primaryKey;column:time_slot_id;default:(gen_random_uuid())"`

	// Key jadwal
	TimeSlotsClassID string `json:"time_slots_class_id" gorm:"type:text;not null;column:time_slots_class_id;uniqueIndex:uq_time_slots_key"`
	TimeSlotsDay     string `json:"time_slots_day" gorm:"type:text;not null;column:time_slots_day;uniqueIndex:uq_time_slots_key"`
	TimeSlotsPeriod  int    `json:"time_slots_period" gorm:"type:int;not null;column:time_slots_period;uniqueIndex:uq_time_slots_key"`

	// Payload (kosong untuk slot istirahat)
	TimeSlotsSubjectID *string `json:"time_slots_subject_id,omitempty" gorm:"type:text;column:time_slots_subject_id"`
	TimeSlotsTeacherID *string `json:"time_slots_teacher_id,omitempty" gorm:"type:text;column:time_slots_teacher_id"`
	TimeSlotsRoomID    *string `json:"time_slots_room_id,omitempty" gorm:"type:text;column:time_slots_room_id"`

	// Flag
	TimeSlotsIsBreak  bool `json:"time_slots_is_break" gorm:"type:boolean;not null;default:false;column:time_slots_is_break"`
	TimeSlotsIsLocked bool `json:"time_slots_is_locked" gorm:"type:boolean;not null;default:false;column:time_slots_is_locked"`

	TimeSlotsCreatedAt time.Time `json:"time_slots_created_at" gorm:"column:time_slots_created_at;not null;autoCreateTime"`
	TimeSlotsUpdatedAt time.Time `json:"time_slots_updated_at" gorm:"column:time_slots_updated_at;not null;autoUpdateTime"`
}

func (TimeSlotModel) TableName() string {
	return "time_slots"
}

func (m *TimeSlotModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimeSlotID == uuid.Nil {
		m.TimeSlotID = uuid.New()
	}
	return nil
}

// SubjectOrEmpty memudahkan pengelompokan di detector.
func (m *TimeSlotModel) SubjectOrEmpty() string {
	if m.TimeSlotsSubjectID == nil {
		return ""
	}
	return *m.TimeSlotsSubjectID
}

func (m *TimeSlotModel) TeacherOrEmpty() string {
	if m.TimeSlotsTeacherID == nil {
		return ""
	}
	return *m.TimeSlotsTeacherID
}

func (m *TimeSlotModel) RoomOrEmpty() string {
	if m.TimeSlotsRoomID == nil {
		return ""
	}
	return *m.TimeSlotsRoomID
}
