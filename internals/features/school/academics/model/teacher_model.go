// file: internals/features/school/academics/model/teacher_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// TeacherModel merepresentasikan tabel teachers. PK adalah kode opaque
// ("T1") yang dirujuk slot timetable sebagai teacher_id.
type TeacherModel struct {
	TeacherID string `json:"teacher_id" gorm:"type:text;primaryKey;column:teacher_id"`

	TeachersName              string  `json:"teachers_name" gorm:"type:text;not null;column:teachers_name"`
	TeachersEmail             *string `json:"teachers_email,omitempty" gorm:"type:text;column:teachers_email"`
	TeachersPhone             *string `json:"teachers_phone,omitempty" gorm:"type:text;column:teachers_phone"`
	TeachersMaxWeeklyPeriods  *int    `json:"teachers_max_weekly_periods,omitempty" gorm:"column:teachers_max_weekly_periods"`

	TeachersIsActive bool `json:"teachers_is_active" gorm:"not null;default:true;column:teachers_is_active"`

	TeachersCreatedAt time.Time      `json:"teachers_created_at" gorm:"column:teachers_created_at;autoCreateTime"`
	TeachersUpdatedAt time.Time      `json:"teachers_updated_at" gorm:"column:teachers_updated_at;autoUpdateTime"`
	TeachersDeletedAt gorm.DeletedAt `json:"teachers_deleted_at,omitempty" gorm:"column:teachers_deleted_at;index"`
}

func (TeacherModel) TableName() string { return "teachers" }
