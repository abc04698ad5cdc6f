// file: internals/features/school/academics/model/class_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// ClassModel merepresentasikan tabel classes. PK adalah kode opaque
// ("C1", "7A") yang dirujuk slot timetable sebagai class_id.
type ClassModel struct {
	ClassID string `json:"class_id" gorm:"type:text;primaryKey;column:class_id"`

	ClassesName              string  `json:"classes_name" gorm:"type:text;not null;column:classes_name"`
	ClassesGrade             *string `json:"classes_grade,omitempty" gorm:"type:text;column:classes_grade"`
	ClassesHomeroomTeacherID *string `json:"classes_homeroom_teacher_id,omitempty" gorm:"type:text;column:classes_homeroom_teacher_id"`
	ClassesCapacity          *int    `json:"classes_capacity,omitempty" gorm:"column:classes_capacity"`

	ClassesIsActive bool `json:"classes_is_active" gorm:"not null;default:true;column:classes_is_active"`

	ClassesCreatedAt time.Time      `json:"classes_created_at" gorm:"column:classes_created_at;autoCreateTime"`
	ClassesUpdatedAt time.Time      `json:"classes_updated_at" gorm:"column:classes_updated_at;autoUpdateTime"`
	ClassesDeletedAt gorm.DeletedAt `json:"classes_deleted_at,omitempty" gorm:"column:classes_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }
