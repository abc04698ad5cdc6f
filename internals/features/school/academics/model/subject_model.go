// file: internals/features/school/academics/model/subject_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// SubjectModel merepresentasikan tabel subjects. PK adalah kode opaque
// ("MATH", "BIO") yang dirujuk slot timetable sebagai subject_id.
type SubjectModel struct {
	SubjectID string `json:"subject_id" gorm:"type:text;primaryKey;column:subject_id"`

	SubjectsName               string  `json:"subjects_name" gorm:"type:text;not null;column:subjects_name"`
	SubjectsDescription        *string `json:"subjects_description,omitempty" gorm:"type:text;column:subjects_description"`
	SubjectsDefaultWeeklyLoad  *int    `json:"subjects_default_weekly_load,omitempty" gorm:"column:subjects_default_weekly_load"`
	SubjectsRequiresLab        bool    `json:"subjects_requires_lab" gorm:"not null;default:false;column:subjects_requires_lab"`

	SubjectsIsActive bool `json:"subjects_is_active" gorm:"not null;default:true;column:subjects_is_active"`

	SubjectsCreatedAt time.Time      `json:"subjects_created_at" gorm:"column:subjects_created_at;autoCreateTime"`
	SubjectsUpdatedAt time.Time      `json:"subjects_updated_at" gorm:"column:subjects_updated_at;autoUpdateTime"`
	SubjectsDeletedAt gorm.DeletedAt `json:"subjects_deleted_at,omitempty" gorm:"column:subjects_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }
