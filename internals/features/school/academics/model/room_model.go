// file: internals/features/school/academics/model/room_model.go
package model

import (
	"time"

	"gorm.io/gorm"
)

// RoomModel merepresentasikan tabel rooms. PK adalah kode opaque
// ("R101", "LAB1") yang dirujuk slot timetable sebagai room_id.
type RoomModel struct {
	RoomID string `json:"room_id" gorm:"type:text;primaryKey;column:room_id"`

	RoomsName     string  `json:"rooms_name" gorm:"type:text;not null;column:rooms_name"`
	RoomsLocation *string `json:"rooms_location,omitempty" gorm:"type:text;column:rooms_location"`
	RoomsCapacity *int    `json:"rooms_capacity,omitempty" gorm:"column:rooms_capacity"`
	RoomsIsLab    bool    `json:"rooms_is_lab" gorm:"not null;default:false;column:rooms_is_lab"`

	RoomsIsActive bool `json:"rooms_is_active" gorm:"not null;default:true;column:rooms_is_active"`

	RoomsCreatedAt time.Time      `json:"rooms_created_at" gorm:"column:rooms_created_at;autoCreateTime"`
	RoomsUpdatedAt time.Time      `json:"rooms_updated_at" gorm:"column:rooms_updated_at;autoUpdateTime"`
	RoomsDeletedAt gorm.DeletedAt `json:"rooms_deleted_at,omitempty" gorm:"column:rooms_deleted_at;index"`
}

func (RoomModel) TableName() string { return "rooms" }
