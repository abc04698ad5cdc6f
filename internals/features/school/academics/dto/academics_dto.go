// file: internals/features/school/academics/dto/academics_dto.go
package dto

import (
	"strings"

	m "sekolahku_backend/internals/features/school/academics/model"
)

/* =======================================================
   Classes
   ======================================================= */

type CreateClassRequest struct {
	ClassID           string  `json:"class_id" validate:"required,max=32"`
	Name              string  `json:"name" validate:"required,max=120"`
	Grade             *string `json:"grade,omitempty" validate:"omitempty,max=32"`
	HomeroomTeacherID *string `json:"homeroom_teacher_id,omitempty" validate:"omitempty,max=32"`
	Capacity          *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
}

func (r *CreateClassRequest) Normalize() {
	r.ClassID = strings.ToUpper(strings.TrimSpace(r.ClassID))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateClassRequest) ToModel() *m.ClassModel {
	return &m.ClassModel{
		ClassID:                  r.ClassID,
		ClassesName:              r.Name,
		ClassesGrade:             r.Grade,
		ClassesHomeroomTeacherID: r.HomeroomTeacherID,
		ClassesCapacity:          r.Capacity,
		ClassesIsActive:          true,
	}
}

type UpdateClassRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Grade             *string `json:"grade,omitempty" validate:"omitempty,max=32"`
	HomeroomTeacherID *string `json:"homeroom_teacher_id,omitempty" validate:"omitempty,max=32"`
	Capacity          *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

func (r *UpdateClassRequest) ApplyToModel(dst *m.ClassModel) {
	if r.Name != nil {
		dst.ClassesName = strings.TrimSpace(*r.Name)
	}
	if r.Grade != nil {
		dst.ClassesGrade = r.Grade
	}
	if r.HomeroomTeacherID != nil {
		dst.ClassesHomeroomTeacherID = r.HomeroomTeacherID
	}
	if r.Capacity != nil {
		dst.ClassesCapacity = r.Capacity
	}
	if r.IsActive != nil {
		dst.ClassesIsActive = *r.IsActive
	}
}

/* =======================================================
   Subjects
   ======================================================= */

type CreateSubjectRequest struct {
	SubjectID         string  `json:"subject_id" validate:"required,max=32"`
	Name              string  `json:"name" validate:"required,max=120"`
	Description       *string `json:"description,omitempty"`
	DefaultWeeklyLoad *int    `json:"default_weekly_load,omitempty" validate:"omitempty,gt=0"`
	RequiresLab       bool    `json:"requires_lab"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.SubjectID = strings.ToUpper(strings.TrimSpace(r.SubjectID))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateSubjectRequest) ToModel() *m.SubjectModel {
	return &m.SubjectModel{
		SubjectID:                 r.SubjectID,
		SubjectsName:              r.Name,
		SubjectsDescription:       r.Description,
		SubjectsDefaultWeeklyLoad: r.DefaultWeeklyLoad,
		SubjectsRequiresLab:       r.RequiresLab,
		SubjectsIsActive:          true,
	}
}

type UpdateSubjectRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Description       *string `json:"description,omitempty"`
	DefaultWeeklyLoad *int    `json:"default_weekly_load,omitempty" validate:"omitempty,gt=0"`
	RequiresLab       *bool   `json:"requires_lab,omitempty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

func (r *UpdateSubjectRequest) ApplyToModel(dst *m.SubjectModel) {
	if r.Name != nil {
		dst.SubjectsName = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		dst.SubjectsDescription = r.Description
	}
	if r.DefaultWeeklyLoad != nil {
		dst.SubjectsDefaultWeeklyLoad = r.DefaultWeeklyLoad
	}
	if r.RequiresLab != nil {
		dst.SubjectsRequiresLab = *r.RequiresLab
	}
	if r.IsActive != nil {
		dst.SubjectsIsActive = *r.IsActive
	}
}

/* =======================================================
   Teachers
   ======================================================= */

type CreateTeacherRequest struct {
	TeacherID        string  `json:"teacher_id" validate:"required,max=32"`
	Name             string  `json:"name" validate:"required,max=120"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	MaxWeeklyPeriods *int    `json:"max_weekly_periods,omitempty" validate:"omitempty,gt=0"`
}

func (r *CreateTeacherRequest) Normalize() {
	r.TeacherID = strings.ToUpper(strings.TrimSpace(r.TeacherID))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateTeacherRequest) ToModel() *m.TeacherModel {
	return &m.TeacherModel{
		TeacherID:                r.TeacherID,
		TeachersName:             r.Name,
		TeachersEmail:            r.Email,
		TeachersPhone:            r.Phone,
		TeachersMaxWeeklyPeriods: r.MaxWeeklyPeriods,
		TeachersIsActive:         true,
	}
}

type UpdateTeacherRequest struct {
	Name             *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Email            *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	MaxWeeklyPeriods *int    `json:"max_weekly_periods,omitempty" validate:"omitempty,gt=0"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

func (r *UpdateTeacherRequest) ApplyToModel(dst *m.TeacherModel) {
	if r.Name != nil {
		dst.TeachersName = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		dst.TeachersEmail = r.Email
	}
	if r.Phone != nil {
		dst.TeachersPhone = r.Phone
	}
	if r.MaxWeeklyPeriods != nil {
		dst.TeachersMaxWeeklyPeriods = r.MaxWeeklyPeriods
	}
	if r.IsActive != nil {
		dst.TeachersIsActive = *r.IsActive
	}
}

/* =======================================================
   Rooms
   ======================================================= */

type CreateRoomRequest struct {
	RoomID   string  `json:"room_id" validate:"required,max=32"`
	Name     string  `json:"name" validate:"required,max=120"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=120"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	IsLab    bool    `json:"is_lab"`
}

func (r *CreateRoomRequest) Normalize() {
	r.RoomID = strings.ToUpper(strings.TrimSpace(r.RoomID))
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateRoomRequest) ToModel() *m.RoomModel {
	return &m.RoomModel{
		RoomID:        r.RoomID,
		RoomsName:     r.Name,
		RoomsLocation: r.Location,
		RoomsCapacity: r.Capacity,
		RoomsIsLab:    r.IsLab,
		RoomsIsActive: true,
	}
}

type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=120"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	IsLab    *bool   `json:"is_lab,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateRoomRequest) ApplyToModel(dst *m.RoomModel) {
	if r.Name != nil {
		dst.RoomsName = strings.TrimSpace(*r.Name)
	}
	if r.Location != nil {
		dst.RoomsLocation = r.Location
	}
	if r.Capacity != nil {
		dst.RoomsCapacity = r.Capacity
	}
	if r.IsLab != nil {
		dst.RoomsIsLab = *r.IsLab
	}
	if r.IsActive != nil {
		dst.RoomsIsActive = *r.IsActive
	}
}
