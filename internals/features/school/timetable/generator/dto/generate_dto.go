// file: internals/features/school/timetable/generator/dto/generate_dto.go
package dto

import (
	"strings"

	"sekolahku_backend/internals/features/school/timetable/generator/service"
)

/* =======================================================
   Request generate / optimize
   ======================================================= */

type GenerateTimetableRequest struct {
	TemplateID  string              `json:"template_id" validate:"required,uuid4"`
	Classes     []service.ClassPlan `json:"classes" validate:"required,min=1,dive"`
	Constraints service.Constraints `json:"constraints"`
}

func (r *GenerateTimetableRequest) Normalize() {
	r.TemplateID = strings.TrimSpace(r.TemplateID)
	for i := range r.Classes {
		r.Classes[i].ClassID = strings.TrimSpace(r.Classes[i].ClassID)
		for j := range r.Classes[i].Subjects {
			sp := &r.Classes[i].Subjects[j]
			sp.SubjectID = strings.TrimSpace(sp.SubjectID)
			sp.TeacherID = strings.TrimSpace(sp.TeacherID)
			if sp.RoomID != nil {
				room := strings.TrimSpace(*sp.RoomID)
				if room == "" {
					sp.RoomID = nil
				} else {
					sp.RoomID = &room
				}
			}
		}
	}
}

type OptimizeTimetableRequest struct {
	TemplateID string `json:"template_id" validate:"required,uuid4"`
	ClassID    string `json:"class_id" validate:"required"`

	Constraints service.Constraints `json:"constraints"`
}

func (r *OptimizeTimetableRequest) Normalize() {
	r.TemplateID = strings.TrimSpace(r.TemplateID)
	r.ClassID = strings.TrimSpace(r.ClassID)
}
