// file: internals/features/school/timetable/templates/dto/period_template_dto.go
package dto

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sekolahku_backend/internals/constants"
	m "sekolahku_backend/internals/features/school/timetable/templates/model"
)

/* =======================================================
   Util & parsing
   ======================================================= */

var (
	layoutT1 = "15:04"    // TIME (HH:mm)
	layoutT2 = "15:04:05" // TIME (HH:mm:ss)
)

// ParseClock menerima "HH:mm" atau "HH:mm:ss".
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty time")
	}
	if t, err := time.Parse(layoutT1, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(layoutT2, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time format (want HH:mm or HH:mm:ss)")
}

/* =======================================================
   Request DTOs
   ======================================================= */

type PeriodInput struct {
	Period    int    `json:"period" validate:"required,gt=0"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type BreakInput struct {
	Name            string `json:"name" validate:"required"`
	AfterPeriod     int    `json:"after_period" validate:"required,gt=0"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
}

type CreatePeriodTemplateRequest struct {
	PeriodTemplatesName        string        `json:"period_templates_name" validate:"required,min=2"`
	PeriodTemplatesPeriods     []PeriodInput `json:"period_templates_periods" validate:"required,min=1,dive"`
	PeriodTemplatesWorkingDays []string      `json:"period_templates_working_days" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	PeriodTemplatesBreaks      []BreakInput  `json:"period_templates_breaks" validate:"omitempty,dive"`
	PeriodTemplatesIsActive    *bool         `json:"period_templates_is_active,omitempty"`
}

type UpdatePeriodTemplateRequest struct {
	PeriodTemplatesName        string        `json:"period_templates_name" validate:"required,min=2"`
	PeriodTemplatesPeriods     []PeriodInput `json:"period_templates_periods" validate:"required,min=1,dive"`
	PeriodTemplatesWorkingDays []string      `json:"period_templates_working_days" validate:"required,min=1,dive,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	PeriodTemplatesBreaks      []BreakInput  `json:"period_templates_breaks" validate:"omitempty,dive"`
	PeriodTemplatesIsActive    bool          `json:"period_templates_is_active"`
}

/* =======================================================
   Cross-field validation (invariant grid)
   - period unik & jamnya valid (start < end)
   - antar period tidak tumpang tindih (urut nomor period)
   - after_period merujuk period yang ada, dan posisi break
     (after_period+1) juga harus ada di grid
   ======================================================= */

func validateGrid(periods []PeriodInput, workingDays []string, breaks []BreakInput) error {
	sorted := append([]PeriodInput(nil), periods...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Period < sorted[j].Period })

	seen := make(map[int]bool, len(sorted))
	type window struct{ start, end time.Time }
	windows := make(map[int]window, len(sorted))

	var prevEnd time.Time
	var hasPrev bool
	for _, p := range sorted {
		if seen[p.Period] {
			return fmt.Errorf("duplicate period number %d", p.Period)
		}
		seen[p.Period] = true

		start, err := ParseClock(p.StartTime)
		if err != nil {
			return fmt.Errorf("period %d start_time: %w", p.Period, err)
		}
		end, err := ParseClock(p.EndTime)
		if err != nil {
			return fmt.Errorf("period %d end_time: %w", p.Period, err)
		}
		if !end.After(start) {
			return fmt.Errorf("period %d: end_time must be greater than start_time", p.Period)
		}
		if hasPrev && start.Before(prevEnd) {
			return fmt.Errorf("period %d overlaps the previous period", p.Period)
		}
		windows[p.Period] = window{start, end}
		prevEnd, hasPrev = end, true
	}

	daySeen := make(map[string]bool, len(workingDays))
	for _, d := range workingDays {
		key := strings.ToLower(strings.TrimSpace(d))
		if !constants.IsValidDay(key) {
			return fmt.Errorf("invalid working day %q", d)
		}
		if daySeen[key] {
			return fmt.Errorf("duplicate working day %q", d)
		}
		daySeen[key] = true
	}

	breakAfter := make(map[int]bool, len(breaks))
	for _, b := range breaks {
		if !seen[b.AfterPeriod] {
			return fmt.Errorf("break %q: after_period %d does not reference an existing period", b.Name, b.AfterPeriod)
		}
		if !seen[b.AfterPeriod+1] {
			return fmt.Errorf("break %q: no grid row at position %d to hold the break", b.Name, b.AfterPeriod+1)
		}
		if breakAfter[b.AfterPeriod] {
			return fmt.Errorf("duplicate break after period %d", b.AfterPeriod)
		}
		breakAfter[b.AfterPeriod] = true

		// durasi break harus muat di jendela period yang dipesannya
		w := windows[b.AfterPeriod+1]
		if w.end.Sub(w.start) < time.Duration(b.DurationMinutes)*time.Minute {
			return fmt.Errorf("break %q: duration %dm does not fit period %d", b.Name, b.DurationMinutes, b.AfterPeriod+1)
		}
	}
	return nil
}

func normalizeDays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, strings.ToLower(strings.TrimSpace(d)))
	}
	return out
}

func toPeriodDefs(in []PeriodInput) []m.PeriodDefinition {
	out := make([]m.PeriodDefinition, 0, len(in))
	for _, p := range in {
		out = append(out, m.PeriodDefinition{Period: p.Period, StartTime: p.StartTime, EndTime: p.EndTime})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

func toBreakDefs(in []BreakInput) []m.BreakDefinition {
	out := make([]m.BreakDefinition, 0, len(in))
	for _, b := range in {
		out = append(out, m.BreakDefinition{Name: b.Name, AfterPeriod: b.AfterPeriod, DurationMinutes: b.DurationMinutes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AfterPeriod < out[j].AfterPeriod })
	return out
}

/* =======================================================
   Convert & Apply
   ======================================================= */

func (r *CreatePeriodTemplateRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return err
	}
	return validateGrid(r.PeriodTemplatesPeriods, r.PeriodTemplatesWorkingDays, r.PeriodTemplatesBreaks)
}

func (r *CreatePeriodTemplateRequest) ApplyToModel(dst *m.PeriodTemplateModel) {
	dst.PeriodTemplatesName = strings.TrimSpace(r.PeriodTemplatesName)
	dst.PeriodTemplatesPeriods = datatypes.NewJSONType(toPeriodDefs(r.PeriodTemplatesPeriods))
	dst.PeriodTemplatesWorkingDays = datatypes.NewJSONType(normalizeDays(r.PeriodTemplatesWorkingDays))
	dst.PeriodTemplatesBreaks = datatypes.NewJSONType(toBreakDefs(r.PeriodTemplatesBreaks))
	if r.PeriodTemplatesIsActive != nil {
		dst.PeriodTemplatesIsActive = *r.PeriodTemplatesIsActive
	} else {
		dst.PeriodTemplatesIsActive = true
	}
}

func (r *UpdatePeriodTemplateRequest) Validate(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return err
	}
	return validateGrid(r.PeriodTemplatesPeriods, r.PeriodTemplatesWorkingDays, r.PeriodTemplatesBreaks)
}

func (r *UpdatePeriodTemplateRequest) ApplyToModel(dst *m.PeriodTemplateModel) {
	dst.PeriodTemplatesName = strings.TrimSpace(r.PeriodTemplatesName)
	dst.PeriodTemplatesPeriods = datatypes.NewJSONType(toPeriodDefs(r.PeriodTemplatesPeriods))
	dst.PeriodTemplatesWorkingDays = datatypes.NewJSONType(normalizeDays(r.PeriodTemplatesWorkingDays))
	dst.PeriodTemplatesBreaks = datatypes.NewJSONType(toBreakDefs(r.PeriodTemplatesBreaks))
	dst.PeriodTemplatesIsActive = r.PeriodTemplatesIsActive
}

/* =======================================================
   Response DTO
   ======================================================= */

type PeriodTemplateResponse struct {
	PeriodTemplateID           uuid.UUID            `json:"period_template_id"`
	PeriodTemplatesName        string               `json:"period_templates_name"`
	PeriodTemplatesPeriods     []m.PeriodDefinition `json:"period_templates_periods"`
	PeriodTemplatesWorkingDays []string             `json:"period_templates_working_days"`
	PeriodTemplatesBreaks      []m.BreakDefinition  `json:"period_templates_breaks"`
	PeriodTemplatesIsActive    bool                 `json:"period_templates_is_active"`
	PeriodTemplatesCreatedAt   time.Time            `json:"period_templates_created_at"`
	PeriodTemplatesUpdatedAt   time.Time            `json:"period_templates_updated_at"`
}

func NewPeriodTemplateResponse(src *m.PeriodTemplateModel) PeriodTemplateResponse {
	return PeriodTemplateResponse{
		PeriodTemplateID:           src.PeriodTemplateID,
		PeriodTemplatesName:        src.PeriodTemplatesName,
		PeriodTemplatesPeriods:     src.Periods(),
		PeriodTemplatesWorkingDays: src.WorkingDays(),
		PeriodTemplatesBreaks:      src.Breaks(),
		PeriodTemplatesIsActive:    src.PeriodTemplatesIsActive,
		PeriodTemplatesCreatedAt:   src.PeriodTemplatesCreatedAt,
		PeriodTemplatesUpdatedAt:   src.PeriodTemplatesUpdatedAt,
	}
}
