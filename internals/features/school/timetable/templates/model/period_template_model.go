// file: internals/features/school/timetable/templates/model/period_template_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
)

/* =======================================================
   Definisi grid: period, break, hari kerja
   ======================================================= */

// PeriodDefinition: satu baris grid harian. Jam disimpan "HH:mm".
type PeriodDefinition struct {
	Period    int    `json:"period"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BreakDefinition: istirahat setelah period tertentu.
// Posisi grid yang dipesan oleh break = AfterPeriod + 1
// (key (class, day, period) unik, jadi break harus punya nomor sendiri).
type BreakDefinition struct {
	Name            string `json:"name"`
	AfterPeriod     int    `json:"after_period"`
	DurationMinutes int    `json:"duration_minutes"`
}

/* =======================================================
   PeriodTemplateModel — map ke tabel period_templates
   ======================================================= */

type PeriodTemplateModel struct {
	// PK
	PeriodTemplateID uuid.UUID `json:"period_template_id" gorm:"type:uuid;primaryKey;column:period_template_id;default:(gen_random_uuid())"`

	PeriodTemplatesName string `json:"period_templates_name" gorm:"type:text;not null;column:period_templates_name"`

	// Grid disimpan sebagai kolom JSON (konfigurasi read-only bagi slot store)
	PeriodTemplatesPeriods     datatypes.JSONType[[]PeriodDefinition] `json:"period_templates_periods" gorm:"column:period_templates_periods"`
	PeriodTemplatesWorkingDays datatypes.JSONType[[]string]           `json:"period_templates_working_days" gorm:"column:period_templates_working_days"`
	PeriodTemplatesBreaks      datatypes.JSONType[[]BreakDefinition]  `json:"period_templates_breaks" gorm:"column:period_templates_breaks"`

	PeriodTemplatesIsActive bool `json:"period_templates_is_active" gorm:"type:boolean;not null;default:true;column:period_templates_is_active"`

	PeriodTemplatesCreatedAt time.Time      `json:"period_templates_created_at" gorm:"column:period_templates_created_at;not null;autoCreateTime"`
	PeriodTemplatesUpdatedAt time.Time      `json:"period_templates_updated_at" gorm:"column:period_templates_updated_at;not null;autoUpdateTime"`
	PeriodTemplatesDeletedAt gorm.DeletedAt `json:"period_templates_deleted_at" gorm:"column:period_templates_deleted_at;index"`
}

func (PeriodTemplateModel) TableName() string {
	return "period_templates"
}

// Fallback kalau DB tidak punya gen_random_uuid (mis. sqlite saat test)
func (m *PeriodTemplateModel) BeforeCreate(tx *gorm.DB) error {
	if m.PeriodTemplateID == uuid.Nil {
		m.PeriodTemplateID = uuid.New()
	}
	return nil
}

/* =======================================================
   Accessor grid (dipakai detector & generator)
   ======================================================= */

func (m *PeriodTemplateModel) Periods() []PeriodDefinition {
	return m.PeriodTemplatesPeriods.Data()
}

func (m *PeriodTemplateModel) Breaks() []BreakDefinition {
	return m.PeriodTemplatesBreaks.Data()
}

// WorkingDays urut sesuai kalender (Senin dulu), apapun urutan input.
func (m *PeriodTemplateModel) WorkingDays() []string {
	days := append([]string(nil), m.PeriodTemplatesWorkingDays.Data()...)
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && constants.DayIndex(days[j]) < constants.DayIndex(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

// BreakPositions: nomor period yang dipesan sebagai istirahat.
func (m *PeriodTemplateModel) BreakPositions() map[int]BreakDefinition {
	out := make(map[int]BreakDefinition, len(m.Breaks()))
	for _, b := range m.Breaks() {
		out[b.AfterPeriod+1] = b
	}
	return out
}

func (m *PeriodTemplateModel) HasPeriod(period int) bool {
	for _, p := range m.Periods() {
		if p.Period == period {
			return true
		}
	}
	return false
}

func (m *PeriodTemplateModel) MaxPeriod() int {
	max := 0
	for _, p := range m.Periods() {
		if p.Period > max {
			max = p.Period
		}
	}
	return max
}

// TeachablePositions: jumlah posisi (day × period) yang bisa diisi pelajaran
// untuk satu kelas, setelah posisi break dikurangi.
func (m *PeriodTemplateModel) TeachablePositions() int {
	breaks := m.BreakPositions()
	perDay := 0
	for _, p := range m.Periods() {
		if _, isBreak := breaks[p.Period]; !isBreak {
			perDay++
		}
	}
	return perDay * len(m.WorkingDays())
}
