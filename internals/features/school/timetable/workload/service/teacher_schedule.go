// file: internals/features/school/timetable/workload/service/teacher_schedule.go
package service

import (
	"sort"

	"sekolahku_backend/internals/constants"
	conflictsvc "sekolahku_backend/internals/features/school/timetable/conflicts/service"
	slotmodel "sekolahku_backend/internals/features/school/timetable/slots/model"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
)

/* =======================================================
   TeacherSchedule — view turunan, dihitung on-demand dari
   slot store + template, tidak pernah dipersist
   ======================================================= */

type FreeSlot struct {
	Day    string `json:"day"`
	Period int    `json:"period"`
}

type TeacherSchedule struct {
	TeacherID       string                       `json:"teacher_id"`
	TotalPeriods    int                          `json:"total_periods"`
	AssignedPeriods int                          `json:"assigned_periods"`
	FreeSlots       []FreeSlot                   `json:"free_slots"`
	Assignments     []AssignmentEntry            `json:"assignments"`
	Conflicts       []conflictsvc.ConflictReport `json:"conflicts"`
}

type AssignmentEntry struct {
	Day       string `json:"day"`
	Period    int    `json:"period"`
	ClassID   string `json:"class_id"`
	SubjectID string `json:"subject_id"`
	RoomID    string `json:"room_id,omitempty"`
}

// BuildTeacherSchedule menyusun view untuk satu guru.
//   - slots: seluruh isi store (conflict guru bisa lintas kelas)
//   - totalPeriods: beban kontrak dari caller; ≤0 → pakai ukuran grid
//     teachable template (atau jumlah assignment bila template nil)
func BuildTeacherSchedule(teacherID string, slots []slotmodel.TimeSlotModel, tpl *tplmodel.PeriodTemplateModel, totalPeriods int) TeacherSchedule {
	mine := make([]*slotmodel.TimeSlotModel, 0)
	occupied := make(map[FreeSlot]bool)
	for i := range slots {
		s := &slots[i]
		if s.TimeSlotsIsBreak || s.TeacherOrEmpty() != teacherID {
			continue
		}
		mine = append(mine, s)
		occupied[FreeSlot{Day: s.TimeSlotsDay, Period: s.TimeSlotsPeriod}] = true
	}

	sort.Slice(mine, func(i, j int) bool {
		if a, b := constants.DayIndex(mine[i].TimeSlotsDay), constants.DayIndex(mine[j].TimeSlotsDay); a != b {
			return a < b
		}
		return mine[i].TimeSlotsPeriod < mine[j].TimeSlotsPeriod
	})

	assignments := make([]AssignmentEntry, 0, len(mine))
	for _, s := range mine {
		assignments = append(assignments, AssignmentEntry{
			Day:       s.TimeSlotsDay,
			Period:    s.TimeSlotsPeriod,
			ClassID:   s.TimeSlotsClassID,
			SubjectID: s.SubjectOrEmpty(),
			RoomID:    s.RoomOrEmpty(),
		})
	}

	// Posisi bebas mengikuti grid teachable template (posisi break dilewati)
	free := make([]FreeSlot, 0)
	gridSize := 0
	if tpl != nil {
		breakPos := tpl.BreakPositions()
		periods := make([]int, 0)
		for _, p := range tpl.Periods() {
			if _, isBreak := breakPos[p.Period]; !isBreak {
				periods = append(periods, p.Period)
			}
		}
		sort.Ints(periods)
		for _, d := range tpl.WorkingDays() {
			for _, per := range periods {
				gridSize++
				fs := FreeSlot{Day: d, Period: per}
				if !occupied[fs] {
					free = append(free, fs)
				}
			}
		}
	}

	if totalPeriods <= 0 {
		totalPeriods = gridSize
		if totalPeriods == 0 {
			totalPeriods = len(assignments)
		}
	}

	// Subset conflict yang melibatkan guru ini
	related := make([]conflictsvc.ConflictReport, 0)
	for _, cf := range conflictsvc.Detect(slots, tpl) {
		if cf.TeacherID == teacherID {
			related = append(related, cf)
		}
	}

	return TeacherSchedule{
		TeacherID:       teacherID,
		TotalPeriods:    totalPeriods,
		AssignedPeriods: len(assignments),
		FreeSlots:       free,
		Assignments:     assignments,
		Conflicts:       related,
	}
}
