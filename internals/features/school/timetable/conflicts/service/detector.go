// file: internals/features/school/timetable/conflicts/service/detector.go
package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"sekolahku_backend/internals/constants"
	slotmodel "sekolahku_backend/internals/features/school/timetable/slots/model"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
)

/* =======================================================
   Tipe conflict (derived — tidak pernah dipersist, selalu
   dihitung ulang dari isi slot store)
   ======================================================= */

type ConflictKind string

const (
	TeacherClash    ConflictKind = "teacher_clash"
	RoomClash       ConflictKind = "room_clash"
	SubjectOverload ConflictKind = "subject_overload"
	NoBreak         ConflictKind = "no_break"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// ConflictReport: satu temuan bentrok.
type ConflictReport struct {
	Kind      ConflictKind `json:"kind"`
	Severity  Severity     `json:"severity"`
	Day       string       `json:"day"`
	Period    int          `json:"period"`
	ClassID   string       `json:"class_id,omitempty"`
	TeacherID string       `json:"teacher_id,omitempty"`
	RoomID    string       `json:"room_id,omitempty"`
	SubjectID string       `json:"subject_id,omitempty"`
	SlotIDs   []uuid.UUID  `json:"slot_ids"`
	Message   string       `json:"message"`
}

// Options kebijakan deteksi. OverloadRun default 3 (≥3 period beruntun
// mapel sama dianggap overload) — kebijakan, bukan aturan keras.
type Options struct {
	OverloadRun int
}

func (o Options) overloadRun() int {
	if o.OverloadRun >= 2 {
		return o.OverloadRun
	}
	return 3
}

/* =======================================================
   Detect — fungsi murni: (slots, template) → conflicts.
   Tanpa side effect, output identik untuk input sama.
   Urutan laporan stabil: teacher_clash, room_clash,
   subject_overload, no_break; tiap grup urut (day, period).
   ======================================================= */

func Detect(slots []slotmodel.TimeSlotModel, tpl *tplmodel.PeriodTemplateModel, opts ...Options) []ConflictReport {
	opt := Options{}
	if len(opts) > 0 {
		opt = opts[0]
	}

	out := make([]ConflictReport, 0)
	out = append(out, detectResourceClashes(slots, true)...)
	out = append(out, detectResourceClashes(slots, false)...)
	out = append(out, detectSubjectOverload(slots, opt.overloadRun())...)
	if tpl != nil {
		out = append(out, detectMissingBreaks(slots, tpl)...)
	}
	return out
}

/* =======================================================
   1 & 2 — teacher_clash / room_clash
   Grup (day, period, resource); >1 kelas berbeda = bentrok.
   ======================================================= */

type clashKey struct {
	day      string
	period   int
	resource string
}

func detectResourceClashes(slots []slotmodel.TimeSlotModel, byTeacher bool) []ConflictReport {
	groups := make(map[clashKey][]*slotmodel.TimeSlotModel)
	for i := range slots {
		s := &slots[i]
		if s.TimeSlotsIsBreak {
			continue
		}
		resource := s.TeacherOrEmpty()
		if !byTeacher {
			resource = s.RoomOrEmpty()
		}
		if resource == "" {
			continue
		}
		k := clashKey{day: s.TimeSlotsDay, period: s.TimeSlotsPeriod, resource: resource}
		groups[k] = append(groups[k], s)
	}

	keys := make([]clashKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if a, b := constants.DayIndex(keys[i].day), constants.DayIndex(keys[j].day); a != b {
			return a < b
		}
		if keys[i].period != keys[j].period {
			return keys[i].period < keys[j].period
		}
		return keys[i].resource < keys[j].resource
	})

	out := make([]ConflictReport, 0)
	for _, k := range keys {
		group := groups[k]
		classes := make(map[string]bool, len(group))
		for _, s := range group {
			classes[s.TimeSlotsClassID] = true
		}
		if len(classes) < 2 {
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			return group[i].TimeSlotsClassID < group[j].TimeSlotsClassID
		})
		ids := make([]uuid.UUID, 0, len(group))
		for _, s := range group {
			ids = append(ids, s.TimeSlotID)
		}

		r := ConflictReport{
			Severity: SeverityHigh,
			Day:      k.day,
			Period:   k.period,
			SlotIDs:  ids,
		}
		if byTeacher {
			r.Kind = TeacherClash
			r.TeacherID = k.resource
			r.Message = fmt.Sprintf("teacher %s is double-booked on %s period %d", k.resource, k.day, k.period)
		} else {
			r.Kind = RoomClash
			r.RoomID = k.resource
			r.Message = fmt.Sprintf("room %s is double-booked on %s period %d", k.resource, k.day, k.period)
		}
		out = append(out, r)
	}
	return out
}

/* =======================================================
   3 — subject_overload
   Scan period menaik per (class, day); run ≥ threshold
   period BERURUTAN dengan subject sama = satu conflict.
   ======================================================= */

type classDayKey struct {
	classID string
	day     string
}

func detectSubjectOverload(slots []slotmodel.TimeSlotModel, threshold int) []ConflictReport {
	byClassDay := make(map[classDayKey][]*slotmodel.TimeSlotModel)
	for i := range slots {
		s := &slots[i]
		if s.TimeSlotsIsBreak || s.SubjectOrEmpty() == "" {
			continue
		}
		k := classDayKey{classID: s.TimeSlotsClassID, day: s.TimeSlotsDay}
		byClassDay[k] = append(byClassDay[k], s)
	}

	keys := sortedClassDayKeys(byClassDay)

	out := make([]ConflictReport, 0)
	for _, k := range keys {
		seq := byClassDay[k]
		sort.Slice(seq, func(i, j int) bool {
			return seq[i].TimeSlotsPeriod < seq[j].TimeSlotsPeriod
		})

		runStart := 0
		for i := 1; i <= len(seq); i++ {
			continues := i < len(seq) &&
				seq[i].SubjectOrEmpty() == seq[runStart].SubjectOrEmpty() &&
				seq[i].TimeSlotsPeriod == seq[i-1].TimeSlotsPeriod+1
			if continues {
				continue
			}
			if runLen := i - runStart; runLen >= threshold {
				ids := make([]uuid.UUID, 0, runLen)
				for _, s := range seq[runStart:i] {
					ids = append(ids, s.TimeSlotID)
				}
				out = append(out, ConflictReport{
					Kind:      SubjectOverload,
					Severity:  SeverityMedium,
					Day:       k.day,
					Period:    seq[runStart].TimeSlotsPeriod,
					ClassID:   k.classID,
					SubjectID: seq[runStart].SubjectOrEmpty(),
					SlotIDs:   ids,
					Message: fmt.Sprintf("class %s has %d back-to-back periods of %s on %s",
						k.classID, runLen, seq[runStart].SubjectOrEmpty(), k.day),
				})
			}
			runStart = i
		}
	}
	return out
}

/* =======================================================
   4 — no_break
   Untuk tiap (class, day) yang punya slot pada hari kerja
   template: tiap BreakDefinition harus terwakili slot
   is_break pada posisi after_period+1.
   ======================================================= */

func detectMissingBreaks(slots []slotmodel.TimeSlotModel, tpl *tplmodel.PeriodTemplateModel) []ConflictReport {
	breaks := tpl.Breaks()
	if len(breaks) == 0 {
		return nil
	}
	working := make(map[string]bool)
	for _, d := range tpl.WorkingDays() {
		working[d] = true
	}

	byClassDay := make(map[classDayKey][]*slotmodel.TimeSlotModel)
	for i := range slots {
		s := &slots[i]
		if !working[s.TimeSlotsDay] {
			continue
		}
		k := classDayKey{classID: s.TimeSlotsClassID, day: s.TimeSlotsDay}
		byClassDay[k] = append(byClassDay[k], s)
	}

	keys := sortedClassDayKeys(byClassDay)

	out := make([]ConflictReport, 0)
	for _, k := range keys {
		seq := byClassDay[k]
		for _, b := range breaks {
			pos := b.AfterPeriod + 1
			found := false
			for _, s := range seq {
				if s.TimeSlotsIsBreak && s.TimeSlotsPeriod == pos {
					found = true
					break
				}
			}
			if found {
				continue
			}
			ids := make([]uuid.UUID, 0, 1)
			for _, s := range seq {
				if s.TimeSlotsPeriod == pos {
					ids = append(ids, s.TimeSlotID)
				}
			}
			out = append(out, ConflictReport{
				Kind:     NoBreak,
				Severity: SeverityLow,
				Day:      k.day,
				Period:   pos,
				ClassID:  k.classID,
				SlotIDs:  ids,
				Message: fmt.Sprintf("class %s has no %s after period %d on %s",
					k.classID, b.Name, b.AfterPeriod, k.day),
			})
		}
	}
	return out
}

func sortedClassDayKeys(m map[classDayKey][]*slotmodel.TimeSlotModel) []classDayKey {
	keys := make([]classDayKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if a, b := constants.DayIndex(keys[i].day), constants.DayIndex(keys[j].day); a != b {
			return a < b
		}
		return keys[i].classID < keys[j].classID
	})
	return keys
}
