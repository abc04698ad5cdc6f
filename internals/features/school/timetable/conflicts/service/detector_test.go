// file: internals/features/school/timetable/conflicts/service/detector_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	slotmodel "sekolahku_backend/internals/features/school/timetable/slots/model"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
)

func teachingSlot(class, day string, period int, subject, teacher, room string) slotmodel.TimeSlotModel {
	s := slotmodel.TimeSlotModel{
		TimeSlotID:       uuid.New(),
		TimeSlotsClassID: class,
		TimeSlotsDay:     day,
		TimeSlotsPeriod:  period,
	}
	if subject != "" {
		s.TimeSlotsSubjectID = &subject
	}
	if teacher != "" {
		s.TimeSlotsTeacherID = &teacher
	}
	if room != "" {
		s.TimeSlotsRoomID = &room
	}
	return s
}

func breakSlot(class, day string, period int) slotmodel.TimeSlotModel {
	return slotmodel.TimeSlotModel{
		TimeSlotID:       uuid.New(),
		TimeSlotsClassID: class,
		TimeSlotsDay:     day,
		TimeSlotsPeriod:  period,
		TimeSlotsIsBreak: true,
	}
}

// Grid senin-jumat, period 1..6, period 3 dipesan break (after_period 2).
func gridTemplate() *tplmodel.PeriodTemplateModel {
	return &tplmodel.PeriodTemplateModel{
		PeriodTemplateID:    uuid.New(),
		PeriodTemplatesName: "regular",
		PeriodTemplatesPeriods: datatypes.NewJSONType([]tplmodel.PeriodDefinition{
			{Period: 1, StartTime: "07:00", EndTime: "07:45"},
			{Period: 2, StartTime: "07:45", EndTime: "08:30"},
			{Period: 3, StartTime: "08:30", EndTime: "09:00"},
			{Period: 4, StartTime: "09:00", EndTime: "09:45"},
			{Period: 5, StartTime: "09:45", EndTime: "10:30"},
			{Period: 6, StartTime: "10:30", EndTime: "11:15"},
		}),
		PeriodTemplatesWorkingDays: datatypes.NewJSONType([]string{
			"monday", "tuesday", "wednesday", "thursday", "friday",
		}),
		PeriodTemplatesBreaks: datatypes.NewJSONType([]tplmodel.BreakDefinition{
			{Name: "recess", AfterPeriod: 2, DurationMinutes: 30},
		}),
		PeriodTemplatesIsActive: true,
	}
}

func TestDetectTeacherClash(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 1, "MATH", "T1", ""),
		teachingSlot("C2", "monday", 1, "PHYS", "T1", ""),
		breakSlot("C1", "monday", 3),
		breakSlot("C2", "monday", 3),
	}

	got := Detect(slots, gridTemplate())

	require.Len(t, got, 1)
	assert.Equal(t, TeacherClash, got[0].Kind)
	assert.Equal(t, SeverityHigh, got[0].Severity)
	assert.Equal(t, "monday", got[0].Day)
	assert.Equal(t, 1, got[0].Period)
	assert.Equal(t, "T1", got[0].TeacherID)
	assert.Len(t, got[0].SlotIDs, 2)
}

func TestDetectNoClashOnDifferentPeriods(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 1, "MATH", "T1", ""),
		teachingSlot("C2", "monday", 2, "PHYS", "T1", ""),
		breakSlot("C1", "monday", 3),
		breakSlot("C2", "monday", 3),
	}
	assert.Empty(t, Detect(slots, gridTemplate()))
}

func TestDetectRoomClash(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "tuesday", 4, "MATH", "T1", "R101"),
		teachingSlot("C2", "tuesday", 4, "BIO", "T2", "R101"),
		breakSlot("C1", "tuesday", 3),
		breakSlot("C2", "tuesday", 3),
	}

	got := Detect(slots, gridTemplate())

	require.Len(t, got, 1)
	assert.Equal(t, RoomClash, got[0].Kind)
	assert.Equal(t, SeverityHigh, got[0].Severity)
	assert.Equal(t, "R101", got[0].RoomID)
}

func TestDetectSubjectOverload(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 4, "MATH", "T1", ""),
		teachingSlot("C1", "monday", 5, "MATH", "T1", ""),
		teachingSlot("C1", "monday", 6, "MATH", "T1", ""),
		breakSlot("C1", "monday", 3),
	}

	got := Detect(slots, gridTemplate())

	require.Len(t, got, 1)
	assert.Equal(t, SubjectOverload, got[0].Kind)
	assert.Equal(t, SeverityMedium, got[0].Severity)
	assert.Equal(t, "C1", got[0].ClassID)
	assert.Equal(t, "MATH", got[0].SubjectID)
	assert.Equal(t, 4, got[0].Period)
	assert.Len(t, got[0].SlotIDs, 3)
}

func TestDetectSubjectOverloadIgnoresShortRuns(t *testing.T) {
	// dua period beruntun bukan overload; run terpotong break juga bukan
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 1, "MATH", "T1", ""),
		teachingSlot("C1", "monday", 2, "MATH", "T1", ""),
		breakSlot("C1", "monday", 3),
		teachingSlot("C1", "monday", 4, "MATH", "T1", ""),
	}
	assert.Empty(t, Detect(slots, gridTemplate()))
}

func TestDetectSubjectOverloadConfigurableRun(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 1, "MATH", "T1", ""),
		teachingSlot("C1", "monday", 2, "MATH", "T1", ""),
		breakSlot("C1", "monday", 3),
	}

	got := Detect(slots, gridTemplate(), Options{OverloadRun: 2})

	require.Len(t, got, 1)
	assert.Equal(t, SubjectOverload, got[0].Kind)
}

func TestDetectMissingBreak(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 1, "MATH", "T1", ""),
		teachingSlot("C1", "monday", 2, "ENG", "T2", ""),
	}

	got := Detect(slots, gridTemplate())

	require.Len(t, got, 1)
	assert.Equal(t, NoBreak, got[0].Kind)
	assert.Equal(t, SeverityLow, got[0].Severity)
	assert.Equal(t, "C1", got[0].ClassID)
	assert.Equal(t, 3, got[0].Period)
}

func TestDetectMissingBreakSkippedWithoutTemplate(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 1, "MATH", "T1", ""),
	}
	assert.Empty(t, Detect(slots, nil))
}

func TestDetectIsDeterministic(t *testing.T) {
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "monday", 1, "MATH", "T1", "R1"),
		teachingSlot("C2", "monday", 1, "PHYS", "T1", "R1"),
		teachingSlot("C3", "friday", 2, "BIO", "T2", ""),
		teachingSlot("C1", "friday", 2, "CHEM", "T2", ""),
	}

	first := Detect(slots, gridTemplate())
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Detect(slots, gridTemplate()))
	}
}

func TestDetectStableOrdering(t *testing.T) {
	// clash selasa + senin → senin dilaporkan lebih dulu; jenis
	// teacher_clash selalu mendahului room_clash
	slots := []slotmodel.TimeSlotModel{
		teachingSlot("C1", "tuesday", 2, "MATH", "T9", ""),
		teachingSlot("C2", "tuesday", 2, "BIO", "T9", ""),
		teachingSlot("C1", "monday", 5, "ENG", "T8", ""),
		teachingSlot("C2", "monday", 5, "GEO", "T8", ""),
		teachingSlot("C3", "monday", 1, "ART", "T1", "R7"),
		teachingSlot("C4", "monday", 1, "PE", "T2", "R7"),
	}

	got := Detect(slots, nil)

	require.Len(t, got, 3)
	assert.Equal(t, TeacherClash, got[0].Kind)
	assert.Equal(t, "monday", got[0].Day)
	assert.Equal(t, TeacherClash, got[1].Kind)
	assert.Equal(t, "tuesday", got[1].Day)
	assert.Equal(t, RoomClash, got[2].Kind)
}

func TestDetectIgnoresBreakSlots(t *testing.T) {
	// dua break di posisi sama untuk kelas berbeda bukan clash
	slots := []slotmodel.TimeSlotModel{
		breakSlot("C1", "monday", 3),
		breakSlot("C2", "monday", 3),
	}
	assert.Empty(t, Detect(slots, nil))
}
