// file: internals/features/school/timetable/generator/service/generator_test.go
package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	conflictsvc "sekolahku_backend/internals/features/school/timetable/conflicts/service"
	slotmodel "sekolahku_backend/internals/features/school/timetable/slots/model"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
)

// Grid senin+selasa, period 1..5, period 3 dipesan break → 8 posisi
// teachable per kelas.
func smallTemplate() *tplmodel.PeriodTemplateModel {
	return &tplmodel.PeriodTemplateModel{
		PeriodTemplateID:    uuid.New(),
		PeriodTemplatesName: "compact",
		PeriodTemplatesPeriods: datatypes.NewJSONType([]tplmodel.PeriodDefinition{
			{Period: 1, StartTime: "07:00", EndTime: "07:45"},
			{Period: 2, StartTime: "07:45", EndTime: "08:30"},
			{Period: 3, StartTime: "08:30", EndTime: "09:00"},
			{Period: 4, StartTime: "09:00", EndTime: "09:45"},
			{Period: 5, StartTime: "09:45", EndTime: "10:30"},
		}),
		PeriodTemplatesWorkingDays: datatypes.NewJSONType([]string{"monday", "tuesday"}),
		PeriodTemplatesBreaks: datatypes.NewJSONType([]tplmodel.BreakDefinition{
			{Name: "recess", AfterPeriod: 2, DurationMinutes: 30},
		}),
		PeriodTemplatesIsActive: true,
	}
}

func plan(classID string, subjects ...SubjectPlan) ClassPlan {
	return ClassPlan{ClassID: classID, Subjects: subjects}
}

func subj(id, teacher string, perWeek int) SubjectPlan {
	return SubjectPlan{SubjectID: id, TeacherID: teacher, PeriodsPerWeek: perWeek}
}

func teachingOnly(slots []slotmodel.TimeSlotModel) []slotmodel.TimeSlotModel {
	out := make([]slotmodel.TimeSlotModel, 0, len(slots))
	for _, s := range slots {
		if !s.TimeSlotsIsBreak {
			out = append(out, s)
		}
	}
	return out
}

func TestBuildFillsRequestedLoad(t *testing.T) {
	res, err := Build(context.Background(), smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 3), subj("ENG", "T2", 2)),
	}, Constraints{}, nil)
	require.NoError(t, err)

	teaching := teachingOnly(res.Slots)
	assert.Len(t, teaching, 5)

	bySubject := map[string]int{}
	positions := map[string]bool{}
	for _, s := range teaching {
		bySubject[s.SubjectOrEmpty()]++
		key := fmt.Sprintf("%s/%d", s.TimeSlotsDay, s.TimeSlotsPeriod)
		assert.False(t, positions[key], "duplicate position %s", key)
		positions[key] = true
		assert.NotEqual(t, 3, s.TimeSlotsPeriod, "teaching slot on break position")
	}
	assert.Equal(t, 3, bySubject["MATH"])
	assert.Equal(t, 2, bySubject["ENG"])
	assert.Zero(t, res.Unresolved)
}

func TestBuildEmitsBreakSlots(t *testing.T) {
	res, err := Build(context.Background(), smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 1)),
	}, Constraints{}, nil)
	require.NoError(t, err)

	breaks := make(map[string]bool)
	for _, s := range res.Slots {
		if s.TimeSlotsIsBreak {
			assert.Equal(t, 3, s.TimeSlotsPeriod)
			breaks[s.TimeSlotsDay] = true
		}
	}
	assert.True(t, breaks["monday"])
	assert.True(t, breaks["tuesday"])
}

func TestBuildCapacityExceeded(t *testing.T) {
	// 8 posisi teachable, minta 9
	_, err := Build(context.Background(), smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 9)),
	}, Constraints{}, nil)

	var capErr *CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "C1", capErr.ClassID)
	assert.Equal(t, 9, capErr.Required)
	assert.Equal(t, 8, capErr.Available)
}

func TestBuildCountsLockedTowardLoad(t *testing.T) {
	lockedSubject, lockedTeacher := "MATH", "T1"
	existing := []slotmodel.TimeSlotModel{{
		TimeSlotID:         uuid.New(),
		TimeSlotsClassID:   "C1",
		TimeSlotsDay:       "monday",
		TimeSlotsPeriod:    1,
		TimeSlotsSubjectID: &lockedSubject,
		TimeSlotsTeacherID: &lockedTeacher,
		TimeSlotsIsLocked:  true,
	}}

	res, err := Build(context.Background(), smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 2)),
	}, Constraints{}, existing)
	require.NoError(t, err)

	teaching := teachingOnly(res.Slots)
	require.Len(t, teaching, 1, "locked slot satisfies one of two required periods")
	assert.Equal(t, "MATH", teaching[0].SubjectOrEmpty())
	// posisi slot terkunci tidak dipakai ulang
	assert.False(t, teaching[0].TimeSlotsDay == "monday" && teaching[0].TimeSlotsPeriod == 1)
}

func TestBuildAvoidsTeacherClashAcrossClasses(t *testing.T) {
	res, err := Build(context.Background(), smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 4)),
		plan("C2", subj("PHYS", "T1", 4)),
	}, Constraints{}, nil)
	require.NoError(t, err)

	for _, cf := range conflictsvc.Detect(res.Slots, smallTemplate()) {
		assert.NotEqual(t, conflictsvc.TeacherClash, cf.Kind)
	}
	assert.Zero(t, res.Unresolved)
}

func TestBuildRespectsMaxPeriodsPerDay(t *testing.T) {
	res, err := Build(context.Background(), smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 2), subj("ENG", "T2", 2)),
	}, Constraints{MaxPeriodsPerDay: 2}, nil)
	require.NoError(t, err)

	perDay := map[string]int{}
	for _, s := range teachingOnly(res.Slots) {
		perDay[s.TimeSlotsDay]++
	}
	for day, n := range perDay {
		assert.LessOrEqual(t, n, 2, "day %s over budget", day)
	}
}

func TestBuildRejectsShortBreakTemplate(t *testing.T) {
	_, err := Build(context.Background(), smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 1)),
	}, Constraints{MinBreakDurationMinutes: 45}, nil)
	assert.Error(t, err)
}

func TestDerivePlanFromExistingSlots(t *testing.T) {
	math, eng := "MATH", "ENG"
	t1, t2 := "T1", "T2"
	slots := []slotmodel.TimeSlotModel{
		{TimeSlotsClassID: "C1", TimeSlotsDay: "monday", TimeSlotsPeriod: 1, TimeSlotsSubjectID: &math, TimeSlotsTeacherID: &t1},
		{TimeSlotsClassID: "C1", TimeSlotsDay: "monday", TimeSlotsPeriod: 2, TimeSlotsSubjectID: &math, TimeSlotsTeacherID: &t1},
		{TimeSlotsClassID: "C1", TimeSlotsDay: "tuesday", TimeSlotsPeriod: 1, TimeSlotsSubjectID: &eng, TimeSlotsTeacherID: &t2},
		{TimeSlotsClassID: "C1", TimeSlotsDay: "monday", TimeSlotsPeriod: 3, TimeSlotsIsBreak: true},
	}

	got := DerivePlan("C1", slots)

	require.Len(t, got.Subjects, 2)
	assert.Equal(t, "ENG", got.Subjects[0].SubjectID)
	assert.Equal(t, "T2", got.Subjects[0].TeacherID)
	assert.Equal(t, 1, got.Subjects[0].PeriodsPerWeek)
	assert.Equal(t, "MATH", got.Subjects[1].SubjectID)
	assert.Equal(t, 2, got.Subjects[1].PeriodsPerWeek)
}

/* =======================================================
   Integrasi store (sqlite in-memory)
   ======================================================= */

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	dsn := fmt.Sprintf("file:gen_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&slotmodel.TimeSlotModel{}))
	return NewGenerator(repository.NewSlotStore(db))
}

func TestGeneratePreservesLockedRows(t *testing.T) {
	gen := newTestGenerator(t)
	ctx := context.Background()

	lockedSubject, lockedTeacher := "MATH", "T1"
	locked := &slotmodel.TimeSlotModel{
		TimeSlotsClassID:   "C1",
		TimeSlotsDay:       "monday",
		TimeSlotsPeriod:    1,
		TimeSlotsSubjectID: &lockedSubject,
		TimeSlotsTeacherID: &lockedTeacher,
		TimeSlotsIsLocked:  true,
	}
	require.NoError(t, gen.Store.Upsert(ctx, locked, false, false))

	stale := &slotmodel.TimeSlotModel{TimeSlotsClassID: "C1", TimeSlotsDay: "tuesday", TimeSlotsPeriod: 5}
	geo := "GEO"
	stale.TimeSlotsSubjectID = &geo
	require.NoError(t, gen.Store.Upsert(ctx, stale, false, false))

	_, err := gen.Generate(ctx, smallTemplate(), []ClassPlan{
		plan("C1", subj("MATH", "T1", 2), subj("ENG", "T2", 1)),
	}, Constraints{})
	require.NoError(t, err)

	// baris terkunci identik, baris lama tak-terkunci diganti
	got, err := gen.Store.GetByID(ctx, locked.TimeSlotID)
	require.NoError(t, err)
	assert.Equal(t, "MATH", got.SubjectOrEmpty())
	assert.True(t, got.TimeSlotsIsLocked)
	assert.Equal(t, 1, got.TimeSlotsPeriod)

	_, err = gen.Store.GetByID(ctx, stale.TimeSlotID)
	assert.ErrorIs(t, err, repository.ErrSlotNotFound)

	rows, err := gen.Store.List(ctx, repository.SlotFilter{ClassID: "C1"})
	require.NoError(t, err)
	teaching := teachingOnly(rows)
	// 1 terkunci + 2 hasil generate (MATH kedua + ENG)
	assert.Len(t, teaching, 3)
}

func TestGenerateCancelledLeavesStoreUntouched(t *testing.T) {
	gen := newTestGenerator(t)

	seedSubject := "MATH"
	seed := &slotmodel.TimeSlotModel{
		TimeSlotsClassID:   "C1",
		TimeSlotsDay:       "monday",
		TimeSlotsPeriod:    2,
		TimeSlotsSubjectID: &seedSubject,
	}
	require.NoError(t, gen.Store.Upsert(context.Background(), seed, false, false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, smallTemplate(), []ClassPlan{
		plan("C1", subj("ENG", "T2", 2)),
	}, Constraints{})
	require.Error(t, err)

	rows, err := gen.Store.List(context.Background(), repository.SlotFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, seed.TimeSlotID, rows[0].TimeSlotID)
}

func TestOptimizeRebuildsFromCurrentAssignments(t *testing.T) {
	gen := newTestGenerator(t)
	ctx := context.Background()

	math, t1 := "MATH", "T1"
	for _, p := range []int{1, 2, 4} {
		s := &slotmodel.TimeSlotModel{
			TimeSlotsClassID:   "C1",
			TimeSlotsDay:       "monday",
			TimeSlotsPeriod:    p,
			TimeSlotsSubjectID: &math,
			TimeSlotsTeacherID: &t1,
		}
		require.NoError(t, gen.Store.Upsert(ctx, s, false, false))
	}

	res, err := gen.Optimize(ctx, smallTemplate(), "C1", Constraints{})
	require.NoError(t, err)

	teaching := teachingOnly(res.Slots)
	assert.Len(t, teaching, 3)
	for _, s := range teaching {
		assert.Equal(t, "MATH", s.SubjectOrEmpty())
		assert.Equal(t, "T1", s.TeacherOrEmpty())
	}
}

func TestOptimizeEmptyClassFails(t *testing.T) {
	gen := newTestGenerator(t)
	_, err := gen.Optimize(context.Background(), smallTemplate(), "C9", Constraints{})
	assert.ErrorIs(t, err, ErrNothingToOptimize)
}
