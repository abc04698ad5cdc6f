// file: internals/features/school/timetable/slots/repository/slot_store_test.go
package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sekolahku_backend/internals/features/school/timetable/slots/model"
)

func newTestStore(t *testing.T) *SlotStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TimeSlotModel{}))
	return NewSlotStore(db)
}

func newSlot(class, day string, period int, subject, teacher string) *model.TimeSlotModel {
	s := &model.TimeSlotModel{
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
	return s
}

func mustUpsert(t *testing.T, store *SlotStore, s *model.TimeSlotModel, replace, force bool) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), s, replace, force))
}

func TestUpsertDuplicateKeyRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustUpsert(t, store, newSlot("C1", "monday", 1, "MATH", "T1"), false, false)

	err := store.Upsert(ctx, newSlot("C1", "monday", 1, "PHYS", "T2"), false, false)
	assert.ErrorIs(t, err, ErrDuplicateSlot)

	// isi tidak berubah
	rows, err := store.List(ctx, SlotFilter{ClassID: "C1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "MATH", rows[0].SubjectOrEmpty())
}

func TestUpsertReplaceKeepsID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := newSlot("C1", "monday", 1, "MATH", "T1")
	mustUpsert(t, store, first, false, false)

	second := newSlot("C1", "monday", 1, "PHYS", "T2")
	mustUpsert(t, store, second, true, false)

	rows, err := store.List(ctx, SlotFilter{ClassID: "C1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first.TimeSlotID, rows[0].TimeSlotID)
	assert.Equal(t, "PHYS", rows[0].SubjectOrEmpty())
	assert.Equal(t, "T2", rows[0].TeacherOrEmpty())
}

func TestUpsertLockedRequiresForce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	locked := newSlot("C1", "monday", 1, "MATH", "T1")
	locked.TimeSlotsIsLocked = true
	mustUpsert(t, store, locked, false, false)

	err := store.Upsert(ctx, newSlot("C1", "monday", 1, "PHYS", "T2"), true, false)
	assert.ErrorIs(t, err, ErrSlotLocked)

	mustUpsert(t, store, newSlot("C1", "monday", 1, "PHYS", "T2"), true, true)

	rows, err := store.List(ctx, SlotFilter{ClassID: "C1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "PHYS", rows[0].SubjectOrEmpty())
}

func TestRemoveLockedRequiresForce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	locked := newSlot("C1", "monday", 2, "MATH", "T1")
	locked.TimeSlotsIsLocked = true
	mustUpsert(t, store, locked, false, false)

	err := store.Remove(ctx, "C1", "monday", 2, false)
	assert.ErrorIs(t, err, ErrSlotLocked)

	rows, err := store.List(ctx, SlotFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	require.NoError(t, store.Remove(ctx, "C1", "monday", 2, true))
	rows, err = store.List(ctx, SlotFilter{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRemoveByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.Remove(context.Background(), "C9", "monday", 1, false)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestSwapIsSelfInverse(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := newSlot("C1", "monday", 1, "MATH", "T1")
	b := newSlot("C2", "friday", 4, "BIO", "T2")
	mustUpsert(t, store, a, false, false)
	mustUpsert(t, store, b, false, false)

	require.NoError(t, store.Swap(ctx, a.TimeSlotID, b.TimeSlotID))

	gotA, err := store.GetByID(ctx, a.TimeSlotID)
	require.NoError(t, err)
	gotB, err := store.GetByID(ctx, b.TimeSlotID)
	require.NoError(t, err)

	// key tetap, payload bertukar
	assert.Equal(t, "C1", gotA.TimeSlotsClassID)
	assert.Equal(t, "monday", gotA.TimeSlotsDay)
	assert.Equal(t, "BIO", gotA.SubjectOrEmpty())
	assert.Equal(t, "T2", gotA.TeacherOrEmpty())
	assert.Equal(t, "MATH", gotB.SubjectOrEmpty())

	// swap kedua mengembalikan keadaan awal
	require.NoError(t, store.Swap(ctx, a.TimeSlotID, b.TimeSlotID))
	gotA, err = store.GetByID(ctx, a.TimeSlotID)
	require.NoError(t, err)
	assert.Equal(t, "MATH", gotA.SubjectOrEmpty())
	assert.Equal(t, "T1", gotA.TeacherOrEmpty())
}

func TestSwapLockedRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := newSlot("C1", "monday", 1, "MATH", "T1")
	b := newSlot("C2", "friday", 4, "BIO", "T2")
	b.TimeSlotsIsLocked = true
	mustUpsert(t, store, a, false, false)
	mustUpsert(t, store, b, false, false)

	err := store.Swap(ctx, a.TimeSlotID, b.TimeSlotID)
	assert.ErrorIs(t, err, ErrSlotLocked)

	gotA, err := store.GetByID(ctx, a.TimeSlotID)
	require.NoError(t, err)
	assert.Equal(t, "MATH", gotA.SubjectOrEmpty())
}

func TestSwapMissingSlot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := newSlot("C1", "monday", 1, "MATH", "T1")
	mustUpsert(t, store, a, false, false)

	err := store.Swap(ctx, a.TimeSlotID, uuid.New())
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListOrderedByDayThenPeriod(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustUpsert(t, store, newSlot("C1", "friday", 1, "ART", "T3"), false, false)
	mustUpsert(t, store, newSlot("C1", "monday", 2, "ENG", "T2"), false, false)
	mustUpsert(t, store, newSlot("C1", "monday", 1, "MATH", "T1"), false, false)
	mustUpsert(t, store, newSlot("C1", "tuesday", 1, "BIO", "T4"), false, false)

	rows, err := store.List(ctx, SlotFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "MATH", rows[0].SubjectOrEmpty())
	assert.Equal(t, "ENG", rows[1].SubjectOrEmpty())
	assert.Equal(t, "BIO", rows[2].SubjectOrEmpty())
	assert.Equal(t, "ART", rows[3].SubjectOrEmpty())
}

func TestReplaceForClassesKeepsLockedAndOtherClasses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	locked := newSlot("C1", "monday", 1, "MATH", "T1")
	locked.TimeSlotsIsLocked = true
	mustUpsert(t, store, locked, false, false)
	mustUpsert(t, store, newSlot("C1", "monday", 2, "ENG", "T2"), false, false)
	other := newSlot("C2", "monday", 1, "BIO", "T3")
	mustUpsert(t, store, other, false, false)

	fresh := []model.TimeSlotModel{*newSlot("C1", "tuesday", 1, "GEO", "T4")}
	require.NoError(t, store.ReplaceForClasses(ctx, []string{"C1"}, fresh))

	rows, err := store.List(ctx, SlotFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	gotLocked, err := store.GetByID(ctx, locked.TimeSlotID)
	require.NoError(t, err)
	assert.Equal(t, "MATH", gotLocked.SubjectOrEmpty())
	assert.True(t, gotLocked.TimeSlotsIsLocked)

	gotOther, err := store.GetByID(ctx, other.TimeSlotID)
	require.NoError(t, err)
	assert.Equal(t, "BIO", gotOther.SubjectOrEmpty())

	c1, err := store.List(ctx, SlotFilter{ClassID: "C1"})
	require.NoError(t, err)
	require.Len(t, c1, 2)
}
