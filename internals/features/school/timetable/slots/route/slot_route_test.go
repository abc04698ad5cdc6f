// file: internals/features/school/timetable/slots/route/slot_route_test.go
package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sekolahku_backend/internals/features/school/timetable/slots/model"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
)

func newTestApp(t *testing.T) (*fiber.App, *repository.SlotStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:route_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.TimeSlotModel{}))

	store := repository.NewSlotStore(db)
	app := fiber.New()
	TimeSlotRoutes(app.Group("/api"), store, validator.New())
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}

func slotBody(class, day string, period int, subject, teacher string) map[string]any {
	return map[string]any{
		"time_slots_class_id":   class,
		"time_slots_day":        day,
		"time_slots_period":     period,
		"time_slots_subject_id": subject,
		"time_slots_teacher_id": teacher,
	}
}

func TestPostSlotThenDuplicateConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/timetable-slots", slotBody("C1", "monday", 1, "MATH", "T1"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/timetable-slots", slotBody("C1", "monday", 1, "PHYS", "T2"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "error")

	resp, _ = doJSON(t, app, "POST", "/api/timetable-slots?replace=true", slotBody("C1", "monday", 1, "PHYS", "T2"))
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestPostBreakSlotWithPayloadRejected(t *testing.T) {
	app, _ := newTestApp(t)

	body := slotBody("C1", "monday", 3, "MATH", "T1")
	body["time_slots_is_break"] = true
	resp, out := doJSON(t, app, "POST", "/api/timetable-slots", body)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out, "error")
}

func TestDeleteLockedSlotNeedsForce(t *testing.T) {
	app, store := newTestApp(t)

	subject, teacher := "MATH", "T1"
	locked := &model.TimeSlotModel{
		TimeSlotsClassID:   "C1",
		TimeSlotsDay:       "monday",
		TimeSlotsPeriod:    1,
		TimeSlotsSubjectID: &subject,
		TimeSlotsTeacherID: &teacher,
		TimeSlotsIsLocked:  true,
	}
	require.NoError(t, store.Upsert(context.Background(), locked, false, false))

	resp, _ := doJSON(t, app, "DELETE", "/api/timetable-slots/"+locked.TimeSlotID.String(), nil)
	assert.Equal(t, fiber.StatusLocked, resp.StatusCode)

	resp, _ = doJSON(t, app, "DELETE", "/api/timetable-slots/"+locked.TimeSlotID.String()+"?force=true", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSwapEndpoint(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	math, t1 := "MATH", "T1"
	bio, t2 := "BIO", "T2"
	a := &model.TimeSlotModel{TimeSlotsClassID: "C1", TimeSlotsDay: "monday", TimeSlotsPeriod: 1, TimeSlotsSubjectID: &math, TimeSlotsTeacherID: &t1}
	b := &model.TimeSlotModel{TimeSlotsClassID: "C2", TimeSlotsDay: "friday", TimeSlotsPeriod: 4, TimeSlotsSubjectID: &bio, TimeSlotsTeacherID: &t2}
	require.NoError(t, store.Upsert(ctx, a, false, false))
	require.NoError(t, store.Upsert(ctx, b, false, false))

	resp, _ := doJSON(t, app, "POST", "/api/timetable/swap", map[string]any{
		"slot1_id": a.TimeSlotID.String(),
		"slot2_id": b.TimeSlotID.String(),
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	gotA, err := store.GetByID(ctx, a.TimeSlotID)
	require.NoError(t, err)
	assert.Equal(t, "BIO", gotA.SubjectOrEmpty())
}

func TestSwapUnknownSlotNotFound(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	math, t1 := "MATH", "T1"
	a := &model.TimeSlotModel{TimeSlotsClassID: "C1", TimeSlotsDay: "monday", TimeSlotsPeriod: 1, TimeSlotsSubjectID: &math, TimeSlotsTeacherID: &t1}
	require.NoError(t, store.Upsert(ctx, a, false, false))

	resp, _ := doJSON(t, app, "POST", "/api/timetable/swap", map[string]any{
		"slot1_id": a.TimeSlotID.String(),
		"slot2_id": "4dc9bb5a-5f68-4f0a-9df3-3c3ac9e4a000",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetTimetableList(t *testing.T) {
	app, store := newTestApp(t)
	ctx := context.Background()

	math, t1 := "MATH", "T1"
	for _, day := range []string{"friday", "monday"} {
		s := &model.TimeSlotModel{TimeSlotsClassID: "C1", TimeSlotsDay: day, TimeSlotsPeriod: 1, TimeSlotsSubjectID: &math, TimeSlotsTeacherID: &t1}
		require.NoError(t, store.Upsert(ctx, s, false, false))
	}

	resp, body := doJSON(t, app, "GET", "/api/timetable?class=C1", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)
	first, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "monday", first["time_slots_day"])
}
