// file: internals/features/school/timetable/generator/service/generator.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	conflictsvc "sekolahku_backend/internals/features/school/timetable/conflicts/service"
	slotmodel "sekolahku_backend/internals/features/school/timetable/slots/model"
	"sekolahku_backend/internals/features/school/timetable/slots/repository"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
)

/* =======================================================
   Kontrak input/output generator
   ======================================================= */

type SubjectPlan struct {
	SubjectID      string  `json:"subject_id" validate:"required"`
	TeacherID      string  `json:"teacher_id" validate:"required"`
	RoomID         *string `json:"room_id,omitempty"`
	PeriodsPerWeek int     `json:"periods_per_week" validate:"required,gt=0"`
}

type ClassPlan struct {
	ClassID  string        `json:"class_id" validate:"required"`
	Subjects []SubjectPlan `json:"subjects" validate:"required,min=1,dive"`
}

type Constraints struct {
	MaxPeriodsPerDay          int  `json:"max_periods_per_day"`
	MinBreakDurationMinutes   int  `json:"min_break_duration_minutes"`
	AvoidBackToBack           bool `json:"avoid_back_to_back"`
	RespectTeacherPreferences bool `json:"respect_teacher_preferences"`
}

// ErrNothingToOptimize: kelas target tidak punya assignment sama sekali.
var ErrNothingToOptimize = errors.New("no assignments to optimize")

// CapacityExceededError: kebutuhan period melebihi kapasitas grid kelas.
type CapacityExceededError struct {
	ClassID   string
	Required  int
	Available int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("class %s needs %d periods but only %d positions are available",
		e.ClassID, e.Required, e.Available)
}

type Result struct {
	Slots      []slotmodel.TimeSlotModel `json:"slots"`
	Unresolved int                       `json:"unresolved_conflicts"`
}

/* =======================================================
   Generator — backtracking terbatas budget dengan fallback
   greedy. Best-effort: hasil tidak dijamin bebas conflict,
   sisa bentrok dihitung lewat detector. Slot terkunci
   dipertahankan apa adanya.
   ======================================================= */

// budget langkah pencarian; melewati ini → fallback greedy
const searchBudget = 200_000

type Generator struct {
	Store *repository.SlotStore
}

func NewGenerator(store *repository.SlotStore) *Generator {
	return &Generator{Store: store}
}

type position struct {
	day    string
	period int
}

type session struct {
	classID string
	plan    SubjectPlan
}

type planState struct {
	tpl  *tplmodel.PeriodTemplateModel
	cons Constraints

	days     []string
	periods  []int // nomor period urut, termasuk posisi break
	breakPos map[int]tplmodel.BreakDefinition
	ctx      context.Context
	budget   int

	teacherBusy map[string]map[position]bool
	roomBusy    map[string]map[position]bool
	// teacherDayCount: penyebaran beban guru per hari (respect_teacher_preferences)
	teacherDayCount map[string]map[string]int
}

func (st *planState) markBusy(teacherID, roomID string, p position, delta int) {
	if teacherID != "" {
		if st.teacherBusy[teacherID] == nil {
			st.teacherBusy[teacherID] = make(map[position]bool)
		}
		st.teacherBusy[teacherID][p] = delta > 0
		if st.teacherDayCount[teacherID] == nil {
			st.teacherDayCount[teacherID] = make(map[string]int)
		}
		st.teacherDayCount[teacherID][p.day] += delta
	}
	if roomID != "" {
		if st.roomBusy[roomID] == nil {
			st.roomBusy[roomID] = make(map[position]bool)
		}
		st.roomBusy[roomID][p] = delta > 0
	}
}

func (st *planState) teacherFree(teacherID string, p position) bool {
	return teacherID == "" || !st.teacherBusy[teacherID][p]
}

func (st *planState) roomFree(roomID string, p position) bool {
	return roomID == "" || !st.roomBusy[roomID][p]
}

// maxPerTeacherDay: batas sebaran saat respect_teacher_preferences aktif.
func (st *planState) maxPerTeacherDay(weekly int) int {
	if !st.cons.RespectTeacherPreferences || len(st.days) == 0 {
		return 1 << 30
	}
	return (weekly + len(st.days) - 1) / len(st.days)
}

/* =======================================================
   Build — fungsi perencanaan murni (tanpa DB), dipakai juga
   langsung oleh test
   ======================================================= */

// Build menyusun slot set lengkap untuk kelas-kelas dalam plans.
//   - existing: seluruh isi store saat ini (semua kelas)
//   - slot terkunci kelas target dipertahankan & diperhitungkan
//   - posisi break diisi slot is_break otomatis
//
// Mengembalikan slot BARU (tanpa slot terkunci yang tetap di store)
// plus jumlah conflict yang tidak terselesaikan pada proyeksi akhir.
func Build(ctx context.Context, tpl *tplmodel.PeriodTemplateModel, plans []ClassPlan, cons Constraints, existing []slotmodel.TimeSlotModel) (*Result, error) {
	if err := validateConstraints(tpl, cons); err != nil {
		return nil, err
	}

	st := &planState{
		tpl:             tpl,
		cons:            cons,
		days:            tpl.WorkingDays(),
		breakPos:        tpl.BreakPositions(),
		ctx:             ctx,
		budget:          searchBudget,
		teacherBusy:     make(map[string]map[position]bool),
		roomBusy:        make(map[string]map[position]bool),
		teacherDayCount: make(map[string]map[string]int),
	}
	for _, p := range tpl.Periods() {
		st.periods = append(st.periods, p.Period)
	}
	sort.Ints(st.periods)

	targets := make(map[string]bool, len(plans))
	ordered := append([]ClassPlan(nil), plans...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ClassID < ordered[j].ClassID })
	for _, pl := range ordered {
		targets[pl.ClassID] = true
	}

	// Seed busy set: slot kelas lain (tidak disentuh) + slot terkunci kelas target
	lockedByClass := make(map[string]map[position]*slotmodel.TimeSlotModel)
	kept := make([]slotmodel.TimeSlotModel, 0)
	for i := range existing {
		s := &existing[i]
		p := position{day: s.TimeSlotsDay, period: s.TimeSlotsPeriod}
		if !targets[s.TimeSlotsClassID] {
			if !s.TimeSlotsIsBreak {
				st.markBusy(s.TeacherOrEmpty(), s.RoomOrEmpty(), p, +1)
			}
			kept = append(kept, *s)
			continue
		}
		if s.TimeSlotsIsLocked {
			if lockedByClass[s.TimeSlotsClassID] == nil {
				lockedByClass[s.TimeSlotsClassID] = make(map[position]*slotmodel.TimeSlotModel)
			}
			lockedByClass[s.TimeSlotsClassID][p] = s
			if !s.TimeSlotsIsBreak {
				st.markBusy(s.TeacherOrEmpty(), s.RoomOrEmpty(), p, +1)
			}
			kept = append(kept, *s)
		}
	}

	generated := make([]slotmodel.TimeSlotModel, 0)

	for _, pl := range ordered {
		locked := lockedByClass[pl.ClassID]

		// Posisi yang bisa dipakai kelas ini
		free := make([]position, 0, len(st.days)*len(st.periods))
		for _, d := range st.days {
			for _, per := range st.periods {
				p := position{day: d, period: per}
				if locked[p] != nil {
					continue
				}
				if _, isBreak := st.breakPos[per]; isBreak {
					// isi break otomatis
					generated = append(generated, slotmodel.TimeSlotModel{
						TimeSlotsClassID: pl.ClassID,
						TimeSlotsDay:     d,
						TimeSlotsPeriod:  per,
						TimeSlotsIsBreak: true,
					})
					continue
				}
				free = append(free, p)
			}
		}

		// Kebutuhan session, dikurangi slot terkunci yang sudah memenuhi
		remaining := make(map[string]int, len(pl.Subjects))
		for _, sp := range pl.Subjects {
			remaining[sp.SubjectID] = sp.PeriodsPerWeek
		}
		for _, s := range locked {
			if !s.TimeSlotsIsBreak && remaining[s.SubjectOrEmpty()] > 0 {
				remaining[s.SubjectOrEmpty()]--
			}
		}

		sessions := make([]*session, 0)
		required := 0
		for _, sp := range pl.Subjects {
			for i := 0; i < remaining[sp.SubjectID]; i++ {
				sessions = append(sessions, &session{classID: pl.ClassID, plan: sp})
				required++
			}
		}

		if required > len(free) {
			return nil, &CapacityExceededError{ClassID: pl.ClassID, Required: required, Available: len(free)}
		}

		// Mapel paling banyak duluan (most-constrained-first)
		sort.SliceStable(sessions, func(i, j int) bool {
			if remaining[sessions[i].plan.SubjectID] != remaining[sessions[j].plan.SubjectID] {
				return remaining[sessions[i].plan.SubjectID] > remaining[sessions[j].plan.SubjectID]
			}
			return sessions[i].plan.SubjectID < sessions[j].plan.SubjectID
		})

		classSlots, err := st.placeClass(pl, sessions, free, locked)
		if err != nil {
			return nil, err
		}
		if classSlots == nil {
			// budget habis → greedy: tempatkan sisa di posisi bebas apa adanya
			classSlots = st.greedyPlace(pl, sessions, free)
		}
		generated = append(generated, classSlots...)
	}

	// Hitung sisa conflict pada proyeksi store penuh
	projection := append(append([]slotmodel.TimeSlotModel(nil), kept...), generated...)
	conflicts := conflictsvc.Detect(projection, tpl)

	return &Result{Slots: generated, Unresolved: len(conflicts)}, nil
}

func validateConstraints(tpl *tplmodel.PeriodTemplateModel, cons Constraints) error {
	if cons.MinBreakDurationMinutes > 0 {
		for _, b := range tpl.Breaks() {
			if b.DurationMinutes < cons.MinBreakDurationMinutes {
				return fmt.Errorf("template break %q (%dm) is shorter than min_break_duration_minutes (%dm)",
					b.Name, b.DurationMinutes, cons.MinBreakDurationMinutes)
			}
		}
	}
	return nil
}

/* =======================================================
   Backtracking per kelas, busy set global
   ======================================================= */

func (st *planState) placeClass(pl ClassPlan, sessions []*session, free []position, locked map[position]*slotmodel.TimeSlotModel) ([]slotmodel.TimeSlotModel, error) {
	assigned := make(map[position]*session, len(sessions))
	perDay := make(map[string]int, len(st.days))
	subjectAt := make(map[position]string, len(sessions)+len(locked))
	for p, s := range locked {
		if !s.TimeSlotsIsBreak {
			perDay[p.day]++
			subjectAt[p] = s.SubjectOrEmpty()
		}
	}

	maxPerDay := st.cons.MaxPeriodsPerDay
	if maxPerDay <= 0 {
		maxPerDay = len(st.periods)
	}

	var bt func(idx int) (bool, error)
	bt = func(idx int) (bool, error) {
		if idx == len(sessions) {
			return true, nil
		}
		if err := st.ctx.Err(); err != nil {
			return false, err
		}
		if st.budget <= 0 {
			return false, nil
		}

		s := sessions[idx]
		for _, p := range st.candidateOrder(free, idx) {
			st.budget--
			if assigned[p] != nil {
				continue
			}
			if perDay[p.day] >= maxPerDay {
				continue
			}
			if !st.teacherFree(s.plan.TeacherID, p) {
				continue
			}
			if !st.roomFree(roomOf(s.plan), p) {
				continue
			}
			if st.teacherDayCount[s.plan.TeacherID][p.day] >= st.maxPerTeacherDay(weeklyLoad(s.plan.TeacherID, sessions)) {
				continue
			}
			if st.cons.AvoidBackToBack && makesRun(subjectAt, p, s.plan.SubjectID, 3) {
				continue
			}

			assigned[p] = s
			subjectAt[p] = s.plan.SubjectID
			perDay[p.day]++
			st.markBusy(s.plan.TeacherID, roomOf(s.plan), p, +1)

			ok, err := bt(idx + 1)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}

			delete(assigned, p)
			delete(subjectAt, p)
			perDay[p.day]--
			st.markBusy(s.plan.TeacherID, roomOf(s.plan), p, -1)
		}
		return false, nil
	}

	ok, err := bt(0)
	if err != nil {
		return nil, err
	}
	if !ok {
		// backtrack sudah melepas semua penempatan; caller lanjut ke greedy
		return nil, nil
	}

	out := make([]slotmodel.TimeSlotModel, 0, len(assigned))
	for p, s := range assigned {
		out = append(out, newTeachingSlot(pl.ClassID, p, s.plan))
	}
	sortSlots(out)
	return out, nil
}

// candidateOrder memutar urutan hari per session supaya mapel tersebar,
// bukan menumpuk di awal minggu.
func (st *planState) candidateOrder(free []position, sessionIdx int) []position {
	if len(st.days) == 0 {
		return free
	}
	offset := sessionIdx % len(st.days)
	ordered := append([]position(nil), free...)
	sort.SliceStable(ordered, func(i, j int) bool {
		di := (dayPos(st.days, ordered[i].day) + len(st.days) - offset) % len(st.days)
		dj := (dayPos(st.days, ordered[j].day) + len(st.days) - offset) % len(st.days)
		if di != dj {
			return di < dj
		}
		return ordered[i].period < ordered[j].period
	})
	return ordered
}

// greedyPlace: fallback ketika budget pencarian habis; mengisi posisi bebas
// berurutan tanpa memeriksa busy guru/ruang (bentrok dihitung detector).
func (st *planState) greedyPlace(pl ClassPlan, sessions []*session, free []position) []slotmodel.TimeSlotModel {
	out := make([]slotmodel.TimeSlotModel, 0, len(sessions))
	used := make(map[position]bool, len(sessions))
	i := 0
	for _, s := range sessions {
		for i < len(free) && used[free[i]] {
			i++
		}
		if i >= len(free) {
			break
		}
		p := free[i]
		used[p] = true
		st.markBusy(s.plan.TeacherID, roomOf(s.plan), p, +1)
		out = append(out, newTeachingSlot(pl.ClassID, p, s.plan))
	}
	sortSlots(out)
	return out
}

/* =======================================================
   Helper kecil
   ======================================================= */

func roomOf(sp SubjectPlan) string {
	if sp.RoomID == nil {
		return ""
	}
	return *sp.RoomID
}

func weeklyLoad(teacherID string, sessions []*session) int {
	n := 0
	for _, s := range sessions {
		if s.plan.TeacherID == teacherID {
			n++
		}
	}
	return n
}

// makesRun: true bila menempatkan subject di p membentuk run ≥ limit
// period berurutan dengan subject sama.
func makesRun(subjectAt map[position]string, p position, subject string, limit int) bool {
	run := 1
	for per := p.period - 1; subjectAt[position{day: p.day, period: per}] == subject && subject != ""; per-- {
		run++
	}
	for per := p.period + 1; subjectAt[position{day: p.day, period: per}] == subject && subject != ""; per++ {
		run++
	}
	return run >= limit
}

func newTeachingSlot(classID string, p position, sp SubjectPlan) slotmodel.TimeSlotModel {
	subject := sp.SubjectID
	teacher := sp.TeacherID
	return slotmodel.TimeSlotModel{
		TimeSlotsClassID:   classID,
		TimeSlotsDay:       p.day,
		TimeSlotsPeriod:    p.period,
		TimeSlotsSubjectID: &subject,
		TimeSlotsTeacherID: &teacher,
		TimeSlotsRoomID:    sp.RoomID,
	}
}

func dayPos(days []string, day string) int {
	for i, d := range days {
		if d == day {
			return i
		}
	}
	return 0
}

func sortSlots(slots []slotmodel.TimeSlotModel) {
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].TimeSlotsDay != slots[j].TimeSlotsDay {
			return dayLess(slots[i].TimeSlotsDay, slots[j].TimeSlotsDay)
		}
		return slots[i].TimeSlotsPeriod < slots[j].TimeSlotsPeriod
	})
}

func dayLess(a, b string) bool {
	order := map[string]int{
		"monday": 0, "tuesday": 1, "wednesday": 2, "thursday": 3,
		"friday": 4, "saturday": 5, "sunday": 6,
	}
	return order[a] < order[b]
}

/* =======================================================
   Generate / Optimize — orkestrasi store
   ======================================================= */

// Generate menyusun jadwal lalu menerapkannya atomik: slot tak-terkunci
// kelas target diganti seluruhnya, slot terkunci tidak disentuh.
// Pembatalan ctx sebelum commit → store tidak berubah.
func (g *Generator) Generate(ctx context.Context, tpl *tplmodel.PeriodTemplateModel, plans []ClassPlan, cons Constraints) (*Result, error) {
	existing, err := g.Store.List(ctx, repository.SlotFilter{})
	if err != nil {
		return nil, err
	}

	res, err := Build(ctx, tpl, plans, cons, existing)
	if err != nil {
		return nil, err
	}

	classIDs := make([]string, 0, len(plans))
	for _, pl := range plans {
		classIDs = append(classIDs, pl.ClassID)
	}
	if err := g.Store.ReplaceForClasses(ctx, classIDs, res.Slots); err != nil {
		return nil, err
	}
	return res, nil
}

// Optimize menurunkan rencana dari isi jadwal kelas saat ini lalu
// menjalankan ulang generator (slot terkunci tetap).
func (g *Generator) Optimize(ctx context.Context, tpl *tplmodel.PeriodTemplateModel, classID string, cons Constraints) (*Result, error) {
	current, err := g.Store.List(ctx, repository.SlotFilter{ClassID: classID})
	if err != nil {
		return nil, err
	}

	plan := DerivePlan(classID, current)
	if len(plan.Subjects) == 0 {
		return nil, fmt.Errorf("%w: class %s", ErrNothingToOptimize, classID)
	}
	return g.Generate(ctx, tpl, []ClassPlan{plan}, cons)
}

// DerivePlan merekonstruksi ClassPlan dari slot existing sebuah kelas:
// per subject dihitung jumlah period-nya, guru/ruang diambil dari
// assignment yang paling sering muncul.
func DerivePlan(classID string, slots []slotmodel.TimeSlotModel) ClassPlan {
	type tally struct {
		count    int
		teachers map[string]int
		rooms    map[string]int
	}
	bySubject := make(map[string]*tally)
	for i := range slots {
		s := &slots[i]
		if s.TimeSlotsIsBreak || s.SubjectOrEmpty() == "" {
			continue
		}
		t := bySubject[s.SubjectOrEmpty()]
		if t == nil {
			t = &tally{teachers: make(map[string]int), rooms: make(map[string]int)}
			bySubject[s.SubjectOrEmpty()] = t
		}
		t.count++
		if s.TeacherOrEmpty() != "" {
			t.teachers[s.TeacherOrEmpty()]++
		}
		if s.RoomOrEmpty() != "" {
			t.rooms[s.RoomOrEmpty()]++
		}
	}

	subjects := make([]string, 0, len(bySubject))
	for sub := range bySubject {
		subjects = append(subjects, sub)
	}
	sort.Strings(subjects)

	plan := ClassPlan{ClassID: classID}
	for _, sub := range subjects {
		t := bySubject[sub]
		sp := SubjectPlan{
			SubjectID:      sub,
			TeacherID:      topKey(t.teachers),
			PeriodsPerWeek: t.count,
		}
		if room := topKey(t.rooms); room != "" {
			sp.RoomID = &room
		}
		plan.Subjects = append(plan.Subjects, sp)
	}
	return plan
}

func topKey(m map[string]int) string {
	best, bestN := "", -1
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if m[k] > bestN {
			best, bestN = k, m[k]
		}
	}
	return best
}
