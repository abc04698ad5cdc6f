// file: internals/features/school/timetable/slots/repository/slot_store.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/school/timetable/slots/model"
)

/* =======================================================
   Error taksonomi store (dipetakan ke status HTTP di
   controller: 404 / 423 / 409)
   ======================================================= */

var (
	ErrSlotNotFound  = errors.New("time slot not found")
	ErrSlotLocked    = errors.New("time slot is locked")
	ErrDuplicateSlot = errors.New("a slot already occupies this class/day/period")
)

/* =======================================================
   SlotStore — satu-satunya pintu mutasi time_slots.
   Serialisasi per class_id: editor kelas berbeda tidak
   saling menunggu, operasi lintas kelas (swap, generate)
   mengunci semua kelas terdampak dengan urutan deterministik.
   ======================================================= */

type SlotStore struct {
	db *gorm.DB

	mu      sync.Mutex
	classMu map[string]*sync.Mutex
}

func NewSlotStore(db *gorm.DB) *SlotStore {
	return &SlotStore{db: db, classMu: make(map[string]*sync.Mutex)}
}

func (s *SlotStore) DB() *gorm.DB { return s.db }

func (s *SlotStore) classLock(classID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.classMu[classID]; ok {
		return m
	}
	m := &sync.Mutex{}
	s.classMu[classID] = m
	return m
}

// lockClasses mengunci kumpulan kelas dalam urutan terurut (hindari deadlock).
func (s *SlotStore) lockClasses(classIDs ...string) func() {
	uniq := make(map[string]bool, len(classIDs))
	ids := make([]string, 0, len(classIDs))
	for _, id := range classIDs {
		if !uniq[id] {
			uniq[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	locks := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		m := s.classLock(id)
		m.Lock()
		locks = append(locks, m)
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

/* =======================================================
   Query
   ======================================================= */

type SlotFilter struct {
	ClassID string
	Day     string
}

// dayOrderExpr mengurutkan nama hari sesuai kalender (senin dulu).
func dayOrderExpr() string {
	var b strings.Builder
	b.WriteString("CASE time_slots_day")
	for i, d := range constants.WeekDays {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", d, i)
	}
	b.WriteString(" ELSE 99 END")
	return b.String()
}

// List mengembalikan slot terfilter, urut (day index, period) — deterministik
// untuk rendering dan test.
func (s *SlotStore) List(ctx context.Context, f SlotFilter) ([]model.TimeSlotModel, error) {
	db := s.db.WithContext(ctx).Model(&model.TimeSlotModel{})
	if f.ClassID != "" {
		db = db.Where("time_slots_class_id = ?", f.ClassID)
	}
	if f.Day != "" {
		db = db.Where("time_slots_day = ?", strings.ToLower(f.Day))
	}

	var rows []model.TimeSlotModel
	err := db.Order(dayOrderExpr() + ", time_slots_period ASC, time_slots_class_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *SlotStore) GetByID(ctx context.Context, id uuid.UUID) (*model.TimeSlotModel, error) {
	var row model.TimeSlotModel
	if err := s.db.WithContext(ctx).First(&row, "time_slot_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &row, nil
}

/* =======================================================
   Mutasi
   ======================================================= */

// Upsert menyisipkan slot baru atau mengganti payload slot pada key yang sama.
//   - replace=false: key yang sudah terisi → ErrDuplicateSlot (caller harus
//     eksplisit minta replace, tidak ada overwrite diam-diam)
//   - force=false: slot existing yang terkunci → ErrSlotLocked
func (s *SlotStore) Upsert(ctx context.Context, slot *model.TimeSlotModel, replace, force bool) error {
	unlock := s.lockClasses(slot.TimeSlotsClassID)
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.TimeSlotModel
		err := tx.Where(
			"time_slots_class_id = ? AND time_slots_day = ? AND time_slots_period = ?",
			slot.TimeSlotsClassID, slot.TimeSlotsDay, slot.TimeSlotsPeriod,
		).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(slot).Error
		case err != nil:
			return err
		}

		if !replace {
			return ErrDuplicateSlot
		}
		if existing.TimeSlotsIsLocked && !force {
			return ErrSlotLocked
		}

		// Ganti payload, pertahankan identitas slot pada key tsb
		updates := map[string]interface{}{
			"time_slots_subject_id": slot.TimeSlotsSubjectID,
			"time_slots_teacher_id": slot.TimeSlotsTeacherID,
			"time_slots_room_id":    slot.TimeSlotsRoomID,
			"time_slots_is_break":   slot.TimeSlotsIsBreak,
			"time_slots_is_locked":  slot.TimeSlotsIsLocked,
		}
		if err := tx.Model(&model.TimeSlotModel{}).
			Where("time_slot_id = ?", existing.TimeSlotID).
			Updates(updates).Error; err != nil {
			return err
		}
		slot.TimeSlotID = existing.TimeSlotID
		return nil
	})
}

// Remove menghapus slot pada key. Slot terkunci butuh force.
func (s *SlotStore) Remove(ctx context.Context, classID, day string, period int, force bool) error {
	unlock := s.lockClasses(classID)
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.TimeSlotModel
		err := tx.Where(
			"time_slots_class_id = ? AND time_slots_day = ? AND time_slots_period = ?",
			classID, strings.ToLower(day), period,
		).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSlotNotFound
		}
		if err != nil {
			return err
		}
		if existing.TimeSlotsIsLocked && !force {
			return ErrSlotLocked
		}
		return tx.Delete(&model.TimeSlotModel{}, "time_slot_id = ?", existing.TimeSlotID).Error
	})
}

// RemoveByID — varian untuk DELETE /timetable-slots/:id.
func (s *SlotStore) RemoveByID(ctx context.Context, id uuid.UUID, force bool) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.Remove(ctx, existing.TimeSlotsClassID, existing.TimeSlotsDay, existing.TimeSlotsPeriod, force)
}

// Swap menukar payload (subject, teacher, room, is_break) dua slot secara
// atomik; key (class, day, period) masing-masing tidak berubah. Gagal dengan
// ErrSlotLocked bila salah satu terkunci — store tidak berubah sama sekali.
func (s *SlotStore) Swap(ctx context.Context, id1, id2 uuid.UUID) error {
	if id1 == id2 {
		return nil
	}

	// Ambil dulu untuk tahu kelas mana yang harus dikunci
	a, err := s.GetByID(ctx, id1)
	if err != nil {
		return err
	}
	b, err := s.GetByID(ctx, id2)
	if err != nil {
		return err
	}

	unlock := s.lockClasses(a.TimeSlotsClassID, b.TimeSlotsClassID)
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Re-read di dalam transaksi (baris bisa berubah sebelum lock didapat)
		var fresh [2]model.TimeSlotModel
		if err := tx.First(&fresh[0], "time_slot_id = ?", id1).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		if err := tx.First(&fresh[1], "time_slot_id = ?", id2).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		if fresh[0].TimeSlotsIsLocked || fresh[1].TimeSlotsIsLocked {
			return ErrSlotLocked
		}

		payload := func(m *model.TimeSlotModel) map[string]interface{} {
			return map[string]interface{}{
				"time_slots_subject_id": m.TimeSlotsSubjectID,
				"time_slots_teacher_id": m.TimeSlotsTeacherID,
				"time_slots_room_id":    m.TimeSlotsRoomID,
				"time_slots_is_break":   m.TimeSlotsIsBreak,
			}
		}
		p0, p1 := payload(&fresh[0]), payload(&fresh[1])

		if err := tx.Model(&model.TimeSlotModel{}).
			Where("time_slot_id = ?", fresh[0].TimeSlotID).Updates(p1).Error; err != nil {
			return err
		}
		return tx.Model(&model.TimeSlotModel{}).
			Where("time_slot_id = ?", fresh[1].TimeSlotID).Updates(p0).Error
	})
}

// ReplaceForClasses mengganti seluruh slot tak-terkunci milik kelas-kelas
// terdampak dengan hasil generator, dalam satu transaksi (all-or-nothing).
// Slot terkunci tidak disentuh. Pembatalan ctx → rollback penuh.
func (s *SlotStore) ReplaceForClasses(ctx context.Context, classIDs []string, slots []model.TimeSlotModel) error {
	if len(classIDs) == 0 {
		return nil
	}
	unlock := s.lockClasses(classIDs...)
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"time_slots_class_id IN ? AND time_slots_is_locked = ?",
			classIDs, false,
		).Delete(&model.TimeSlotModel{}).Error; err != nil {
			return err
		}
		for i := range slots {
			if err := ctx.Err(); err != nil {
				return err // rollback: store tidak berubah
			}
			if err := tx.Create(&slots[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
