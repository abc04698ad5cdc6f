package database

import (
	"log"

	academicsmodel "sekolahku_backend/internals/features/school/academics/model"
	slotmodel "sekolahku_backend/internals/features/school/timetable/slots/model"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
)

// Migrate menjalankan auto-migration seluruh tabel.
func Migrate() {
	if err := DB.AutoMigrate(
		&tplmodel.PeriodTemplateModel{},
		&slotmodel.TimeSlotModel{},
		&academicsmodel.ClassModel{},
		&academicsmodel.SubjectModel{},
		&academicsmodel.TeacherModel{},
		&academicsmodel.RoomModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrate: %v", err)
	}
	log.Println("✅ Migration done.")
}
