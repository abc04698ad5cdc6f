// file: internals/seeds/runner.go
package seeds

import (
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	academicsmodel "sekolahku_backend/internals/features/school/academics/model"
	tplmodel "sekolahku_backend/internals/features/school/timetable/templates/model"
)

// Run mengisi data awal bila tabel masih kosong (idempotent, aman
// dipanggil tiap boot dengan RUN_SEEDS=true).
func Run(db *gorm.DB) {
	seedDefaultTemplate(db)
	seedAcademics(db)
}

func seedDefaultTemplate(db *gorm.DB) {
	var count int64
	if err := db.Model(&tplmodel.PeriodTemplateModel{}).Count(&count).Error; err != nil {
		log.Printf("⚠️ Seed template: gagal cek isi tabel: %v", err)
		return
	}
	if count > 0 {
		log.Println("ℹ️ Seed template dilewati, tabel sudah terisi.")
		return
	}

	tpl := tplmodel.PeriodTemplateModel{
		PeriodTemplatesName: "Jadwal Reguler",
		PeriodTemplatesPeriods: datatypes.NewJSONType([]tplmodel.PeriodDefinition{
			{Period: 1, StartTime: "07:00", EndTime: "07:45"},
			{Period: 2, StartTime: "07:45", EndTime: "08:30"},
			{Period: 3, StartTime: "08:30", EndTime: "09:00"},
			{Period: 4, StartTime: "09:00", EndTime: "09:45"},
			{Period: 5, StartTime: "09:45", EndTime: "10:30"},
			{Period: 6, StartTime: "10:30", EndTime: "11:00"},
			{Period: 7, StartTime: "11:00", EndTime: "11:45"},
			{Period: 8, StartTime: "11:45", EndTime: "12:30"},
		}),
		PeriodTemplatesWorkingDays: datatypes.NewJSONType([]string{
			"monday", "tuesday", "wednesday", "thursday", "friday",
		}),
		PeriodTemplatesBreaks: datatypes.NewJSONType([]tplmodel.BreakDefinition{
			{Name: "istirahat pagi", AfterPeriod: 2, DurationMinutes: 30},
			{Name: "istirahat siang", AfterPeriod: 5, DurationMinutes: 30},
		}),
		PeriodTemplatesIsActive: true,
	}
	if err := db.Create(&tpl).Error; err != nil {
		log.Printf("❌ Seed template gagal: %v", err)
		return
	}
	log.Println("✅ Seed template default selesai.")
}

func seedAcademics(db *gorm.DB) {
	var count int64
	if err := db.Model(&academicsmodel.SubjectModel{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	subjects := []academicsmodel.SubjectModel{
		{SubjectID: "MATH", SubjectsName: "Matematika", SubjectsIsActive: true},
		{SubjectID: "IND", SubjectsName: "Bahasa Indonesia", SubjectsIsActive: true},
		{SubjectID: "ENG", SubjectsName: "Bahasa Inggris", SubjectsIsActive: true},
		{SubjectID: "SCI", SubjectsName: "IPA", SubjectsRequiresLab: true, SubjectsIsActive: true},
		{SubjectID: "SOC", SubjectsName: "IPS", SubjectsIsActive: true},
		{SubjectID: "PE", SubjectsName: "Pendidikan Jasmani", SubjectsIsActive: true},
	}
	if err := db.Create(&subjects).Error; err != nil {
		log.Printf("❌ Seed subjects gagal: %v", err)
		return
	}

	rooms := []academicsmodel.RoomModel{
		{RoomID: "R101", RoomsName: "Ruang 101", RoomsIsActive: true},
		{RoomID: "R102", RoomsName: "Ruang 102", RoomsIsActive: true},
		{RoomID: "LAB1", RoomsName: "Laboratorium IPA", RoomsIsLab: true, RoomsIsActive: true},
	}
	if err := db.Create(&rooms).Error; err != nil {
		log.Printf("❌ Seed rooms gagal: %v", err)
		return
	}
	log.Println("✅ Seed academics selesai.")
}
