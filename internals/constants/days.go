package constants

import "strings"

// Urutan hari mengikuti kalender sekolah (Senin = index 0).
var WeekDays = []string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

var dayIndex = func() map[string]int {
	m := make(map[string]int, len(WeekDays))
	for i, d := range WeekDays {
		m[d] = i
	}
	return m
}()

// DayIndex mengembalikan posisi hari dalam minggu (0..6), -1 jika bukan nama hari.
func DayIndex(day string) int {
	if i, ok := dayIndex[strings.ToLower(strings.TrimSpace(day))]; ok {
		return i
	}
	return -1
}

func IsValidDay(day string) bool {
	return DayIndex(day) >= 0
}
