package hours

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const (
	DateLayout = "2006-01-02"

	// Hours in a predicted day, 0..23
	PerDay = 24
)

var guiLocation *time.Location = time.UTC

func SetGuiTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	guiLocation = loc
	return nil
}

// DateHour is one hour of a calendar day. The day is not bound to a timezone,
// a prediction for "2025-03-01" covers the local hours 0..23 of that day.
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %02d", dh.Date, dh.Hour)
}

// Label is the hour axis label used by charts and tables, e.g. "07:00".
func (dh DateHour) Label() string {
	return Label(int(dh.Hour))
}

func (dh DateHour) IsoString() string {
	return fmt.Sprintf("%sT%02d:00:00", dh.Date, dh.Hour)
}

// Day returns the 24 hours of the given date, midnight first.
func Day(date string) []DateHour {
	day := make([]DateHour, PerDay)
	for h := range PerDay {
		day[h] = DateHour{Date: date, Hour: uint8(h)}
	}
	return day
}

func Label(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// ParseDate accepts the "YYYY-MM-DD" format used by the date input.
func ParseDate(str string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, str, guiLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", str, err)
	}
	return t, nil
}

// Today is the current date in the GUI timezone.
func Today() string {
	return time.Now().In(guiLocation).Format(DateLayout)
}

func FormatTimeInGuiTimezone(t time.Time) string {
	return t.In(guiLocation).Format("2006-01-02 15:04:05")
}

// LongDate renders a date the way the prediction form shows it,
// e.g. "sábado, 1 de marzo de 2025".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysEs[t.Weekday()], t.Day(), monthsEs[t.Month()-1], t.Year())
}

var weekdaysEs = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var monthsEs = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}
