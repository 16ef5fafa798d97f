package hours

import (
	"testing"
	"time"
)

func TestDateHourString(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 5}
	expected := "2025-01-01 05"
	if s := dh.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestDateHourLabel(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 7}
	if s := dh.Label(); s != "07:00" {
		t.Errorf("Label() expected %q, got %q", "07:00", s)
	}
	if s := Label(19); s != "19:00" {
		t.Errorf("Label(19) expected %q, got %q", "19:00", s)
	}
}

func TestDay(t *testing.T) {
	day := Day("2025-03-01")
	if len(day) != PerDay {
		t.Fatalf("Day() expected %d hours, got %d", PerDay, len(day))
	}
	for i, dh := range day {
		if dh.Date != "2025-03-01" || int(dh.Hour) != i {
			t.Errorf("Day()[%d] got %+v", i, dh)
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "iso date", input: "2025-03-01"},
		{name: "leap day", input: "2024-02-29"},
		{name: "not a leap year", input: "2025-02-29", wantErr: true},
		{name: "day first", input: "01/03/2025", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSetGuiTimezone(t *testing.T) {
	defer func() { guiLocation = time.UTC }()

	if err := SetGuiTimezone("America/Lima"); err != nil {
		t.Fatalf("SetGuiTimezone() unexpected error: %v", err)
	}
	// Lima is UTC-5 all year
	tm := time.Date(2025, time.January, 1, 3, 0, 0, 0, time.UTC)
	if s := FormatTimeInGuiTimezone(tm); s != "2024-12-31 22:00:00" {
		t.Errorf("FormatTimeInGuiTimezone() in Lima got %q", s)
	}

	if err := SetGuiTimezone("Nowhere/Atlantis"); err == nil {
		t.Errorf("SetGuiTimezone() expected error for unknown zone")
	}
}

func TestLongDate(t *testing.T) {
	tm := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	expected := "sábado, 1 de marzo de 2025"
	if s := LongDate(tm); s != expected {
		t.Errorf("LongDate() expected %q, got %q", expected, s)
	}
}
