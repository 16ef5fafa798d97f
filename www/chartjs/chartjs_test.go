package chartjs

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestNewHourlyChart(t *testing.T) {
	chart := NewHourlyChart("Pronóstico",
		Series{Label: "UV", Color: ColorOrange},
		Series{Label: "O₃", Color: ColorBlue, Axis: RightAxis},
		Series{Label: "LSTM", Color: ColorPurple, Dashed: true})

	if chart.Type != "line" || len(chart.Data.Labels) != 24 {
		t.Fatalf("got type %s with %d labels", chart.Type, len(chart.Data.Labels))
	}
	if chart.Data.Labels[0] != "00:00" || chart.Data.Labels[23] != "23:00" {
		t.Errorf("unexpected labels %v", chart.Data.Labels)
	}

	tests := []struct {
		index  int
		label  string
		axis   string
		dashed bool
	}{
		{0, "UV", LeftAxis, false},
		{1, "O₃", RightAxis, false},
		{2, "LSTM", LeftAxis, true},
	}
	for _, tt := range tests {
		ds := chart.Data.Datasets[tt.index]
		if ds.Label != tt.label || ds.YAxisID != tt.axis || (len(ds.BorderDash) > 0) != tt.dashed {
			t.Errorf("dataset %d got %+v", tt.index, ds)
		}
		if len(ds.Data) != 24 {
			t.Errorf("dataset %d has %d points", tt.index, len(ds.Data))
		}
	}
	if !chart.Options.Plugins.Title.Display || chart.Options.Plugins.Title.Text != "Pronóstico" {
		t.Errorf("title not set: %+v", chart.Options.Plugins.Title)
	}
}

func TestNewBarChart(t *testing.T) {
	chart := NewBarChart("", []string{"Radiación", "O₃", "Precipitación"},
		Series{Label: "Máximo", Color: ColorRed},
		Series{Label: "Mínimo", Color: ColorGreen})
	chart.Set(0, 1, 65.04, 1)
	chart.Set(1, 1, math.NaN(), 1)

	if chart.Type != "bar" || chart.Options.Plugins.Title.Display {
		t.Errorf("unexpected chart %+v", chart.Options)
	}
	if got := chart.Data.Datasets[0].Data[1]; got == nil || *got != 65 {
		t.Errorf("got %v, wanted 65", got)
	}
	if chart.Data.Datasets[1].Data[1] != nil {
		t.Errorf("NaN should be a gap")
	}
	if chart.Data.Datasets[0].BackgroundColor != ColorRed {
		t.Errorf("bars should be filled")
	}

	b, err := json.Marshal(chart)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"data":[null,65,null]`) {
		t.Errorf("unexpected json %s", b)
	}
}

func TestFixedFloat64(t *testing.T) {
	tests := []struct {
		input     float64
		precision int
		expected  *float64
	}{
		{1.234, 2, ptr(1.23)},
		{1.235, 1, ptr(1.2)},
		{-0.06, 1, ptr(-0.1)},
		{math.Inf(1), 1, nil},
	}
	for _, tt := range tests {
		got := FixedFloat64(tt.input, tt.precision)
		if (got == nil) != (tt.expected == nil) || (got != nil && math.Abs(*got-*tt.expected) > 1e-9) {
			t.Errorf("FixedFloat64(%v, %d) = %v, wanted %v", tt.input, tt.precision, got, tt.expected)
		}
	}
}

func ptr(f float64) *float64 { return &f }

func TestScaleBuilders(t *testing.T) {
	s := ChartScale{}.WithTitle("UV").WithMinAndMax(0, 12)
	if s.Title.Text != "UV" || *s.Min != 0 || *s.Max != 12 {
		t.Errorf("unexpected scale %+v", s)
	}
}
