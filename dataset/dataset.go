// Package dataset reads spreadsheets of historical daily readings.
package dataset

import (
	"time"

	"github.com/angas/solara-go/types/maybe"
)

type Variable int

const (
	UV Variable = iota // Solar radiation, UV index
	O3                 // Ozone, µg/m³
	PP                 // Precipitation, mm
)

var Variables = []Variable{UV, O3, PP}

func (v Variable) String() string {
	switch v {
	case UV:
		return "radiacion"
	case O3:
		return "o3"
	case PP:
		return "precipitacion"
	default:
		return "unknown"
	}
}

// Label is the name shown in the GUI.
func (v Variable) Label() string {
	switch v {
	case UV:
		return "Radiación"
	case O3:
		return "O₃"
	case PP:
		return "Precipitación"
	default:
		return "?"
	}
}

func (v Variable) Unit() string {
	switch v {
	case UV:
		return "UV"
	case O3:
		return "µg/m³"
	case PP:
		return "mm"
	default:
		return ""
	}
}

type Cell = maybe.Maybe[float64]

type Record struct {
	Date  string    // As written in the sheet
	When  time.Time // Zero if Date could not be parsed
	UV    Cell
	O3    Cell
	PP    Cell
	Extra map[string]string // Remaining columns, keyed by header
}

func (r Record) Value(v Variable) Cell {
	switch v {
	case UV:
		return r.UV
	case O3:
		return r.O3
	default:
		return r.PP
	}
}

func (r *Record) set(v Variable, c Cell) {
	switch v {
	case UV:
		r.UV = c
	case O3:
		r.O3 = c
	default:
		r.PP = c
	}
}

type Dataset struct {
	Name     string
	Size     int64
	LoadedAt time.Time
	Header   []string
	Columns  Columns
	Records  []Record
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Column returns the cells of a variable in row order.
func (d *Dataset) Column(v Variable) []Cell {
	cells := make([]Cell, len(d.Records))
	for i, r := range d.Records {
		cells[i] = r.Value(v)
	}
	return cells
}

func (d *Dataset) setColumn(v Variable, cells []Cell) {
	for i := range d.Records {
		d.Records[i].set(v, cells[i])
	}
}

// FirstDate and LastDate give the covered period when the sheet has parseable dates.
func (d *Dataset) FirstDate() time.Time {
	var first time.Time
	for _, r := range d.Records {
		if !r.When.IsZero() && (first.IsZero() || r.When.Before(first)) {
			first = r.When
		}
	}
	return first
}

func (d *Dataset) LastDate() time.Time {
	var last time.Time
	for _, r := range d.Records {
		if r.When.After(last) {
			last = r.When
		}
	}
	return last
}
