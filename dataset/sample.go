package dataset

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/angas/solara-go/convert"
	"github.com/angas/solara-go/hours"
	"github.com/angas/solara-go/types/maybe"
)

var SampleStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const SampleDays = 30

// Sample generates a synthetic dataset with plausible Junín readings:
// UV 7.0-11.0, O3 25-65 µg/m³ and precipitation 0-15 mm.
func Sample(rng *rand.Rand, start time.Time, days int) *Dataset {
	ds := &Dataset{
		Name:     "datos-de-muestra",
		LoadedAt: time.Now(),
		Header:   []string{"fecha", "radiacion", "o3", "precipitacion"},
		Columns:  Columns{Date: 0, UV: 1, O3: 2, PP: 3},
		Records:  make([]Record, days),
	}

	for i := range days {
		day := start.AddDate(0, 0, i)
		ds.Records[i] = Record{
			Date:  day.Format(hours.DateLayout),
			When:  day,
			UV:    maybe.Some(convert.OneDecimal(7 + rng.Float64()*4)),
			O3:    maybe.Some(convert.RoundFloat64(25+rng.Float64()*40, 0)),
			PP:    maybe.Some(convert.OneDecimal(rng.Float64() * 15)),
			Extra: map[string]string{},
		}
	}

	return ds
}

// Rows renders the dataset back to sheet rows, header first.
func (d *Dataset) Rows() [][]string {
	rows := make([][]string, 0, len(d.Records)+1)
	rows = append(rows, d.Header)
	for _, r := range d.Records {
		row := make([]string, len(d.Header))
		for i, h := range d.Header {
			switch i {
			case d.Columns.Date:
				row[i] = r.Date
			case d.Columns.UV:
				row[i] = formatCell(r.UV)
			case d.Columns.O3:
				row[i] = formatCell(r.O3)
			case d.Columns.PP:
				row[i] = formatCell(r.PP)
			default:
				row[i] = r.Extra[h]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func formatCell(c Cell) string {
	if missing(c) {
		return ""
	}
	return strconv.FormatFloat(c.Value(), 'f', -1, 64)
}
