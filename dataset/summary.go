package dataset

import (
	"github.com/angas/solara-go/convert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Stats struct {
	Variable Variable
	Min      float64
	Max      float64
	Mean     float64
	Missing  int // Cells still empty after interpolation
}

type Summary struct {
	Records int
	Stats   map[Variable]Stats
}

func (s Summary) Of(v Variable) Stats {
	return s.Stats[v]
}

// Summarize computes the extremes and the mean of every variable. Missing
// cells count as zero, and the mean is taken over all records.
func Summarize(ds *Dataset) Summary {
	sum := Summary{Records: ds.Len(), Stats: make(map[Variable]Stats, len(Variables))}

	for _, v := range Variables {
		st := Stats{Variable: v}
		if ds.Len() > 0 {
			cells := ds.Column(v)
			values := Values(cells)
			st.Min = floats.Min(values)
			st.Max = floats.Max(values)
			st.Mean = stat.Mean(values, nil)
			st.Missing = Missing(cells)
		}
		sum.Stats[v] = st
	}

	return sum
}

// Values flattens cells, empty and unreadable cells become zero.
func Values(cells []Cell) []float64 {
	values := make([]float64, len(cells))
	for i, c := range cells {
		values[i] = convert.ZeroIfInvalid(c.ValueOrDefault(0))
	}
	return values
}
