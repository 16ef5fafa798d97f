package dataset

import (
	"math"

	"github.com/angas/solara-go/types/maybe"
)

func missing(c Cell) bool {
	return !c.IsValid() || math.IsNaN(c.Value())
}

// Interpolate fills every gap lying between two valid readings with a straight
// line between them. Leading and trailing gaps stay empty.
func Interpolate(cells []Cell) {
	last := -1
	for i := 0; i < len(cells); i++ {
		if !missing(cells[i]) {
			last = i
			continue
		}

		next := -1
		for j := i + 1; j < len(cells); j++ {
			if !missing(cells[j]) {
				next = j
				break
			}
		}
		if last == -1 || next == -1 {
			continue
		}

		from, to := cells[last].Value(), cells[next].Value()
		step := (to - from) / float64(next-last)
		for k := last + 1; k < next; k++ {
			cells[k] = maybe.Some(from + step*float64(k-last))
		}
		i = next - 1
	}
}

// Missing counts empty or unreadable cells.
func Missing(cells []Cell) int {
	n := 0
	for _, c := range cells {
		if missing(c) {
			n++
		}
	}
	return n
}
