package dataset

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrMissingColumns = errors.New("missing required columns")

type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Missing, ", ")
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrMissingColumns
}

// Columns are zero based header indexes, -1 when not found.
type Columns struct {
	Date int
	UV   int
	O3   int
	PP   int
}

func (c Columns) Index(v Variable) int {
	switch v {
	case UV:
		return c.UV
	case O3:
		return c.O3
	default:
		return c.PP
	}
}

var columnKeywords = []struct {
	name     string
	keywords []string
}{
	{"fecha", []string{"fecha"}},
	{"radiacion", []string{"radiacion", "uv"}},
	{"o3", []string{"o3", "ozono"}},
	{"precipitacion", []string{"precipitacion", "pp", "lluvia"}},
}

// DetectColumns picks, for every required column, the first header whose
// lowercased name contains one of its keywords. Matching is plain substring
// search, so "Lluvia" also contains "uv" and accented names such as
// "Radiación" do not match "radiacion".
func DetectColumns(header []string) (Columns, error) {
	found := make([]int, len(columnKeywords))
	var missing []string

	for i, col := range columnKeywords {
		found[i] = -1
		for j, h := range header {
			if containsAny(lower(h), col.keywords) {
				found[i] = j
				break
			}
		}
		if found[i] == -1 {
			missing = append(missing, col.name)
		}
	}

	if len(missing) > 0 {
		return Columns{-1, -1, -1, -1}, &MissingColumnsError{Missing: missing}
	}

	return Columns{Date: found[0], UV: found[1], O3: found[2], PP: found[3]}, nil
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

var lowerCaser = cases.Lower(language.Und)

func lower(s string) string {
	return lowerCaser.String(strings.TrimSpace(s))
}
