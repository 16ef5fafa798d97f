package chartjs

import (
	"math"

	"github.com/angas/solara-go/hours"
)

const (
	ColorOrange = "#ea580cd4"
	ColorPurple = "#7c3aedd4"
	ColorBlue   = "#2563ebd4"
	ColorCyan   = "#0891b2d4"
	ColorRed    = "#f44336d4"
	ColorGreen  = "#16a34ad4"
)

const (
	LeftAxis  = "YAxis1"
	RightAxis = "YAxis2"
)

// Series describes one dataset before its values are known.
type Series struct {
	Label  string
	Color  string
	Axis   string // LeftAxis or RightAxis, left when empty
	Dashed bool
}

// NewHourlyChart is a line chart over the 24 hours of a day with one value
// axis on each side. Datasets keep the order of series.
func NewHourlyChart(title string, series ...Series) Chart {
	labels := make([]string, hours.PerDay)
	for i := range hours.PerDay {
		labels[i] = hours.Label(i)
	}

	chart := newChart("line", title, labels, series)
	chart.Options.Scales = map[string]ChartScale{
		LeftAxis: {
			Type:        "linear",
			Display:     true,
			Position:    "left",
			BeginAtZero: true,
			Title:       ChartScaleTitle{Display: true, Color: ColorOrange}},
		RightAxis: {
			Type:        "linear",
			Display:     true,
			Position:    "right",
			BeginAtZero: true,
			Title:       ChartScaleTitle{Display: true, Color: ColorBlue},
			Grid:        &ChartGrid{DrawOnChartArea: false}},
	}
	return chart
}

// NewBarChart groups one bar per series for each label.
func NewBarChart(title string, labels []string, series ...Series) Chart {
	chart := newChart("bar", title, labels, series)
	chart.Options.Scales = map[string]ChartScale{
		LeftAxis: {
			Type:        "linear",
			Display:     true,
			Position:    "left",
			BeginAtZero: true,
			Title:       ChartScaleTitle{Display: true}},
	}
	for i := range chart.Data.Datasets {
		ds := &chart.Data.Datasets[i]
		ds.BackgroundColor = ds.BorderColor
		ds.Fill = true
		ds.Tension = 0
		ds.YAxisID = LeftAxis
	}
	return chart
}

func newChart(chartType, title string, labels []string, series []Series) Chart {
	datasets := make([]ChartDataset, len(series))
	for i, s := range series {
		axis := s.Axis
		if axis == "" {
			axis = LeftAxis
		}
		datasets[i] = ChartDataset{
			Label:       s.Label,
			Data:        make([]*float64, len(labels)),
			BorderWidth: 2,
			Tension:     0.4,
			BorderColor: s.Color,
			YAxisID:     axis,
		}
		if s.Dashed {
			datasets[i].BorderDash = []int{5, 5}
		}
	}

	chart := Chart{
		Type: chartType,
		Data: ChartData{
			Labels:   labels,
			Datasets: datasets,
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true, Position: "bottom"},
				Title:  ChartTitle{Display: false},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

// Set stores a rounded value, NaN and infinities leave a gap.
func (c *Chart) Set(dataset, index int, value float64, precision int) {
	c.Data.Datasets[dataset].Data[index] = FixedFloat64(value, precision)
}

func (cs ChartScale) WithTitle(title string) ChartScale {
	cs.Title.Text = title
	return cs
}

func (cs ChartScale) WithMinAndMax(min, max float64) ChartScale {
	cs.Min = &min
	cs.Max = &max
	return cs
}

func FixedFloat64(num float64, precision int) *float64 {
	if math.IsNaN(num) || math.IsInf(num, 0) {
		return nil
	}
	p := math.Pow(10, float64(precision))
	result := math.Round(num*p) / p
	return &result
}
