package report

import (
	"fmt"
	"image/color"
	"io"

	"github.com/angas/solara-go/predict"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	ChartWidth  = 8 * vg.Inch
	ChartHeight = 9 * vg.Inch
)

var (
	colorUV     = color.RGBA{R: 234, G: 88, B: 12, A: 255}
	colorLSTM   = color.RGBA{R: 124, G: 58, B: 237, A: 255}
	colorOzone  = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	colorPrecip = color.RGBA{R: 8, G: 145, B: 178, A: 255}
)

type series struct {
	name  string
	color color.Color
	value func(predict.Hour) float64
	dash  bool
}

// WritePNG draws the hourly profiles as three stacked panels.
func WritePNG(w io.Writer, p *predict.Prediction) error {
	panels := []struct {
		title  string
		yLabel string
		series []series
	}{
		{
			title:  fmt.Sprintf("Radiación UV %s (riesgo %s)", p.Date, p.Risk.Level),
			yLabel: "Índice UV",
			series: []series{
				{name: "UV", color: colorUV, value: func(h predict.Hour) float64 { return h.UV }},
				{name: "Tendencia LSTM", color: colorLSTM, value: func(h predict.Hour) float64 { return h.LSTMTrend }, dash: true},
			},
		},
		{
			title:  "Ozono",
			yLabel: "µg/m³",
			series: []series{
				{name: "O₃", color: colorOzone, value: func(h predict.Hour) float64 { return h.Ozone }},
			},
		},
		{
			title:  "Precipitación",
			yLabel: "mm",
			series: []series{
				{name: "Precipitación", color: colorPrecip, value: func(h predict.Hour) float64 { return h.Precipitation }},
			},
		},
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, panel := range panels {
		pl := plot.New()
		pl.Title.Text = panel.title
		pl.X.Label.Text = "Hora"
		pl.Y.Label.Text = panel.yLabel
		pl.X.Min = 0
		pl.X.Max = 23
		pl.Y.Min = 0
		pl.Legend.Top = true
		pl.Add(plotter.NewGrid())

		for _, s := range panel.series {
			line, err := plotter.NewLine(points(p.Hours, s.value))
			if err != nil {
				return fmt.Errorf("%s line: %w", s.name, err)
			}
			line.Color = s.color
			line.Width = vg.Points(2)
			if s.dash {
				line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
			}
			pl.Add(line)
			pl.Legend.Add(s.name, line)
		}
		plots[i] = []*plot.Plot{pl}
	}

	img := vgimg.New(ChartWidth, ChartHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func points(hs []predict.Hour, value func(predict.Hour) float64) plotter.XYs {
	xys := make(plotter.XYs, len(hs))
	for i, h := range hs {
		xys[i].X = float64(h.Hour)
		xys[i].Y = value(h)
	}
	return xys
}
