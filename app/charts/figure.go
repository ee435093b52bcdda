package charts

import "github.com/retailops/returns-complaints/models"

// Figure is the subset of a Plotly figure the dashboard page draws.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type   string   `json:"type"`
	Mode   string   `json:"mode,omitempty"`
	X      []string `json:"x"`
	Y      []int64  `json:"y"`
	Marker *Marker  `json:"marker,omitempty"`
}

// Marker colours bars by their value on a continuous scale.
type Marker struct {
	Color      []int64 `json:"color"`
	ColorScale string  `json:"colorscale"`
	ShowScale  bool    `json:"showscale"`
}

type Layout struct {
	Title      Title `json:"title"`
	XAxis      Axis  `json:"xaxis"`
	YAxis      Axis  `json:"yaxis"`
	ShowLegend bool  `json:"showlegend"`
}

type Title struct {
	Text string `json:"text"`
}

type Axis struct {
	Title     Title `json:"title"`
	TickAngle int   `json:"tickangle,omitempty"`
}

func split(rows []models.LabelCount) ([]string, []int64) {
	x := make([]string, len(rows))
	y := make([]int64, len(rows))
	for i, r := range rows {
		x[i] = r.Label
		y[i] = r.Count
	}
	return x, y
}

func barFigure(rows []models.LabelCount, title, xTitle, yTitle, scale string, tickAngle int) Figure {
	x, y := split(rows)
	return Figure{
		Data: []Trace{{
			Type:   "bar",
			X:      x,
			Y:      y,
			Marker: &Marker{Color: y, ColorScale: scale, ShowScale: true},
		}},
		Layout: Layout{
			Title: Title{Text: title},
			XAxis: Axis{Title: Title{Text: xTitle}, TickAngle: tickAngle},
			YAxis: Axis{Title: Title{Text: yTitle}},
		},
	}
}

func lineFigure(rows []models.LabelCount, title, xTitle, yTitle string) Figure {
	x, y := split(rows)
	return Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines+markers",
			X:    x,
			Y:    y,
		}},
		Layout: Layout{
			Title: Title{Text: title},
			XAxis: Axis{Title: Title{Text: xTitle}},
			YAxis: Axis{Title: Title{Text: yTitle}},
		},
	}
}
