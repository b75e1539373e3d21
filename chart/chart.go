package chart

import (
	"fmt"
	"time"

	"github.com/askov/ladepris-go/clock"
	"github.com/askov/ladepris-go/series"
)

const noOfHours = 24

const (
	colorElapsed  = "#d3d3d3d4"
	colorNow      = "#f44336d4"
	colorToday    = "#4169e1d4"
	colorTomorrow = "#4169e166"
)

// NewPriceChart builds a Chart.js bar chart document for a charge
// price series. Today's bars are split into elapsed hours, the
// current hour and the hours still ahead; tomorrow gets its own
// translucent dataset when present. Unavailable prices become null
// bars.
func NewPriceChart(s series.Series, fetchedAt time.Time, cs clock.Sample) Chart {
	labels := make([]string, noOfHours)
	for i := 0; i < noOfHours; i++ {
		labels[i] = fmt.Sprintf("%02d:00", i)
	}

	elapsed := make([]*float64, noOfHours)
	now := make([]*float64, noOfHours)
	ahead := make([]*float64, noOfHours)
	for _, p := range s.Today {
		if !p.Price.IsValid() {
			continue
		}
		v := p.Price.Value()
		switch {
		case int(p.Hour) < cs.Hour:
			elapsed[p.Hour] = &v
		case int(p.Hour) == cs.Hour:
			now[p.Hour] = &v
		default:
			ahead[p.Hour] = &v
		}
	}

	datasets := []ChartDataset{
		{Label: "Elapsed", Data: elapsed, BackgroundColor: colorElapsed},
		{Label: "Charging price now", Data: now, BackgroundColor: colorNow},
		{Label: "Charging price today", Data: ahead, BackgroundColor: colorToday},
	}

	if s.Tomorrow.IsValid() {
		tomorrow := make([]*float64, noOfHours)
		for _, p := range s.Tomorrow.Value() {
			if !p.Price.IsValid() {
				continue
			}
			v := p.Price.Value()
			tomorrow[p.Hour] = &v
		}
		datasets = append(datasets, ChartDataset{
			Label:           "Charging price tomorrow",
			Data:            tomorrow,
			BackgroundColor: colorTomorrow,
		})
	}

	return Chart{
		Type: "bar",
		Data: ChartData{
			Labels:   labels,
			Datasets: datasets,
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true, Position: "top"},
				Title:  ChartTitle{Display: true, Text: "Charging price per start hour (DKK/kWh)"},
				Subtitle: ChartSubtitle{
					Display: true,
					Text: fmt.Sprintf("Prices fetched %s, rendered %s",
						fetchedAt.Format("2006-01-02 15:04"),
						cs.Now.Format("2006-01-02 15:04")),
				},
			},
			Scales: map[string]ChartScale{
				"x": {Display: true, Title: ChartScaleTitle{Display: true, Text: "Hour charging starts"}},
				"y": {Display: true, BeginAtZero: false, Title: ChartScaleTitle{Display: true, Text: "DKK/kWh for the full session"}},
			},
		},
	}
}
