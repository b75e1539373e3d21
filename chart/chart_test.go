package chart

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/askov/ladepris-go/clock"
	"github.com/askov/ladepris-go/series"
	"github.com/askov/ladepris-go/types/maybe"
)

func flatSeries(price float64, withTomorrow bool) series.Series {
	day := func() []series.ChargePrice {
		points := make([]series.ChargePrice, 0, 24)
		for hour := 0; hour < 24; hour++ {
			points = append(points, series.ChargePrice{Hour: uint8(hour), Price: maybe.Some(price)})
		}
		return points
	}

	s := series.Series{Today: day(), Tomorrow: maybe.None[[]series.ChargePrice]()}
	if withTomorrow {
		s.Tomorrow = maybe.Some(day())
	}
	return s
}

func TestNewPriceChartSplitsAtCurrentHour(t *testing.T) {
	cs := clock.FromTime(time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC))
	c := NewPriceChart(flatSeries(1.5, false), cs.Now, cs)

	if c.Type != "bar" {
		t.Errorf("chart type expected bar, got %q", c.Type)
	}
	if len(c.Data.Datasets) != 3 {
		t.Fatalf("expected 3 datasets without tomorrow, got %d", len(c.Data.Datasets))
	}

	elapsed, now, ahead := c.Data.Datasets[0], c.Data.Datasets[1], c.Data.Datasets[2]
	for hour := 0; hour < 24; hour++ {
		switch {
		case hour < 10:
			if elapsed.Data[hour] == nil || now.Data[hour] != nil || ahead.Data[hour] != nil {
				t.Errorf("hour %d should only be in the elapsed dataset", hour)
			}
		case hour == 10:
			if now.Data[hour] == nil || elapsed.Data[hour] != nil || ahead.Data[hour] != nil {
				t.Errorf("hour %d should only be in the now dataset", hour)
			}
		default:
			if ahead.Data[hour] == nil || elapsed.Data[hour] != nil || now.Data[hour] != nil {
				t.Errorf("hour %d should only be in the ahead dataset", hour)
			}
		}
	}
}

func TestNewPriceChartTomorrowDataset(t *testing.T) {
	cs := clock.FromTime(time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC))
	c := NewPriceChart(flatSeries(1.5, true), cs.Now, cs)

	if len(c.Data.Datasets) != 4 {
		t.Fatalf("expected 4 datasets with tomorrow, got %d", len(c.Data.Datasets))
	}
	tomorrow := c.Data.Datasets[3]
	for hour := 0; hour < 24; hour++ {
		if tomorrow.Data[hour] == nil || *tomorrow.Data[hour] != 1.5 {
			t.Errorf("tomorrow hour %d expected 1.5", hour)
		}
	}
}

func TestNewPriceChartAbsentPricesAreNull(t *testing.T) {
	s := flatSeries(1.5, false)
	for hour := 21; hour <= 23; hour++ {
		s.Today[hour].Price = maybe.None[float64]()
	}

	cs := clock.FromTime(time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC))
	c := NewPriceChart(s, cs.Now, cs)

	ahead := c.Data.Datasets[2]
	for hour := 21; hour <= 23; hour++ {
		if ahead.Data[hour] != nil {
			t.Errorf("hour %d expected null bar for absent price", hour)
		}
	}
}

func TestFileRendererWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRenderer(slog.Default(), dir)

	cs := clock.FromTime(time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC))
	artifact, err := r.Render(flatSeries(1.5, false), cs.Now, cs)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}
	if artifact != "2025-03-01-T10.json" {
		t.Errorf("artifact expected 2025-03-01-T10.json, got %q", artifact)
	}

	data, err := os.ReadFile(filepath.Join(dir, artifact))
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("artifact is not valid chart JSON: %v", err)
	}
	if c.Type != "bar" {
		t.Errorf("decoded chart type expected bar, got %q", c.Type)
	}
}

func TestFileRendererReplacesOldArtifacts(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRenderer(slog.Default(), dir, "favicon.ico")

	if err := os.WriteFile(filepath.Join(dir, "favicon.ico"), []byte{0}, 0644); err != nil {
		t.Fatal(err)
	}

	cs := clock.FromTime(time.Date(2025, time.March, 1, 10, 30, 0, 0, time.UTC))
	first, err := r.Render(flatSeries(1.5, false), cs.Now, cs)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	cs = clock.FromTime(time.Date(2025, time.March, 1, 11, 5, 0, 0, time.UTC))
	second, err := r.Render(flatSeries(1.5, false), cs.Now, cs)
	if err != nil {
		t.Fatalf("Render() unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, first)); !os.IsNotExist(err) {
		t.Errorf("previous artifact %q should have been purged", first)
	}
	if _, err := os.Stat(filepath.Join(dir, second)); err != nil {
		t.Errorf("new artifact %q should exist: %v", second, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "favicon.ico")); err != nil {
		t.Errorf("keep-listed file should survive purging: %v", err)
	}
}

func TestPurgeAlsoKeep(t *testing.T) {
	dir := t.TempDir()
	r := NewFileRenderer(slog.Default(), dir)

	for _, name := range []string{"a.json", "b.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	if err := r.Purge("b.json"); err != nil {
		t.Fatalf("Purge() unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "a.json")); !os.IsNotExist(err) {
		t.Error("a.json should have been removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "b.json")); err != nil {
		t.Errorf("b.json should have been kept: %v", err)
	}
}
