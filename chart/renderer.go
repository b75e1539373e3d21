package chart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/askov/ladepris-go/clock"
	"github.com/askov/ladepris-go/series"
)

// FileRenderer writes chart documents into a directory served as
// static files. Each render replaces whatever artifact came before
// it, so the directory never accumulates stale charts.
type FileRenderer struct {
	logger *slog.Logger
	dir    string
	keep   []string // filenames never deleted, e.g. favicon.ico
}

func NewFileRenderer(logger *slog.Logger, dir string, keep ...string) *FileRenderer {
	return &FileRenderer{logger: logger, dir: dir, keep: keep}
}

// Render builds the chart JSON, clears earlier artifacts and writes
// the new one as <date>-T<hour>.json. The returned filename is the
// artifact id the gate hands out.
func (r *FileRenderer) Render(s series.Series, fetchedAt time.Time, cs clock.Sample) (string, error) {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create artifacts directory: %w", err)
	}

	doc, err := json.Marshal(NewPriceChart(s, fetchedAt, cs))
	if err != nil {
		return "", fmt.Errorf("encode chart: %w", err)
	}

	if err := r.Purge(); err != nil {
		// Leftovers waste disk but don't invalidate the new render.
		r.logger.Warn("purging old artifacts failed", slog.Any("error", err))
	}

	filename := fmt.Sprintf("%s-T%d.json", cs.Date, cs.Hour)
	if err := os.WriteFile(filepath.Join(r.dir, filename), doc, 0644); err != nil {
		return "", fmt.Errorf("write chart artifact: %w", err)
	}

	r.logger.Debug("chart artifact written", slog.String("filename", filename))
	return filename, nil
}

// Purge removes every file in the artifacts directory except the
// configured keep-list and any additionally named files.
func (r *FileRenderer) Purge(alsoKeep ...string) error {
	files, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read artifacts directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if slices.Contains(r.keep, file.Name()) || slices.Contains(alsoKeep, file.Name()) {
			continue
		}
		path := filepath.Join(r.dir, file.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove old artifact '%s': %w", path, err)
		}
		r.logger.Debug("old artifact removed", slog.String("path", path))
	}

	return nil
}
