package www

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/askov/ladepris-go/cache"
	"github.com/askov/ladepris-go/clock"
)

// NewChartHandler drives the cache gate. Every request checks both
// expiry clocks; the response is the current chart artifact, possibly
// stale when the upstream source is down. The advertised cache
// lifetime ends at the top of the hour, when the marker moves anyway.
func NewChartHandler(logger *slog.Logger, gate *cache.Gate, clk clock.Clock, artifactsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		artifact, err := gate.Refresh(r.Context())
		if err != nil {
			if artifact == "" {
				logger.Error("refresh failed with no cached data", slog.Any("error", err))
				http.Error(w, "no data available", http.StatusServiceUnavailable)
				return
			}
			logger.Warn("refresh failed, serving stale chart", slog.String("artifact", artifact), slog.Any("error", err))
		}

		cs := clk.Sample()
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", cs.SecondsToNextHour))
		w.Header().Set("X-Chart-Artifact", artifact)
		http.ServeFile(w, r, filepath.Join(artifactsDir, artifact))
	}
}
