package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/askov/ladepris-go/cache"
	"github.com/askov/ladepris-go/chart"
	"github.com/askov/ladepris-go/config"
	"github.com/askov/ladepris-go/database"
)

// NewMaintenanceTask trims the log table and sweeps rendered chart
// artifacts that lost their place in the cache, e.g. leftovers from
// before a restart. The artifact currently handed out by the gate is
// always kept.
func NewMaintenanceTask(
	logger *slog.Logger,
	db *database.Database,
	gate *cache.Gate,
	renderer *chart.FileRenderer,
	cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()

		if err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
			logger.Error("log maintenance error", slog.Any("error", err))
		}

		if err := renderer.Purge(gate.Artifact()); err != nil {
			logger.Error("artifact maintenance error", slog.Any("error", err))
		}

		logger.Info("maintenance task done")
	}
}
