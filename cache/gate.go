package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/askov/ladepris-go/clock"
	"github.com/askov/ladepris-go/fees"
	"github.com/askov/ladepris-go/series"
	"github.com/askov/ladepris-go/types"
)

const dateLayout = "2006-01-02"

// Renderer turns a charge price series into a stored artifact and
// returns its opaque id (typically a filename).
type Renderer interface {
	Render(s series.Series, fetchedAt time.Time, cs clock.Sample) (string, error)
}

// Gate owns the cached charge price series and decides, lazily on
// each Refresh, whether to refetch the day-ahead data, just re-render
// with a moved hour marker, or do nothing. All calls serialize on one
// mutex; the cache is only ever committed whole.
type Gate struct {
	logger       *slog.Logger
	clk          clock.Clock
	provider     types.SpotPriceProvider
	renderer     Renderer
	schedule     fees.Schedule
	surcharge    float64
	publishHour  int
	fetchTimeout time.Duration

	// OnRender, when set, is called after every successful render
	// with the new artifact id.
	OnRender func(artifact string)

	mu           sync.Mutex
	series       series.Series
	hasSeries    bool
	fetchedAt    time.Time
	dataExpiry   time.Time
	markerExpiry time.Time
	artifact     string
}

func New(
	logger *slog.Logger,
	clk clock.Clock,
	provider types.SpotPriceProvider,
	renderer Renderer,
	schedule fees.Schedule,
	surcharge float64,
	publishHour int,
	fetchTimeout time.Duration) *Gate {
	return &Gate{
		logger:       logger,
		clk:          clk,
		provider:     provider,
		renderer:     renderer,
		schedule:     schedule,
		surcharge:    surcharge,
		publishHour:  publishHour,
		fetchTimeout: fetchTimeout,
	}
}

// Artifact returns the id of the most recently rendered artifact, or
// an empty string before the first successful refresh.
func (g *Gate) Artifact() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.artifact
}

// Refresh samples the clock once, checks both expiry clocks against
// it and brings the cache up to date. It returns the current artifact
// id; on failure the previous cache is left untouched, so a non-empty
// id alongside an error means stale data is still being served.
func (g *Gate) Refresh(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cs := g.clk.Sample()

	switch {
	case !g.hasSeries || g.dataExpiry.IsZero() || g.dataExpiry.Before(cs.Now) || g.artifact == "":
		return g.refetch(ctx, cs)
	case g.markerExpiry.IsZero() || !g.markerExpiry.After(cs.Now):
		return g.advanceMarker(cs)
	default:
		return g.artifact, nil
	}
}

func (g *Gate) refetch(ctx context.Context, cs clock.Sample) (string, error) {
	g.logger.Debug("price data expired, refetching",
		slog.String("date", cs.Date),
		slog.Time("dataExpiry", g.dataExpiry))

	fctx, cancel := context.WithTimeout(ctx, g.fetchTimeout)
	defer cancel()

	points, err := g.provider.GetSpotPrices(fctx, cs.Date, cs.DateTomorrow)
	if err != nil {
		g.logger.Error("fetching spot prices failed", slog.Any("error", err))
		return g.artifact, fmt.Errorf("fetching spot prices: %w", err)
	}

	s, err := series.Build(points, g.schedule, cs.Month, g.surcharge)
	if err != nil {
		g.logger.Error("building charge price series failed", slog.Any("error", err))
		return g.artifact, fmt.Errorf("building charge price series: %w", err)
	}

	artifact, err := g.renderer.Render(s, cs.Now, cs)
	if err != nil {
		g.logger.Error("rendering chart failed", slog.Any("error", err))
		return g.artifact, fmt.Errorf("rendering chart: %w", err)
	}

	g.series = s
	g.hasSeries = true
	g.fetchedAt = cs.Now
	if cs.Hour >= g.publishHour {
		g.dataExpiry = cs.TomorrowAt(g.publishHour)
	} else {
		g.dataExpiry = cs.TodayAt(g.publishHour)
	}
	g.markerExpiry = cs.NextHourTop()
	g.artifact = artifact

	g.logger.Info("new price data fetched and rendered",
		slog.String("artifact", artifact),
		slog.Bool("hasTomorrow", s.Tomorrow.IsValid()),
		slog.Time("dataExpiry", g.dataExpiry))

	if g.OnRender != nil {
		g.OnRender(artifact)
	}
	return artifact, nil
}

func (g *Gate) advanceMarker(cs clock.Sample) (string, error) {
	s := g.series

	// A date rollover means the cached "today" describes yesterday.
	// If next-day data is on hand, it takes over; otherwise the stale
	// series keeps being served until the daily expiry triggers a
	// refetch.
	if g.fetchedAt.Format(dateLayout) < cs.Date {
		if promoted, ok := s.PromoteTomorrow(); ok {
			g.logger.Info("date rolled over, promoting tomorrow's prices to today")
			s = promoted
		}
	}

	artifact, err := g.renderer.Render(s, g.fetchedAt, cs)
	if err != nil {
		g.logger.Error("rendering chart failed", slog.Any("error", err))
		return g.artifact, fmt.Errorf("rendering chart: %w", err)
	}

	g.series = s
	g.artifact = artifact
	g.markerExpiry = cs.NextHourTop()

	g.logger.Debug("hour marker advanced, chart re-rendered",
		slog.String("artifact", artifact),
		slog.Time("markerExpiry", g.markerExpiry))

	if g.OnRender != nil {
		g.OnRender(artifact)
	}
	return artifact, nil
}
