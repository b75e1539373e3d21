package www

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/askov/ladepris-go/cache"
	"github.com/askov/ladepris-go/clock"
	"github.com/askov/ladepris-go/config"
	"github.com/askov/ladepris-go/database"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	gate   *cache.Gate
	hub    *Hub
	tm     *TemplateManager
}

func StartServer(db *database.Database, gate *cache.Gate, clk clock.Clock, cnfg config.AppConfigApi, version string) (*Server, error) {
	logger := slog.Default().With("module", "www")
	tm, err := NewTemplateManager(logger, cnfg.WwwDir)
	if err != nil {
		return nil, fmt.Errorf("template manager initialization: %w", err)
	}

	s := &Server{
		logger: logger,
		config: cnfg,
		db:     db,
		gate:   gate,
		hub:    NewHub(logger),
		tm:     tm,
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/", logReqMW(NewIndexHandler(
		logger.With(slog.String("handler", "index")),
		s.tm,
		version)))

	http.Handle("/chart", logReqMW(NewChartHandler(
		logger.With(slog.String("handler", "chart")),
		s.gate,
		clk,
		cnfg.GetArtifactsDir())))

	http.Handle("/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db,
		s.tm)))

	http.Handle("/artifacts/", http.StripPrefix("/artifacts/",
		http.FileServer(http.Dir(cnfg.GetArtifactsDir()))))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s, nil
}

// NotifyArtifact pushes a freshly rendered artifact id to all
// connected websocket clients.
func (s *Server) NotifyArtifact(artifact string) {
	s.hub.NotifyArtifact(artifact)
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return
		}
	}
}
