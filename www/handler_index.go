package www

import (
	"log/slog"
	"net/http"
)

func NewIndexHandler(logger *slog.Logger, tm *TemplateManager, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		data := struct{ Version string }{Version: version}
		if err := tm.ExecuteToWriter("index.html", data, &w); err != nil {
			logger.Error("handling index request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
