package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/reviews-cli/internal/dates"
	"github.com/sells-group/reviews-cli/internal/model"
	"github.com/sells-group/reviews-cli/internal/scrape"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scrape HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(newPipeline()),
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func newRouter(p *scrape.Pipeline) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/scrape", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			URL       string `json:"url"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		}
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if body.URL == "" {
			respondError(w, http.StatusBadRequest, "url is required")
			return
		}
		start, okStart := dates.ResolveAbsolute(body.StartDate)
		end, okEnd := dates.ResolveAbsolute(body.EndDate)
		if !okStart || !okEnd {
			respondError(w, http.StatusBadRequest, "start_date and end_date must be parseable dates")
			return
		}

		res, err := p.Run(req.Context(), model.ScrapeJob{URL: body.URL, StartDate: start, EndDate: end})
		if err != nil {
			if eris.Is(err, model.ErrUnsupportedPlatform) {
				respondError(w, http.StatusUnprocessableEntity, "unsupported review platform")
				return
			}
			zap.L().Error("scrape request failed",
				zap.String("url", body.URL),
				zap.Error(err),
			)
			respondError(w, http.StatusBadGateway, "scrape failed")
			return
		}

		respondJSON(w, http.StatusOK, res)
	})

	return r
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
