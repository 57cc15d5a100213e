package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikequentel/twitterbot/internal/adapter"
	"github.com/mikequentel/twitterbot/internal/config"
	"github.com/mikequentel/twitterbot/internal/logging"
	"github.com/mikequentel/twitterbot/internal/metrics"
	"github.com/mikequentel/twitterbot/internal/postlog"
	"github.com/mikequentel/twitterbot/internal/robot"
)

func main() {
	log.SetFlags(0)

	// --- Config (env) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// --- Post log (optional) ---
	var (
		journal adapter.Journal
		chains  chainReader
	)
	if cfg.PostLog != "" {
		pl, err := postlog.Open(ctx, cfg.PostLog)
		must(err)
		defer pl.Close()
		journal, chains = pl, pl
		logger.Info("recording posted statuses", "path", cfg.PostLog)
	}

	// X/Twitter clients, built once and shared by the listener and Say.
	httpClient := adapter.NewHTTPClient(adapter.Credentials{
		ConsumerKey:       cfg.ConsumerKey,
		ConsumerSecret:    cfg.ConsumerSecret,
		AccessToken:       cfg.AccessToken,
		AccessTokenSecret: cfg.AccessTokenSecret,
	})
	rest, stream := adapter.NewClients(httpClient)

	bot := robot.New(cfg.RobotName, logger, robot.Ping)
	a := adapter.New(rest, stream, bot, adapter.Options{
		Logger:         logger,
		Metrics:        m,
		Journal:        journal,
		Pause:          cfg.ChunkPause,
		AutoFollowBack: cfg.AutoFollowBack(),
	})
	bot.SetAdapter(a)

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           newRouter(reg, chains),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics listening", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
				os.Exit(1)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	logger.Info("starting", "robot", cfg.RobotName, "auto_follow_back", cfg.AutoFollowBack())
	a.Run(ctx)

	<-ctx.Done()
	logger.Info("shutting down")
}

type chainReader interface {
	Chain(ctx context.Context, id int64) ([]postlog.Entry, error)
}

type chainEntry struct {
	StatusID  int64     `json:"status_id"`
	InReplyTo int64     `json:"in_reply_to,omitempty"`
	Text      string    `json:"text"`
	PostedAt  time.Time `json:"posted_at"`
}

// newRouter serves health and metrics, plus /chain/{id} when a post log is
// configured.
func newRouter(g prometheus.Gatherer, chains chainReader) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	if chains != nil {
		r.Get("/chain/{id}", chainHandler(chains))
	}
	return r
}

// chainHandler returns the posted statuses leading up to {id}, oldest first.
func chainHandler(chains chainReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "bad status id", http.StatusBadRequest)
			return
		}
		entries, err := chains.Chain(r.Context(), id)
		if err != nil {
			slog.Error("post log read failed", "status_id", id, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if len(entries) == 0 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		out := make([]chainEntry, 0, len(entries))
		for _, e := range entries {
			out = append(out, chainEntry{
				StatusID:  e.StatusID,
				InReplyTo: e.InReplyTo,
				Text:      e.Text,
				PostedAt:  e.PostedAt,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
