package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/water-iq/monitor/internal/auth"
	"github.com/water-iq/monitor/internal/config"
	"github.com/water-iq/monitor/internal/events"
	httpapi "github.com/water-iq/monitor/internal/http"
	"github.com/water-iq/monitor/internal/http/handlers"
	"github.com/water-iq/monitor/internal/journal"
	"github.com/water-iq/monitor/internal/logging"
	"github.com/water-iq/monitor/internal/mockdata"
	"github.com/water-iq/monitor/internal/render"
	"github.com/water-iq/monitor/internal/sampler"
	"github.com/water-iq/monitor/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	activity, err := journal.New(ctx, cfg.JournalDSN, logger)
	if err != nil {
		logger.Error("failed to initialize journal", "err", err)
		os.Exit(1)
	}
	defer activity.Close()

	secret := cfg.JWTSecret
	if secret == "" {
		secret = randomSecret()
		logger.Warn("JWT_SECRET is empty; using a per-process secret")
	}
	authn, err := auth.New(secret, cfg.TokenTTL, mockdata.Users())
	if err != nil {
		logger.Error("failed to initialize auth", "err", err)
		os.Exit(1)
	}

	generator := mockdata.New()
	state := store.New(generator, cfg.LoadDelay, logger)

	hub := events.NewHub(cfg.CORSOrigins, logger)
	defer hub.Close()
	state.Subscribe(activity.Listener())
	state.Subscribe(hub.Listener())

	readingSampler, err := sampler.New(state, generator, cfg.SamplerSchedule, logger)
	if err != nil {
		logger.Error("failed to initialize sampler", "err", err)
		os.Exit(1)
	}
	if cfg.SamplerSchedule == "" {
		logger.Info("sampler schedule disabled; manual refresh only")
	}

	go func() {
		if err := state.Initialize(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("store initialization failed", "err", err)
		}
	}()
	go readingSampler.Run(ctx)

	api := handlers.New(state, readingSampler, authn, activity, logger, handlers.Options{
		StaticDir: cfg.FrontendDist,
		MapSize:   render.Size{Width: cfg.MapWidth, Height: cfg.MapHeight},
		ChartSize: render.Size{Width: cfg.ChartWidth, Height: cfg.ChartHeight},
	})
	routerOpts := httpapi.Options{ChangeFeed: hub, CORSOrigins: cfg.CORSOrigins}
	if cfg.AuthDisabled {
		logger.Warn("authentication disabled; write endpoints are open")
	} else {
		routerOpts.Verifier = authn
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(api, routerOpts),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "addr", httpServer.Addr, "load_delay", cfg.LoadDelay.String())
	if err := httpapi.RunServer(ctx, httpServer); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server terminated with error", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
