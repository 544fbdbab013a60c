package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/water-iq/monitor/internal/http/handlers"
)

const requestTimeout = 20 * time.Second

// Options wires the routes that live outside the handlers package.
type Options struct {
	// ChangeFeed serves /api/ws; nil leaves the route unregistered.
	ChangeFeed http.Handler
	// Verifier guards the write surface; nil disables authentication.
	Verifier    TokenVerifier
	CORSOrigins []string
}

// NewRouter builds full HTTP routing tree for backend API and static frontend.
func NewRouter(api *handlers.API, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RecoverJSON)
	r.Use(StripForwardedPrefix)
	r.Use(newCORS(opts.CORSOrigins).Handler)
	r.Use(RequestLogger(api))

	r.Route("/api", func(apiRouter chi.Router) {
		// The change feed is long-lived and must not inherit the request timeout.
		if opts.ChangeFeed != nil {
			apiRouter.Method(http.MethodGet, "/ws", opts.ChangeFeed)
		}

		apiRouter.Group(func(timed chi.Router) {
			timed.Use(middleware.Timeout(requestTimeout))
			timed.Post("/auth/login", api.Login)
			timed.Get("/activity", api.Activity)

			timed.Group(func(read chi.Router) {
				read.Use(api.RequireLoaded)
				read.Get("/summary", api.Summary)
				read.Get("/dashboard", api.Dashboard)
				read.Get("/sensors", api.ListSensors)
				read.Get("/sensors/{id}/readings", func(w http.ResponseWriter, r *http.Request) {
					api.SensorReadings(w, r, chi.URLParam(r, "id"))
				})
				read.Get("/devices", api.ListDevices)
				read.Get("/alerts", api.ListAlerts)
				read.Get("/topology", api.Topology)
				read.Get("/topology/map.png", api.TopologyMap)
				read.Get("/usage", api.Usage)
				read.Get("/usage/chart", api.UsageChart)
				read.Get("/usage/chart.png", api.UsageChartImage)
			})

			timed.Group(func(write chi.Router) {
				write.Use(RequireAuth(opts.Verifier))
				write.Post("/devices/{id}/power", func(w http.ResponseWriter, r *http.Request) {
					api.ToggleDevicePower(w, r, chi.URLParam(r, "id"))
				})
				write.Post("/devices/{id}/automatic", func(w http.ResponseWriter, r *http.Request) {
					api.ToggleDeviceAutomatic(w, r, chi.URLParam(r, "id"))
				})
				write.Post("/alerts/{id}/acknowledge", func(w http.ResponseWriter, r *http.Request) {
					api.AcknowledgeAlert(w, r, chi.URLParam(r, "id"))
				})
				write.Post("/refresh", api.Refresh)
			})
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/healthz", api.Health)
		r.Get("/*", api.Static)
		r.Get("/", api.Static)
	})
	return r
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
}

// RunServer starts and gracefully stops HTTP server with context cancellation.
func RunServer(ctx context.Context, server *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
