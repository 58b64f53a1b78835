package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hris-console/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-console/internal/service/session"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
}

func NewRouter(cfg RouterConfig, registry *session.Registry, sessionHandler SessionHandler, listHandler ListHandler, formHandler FormHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)

		r.Route("/{"+middleware.SessionParam+"}", func(r chi.Router) {
			r.Delete("/", sessionHandler.End)

			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionRequired(registry))

				r.Get("/events", sessionHandler.Events)

				r.Route("/list", func(r chi.Router) {
					r.Get("/", listHandler.View)
					r.Post("/mount", listHandler.Mount)
					r.Put("/collection", listHandler.SetCollection)
					r.Put("/filters", listHandler.ApplyFilter)
					r.Delete("/rows/{kind}/{id}", listHandler.DeleteRow)
					r.Get("/logs/export", listHandler.ExportLogs)
				})

				r.Route("/form", func(r chi.Router) {
					r.Post("/", formHandler.Open)
					r.Get("/", formHandler.Snapshot)
					r.Delete("/", formHandler.Close)
					r.Patch("/fields", formHandler.UpdateField)
					r.Post("/submit", formHandler.Submit)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.Snapshot)
					r.Post("/mount", attendanceHandler.Mount)
					r.Put("/mode", attendanceHandler.SetMode)
					r.Patch("/fields", attendanceHandler.UpdateField)
					r.Post("/submit", attendanceHandler.Submit)
				})
			})
		})
	})
	return r
}
