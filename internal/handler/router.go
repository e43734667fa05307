package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"orderdesk/internal/console"
	"orderdesk/internal/mw"
)

func NewRouter(ctrl *console.Controller, renderer *Renderer, logger logrus.FieldLogger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", ConsolePageHandler(ctrl, renderer, logger))
	r.Get("/healthz", HealthHandler())

	r.Post("/section/{section}", ActivateSectionHandler(ctrl))
	r.Post("/filters", ApplyFiltersHandler(ctrl))

	r.Post("/orders/{id}", OpenDetailHandler(ctrl))
	r.Post("/detail/close", CloseDetailHandler(ctrl))
	r.Post("/detail/status", UpdateStatusHandler(ctrl))
	r.Post("/detail/cancel", CancelOrderHandler(ctrl))

	r.Post("/create", CreateOrderHandler(ctrl))
	r.Post("/create/items", AddItemHandler(ctrl))
	r.Post("/create/items/{rowID}/remove", RemoveItemHandler(ctrl))

	r.Post("/notifications/{id}/dismiss", DismissNotificationHandler(ctrl))

	return r
}
