package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withBodyLimit)

	router.Get("/health", h.health)
	router.Get("/b/{locator}", h.getBlob)

	router.Route("/s/{code}", func(r chi.Router) {
		r.Get("/", h.resolve)
		r.Get("/qr", h.shortLinkQR)
	})

	router.Route("/api", func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(middleware.Compress(5, "application/json", "text/plain"))
		r.Use(h.auth)

		r.Get("/version", h.getServerVersion)
		r.Post("/protect", h.protect)
		r.Post("/reveal", h.reveal)
		r.Post("/links", h.shorten)

		// owner routes
		r.Group(func(r chi.Router) {
			r.Use(h.requireOwner)

			r.Get("/links", h.listLinks)
			r.Get("/links/{id}", h.getLink)
			r.Patch("/links/{id}", h.updateLink)
			r.Patch("/links/{id}/toggle", h.toggleLink)
			r.Delete("/links/{id}", h.deleteLink)
		})
	})

	router.MethodNotAllowed(notFound)
	router.NotFound(notFound)

	return router
}
