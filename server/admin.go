package server

import (
	"github.com/go-chi/chi/v5"

	"luxeshop/middleware"
)

func (h Handlers) adminRoutes(api chi.Router, auth *middleware.Auth) {
	api.Route("/admin", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(auth.RequireAdmin)

		r.Get("/products", h.Admin.ListProducts)
		r.Get("/dashboard", h.Admin.Dashboard)
	})

	api.With(auth.Authenticate, auth.RequireAdmin).Post("/upload", h.Upload.Upload)
}
