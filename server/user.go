package server

import (
	"github.com/go-chi/chi/v5"

	"luxeshop/middleware"
)

// storefrontRoutes wires the public catalog plus the authenticated
// customer surface (profile, cart, checkout).
func (h Handlers) storefrontRoutes(api chi.Router, auth *middleware.Auth) {
	api.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Get("/profile", h.Auth.Profile)
			r.Put("/profile", h.Auth.UpdateProfile)
			r.Put("/change-password", h.Auth.ChangePassword)
		})
	})

	api.Route("/products", func(r chi.Router) {
		r.Get("/", h.Products.List)
		r.Get("/{id}", h.Products.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.RequireAdmin)
			r.Post("/", h.Products.Create)
			r.Put("/{id}", h.Products.Update)
			r.Delete("/{id}", h.Products.Delete)
		})
	})

	api.Route("/categories", func(r chi.Router) {
		r.Get("/", h.Categories.List)
		r.Get("/{id}", h.Categories.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(auth.RequireAdmin)
			r.Post("/", h.Categories.Create)
			r.Put("/{id}", h.Categories.Update)
			r.Delete("/{id}", h.Categories.Delete)
		})
	})

	api.Route("/cart", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Get("/", h.Cart.Get)
		r.Get("/count", h.Cart.Count)
		r.Post("/", h.Cart.Add)
		r.Post("/add", h.Cart.Add)
		r.Put("/{cartID}", h.Cart.Update)
		r.Delete("/{cartID}", h.Cart.Remove)
		r.Delete("/", h.Cart.Clear)
	})

	api.Route("/checkout", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Post("/quote", h.Checkout.Quote)
		r.Post("/", h.Checkout.PlaceOrder)
	})
}
