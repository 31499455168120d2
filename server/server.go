package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"luxeshop/handler"
	"luxeshop/middleware"
	"luxeshop/utils"
)

const (
	readTimeout       = 5 * time.Minute
	readHeaderTimeout = 30 * time.Second
	writeTimeout      = 5 * time.Minute
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Products   *handler.ProductHandler
	Categories *handler.CategoryHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
	Admin      *handler.AdminHandler
	Upload     *handler.UploadHandler
}

type Server struct {
	chi.Router
	server *http.Server
}

func SetupRoutes(h Handlers, auth *middleware.Auth, uploadDir string, allowedOrigins []string) *Server {
	routes := chi.NewRouter()
	routes.Use(middleware.RequestLogger)
	routes.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	routes.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, "ok", nil)
		})

		h.storefrontRoutes(api, auth)
		h.adminRoutes(api, auth)
	})

	// Stored product images are served straight off disk.
	routes.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))

	return &Server{
		Router: routes,
	}
}

func (srv *Server) Run(port string) error {
	srv.server = &http.Server{
		Addr:              port,
		Handler:           srv.Router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return srv.server.ListenAndServe()
}

func (srv *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.server.Shutdown(ctx)
}
