package main

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"luxeshop/config"
	"luxeshop/database"
	"luxeshop/database/store"
	"luxeshop/handler"
	"luxeshop/middleware"
	"luxeshop/server"
	"luxeshop/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %+v", err)
	}

	db, err := database.Connect(database.Options{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		SSLMode:  database.SSLMode(cfg.DBSSLMode),
	})
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %+v", err)
	}
	defer db.Close()

	if err := database.MigrateUp(db, cfg.MigrationsURL); err != nil {
		logrus.Fatalf("Failed to migrate database: %+v", err)
	}
	logrus.Info("migration successful")

	users := store.NewUserStore(db)
	products := store.NewProductStore(db)
	categories := store.NewCategoryStore(db)
	cart := store.NewCartStore(db)

	auth := middleware.NewAuth(cfg.JWTSecret, cfg.TokenTTL, users)

	uploader, err := middleware.NewUploader(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		logrus.Fatalf("Failed to prepare upload directory: %+v", err)
	}

	srv := server.SetupRoutes(server.Handlers{
		Auth:       handler.NewAuthHandler(users, auth, utils.BcryptHasher{}),
		Products:   handler.NewProductHandler(products, categories),
		Categories: handler.NewCategoryHandler(categories),
		Cart:       handler.NewCartHandler(cart, products),
		Checkout:   handler.NewCheckoutHandler(cart),
		Admin:      handler.NewAdminHandler(products, categories),
		Upload:     handler.NewUploadHandler(uploader),
	}, auth, uploader.Dir(), cfg.AllowedOrigins)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		logrus.Info("shutting down")
		if err := srv.Stop(shutdownTimeout); err != nil {
			logrus.Errorf("Failed to stop server cleanly: %+v", err)
		}
	}()

	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := srv.Run(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.Fatalf("Failed to run server: %+v", err)
	}
}
