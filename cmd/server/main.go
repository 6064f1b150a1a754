package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/FranzKurt09/my-first-blog/config"
	"github.com/FranzKurt09/my-first-blog/database"
	"github.com/FranzKurt09/my-first-blog/middleware"
	"github.com/FranzKurt09/my-first-blog/routes"
	"github.com/FranzKurt09/my-first-blog/services"
)

func main() {
	cfg := config.Load()

	db, err := database.ConnectDB()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("DB migration failed:", err)
	}

	if cfg.FirebaseCredentialsPath != "" {
		if err := services.InitFirebase(cfg.FirebaseCredentialsPath); err != nil {
			log.Printf("Firebase init failed, push notifications disabled: %v", err)
		}
	}

	jwtSecret := []byte(cfg.JWTSecret)

	router := mux.NewRouter()
	router.Use(middleware.Logging)

	routes.CreateAuthRoutes(db, router, jwtSecret)
	routes.CreatePostRoutes(db, router, jwtSecret)
	routes.CreateCommentRoutes(db, router, jwtSecret)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
