package routes

import (
	"database/sql"
	"time"

	"github.com/gorilla/mux"

	"github.com/FranzKurt09/my-first-blog/handlers"
	"github.com/FranzKurt09/my-first-blog/middleware"
)

func CreateAuthRoutes(db *sql.DB, router *mux.Router, jwtSecret []byte) *mux.Router {
	auth := middleware.RequireAuth(jwtSecret)

	// 5 login attempts per minute per IP
	loginLimiter := middleware.NewRateLimiter(5, time.Minute)

	router.Handle("/api-token-auth/", loginLimiter.Limit(handlers.TokenLogin(db, jwtSecret))).Methods("POST")
	router.HandleFunc("/users/", handlers.RegisterUser(db)).Methods("POST")
	router.Handle("/register-token/", auth(handlers.RegisterFCMToken(db))).Methods("POST")
	router.HandleFunc("/health", handlers.Health).Methods("GET")

	return router
}
