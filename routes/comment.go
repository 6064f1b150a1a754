package routes

import (
	"database/sql"

	"github.com/gorilla/mux"

	"github.com/FranzKurt09/my-first-blog/handlers"
	"github.com/FranzKurt09/my-first-blog/middleware"
)

func CreateCommentRoutes(db *sql.DB, router *mux.Router, jwtSecret []byte) *mux.Router {
	auth := middleware.RequireAuth(jwtSecret)

	router.Handle("/comment/new/", auth(handlers.CreateComment(db))).Methods("POST")
	router.HandleFunc("/comments/approved/", handlers.ListApprovedComments(db)).Methods("GET")
	router.HandleFunc("/comments/{commentId:[0-9]+}/", handlers.GetComment(db)).Methods("GET")
	router.Handle("/comments/{commentId:[0-9]+}/", auth(handlers.DeleteComment(db))).Methods("DELETE")
	router.Handle("/approve/comment/{commentId:[0-9]+}/", auth(handlers.ApproveComment(db))).Methods("POST")
	router.HandleFunc("/posts/{postId:[0-9]+}/comments/", handlers.ListPostComments(db)).Methods("GET")

	return router
}
