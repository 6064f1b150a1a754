package routes

import (
	"database/sql"

	"github.com/gorilla/mux"

	"github.com/FranzKurt09/my-first-blog/handlers"
	"github.com/FranzKurt09/my-first-blog/middleware"
)

func CreatePostRoutes(db *sql.DB, router *mux.Router, jwtSecret []byte) *mux.Router {
	auth := middleware.RequireAuth(jwtSecret)

	router.HandleFunc("/post/list/", handlers.ListPosts(db)).Methods("GET")
	router.HandleFunc("/post/published/", handlers.ListPublishedPosts(db)).Methods("GET")
	router.HandleFunc("/post/unpublished/", handlers.ListUnpublishedPosts(db)).Methods("GET")
	router.Handle("/post/publish/{postId:[0-9]+}/", auth(handlers.PublishPost(db))).Methods("POST")

	router.Handle("/posts/", auth(handlers.CreatePost(db))).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/", handlers.GetPost(db)).Methods("GET")
	router.Handle("/posts/{id:[0-9]+}/", auth(handlers.EditPost(db))).Methods("PUT")
	router.Handle("/posts/{id:[0-9]+}/", auth(handlers.DeletePost(db))).Methods("DELETE")

	return router
}
