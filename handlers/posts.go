package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FranzKurt09/my-first-blog/middleware"
	"github.com/FranzKurt09/my-first-blog/models"
)

const selectPost = `
	SELECT id, author_id, title, text, created_date, published_date
	FROM posts
	WHERE id = $1`

func getPost(db *sql.DB, id int) (*models.Post, error) {
	var p models.Post
	err := db.QueryRow(selectPost, id).Scan(
		&p.ID,
		&p.AuthorID,
		&p.Title,
		&p.Text,
		&p.CreatedDate,
		&p.PublishedDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func listPosts(db *sql.DB, w http.ResponseWriter, query string) {
	rows, err := db.Query(query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database query failed")
		log.Println("listPosts error:", err)
		return
	}
	defer rows.Close()

	posts := []models.PostList{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Text,
			&p.CreatedDate, &p.PublishedDate); err != nil {
			writeError(w, http.StatusInternalServerError, "Error scanning posts")
			log.Println("listPosts scan error:", err)
			return
		}
		posts = append(posts, p.ToList())
	}
	if err := rows.Err(); err != nil {
		writeError(w, http.StatusInternalServerError, "Error iterating posts")
		log.Println("listPosts rows error:", err)
		return
	}

	writeJSON(w, http.StatusOK, ListEnvelope{Data: posts, Count: len(posts)})
}

func ListPosts(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listPosts(db, w, `
			SELECT id, author_id, title, text, created_date, published_date
			FROM posts
			ORDER BY id`)
	}
}

func ListPublishedPosts(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listPosts(db, w, `
			SELECT id, author_id, title, text, created_date, published_date
			FROM posts
			WHERE published_date IS NOT NULL
			ORDER BY id`)
	}
}

func ListUnpublishedPosts(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listPosts(db, w, `
			SELECT id, author_id, title, text, created_date, published_date
			FROM posts
			WHERE published_date IS NULL
			ORDER BY id`)
	}
}

func GetPost(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found.")
			return
		}

		post, err := getPost(db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Post not found.")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("GetPost error:", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, DataEnvelope{Data: post.ToView()})
	}
}

type postRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func CreatePost(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Unable to save post data")
			return
		}
		if req.Title == "" || req.Text == "" {
			writeError(w, http.StatusBadRequest, "Unable to save post data")
			return
		}

		var p models.Post
		err := db.QueryRow(`
			INSERT INTO posts (author_id, title, text)
			VALUES ($1, $2, $3)
			RETURNING id, author_id, title, text, created_date, published_date`,
			userID, req.Title, req.Text,
		).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Text, &p.CreatedDate, &p.PublishedDate)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create post")
			log.Println("CreatePost error:", err)
			return
		}

		writeJSON(w, http.StatusCreated, Envelope{
			Title:   "Success!",
			Message: "Post created!",
			Data:    p.ToView(),
		})
	}
}

func EditPost(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found!")
			return
		}

		post, err := getPost(db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Post not found!")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("EditPost error:", err)
			}
			return
		}

		if !post.CanModify(userID) {
			writeError(w, http.StatusForbidden, "You are not authorized to edit this post.")
			return
		}

		var req postRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Unable to save post data")
			return
		}
		if req.Title == "" || req.Text == "" {
			writeError(w, http.StatusBadRequest, "Unable to save post data")
			return
		}

		err = db.QueryRow(`
			UPDATE posts SET title = $1, text = $2
			WHERE id = $3
			RETURNING id, author_id, title, text, created_date, published_date`,
			req.Title, req.Text, id,
		).Scan(&post.ID, &post.AuthorID, &post.Title, &post.Text,
			&post.CreatedDate, &post.PublishedDate)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to edit post")
			log.Println("EditPost update error:", err)
			return
		}

		writeJSON(w, http.StatusCreated, Envelope{
			Title:   "Success!",
			Message: "Post edited!",
			Data:    post.ToView(),
		})
	}
}

func DeletePost(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found.")
			return
		}

		post, err := getPost(db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Post not found.")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("DeletePost error:", err)
			}
			return
		}

		if !post.CanModify(userID) {
			writeError(w, http.StatusForbidden, "You are not authorized to delete this post")
			return
		}

		if _, err := db.Exec(`DELETE FROM posts WHERE id = $1`, id); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to delete post")
			log.Println("DeletePost exec error:", err)
			return
		}

		writeJSON(w, http.StatusOK, Envelope{
			Title:   "Success",
			Message: "Post deleted!",
		})
	}
}

// PublishPost sets the publication timestamp. Publishing twice is a no-op:
// the timestamp is only written while it is still null.
func PublishPost(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["postId"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found.")
			return
		}

		if _, err := getPost(db, id); err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Post not found.")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("PublishPost error:", err)
			}
			return
		}

		_, err = db.Exec(`
			UPDATE posts SET published_date = NOW()
			WHERE id = $1 AND published_date IS NULL`, id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to publish post")
			log.Println("PublishPost exec error:", err)
			return
		}

		writeJSON(w, http.StatusOK, Envelope{
			Title:   "Success",
			Message: "Post published!",
		})
	}
}
