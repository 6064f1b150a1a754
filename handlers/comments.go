package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/FranzKurt09/my-first-blog/middleware"
	"github.com/FranzKurt09/my-first-blog/models"
	"github.com/FranzKurt09/my-first-blog/services"
)

const selectComment = `
	SELECT id, post_id, author_id, text, approved, created_date
	FROM comments
	WHERE id = $1`

func getComment(db *sql.DB, id int) (*models.Comment, error) {
	var c models.Comment
	err := db.QueryRow(selectComment, id).Scan(
		&c.ID,
		&c.PostID,
		&c.AuthorID,
		&c.Text,
		&c.Approved,
		&c.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func GetComment(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["commentId"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Comment not found.")
			return
		}

		comment, err := getComment(db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Comment not found.")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("GetComment error:", err)
			}
			return
		}

		writeJSON(w, http.StatusOK, DataEnvelope{Data: comment.ToSummary()})
	}
}

func ListPostComments(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		postID, err := strconv.Atoi(vars["postId"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Post not found.")
			return
		}

		if _, err := getPost(db, postID); err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Post not found.")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("ListPostComments error:", err)
			}
			return
		}

		rows, err := db.Query(`
			SELECT id, post_id, author_id, text, approved, created_date
			FROM comments
			WHERE post_id = $1
			ORDER BY created_date ASC`, postID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Database query failed")
			log.Println("ListPostComments query error:", err)
			return
		}
		defer rows.Close()

		comments := []models.CommentSummary{}
		for rows.Next() {
			var c models.Comment
			if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text,
				&c.Approved, &c.CreatedDate); err != nil {
				writeError(w, http.StatusInternalServerError, "Error scanning comments")
				log.Println("ListPostComments scan error:", err)
				return
			}
			comments = append(comments, c.ToSummary())
		}
		if err := rows.Err(); err != nil {
			writeError(w, http.StatusInternalServerError, "Error iterating comments")
			log.Println("ListPostComments rows error:", err)
			return
		}

		writeJSON(w, http.StatusOK, DataEnvelope{Data: comments})
	}
}

type commentRequest struct {
	Post int    `json:"post"`
	Text string `json:"text"`
}

func CreateComment(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Unable to save comment data")
			return
		}
		if req.Post == 0 || req.Text == "" {
			writeError(w, http.StatusBadRequest, "Unable to save comment data")
			return
		}

		if _, err := getPost(db, req.Post); err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusBadRequest, "Unable to save comment data")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("CreateComment error:", err)
			}
			return
		}

		var c models.Comment
		err := db.QueryRow(`
			INSERT INTO comments (post_id, author_id, text)
			VALUES ($1, $2, $3)
			RETURNING id, post_id, author_id, text, approved, created_date`,
			req.Post, userID, req.Text,
		).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.Approved, &c.CreatedDate)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to create comment")
			log.Println("CreateComment insert error:", err)
			return
		}

		go notifyPostOwnerOfComment(db, c.PostID, userID, c.Text)

		writeJSON(w, http.StatusCreated, Envelope{
			Title:   "Success!",
			Message: "Comment created!",
			Data:    c.ToSummary(),
		})
	}
}

// ApproveComment flips the approval flag. Approving an already approved
// comment still reports success.
func ApproveComment(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["commentId"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Comment not found.")
			return
		}

		if _, err := getComment(db, id); err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Comment not found.")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("ApproveComment error:", err)
			}
			return
		}

		if _, err := db.Exec(`UPDATE comments SET approved = TRUE WHERE id = $1`, id); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to approve comment")
			log.Println("ApproveComment exec error:", err)
			return
		}

		writeJSON(w, http.StatusOK, Envelope{
			Title:   "Success",
			Message: "Comment Approved!",
		})
	}
}

func DeleteComment(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["commentId"])
		if err != nil {
			writeError(w, http.StatusNotFound, "Comment not found.")
			return
		}

		comment, err := getComment(db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				writeError(w, http.StatusNotFound, "Comment not found.")
			} else {
				writeError(w, http.StatusInternalServerError, "Database query failed")
				log.Println("DeleteComment error:", err)
			}
			return
		}

		if !comment.CanModify(userID) {
			writeError(w, http.StatusForbidden, "You are not authorized to delete this comment")
			return
		}

		if _, err := db.Exec(`DELETE FROM comments WHERE id = $1`, id); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to delete comment")
			log.Println("DeleteComment exec error:", err)
			return
		}

		writeJSON(w, http.StatusOK, Envelope{
			Title:   "Success",
			Message: "Comment Removed!",
		})
	}
}

func ListApprovedComments(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT c.id, c.post_id, c.author_id, c.text, c.approved, c.created_date,
			       p.id, p.author_id, p.title, p.text, p.created_date, p.published_date
			FROM comments c
			JOIN posts p ON c.post_id = p.id
			WHERE c.approved = TRUE
			ORDER BY c.id`)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Database query failed")
			log.Println("ListApprovedComments error:", err)
			return
		}
		defer rows.Close()

		comments := []models.CommentDetail{}
		for rows.Next() {
			var c models.Comment
			var p models.Post
			if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text,
				&c.Approved, &c.CreatedDate,
				&p.ID, &p.AuthorID, &p.Title, &p.Text,
				&p.CreatedDate, &p.PublishedDate); err != nil {
				writeError(w, http.StatusInternalServerError, "Error scanning comments")
				log.Println("ListApprovedComments scan error:", err)
				return
			}
			comments = append(comments, c.ToDetail(p.ToView()))
		}
		if err := rows.Err(); err != nil {
			writeError(w, http.StatusInternalServerError, "Error iterating comments")
			log.Println("ListApprovedComments rows error:", err)
			return
		}

		writeJSON(w, http.StatusOK, ListEnvelope{Data: comments, Count: len(comments)})
	}
}

func notifyPostOwnerOfComment(db *sql.DB, postID, commenterID int, commentText string) {
	var ownerID int
	var postTitle string
	err := db.QueryRow(`SELECT author_id, title FROM posts WHERE id = $1`, postID).
		Scan(&ownerID, &postTitle)
	if err != nil {
		log.Printf("Error fetching post info for comment notification: %v", err)
		return
	}

	if ownerID == commenterID {
		return
	}

	var commenter string
	err = db.QueryRow(`SELECT username FROM users WHERE id = $1`, commenterID).
		Scan(&commenter)
	if err != nil {
		log.Printf("Error fetching commenter username: %v", err)
		commenter = "Someone"
	}

	rows, err := db.Query(`
		SELECT token
		FROM fcm_tokens
		WHERE user_id = $1
		  AND token != ''`, ownerID)
	if err != nil {
		log.Printf("Error fetching post owner FCM tokens: %v", err)
		return
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			log.Printf("Error scanning FCM token: %v", err)
			continue
		}
		tokens = append(tokens, token)
	}

	if len(tokens) == 0 {
		return
	}

	title := fmt.Sprintf("%s commented on %q", commenter, postTitle)
	body := commentText
	if len(body) > 100 {
		body = body[:97] + "..."
	}

	data := map[string]string{
		"type":         "post_comment",
		"post_id":      strconv.Itoa(postID),
		"commenter_id": strconv.Itoa(commenterID),
	}

	successCount, failureCount, err := services.SendMultipleNotifications(db, tokens, title, body, data)
	if err != nil {
		log.Printf("Error sending comment notification: %v", err)
		return
	}

	log.Printf("Sent comment notification for post %d: %d successful, %d failed",
		postID, successCount, failureCount)
}
