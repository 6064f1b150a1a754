package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/FranzKurt09/my-first-blog/middleware"
	"github.com/FranzKurt09/my-first-blog/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
	Email  string `json:"email"`
}

// TokenLogin checks the credentials and issues a bearer token.
func TokenLogin(db *sql.DB, jwtSecret []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid username/password")
			return
		}
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "Invalid username/password")
			return
		}

		var u models.User
		err := db.QueryRow(`
			SELECT id, username, email, password
			FROM users
			WHERE username = $1`, req.Username,
		).Scan(&u.ID, &u.Username, &u.Email, &u.Password)
		if err != nil {
			if err != sql.ErrNoRows {
				log.Println("TokenLogin error:", err)
			}
			writeError(w, http.StatusBadRequest, "Invalid username/password")
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
			writeError(w, http.StatusBadRequest, "Invalid username/password")
			return
		}

		token, err := middleware.GenerateToken(jwtSecret, u.ID, u.Username)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to issue token")
			log.Println("TokenLogin token error:", err)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{
			UserID: u.ID,
			Token:  token,
			Email:  u.Email,
		})
	}
}

func RegisterUser(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if u.Username == "" || u.Password == "" {
			writeError(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		err = db.QueryRow(`
			INSERT INTO users (username, email, password)
			VALUES ($1, $2, $3)
			RETURNING id, created_at`,
			u.Username, u.Email, string(hashedPassword),
		).Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Failed to create user")
			log.Println("RegisterUser error:", err)
			return
		}

		u.Password = ""
		writeJSON(w, http.StatusCreated, Envelope{
			Title:   "Success!",
			Message: "User created!",
			Data:    u,
		})
	}
}

type tokenRequest struct {
	Token string `json:"token"`
}

// RegisterFCMToken stores a device token for the authenticated user so the
// owner can be notified when someone comments on their post.
func RegisterFCMToken(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFrom(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Token == "" {
			writeError(w, http.StatusBadRequest, "Device token is required")
			return
		}

		_, err := db.Exec(`
			INSERT INTO fcm_tokens (user_id, token)
			VALUES ($1, $2)
			ON CONFLICT (user_id, token)
			DO UPDATE SET updated_at = NOW()`,
			userID, req.Token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to register device token")
			log.Println("RegisterFCMToken error:", err)
			return
		}

		writeJSON(w, http.StatusOK, Envelope{
			Title:   "Success",
			Message: "Device token registered",
		})
	}
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
