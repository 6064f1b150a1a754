package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenLogin(t *testing.T) {
	db, mock := newMock(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	mock.ExpectQuery(`FROM users\s+WHERE username = \$1`).
		WithArgs("franz").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password"}).
			AddRow(4, "franz", "franz@example.com", string(hash)))

	req := httptest.NewRequest("POST", "/api-token-auth/",
		strings.NewReader(`{"username":"franz","password":"secret"}`))
	rec := httptest.NewRecorder()
	TokenLogin(db, []byte("test-secret"))(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["user_id"] != float64(4) || body["email"] != "franz@example.com" {
		t.Errorf("unexpected login response: %v", body)
	}
	if token, _ := body["token"].(string); token == "" {
		t.Error("login response is missing a token")
	}
}

func TestTokenLoginBadPassword(t *testing.T) {
	db, mock := newMock(t)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	mock.ExpectQuery(`FROM users\s+WHERE username = \$1`).
		WithArgs("franz").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password"}).
			AddRow(4, "franz", "franz@example.com", string(hash)))

	req := httptest.NewRequest("POST", "/api-token-auth/",
		strings.NewReader(`{"username":"franz","password":"wrong"}`))
	rec := httptest.NewRecorder()
	TokenLogin(db, []byte("test-secret"))(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["title"] != "Error" || body["message"] != "Invalid username/password" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

func TestTokenLoginUnknownUser(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`FROM users\s+WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("POST", "/api-token-auth/",
		strings.NewReader(`{"username":"ghost","password":"secret"}`))
	rec := httptest.NewRecorder()
	TokenLogin(db, []byte("test-secret"))(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Invalid username/password" {
		t.Errorf("message = %v", decodeBody(t, rec)["message"])
	}
}

func TestTokenLoginMissingFields(t *testing.T) {
	db, _ := newMock(t)

	req := httptest.NewRequest("POST", "/api-token-auth/", strings.NewReader(`{"username":"franz"}`))
	rec := httptest.NewRecorder()
	TokenLogin(db, []byte("test-secret"))(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRegisterUser(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("franz", "franz@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
			AddRow(4, time.Now()))

	req := httptest.NewRequest("POST", "/users/",
		strings.NewReader(`{"username":"franz","email":"franz@example.com","password":"secret"}`))
	rec := httptest.NewRecorder()
	RegisterUser(db)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	if data["id"] != float64(4) || data["username"] != "franz" {
		t.Errorf("unexpected user: %v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Error("password must not appear in the response")
	}
}

func TestRegisterFCMToken(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO fcm_tokens`).
		WithArgs(4, "device-token").
		WillReturnResult(sqlmock.NewResult(1, 1))

	req := httptest.NewRequest("POST", "/register-token/", strings.NewReader(`{"token":"device-token"}`))
	rec := httptest.NewRecorder()
	RegisterFCMToken(db)(rec, authed(req, 4))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
