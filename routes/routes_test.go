package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"

	"github.com/FranzKurt09/my-first-blog/middleware"
)

func newRouter(t *testing.T) (*mux.Router, sqlmock.Sqlmock, []byte) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	secret := []byte("test-secret")
	router := mux.NewRouter()
	CreateAuthRoutes(db, router, secret)
	CreatePostRoutes(db, router, secret)
	CreateCommentRoutes(db, router, secret)
	return router, mock, secret
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	router, _, _ := newRouter(t)

	cases := []struct{ method, path string }{
		{"POST", "/posts/"},
		{"PUT", "/posts/1/"},
		{"DELETE", "/posts/1/"},
		{"POST", "/post/publish/1/"},
		{"POST", "/comment/new/"},
		{"POST", "/approve/comment/1/"},
		{"DELETE", "/comments/1/"},
		{"POST", "/register-token/"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want 401", tc.method, tc.path, rec.Code)
		}
	}
}

func TestReadRoutesAreOpen(t *testing.T) {
	router, mock, _ := newRouter(t)

	cols := []string{"id", "author_id", "title", "text", "created_date", "published_date"}
	mock.ExpectQuery(`FROM posts`).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, 1, "T", "X", time.Now(), nil))

	req := httptest.NewRequest("GET", "/post/list/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /post/list/: status = %d, want 200", rec.Code)
	}
}

func TestApprovedCommentsRouteNotShadowedByID(t *testing.T) {
	router, mock, _ := newRouter(t)

	mock.ExpectQuery(`WHERE c.approved = TRUE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "post_id", "author_id", "text", "approved", "created_date",
			"p_id", "p_author_id", "p_title", "p_text", "p_created_date", "p_published_date",
		}))

	req := httptest.NewRequest("GET", "/comments/approved/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /comments/approved/: status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthorizedCreatePostThroughRouter(t *testing.T) {
	router, mock, secret := newRouter(t)

	token, err := middleware.GenerateToken(secret, 1, "franz")
	if err != nil {
		t.Fatal(err)
	}

	cols := []string{"id", "author_id", "title", "text", "created_date", "published_date"}
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(1, "T", "X").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(10, 1, "T", "X", time.Now(), nil))

	req := httptest.NewRequest("POST", "/posts/", strings.NewReader(`{"title":"T","text":"X"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
}
