package movies_test

import (
	"cinelog/src/config"
	"cinelog/src/middleware"
	"cinelog/src/routes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key-at-least-32-bytes-long")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.RunMigrations(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	config.DB = db

	engine := gin.New()
	routes.RegisterRoutes(engine)
	return engine
}

func bearerToken(t *testing.T, userID uint, username string) string {
	t.Helper()
	token, err := middleware.GenerateToken(userID, username, time.Hour)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body, auth string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestUnauthenticatedMovieWritesRejected(t *testing.T) {
	engine := setupAPI(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/movies"},
		{http.MethodPut, "/api/v1/movies/1"},
		{http.MethodPatch, "/api/v1/movies/1"},
		{http.MethodDelete, "/api/v1/movies/1"},
	}
	for _, tc := range cases {
		rec := doJSON(t, engine, tc.method, tc.path, `{"title":"X"}`, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", tc.method, tc.path, rec.Code)
		}
	}

	// Reads stay open.
	rec := doJSON(t, engine, http.MethodGet, "/api/v1/movies", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/v1/movies = %d, want 200", rec.Code)
	}
}

func TestCreateMovieIgnoresReadOnlyFields(t *testing.T) {
	engine := setupAPI(t)
	auth := bearerToken(t, 1, "alice")

	body := `{
		"title": "The Matrix",
		"slug": "client-supplied-slug",
		"average_rating": 5,
		"review_count": 99,
		"reviews": [{"rating": 1}]
	}`
	rec := doJSON(t, engine, http.MethodPost, "/api/v1/movies", body, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var res map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if res["slug"] != "the-matrix" {
		t.Errorf("slug = %v, want the derived the-matrix", res["slug"])
	}
	if res["average_rating"].(float64) != 0 {
		t.Errorf("average_rating = %v, want computed 0", res["average_rating"])
	}
	if res["review_count"].(float64) != 0 {
		t.Errorf("review_count = %v, want computed 0", res["review_count"])
	}
}

func TestCreateMovieValidation(t *testing.T) {
	engine := setupAPI(t)
	auth := bearerToken(t, 1, "alice")

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/movies", `{"description":"no title"}`, auth)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("create without title = %d, want 422: %s", rec.Code, rec.Body.String())
	}

	var res struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if _, ok := res.Errors["title"]; !ok {
		t.Errorf("expected field-level detail for title, got %v", res.Errors)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/movies",
		`{"title":"X","duration":-10}`, auth)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("negative duration = %d, want 422", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/v1/movies",
		`{"title":"X","release_date":"not-a-date"}`, auth)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad release_date = %d, want 422", rec.Code)
	}
}

func TestInvalidOrderingRejected(t *testing.T) {
	engine := setupAPI(t)

	rec := doJSON(t, engine, http.MethodGet, "/api/v1/movies?ordering=bogus", "", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bogus ordering = %d, want 422", rec.Code)
	}
}

func TestMovieLifecycle(t *testing.T) {
	engine := setupAPI(t)
	auth := bearerToken(t, 1, "alice")

	rec := doJSON(t, engine, http.MethodPost, "/api/v1/movies",
		`{"title":"Heat","director":"Michael Mann","duration":170,"release_date":"1995-12-15"}`, auth)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID   uint   `json:"id"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	path := fmt.Sprintf("/api/v1/movies/%d", created.ID)

	rec = doJSON(t, engine, http.MethodGet, path, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("retrieve = %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPatch, path, `{"country":"USA"}`, auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch = %d: %s", rec.Code, rec.Body.String())
	}
	var patched struct {
		Country string `json:"country"`
		Slug    string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &patched); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if patched.Country != "USA" {
		t.Errorf("country = %q, want USA", patched.Country)
	}
	if patched.Slug != created.Slug {
		t.Errorf("slug changed on patch: %q -> %q", created.Slug, patched.Slug)
	}

	rec = doJSON(t, engine, http.MethodDelete, path, "", auth)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodGet, path, "", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("retrieve after delete = %d, want 404", rec.Code)
	}
}
