// Package testutil builds isolated in-memory databases, fixtures and HTTP helpers for tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"
	"Club_Portal/internal/repository/store"
	"Club_Portal/internal/router"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TestPassword is the password of every fixture account.
const TestPassword = "password123"

const testSecret = "test-secret"

var dbSeq atomic.Int64

// SetupTestDB opens a fresh in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", name, dbSeq.Add(1))

	db, err := store.Open(store.DriverSQLite, dsn, false)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := store.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}
	return db
}

// Env is a fully wired application over a test database.
type Env struct {
	DB       *gorm.DB
	Tokens   *pkg.TokenService
	Services *service.Services
	Router   *gin.Engine
	Clock    *Clock
}

// NewEnv wires services and the router. Optional deps (sessions, audit, mail) come from d.
func NewEnv(t *testing.T, d service.Deps) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := &Clock{now: time.Now()}
	d.DB = SetupTestDB(t)
	d.Tokens = pkg.NewTokenService(testSecret, time.Hour)
	if d.Now == nil {
		d.Now = clock.Now
	}
	svc := service.New(d)
	return &Env{
		DB:       d.DB,
		Tokens:   d.Tokens,
		Services: svc,
		Router:   router.InitRouter(svc, router.Options{DevMode: true}),
		Clock:    clock,
	}
}

// Clock is a settable time source.
type Clock struct {
	now time.Time
}

func (c *Clock) Now() time.Time { return c.now }

func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// CreateAccount inserts an account with TestPassword.
func CreateAccount(t *testing.T, db *gorm.DB, username string, role model.Role, active bool) *model.Account {
	t.Helper()

	hash, err := pkg.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	acct := &model.Account{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
	repo := &store.AccountRepository{DB: db}
	if err := repo.Create(context.Background(), acct); err != nil {
		t.Fatalf("Failed to create account %s: %v", username, err)
	}
	return acct
}

// IssueToken signs in acct through the session service and returns the bearer token.
func (e *Env) IssueToken(t *testing.T, acct *model.Account) string {
	t.Helper()
	tok, err := e.Services.Sessions.Issue(context.Background(), acct)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return tok.Value
}

// Do serves req and returns the recorder.
func (e *Env) Do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// MakeRequest creates an HTTP test request; a non-empty token is sent as a bearer token.
func MakeRequest(method, path string, body interface{}, token string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Fatalf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// DecodeJSON decodes the response body into v.
func DecodeJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, w.Body.String())
	}
}

// ErrorBody is the JSON error shape.
type ErrorBody struct {
	Error         string   `json:"error"`
	Message       string   `json:"message"`
	RequiredRoles []string `json:"required_roles"`
	Role          string   `json:"role"`
	Details       []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"details"`
}
