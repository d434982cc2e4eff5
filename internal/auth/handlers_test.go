package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, app *fiber.App, target string, v any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(v)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s: %v", target, err)
	}
	return resp
}

func TestAuthHandlersRegisterLoginVerify(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO riders`).
		WithArgs(pgxmock.AnyArg(), "rider@example.com", "rider", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService("test-secret", mock)
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), svc)

	resp := postJSON(t, app, "/auth/register", RegisterRequest{Email: "rider@example.com", Username: "rider", Password: "pass"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status: %d", resp.StatusCode)
	}
	var registered struct {
		Rider  map[string]any `json:"rider"`
		Tokens TokenResponse  `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	if _, leaked := registered.Rider["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized")
	}

	passwordBytes, _ := bcrypt.GenerateFromPassword([]byte("pass"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, email, username, password_hash, created_at`).
		WithArgs("rider@example.com").
		WillReturnRows(pgxmock.NewRows(riderColumns).
			AddRow("rider-1", "rider@example.com", "rider", string(passwordBytes), time.Now()))

	resp = postJSON(t, app, "/auth/login", LoginRequest{Email: "rider@example.com", Password: "pass"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %d", resp.StatusCode)
	}
	var tokens TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status: %v", err)
	}
	var verified map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&verified)
	if verified["rider_id"] != "rider-1" {
		t.Fatalf("unexpected verify body: %v", verified)
	}
}

func TestAuthHandlersErrors(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("test-secret", mock))

	if resp := postJSON(t, app, "/auth/register", RegisterRequest{Email: "x"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for incomplete register, got %d", resp.StatusCode)
	}

	mock.ExpectQuery(`INSERT INTO riders`).
		WithArgs(pgxmock.AnyArg(), "x@y.z", "x", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	if resp := postJSON(t, app, "/auth/register", RegisterRequest{Email: "x@y.z", Username: "x", Password: "p"}); resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict for duplicate email, got %d", resp.StatusCode)
	}

	if resp := postJSON(t, app, "/auth/login", LoginRequest{Email: "x@y.z"}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request without password, got %d", resp.StatusCode)
	}

	mock.ExpectQuery(`FROM riders WHERE email`).WithArgs("x@y.z").WillReturnRows(pgxmock.NewRows(riderColumns))
	if resp := postJSON(t, app, "/auth/login", LoginRequest{Email: "x@y.z", Password: "p"}); resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for unknown rider, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized without token")
	}

	req = httptest.NewRequest(http.MethodGet, "/auth/jwt/verify", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected unauthorized for garbage token")
	}
}
