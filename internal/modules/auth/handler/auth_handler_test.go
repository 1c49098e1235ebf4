package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

// Verifies register, duplicate register and login through the HTTP layer.
func TestAuthHandlers_RegisterAndLogin(t *testing.T) {
	h, _ := setupTestHandler(t)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/users", h.ListUsers)

	body := gin.H{
		"firstName":       "Ada",
		"lastName":        "Lovelace",
		"email":           "ada@example.com",
		"password":        "secret123",
		"confirmPassword": "secret123",
	}
	w, env := doJSON(r, http.MethodPost, "/register", body)
	if w.Code != http.StatusCreated || !env.Success {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret123") || strings.Contains(w.Body.String(), `"password"`) {
		t.Fatalf("password leaked in response: %s", w.Body.String())
	}

	w, env = doJSON(r, http.MethodPost, "/register", body)
	if w.Code != http.StatusConflict || env.Success {
		t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
	}

	w, env = doJSON(r, http.MethodPost, "/login", gin.H{"email": "ada@example.com", "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var login struct {
		User  struct{ ID, Email string } `json:"user"`
		Token string                     `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &login); err != nil {
		t.Fatalf("decode login data: %v", err)
	}
	if login.Token == "" || login.User.Email != "ada@example.com" {
		t.Fatalf("unexpected login payload %+v", login)
	}

	w, _ = doJSON(r, http.MethodPost, "/login", gin.H{"email": "ada@example.com", "password": "wrong123"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w, _ = doJSON(r, http.MethodGet, "/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from users, got %d", w.Code)
	}
}

// Verifies malformed JSON and failed validation are 400.
func TestAuthHandlers_BadRequests(t *testing.T) {
	h, _ := setupTestHandler(t)

	r := gin.New()
	r.POST("/register", h.Register)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", w.Code)
	}

	w, env := doJSON(r, http.MethodPost, "/register", gin.H{"firstName": "A"})
	if w.Code != http.StatusBadRequest || env.Message != "All fields are required" {
		t.Fatalf("expected 400 all fields required, got %d %q", w.Code, env.Message)
	}
}
