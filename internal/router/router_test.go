package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecodrip-server/internal/model"
	"ecodrip-server/internal/modules"
	"ecodrip-server/internal/storage"
	"ecodrip-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	root := t.TempDir()
	testutils.UseConfig(t, testutils.Config(root))
	gdb := testutils.SetupDB(t)

	r := gin.New()
	NewRouter(modules.NewFromDB(gdb, storage.NewDiskStore(root, "/uploads/maps/"))).Init(r)
	return r, gdb
}

func do(r http.Handler, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	return do(r, method, path, token, reader, "application/json")
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v body=%s", err, w.Body.String())
		}
	}
}

func uploadMap(t *testing.T, r http.Handler, token, title string) map[string]any {
	t.Helper()
	body, contentType := testutils.MultipartBody(t, "yard.png", testutils.PNG(800, 600), map[string]string{"title": title})
	w := do(r, http.MethodPost, "/api/maps/upload", token, body, contentType)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	decode(t, w, &m)
	return m
}

// Verifies the public API surface is registered.
func TestInit_RegistersCoreRoutes(t *testing.T) {
	r, _ := newTestEngine(t)

	wants := []string{
		"GET /healthz",
		"GET /metrics",
		"POST /api/auth/register",
		"POST /api/auth/login",
		"GET /api/auth/users",
		"POST /api/maps/upload",
		"GET /api/maps",
		"GET /api/maps/:mapId",
		"PUT /api/maps/:mapId",
		"DELETE /api/maps/:mapId",
		"POST /api/maps/:mapId/sprinklers",
		"GET /api/maps/:mapId/sprinklers",
		"POST /api/maps/:mapId/placements",
		"PUT /api/sprinklers/:id",
		"DELETE /api/sprinklers/:id",
	}

	have := make(map[string]bool)
	for _, rt := range r.Routes() {
		have[rt.Method+" "+rt.Path] = true
	}
	for _, want := range wants {
		if !have[want] {
			t.Fatalf("missing route: %s", want)
		}
	}
}

// Verifies health and unknown API paths.
func TestInit_HealthzAndNoRoute(t *testing.T) {
	r, _ := newTestEngine(t)

	w := doJSON(r, http.MethodGet, "/healthz", "", "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte(`"ok"`)) {
		t.Fatalf("unexpected healthz: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodGet, "/api/nope", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/maps", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

// Verifies register, duplicate email, login and the admin-only user list.
func TestAuthFlow(t *testing.T) {
	r, gdb := newTestEngine(t)

	reg := `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"secret123","confirmPassword":"secret123"}`
	if w := doJSON(r, http.MethodPost, "/api/auth/register", "", reg); w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodPost, "/api/auth/register", "", reg); w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", w.Code)
	}
	var count int64
	gdb.Model(&model.User{}).Where("email = ?", "ada@example.com").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", `{"email":"ada@example.com","password":"secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	var login struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	decode(t, w, &login)
	if login.Token == "" {
		t.Fatalf("expected token")
	}
	if _, leaked := login.User["password"]; leaked {
		t.Fatalf("password must not be serialized")
	}

	if w := doJSON(r, http.MethodPost, "/api/auth/login", "", `{"email":"ada@example.com","password":"wrong"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", w.Code)
	}

	if w := doJSON(r, http.MethodGet, "/api/auth/users", "Bearer "+login.Token, ""); w.Code != http.StatusForbidden {
		t.Fatalf("users as non admin: expected 403, got %d", w.Code)
	}
	admin := testutils.CreateUser(t, gdb, "root@example.com", true)
	if w := doJSON(r, http.MethodGet, "/api/auth/users", testutils.BearerToken(t, admin), ""); w.Code != http.StatusOK {
		t.Fatalf("users as admin: expected 200, got %d", w.Code)
	}
}

// Walks the upload, sprinkler, ownership and cascade flow over the full router.
func TestMapAndSprinklerFlow(t *testing.T) {
	r, gdb := newTestEngine(t)
	u1 := testutils.CreateUser(t, gdb, "u1@example.com", false)
	u2 := testutils.CreateUser(t, gdb, "u2@example.com", false)
	t1 := testutils.BearerToken(t, u1)
	t2 := testutils.BearerToken(t, u2)

	m := uploadMap(t, r, t1, "Backyard")
	if m["ownerId"] != u1.ID {
		t.Fatalf("expected ownerId %s, got %v", u1.ID, m["ownerId"])
	}
	mapID := m["id"].(string)

	// uploaded file is served with the cache header
	imageURL, _ := m["imageUrl"].(string)
	w := do(r, http.MethodGet, imageURL, "", nil, "")
	if w.Code != http.StatusOK || w.Header().Get("Cache-Control") == "" {
		t.Fatalf("expected cached image at %s, got %d", imageURL, w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/maps/"+mapID+"/sprinklers", t1, `{"xRatio":0.5,"yRatio":0.5}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add sprinkler: expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	var sp struct {
		ID     string `json:"id"`
		Active bool   `json:"active"`
	}
	decode(t, w, &sp)
	if !sp.Active {
		t.Fatalf("expected active to default to true")
	}

	if w := doJSON(r, http.MethodPost, "/api/maps/"+mapID+"/sprinklers", t2, `{"xRatio":0.5,"yRatio":0.5}`); w.Code != http.StatusNotFound {
		t.Fatalf("foreign add: expected 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/maps/"+mapID, t2, ""); w.Code != http.StatusNotFound {
		t.Fatalf("foreign read: expected 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPut, "/api/sprinklers/"+sp.ID, t2, `{"active":false}`); w.Code != http.StatusNotFound {
		t.Fatalf("foreign sprinkler update: expected 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodDelete, "/api/maps/"+mapID, t2, ""); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodPost, "/api/maps/"+mapID+"/sprinklers", t1, `{"xRatio":1.2,"yRatio":0.5}`); w.Code != http.StatusBadRequest {
		t.Fatalf("out of range: expected 400, got %d", w.Code)
	}

	if w := doJSON(r, http.MethodPut, "/api/sprinklers/"+sp.ID, t1, `{"active":false}`); w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d body=%s", w.Code, w.Body.String())
	}
	w = doJSON(r, http.MethodGet, "/api/maps/"+mapID, t1, "")
	var detail struct {
		Sprinklers []struct {
			ID     string `json:"id"`
			Active bool   `json:"active"`
		} `json:"sprinklers"`
	}
	decode(t, w, &detail)
	if len(detail.Sprinklers) != 1 || detail.Sprinklers[0].Active {
		t.Fatalf("expected one inactive sprinkler, got %+v", detail.Sprinklers)
	}

	w = doJSON(r, http.MethodPost, "/api/maps/"+mapID+"/placements", t1, `{"x":402,"y":305,"width":800,"height":600,"mode":"select"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("select placement: expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	if w := doJSON(r, http.MethodDelete, "/api/maps/"+mapID, t1, ""); w.Code != http.StatusOK {
		t.Fatalf("delete map: expected 200, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/api/maps/"+mapID, t1, ""); w.Code != http.StatusNotFound {
		t.Fatalf("deleted map: expected 404, got %d", w.Code)
	}
	var left int64
	gdb.Model(&model.Sprinkler{}).Where("map_id = ?", mapID).Count(&left)
	if left != 0 {
		t.Fatalf("expected sprinklers to be removed, %d left", left)
	}
	if w := doJSON(r, http.MethodPut, "/api/sprinklers/"+sp.ID, t1, `{"active":true}`); w.Code != http.StatusNotFound {
		t.Fatalf("sprinkler after cascade: expected 404, got %d", w.Code)
	}
}

// Verifies JSON bodies over server.max_request_body_size are 413.
func TestOversizeJSONBody(t *testing.T) {
	r, _ := newTestEngine(t)

	body := `{"email":"` + strings.Repeat("a", 3*1024*1024) + `","password":"x"}`
	if w := doJSON(r, http.MethodPost, "/api/auth/login", "", body); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", w.Code)
	}
}
