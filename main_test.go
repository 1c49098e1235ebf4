package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "ecodrip-main-config-*")
	if err != nil {
		panic(err)
	}

	envs := []testutils.SavedEnv{
		testutils.SetEnv("ECODRIP_SERVER_MODE", "debug"),
		testutils.SetEnv("ECODRIP_JWT_SECRET", "test_secret"),
		testutils.SetEnv("ECODRIP_JWT_EXPIRATION_HOURS", "24"),
		testutils.SetEnv("ECODRIP_UPLOAD_PATH", filepath.Join(tmpDir, "uploads")),
		testutils.SetEnv("ECODRIP_UPLOAD_URL_PREFIX", "/uploads/maps/"),
		testutils.SetEnv("ECODRIP_REDIS_ENABLED", "false"),
	}
	config.InitConfig(tmpDir)

	code := m.Run()

	testutils.RestoreEnv(envs)
	_ = os.RemoveAll(tmpDir)
	os.Exit(code)
}

// Verifies proxy lists split on commas, semicolons and whitespace.
func TestSplitTrustedProxyList(t *testing.T) {
	got := splitTrustedProxyList(" 1.1.1.1,2.2.2.2; 3.3.3.3 \n4.4.4.4\t")
	if len(got) != 4 {
		t.Fatalf("expected 4 parts, got %v", got)
	}
	if len(splitTrustedProxyList("  ")) != 0 {
		t.Fatalf("expected empty list")
	}
}

// Verifies an empty list ignores X-Forwarded-For and a valid list honours it.
func TestApplyTrustedProxies(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clientIP := func(raw string) string {
		r := gin.New()
		applyTrustedProxies(r, raw)
		r.GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })

		req := httptest.NewRequest(http.MethodGet, "/ip", nil)
		req.RemoteAddr = "127.0.0.1:4000"
		req.Header.Set("X-Forwarded-For", "9.9.9.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Body.String()
	}

	if got := clientIP(""); got != "127.0.0.1" {
		t.Fatalf("expected socket peer with no proxies, got %q", got)
	}
	if got := clientIP("127.0.0.1,10.0.0.0/8"); got != "9.9.9.9" {
		t.Fatalf("expected forwarded IP, got %q", got)
	}
	if got := clientIP("not-an-ip"); got != "127.0.0.1" {
		t.Fatalf("expected invalid list to trust nobody, got %q", got)
	}
}

// Verifies buildEngine registers the API and exportAPI writes it out.
func TestExportAPI_WritesRoutesJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testutils.SetupDB(t)

	r := buildEngine()
	out := filepath.Join(t.TempDir(), "routes.json")
	if err := exportAPI(r, out); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read routes.json: %v", err)
	}
	var routes []struct {
		Method string `json:"method"`
		Path   string `json:"path"`
	}
	if err := json.Unmarshal(data, &routes); err != nil {
		t.Fatalf("invalid routes.json: %v", err)
	}

	found := false
	for _, rt := range routes {
		if rt.Method == http.MethodPost && rt.Path == "/api/maps/upload" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected POST /api/maps/upload in %s", string(data))
	}
}

// Verifies the CLI exposes its flags and the create-admin command.
func TestNewRootCmd_Flags(t *testing.T) {
	cmd := newRootCmd()
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("missing --config")
	}
	if cmd.Flags().Lookup("export") == nil {
		t.Fatalf("missing --export")
	}
	sub, _, err := cmd.Find([]string{"create-admin"})
	if err != nil || sub.Name() != "create-admin" {
		t.Fatalf("missing create-admin subcommand: %v", err)
	}
	if sub.Flags().Lookup("email") == nil || sub.Flags().Lookup("password") == nil {
		t.Fatalf("create-admin flags missing")
	}
}
