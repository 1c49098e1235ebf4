package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ecodrip-server/internal/config"
	"ecodrip-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func useConfig(t *testing.T, mutate func(*config.Config)) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testutils.Config(t.TempDir())
	if mutate != nil {
		mutate(&cfg)
	}
	testutils.UseConfig(t, cfg)
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
