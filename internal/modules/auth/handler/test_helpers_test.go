package handler

import (
	"testing"

	"ecodrip-server/internal/modules/auth/repo"
	authservice "ecodrip-server/internal/modules/auth/service"
	"ecodrip-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	testutils.UseConfig(t, testutils.Config(t.TempDir()))
	gdb := testutils.SetupDB(t)
	return New(authservice.New(repo.NewUserRepository(gdb))), gdb
}
