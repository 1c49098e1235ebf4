package service

import (
	"testing"

	"ecodrip-server/internal/modules/auth/repo"
	"ecodrip-server/internal/testutils"

	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	testutils.UseConfig(t, testutils.Config(t.TempDir()))
	gdb := testutils.SetupDB(t)
	return New(repo.NewUserRepository(gdb)), gdb
}
