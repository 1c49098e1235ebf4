package service

import (
	"testing"

	"ecodrip-server/internal/model"
	maprepo "ecodrip-server/internal/modules/maps/repo"
	"ecodrip-server/internal/modules/sprinkler/repo"
	"ecodrip-server/internal/ownership"
	platformservice "ecodrip-server/internal/platform/service"
	"ecodrip-server/internal/testutils"

	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	testutils.UseConfig(t, testutils.Config(t.TempDir()))
	gdb := testutils.SetupDB(t)
	store := repo.NewSprinklerRepository(gdb)
	guard := ownership.NewGuard(maprepo.NewMapRepository(gdb), store)
	return New(store, guard), gdb
}

func seedMap(t *testing.T, gdb *gorm.DB, owner *model.User, title string) *model.MapImage {
	t.Helper()
	m := &model.MapImage{
		Title:     title,
		ImagePath: "2026/01/01/" + title + ".png",
		Width:     800,
		Height:    600,
		Size:      1,
		MimeType:  "image/png",
		OwnerID:   owner.ID,
	}
	if err := gdb.Create(m).Error; err != nil {
		t.Fatalf("seed map: %v", err)
	}
	return m
}

func assertCode(t *testing.T, err error, code platformservice.ErrorCode) {
	t.Helper()
	se, ok := platformservice.AsServiceError(err)
	if !ok || se.Code != code {
		t.Fatalf("expected %s service error, got %v", code, err)
	}
}

func f64(v float64) *float64 { return &v }

func str(v string) *string { return &v }
