package service

import (
	"errors"
	"testing"

	"ecodrip-server/internal/model"
	maprepo "ecodrip-server/internal/modules/maps/repo"
	sprinklerrepo "ecodrip-server/internal/modules/sprinkler/repo"
	"ecodrip-server/internal/ownership"
	"ecodrip-server/internal/storage"
	"ecodrip-server/internal/testutils"

	"gorm.io/gorm"
)

type fixture struct {
	svc   *Service
	db    *gorm.DB
	store *storage.DiskStore
	root  string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	testutils.UseConfig(t, testutils.Config(root))
	gdb := testutils.SetupDB(t)

	mapStore := maprepo.NewMapRepository(gdb)
	guard := ownership.NewGuard(mapStore, sprinklerrepo.NewSprinklerRepository(gdb))
	files := storage.NewDiskStore(root, "/uploads/maps/")
	return &fixture{
		svc:   New(mapStore, guard, files),
		db:    gdb,
		store: files,
		root:  root,
	}
}

// recordingFiles wraps a FileStore and can fail removals.
type recordingFiles struct {
	storage.FileStore
	removed   []string
	removeErr error
}

func (f *recordingFiles) Remove(rel string) error {
	f.removed = append(f.removed, rel)
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.FileStore.Remove(rel)
}

// failingCreate makes every Create fail.
type failingCreate struct {
	maprepo.MapStore
}

func (failingCreate) Create(*model.MapImage) error {
	return errors.New("disk full")
}
