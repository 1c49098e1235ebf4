package modules

import (
	"ecodrip-server/internal/modules/auth"
	authrepo "ecodrip-server/internal/modules/auth/repo"
	"ecodrip-server/internal/modules/maps"
	maprepo "ecodrip-server/internal/modules/maps/repo"
	"ecodrip-server/internal/modules/sprinkler"
	sprinklerrepo "ecodrip-server/internal/modules/sprinkler/repo"
	"ecodrip-server/internal/ownership"
	"ecodrip-server/internal/storage"

	"gorm.io/gorm"
)

type AppModules struct {
	Auth      *auth.Module
	Maps      *maps.Module
	Sprinkler *sprinkler.Module
}

func New(
	userStore authrepo.UserStore,
	mapStore maprepo.MapStore,
	sprinklerStore sprinklerrepo.SprinklerStore,
	files storage.FileStore,
) *AppModules {
	guard := ownership.NewGuard(mapStore, sprinklerStore)

	return &AppModules{
		Auth:      auth.New(userStore),
		Maps:      maps.New(mapStore, guard, files),
		Sprinkler: sprinkler.New(sprinklerStore, guard),
	}
}

// NewFromDB builds every repository on gdb.
func NewFromDB(gdb *gorm.DB, files storage.FileStore) *AppModules {
	return New(
		authrepo.NewUserRepository(gdb),
		maprepo.NewMapRepository(gdb),
		sprinklerrepo.NewSprinklerRepository(gdb),
		files,
	)
}
