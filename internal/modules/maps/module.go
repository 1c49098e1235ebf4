package maps

import (
	"ecodrip-server/internal/modules/maps/handler"
	"ecodrip-server/internal/modules/maps/repo"
	"ecodrip-server/internal/modules/maps/service"
	"ecodrip-server/internal/ownership"
	"ecodrip-server/internal/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(mapStore repo.MapStore, guard *ownership.Guard, files storage.FileStore) *Module {
	moduleService := service.New(mapStore, guard, files)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
