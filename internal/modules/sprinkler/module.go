package sprinkler

import (
	"ecodrip-server/internal/modules/sprinkler/handler"
	"ecodrip-server/internal/modules/sprinkler/repo"
	"ecodrip-server/internal/modules/sprinkler/service"
	"ecodrip-server/internal/ownership"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(store repo.SprinklerStore, guard *ownership.Guard) *Module {
	moduleService := service.New(store, guard)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
