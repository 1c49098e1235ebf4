package auth

import (
	"ecodrip-server/internal/modules/auth/handler"
	"ecodrip-server/internal/modules/auth/repo"
	"ecodrip-server/internal/modules/auth/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(userStore repo.UserStore) *Module {
	moduleService := service.New(userStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
