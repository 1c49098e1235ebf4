package service

import (
	"ecodrip-server/internal/modules/sprinkler/repo"
	"ecodrip-server/internal/ownership"
)

type Service struct {
	store repo.SprinklerStore
	guard *ownership.Guard
}

func New(store repo.SprinklerStore, guard *ownership.Guard) *Service {
	return &Service{store: store, guard: guard}
}
