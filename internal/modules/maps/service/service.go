package service

import (
	"ecodrip-server/internal/modules/maps/repo"
	"ecodrip-server/internal/ownership"
	"ecodrip-server/internal/storage"
)

type Service struct {
	mapStore repo.MapStore
	guard    *ownership.Guard
	files    storage.FileStore
}

func New(mapStore repo.MapStore, guard *ownership.Guard, files storage.FileStore) *Service {
	return &Service{
		mapStore: mapStore,
		guard:    guard,
		files:    files,
	}
}
