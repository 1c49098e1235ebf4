package handler

import mapservice "ecodrip-server/internal/modules/maps/service"

type Handler struct {
	mapService *mapservice.Service
}

func New(mapService *mapservice.Service) *Handler {
	return &Handler{mapService: mapService}
}
