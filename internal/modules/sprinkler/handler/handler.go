package handler

import sprinklerservice "ecodrip-server/internal/modules/sprinkler/service"

type Handler struct {
	sprinklerService *sprinklerservice.Service
}

func New(sprinklerService *sprinklerservice.Service) *Handler {
	return &Handler{sprinklerService: sprinklerService}
}
