package handler

import (
	"net/http"

	"ecodrip-server/internal/modules/common/httpx"
	moduledto "ecodrip-server/internal/modules/sprinkler/dto"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddSprinkler(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	var req moduledto.CreateSprinklerRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	sp, err := h.sprinklerService.Create(c.Param("mapId"), uid, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to add sprinkler")
		return
	}
	httpx.OK(c, http.StatusCreated, "Sprinkler added successfully", sp)
}

func (h *Handler) ListSprinklers(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	sprinklers, err := h.sprinklerService.List(c.Param("mapId"), uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to fetch sprinklers")
		return
	}
	httpx.OK(c, http.StatusOK, "", sprinklers)
}

func (h *Handler) UpdateSprinkler(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	var req moduledto.UpdateSprinklerRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	sp, err := h.sprinklerService.Update(c.Param("id"), uid, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to update sprinkler")
		return
	}
	httpx.OK(c, http.StatusOK, "Sprinkler updated successfully", sp)
}

func (h *Handler) DeleteSprinkler(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.sprinklerService.Delete(c.Param("id"), uid); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete sprinkler")
		return
	}
	httpx.OK(c, http.StatusOK, "Sprinkler deleted successfully", nil)
}

// Place handles a canvas click: 201 when a sprinkler was added, 200 when one was selected.
func (h *Handler) Place(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	var req moduledto.PlacementRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	res, err := h.sprinklerService.Place(c.Param("mapId"), uid, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to place sprinkler")
		return
	}
	if res.Created {
		httpx.OK(c, http.StatusCreated, "Sprinkler added successfully", res)
		return
	}
	httpx.OK(c, http.StatusOK, "", res)
}
