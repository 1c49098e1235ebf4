package handler

import (
	"net/http"

	"ecodrip-server/internal/modules/common/httpx"
	moduledto "ecodrip-server/internal/modules/maps/dto"

	"github.com/gin-gonic/gin"
)

// UploadMap accepts multipart form fields image, title and optional description.
func (h *Handler) UploadMap(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		httpx.Fail(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	req := moduledto.UploadMapRequest{Title: c.PostForm("title")}
	if desc, present := c.GetPostForm("description"); present {
		req.Description = &desc
	}

	m, err := h.mapService.Upload(uid, file, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to upload map")
		return
	}
	httpx.OK(c, http.StatusCreated, "Map uploaded successfully", m)
}

func (h *Handler) ListMaps(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	maps, err := h.mapService.List(uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to fetch maps")
		return
	}
	httpx.OK(c, http.StatusOK, "", maps)
}

func (h *Handler) GetMap(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	m, err := h.mapService.Get(c.Param("mapId"), uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to fetch map")
		return
	}
	httpx.OK(c, http.StatusOK, "", m)
}

func (h *Handler) UpdateMap(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	var req moduledto.UpdateMapRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	m, err := h.mapService.Update(c.Param("mapId"), uid, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Failed to update map")
		return
	}
	httpx.OK(c, http.StatusOK, "Map updated successfully", m)
}

func (h *Handler) DeleteMap(c *gin.Context) {
	uid, ok := httpx.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.mapService.Delete(c.Param("mapId"), uid); err != nil {
		httpx.WriteServiceError(c, err, "Failed to delete map")
		return
	}
	httpx.OK(c, http.StatusOK, "Map deleted successfully", nil)
}
