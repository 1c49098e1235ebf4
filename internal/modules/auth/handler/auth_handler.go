package handler

import (
	"net/http"

	moduledto "ecodrip-server/internal/modules/auth/dto"
	"ecodrip-server/internal/modules/common/httpx"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Register(c *gin.Context) {
	var req moduledto.RegisterRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		httpx.WriteServiceError(c, err, "Internal server error")
		return
	}

	httpx.OK(c, http.StatusCreated, "User registered successfully", user)
}

func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "Internal server error")
		return
	}

	httpx.OK(c, http.StatusOK, "Login successful", moduledto.LoginResponse{User: user, Token: token})
}

// ListUsers is mounted behind the admin check.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		httpx.WriteServiceError(c, err, "Internal server error")
		return
	}
	httpx.OK(c, http.StatusOK, "", users)
}
