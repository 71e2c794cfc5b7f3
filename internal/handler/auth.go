package handler

import (
	"net/http"

	"github.com/gleysonwener/new-lu/internal/apierror"
	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Token handles POST /token. The body is form-encoded (username, password).
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid form: "+err.Error()))
		return
	}
	if !runValidation(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
