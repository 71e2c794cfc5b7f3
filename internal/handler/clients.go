package handler

import (
	"net/http"

	"github.com/gleysonwener/new-lu/internal/apierror"
	"github.com/gleysonwener/new-lu/internal/dto"
	"github.com/gleysonwener/new-lu/internal/middleware"
	"github.com/gleysonwener/new-lu/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ClientsHandler struct{ svc service.ClientService }

func NewClientsHandler(svc service.ClientService) *ClientsHandler {
	return &ClientsHandler{svc: svc}
}

func (h *ClientsHandler) Create(c *gin.Context) {
	var req dto.CreateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	owner := middleware.CurrentUser(c)
	resp, err := h.svc.Create(c.Request.Context(), owner.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ClientsHandler) List(c *gin.Context) {
	var filter dto.ClientFilter
	if !bindAndValidateQuery(c, &filter) {
		return
	}
	owner := middleware.CurrentUser(c)
	resp, err := h.svc.List(c.Request.Context(), owner.ID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	owner := middleware.CurrentUser(c)
	resp, err := h.svc.Get(c.Request.Context(), id, owner.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ClientsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	owner := middleware.CurrentUser(c)
	resp, err := h.svc.Update(c.Request.Context(), id, owner.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete is admin-only: the route layer enforces the role.
func (h *ClientsHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
