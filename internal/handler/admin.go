package handler

import (
	"net/http"

	"tiendapos/internal/dto"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the platform administration surface. Every route here
// sits behind the super-admin action gate.
type AdminHandler struct{ svc service.AccessService }

func NewAdminHandler(svc service.AccessService) *AdminHandler { return &AdminHandler{svc: svc} }

// ListTenants godoc
// @Summary Lista todos los negocios de la plataforma
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TenantResponse
// @Router /v1/admin/tenants [get]
func (h *AdminHandler) ListTenants(c *gin.Context) {
	resp, err := h.svc.ListTenants(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetTenantStatus godoc
// @Summary Suspende o reactiva un negocio
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del negocio"
// @Param body body dto.SetTenantStatusRequest true "Nuevo estado"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/admin/tenants/{id}/status [put]
func (h *AdminHandler) SetTenantStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.SetTenantStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.SetTenantStatus(c.Request.Context(), id, req.Status); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
