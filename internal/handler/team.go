package handler

import (
	"net/http"

	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type TeamHandler struct{ svc service.AccessService }

func NewTeamHandler(svc service.AccessService) *TeamHandler { return &TeamHandler{svc: svc} }

// List godoc
// @Summary Lista los miembros del equipo
// @Tags equipo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MemberResponse
// @Router /v1/team [get]
func (h *TeamHandler) List(c *gin.Context) {
	resp, err := h.svc.ListMembers(c.Request.Context(), middleware.GetAccess(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListInvitations godoc
// @Summary Lista las invitaciones pendientes
// @Tags equipo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.InvitationResponse
// @Router /v1/team/invitations [get]
func (h *TeamHandler) ListInvitations(c *gin.Context) {
	resp, err := h.svc.ListInvitations(c.Request.Context(), middleware.GetAccess(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Add godoc
// @Summary Agrega un miembro o registra una invitación pendiente
// @Tags equipo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddMemberRequest true "Email y rol"
// @Success 201 {object} dto.AddMemberResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/team [post]
func (h *TeamHandler) Add(c *gin.Context) {
	var req dto.AddMemberRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddMember(c.Request.Context(), middleware.GetAccess(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Remove godoc
// @Summary Quita un miembro del equipo
// @Tags equipo
// @Security BearerAuth
// @Param id path string true "ID de la membresía"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/team/{id} [delete]
func (h *TeamHandler) Remove(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.RemoveMember(c.Request.Context(), middleware.GetAccess(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
