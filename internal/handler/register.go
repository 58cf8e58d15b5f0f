package handler

import (
	"net/http"

	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterHandler struct{ svc service.RegisterService }

func NewRegisterHandler(svc service.RegisterService) *RegisterHandler {
	return &RegisterHandler{svc: svc}
}

// Open godoc
// @Summary Abre la caja del operador con un monto inicial
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenRegisterRequest true "Monto de apertura"
// @Success 201 {object} dto.RegisterResponse
// @Failure 409 {object} apierror.APIError "Ya existe una caja abierta"
// @Router /v1/register/open [post]
func (h *RegisterHandler) Open(c *gin.Context) {
	var req dto.OpenRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Open(c.Request.Context(), middleware.GetAccess(c).OperatorID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary Cierra la caja abierta declarando el monto contado
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CloseRegisterRequest true "Monto de cierre"
// @Success 200 {object} dto.RegisterResponse
// @Failure 409 {object} apierror.APIError "No hay una caja abierta"
// @Router /v1/register/close [post]
func (h *RegisterHandler) Close(c *gin.Context) {
	var req dto.CloseRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), middleware.GetAccess(c).OperatorID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Status godoc
// @Summary Devuelve la caja abierta del operador
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.RegisterResponse
// @Failure 409 {object} apierror.APIError "No hay una caja abierta"
// @Router /v1/register/status [get]
func (h *RegisterHandler) Status(c *gin.Context) {
	resp, err := h.svc.Status(c.Request.Context(), middleware.GetAccess(c).OperatorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
