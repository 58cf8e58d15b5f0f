package handler

import (
	"net/http"

	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct{ svc service.SaleService }

func NewSaleHandler(svc service.SaleService) *SaleHandler { return &SaleHandler{svc: svc} }

// Commit godoc
// @Summary Confirma la venta del carrito actual
// @Tags ventas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CommitSaleRequest true "Método de pago y monto recibido"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} apierror.APIError "Pago insuficiente o stock agotado"
// @Failure 409 {object} apierror.APIError "No hay una caja abierta"
// @Router /v1/sales [post]
func (h *SaleHandler) Commit(c *gin.Context) {
	var req dto.CommitSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Commit(c.Request.Context(), middleware.GetAccess(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista las ventas del día o de una fecha dada
// @Tags ventas
// @Produce json
// @Security BearerAuth
// @Param date query string false "Fecha AAAA-MM-DD (vacío = hoy)"
// @Param page query int false "Página"
// @Param limit query int false "Tamaño de página"
// @Success 200 {object} dto.SaleListResponse
// @Router /v1/sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), middleware.GetAccess(c), filter)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
