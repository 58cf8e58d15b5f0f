package handler

import (
	"net/http"
	"strconv"

	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct{ svc service.PurchaseService }

func NewPurchaseHandler(svc service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{svc: svc}
}

// Commit godoc
// @Summary Registra una compra a proveedor e incrementa stock
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CommitPurchaseRequest true "Proveedor y renglones"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/purchases [post]
func (h *PurchaseHandler) Commit(c *gin.Context) {
	var req dto.CommitPurchaseRequest
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
// @Summary Lista las compras registradas
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param page query int false "Página"
// @Param limit query int false "Tamaño de página"
// @Success 200 {object} dto.PurchaseListResponse
// @Router /v1/purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.List(c.Request.Context(), middleware.GetAccess(c), page, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
