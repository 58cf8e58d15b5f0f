package handler

import (
	"net/http"

	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct{ svc service.ExpenseService }

func NewExpenseHandler(svc service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// List godoc
// @Summary Lista los gastos del negocio
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ExpenseResponse
// @Router /v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), middleware.GetAccess(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Registra un gasto
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateExpenseRequest true "Descripción y monto"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), middleware.GetAccess(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Delete godoc
// @Summary Elimina un gasto
// @Tags gastos
// @Security BearerAuth
// @Param id path string true "ID del gasto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.GetAccess(c), id); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListCategories godoc
// @Summary Lista las categorías de gasto
// @Tags gastos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoryResponse
// @Router /v1/expenses/categories [get]
func (h *ExpenseHandler) ListCategories(c *gin.Context) {
	resp, err := h.svc.ListCategories(c.Request.Context(), middleware.GetAccess(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCategory godoc
// @Summary Crea una categoría de gasto
// @Tags gastos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateCategoryRequest true "Nombre"
// @Success 201 {object} dto.CategoryResponse
// @Router /v1/expenses/categories [post]
func (h *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateCategory(c.Request.Context(), middleware.GetAccess(c), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
