package handler

import (
	"errors"
	"net/http"

	"tiendapos/internal/apierror"
	"tiendapos/internal/cart"
	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

// View godoc
// @Summary Devuelve el carrito actual del operador
// @Tags carrito
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart [get]
func (h *CartHandler) View(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.View(middleware.GetAccess(c)))
}

// Add godoc
// @Summary Agrega un producto al carrito
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddCartItemRequest true "Producto a agregar"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cart/items [post]
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	productID, _ := uuid.Parse(req.ProductID)
	resp, err := h.svc.Add(c.Request.Context(), middleware.GetAccess(c), productID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetQuantity godoc
// @Summary Fija la cantidad absoluta de una línea del carrito
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param body body dto.SetQuantityRequest true "Cantidad"
// @Success 200 {object} dto.CartResponse
// @Failure 409 {object} apierror.APIError "Cantidad cero: se requiere eliminación explícita"
// @Router /v1/cart/items/{id} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.SetQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetQuantity(c.Request.Context(), middleware.GetAccess(c), id, *req.Qty)
	if err != nil {
		// Quantity zero never deletes silently: the client must confirm
		// by calling DELETE on the line.
		if errors.Is(err, cart.ErrRemovalRequested) {
			c.JSON(http.StatusConflict, apierror.New("Cantidad cero: confirme la eliminación del producto"))
			return
		}
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Adjust godoc
// @Summary Incrementa o decrementa la cantidad de una línea
// @Tags carrito
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Param body body dto.AdjustQuantityRequest true "Delta"
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart/items/{id}/adjust [patch]
func (h *CartHandler) Adjust(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dto.AdjustQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Adjust(c.Request.Context(), middleware.GetAccess(c), id, req.Delta)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remove godoc
// @Summary Elimina una línea del carrito
// @Tags carrito
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del producto"
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart/items/{id} [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Remove(middleware.GetAccess(c), id))
}

// Clear godoc
// @Summary Vacía el carrito del operador
// @Tags carrito
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Clear(middleware.GetAccess(c)))
}
