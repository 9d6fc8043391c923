// backend-go/internal/api/handlers/purchase_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/besco/backend-go/internal/service"
)

type PurchaseHandler struct {
	service *service.PurchaseService
}

func NewPurchaseHandler(service *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

func (h *PurchaseHandler) List(c *gin.Context) {
	purchases, err := h.service.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func (h *PurchaseHandler) Create(c *gin.Context) {
	var req struct {
		MaterialName string  `json:"material_name" binding:"required"`
		QuantityKg   float64 `json:"quantity_kg" binding:"required"`
		PricePerKg   float64 `json:"price_per_kg"`
		PurchaseDate string  `json:"purchase_date" binding:"required"`
		Supplier     *string `json:"supplier"`
		Note         *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid purchase payload")
		return
	}

	purchaseDate, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		badRequest(c, "purchase_date must be YYYY-MM-DD")
		return
	}

	purchase, err := h.service.Create(c.Request.Context(), service.PurchaseInput{
		MaterialName: req.MaterialName,
		QuantityKg:   req.QuantityKg,
		PricePerKg:   req.PricePerKg,
		PurchaseDate: purchaseDate,
		Supplier:     req.Supplier,
		Note:         req.Note,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "purchase deleted"})
}
