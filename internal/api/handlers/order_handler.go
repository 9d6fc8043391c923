// backend-go/internal/api/handlers/order_handler.go
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/besco/backend-go/internal/repository"
	"github.com/besco/backend-go/internal/service"
)

type OrderHandler struct {
	service *service.OrderService
}

func NewOrderHandler(service *service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) List(c *gin.Context) {
	filter := repository.OrderFilter{
		CustomerName: strings.TrimSpace(c.Query("customer_name")),
	}

	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(c, "start_date must be YYYY-MM-DD")
			return
		}
		filter.StartDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			badRequest(c, "end_date must be YYYY-MM-DD")
			return
		}
		filter.EndDate = &parsed
	}

	orders, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	order, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req struct {
		CustomerName string  `json:"customer_name" binding:"required"`
		MaterialName string  `json:"material_name" binding:"required"`
		Quantity     float64 `json:"quantity" binding:"required"`
		PricePerKg   float64 `json:"price_per_kg"`
		OrderDate    string  `json:"order_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid order payload")
		return
	}

	orderDate, err := time.Parse(dateLayout, req.OrderDate)
	if err != nil {
		badRequest(c, "order_date must be YYYY-MM-DD")
		return
	}

	order, err := h.service.Create(c.Request.Context(), service.OrderInput{
		CustomerName: req.CustomerName,
		MaterialName: req.MaterialName,
		Quantity:     req.Quantity,
		PricePerKg:   req.PricePerKg,
		OrderDate:    orderDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}
