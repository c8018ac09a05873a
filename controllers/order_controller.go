package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/middleware"
	"github.com/kendall-kelly/order-tracking-api/models"
	"github.com/kendall-kelly/order-tracking-api/services"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// OrderController serves the /orders endpoints
type OrderController struct {
	orders *services.OrderService
}

// NewOrderController creates the /orders handlers
func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder handles POST /orders/ - creates an order owned by the caller
func (oc *OrderController) CreateOrder(c *gin.Context) {
	user, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	order, err := oc.orders.CreateOrder(c.Request.Context(), services.CreateOrderInput{
		Name:        req.Name,
		Description: req.Description,
	}, user)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order.ToResponse())
}

// ListMyOrders handles GET /orders/my-orders - the caller's orders, newest first
func (oc *OrderController) ListMyOrders(c *gin.Context) {
	user, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	orders, err := oc.orders.ListMyOrders(c.Request.Context(), user)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OrderResponses(orders))
}

// ApproveOrder handles PATCH /orders/:id/approve; mounted behind AdminRequired
func (oc *OrderController) ApproveOrder(c *gin.Context) {
	user, ok := middleware.MustCurrentUser(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order ID",
			},
		})
		return
	}

	order, err := oc.orders.ApproveOrder(c.Request.Context(), uint(orderID), user)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order.ToResponse())
}
