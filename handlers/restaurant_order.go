package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders returns the caller's restaurant orders (?status= filters)
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	orders, err := h.svc.ListRestaurantOrders(c.Request.Context(), sess, c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	// Group counts by status for the kitchen board
	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles the restaurant's state transitions
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	order, err := h.svc.UpdateOrderStatus(c.Request.Context(), sess, id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
