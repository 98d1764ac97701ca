package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetAvailableOrders shows ready orders that have no delivery agent yet
func (h *Handler) GetAvailableOrders(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	orders, err := h.svc.AvailableOrders(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetMyDeliveries returns the caller's claimed, unfinished orders
func (h *Handler) GetMyDeliveries(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	orders, err := h.svc.ActiveOrders(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// ClaimOrder assigns a ready order to the caller. Losing a race answers 409.
func (h *Handler) ClaimOrder(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	order, err := h.svc.ClaimOrder(c.Request.Context(), sess, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order claimed", "order": order})
}

// DeliverOrder moves a claimed order from ready to delivered
func (h *Handler) DeliverOrder(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	order, err := h.svc.MarkDelivered(c.Request.Context(), sess, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order delivered", "order": order})
}

// GetEarnings returns the caller's delivery count and commission
func (h *Handler) GetEarnings(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	e, err := h.svc.Earnings(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"earnings": e})
}
