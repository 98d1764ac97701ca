package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AdminDashboard returns platform counters and the revenue series
func (h *Handler) AdminDashboard(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	d, err := h.svc.Dashboard(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": d})
}

// AdminGetAllRestaurants returns every restaurant with approval counts
func (h *Handler) AdminGetAllRestaurants(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	restaurants, err := h.svc.ListAllRestaurants(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	approved := 0
	for _, r := range restaurants {
		if r.IsApproved {
			approved++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"approved":    approved,
		"restaurants": restaurants,
	})
}

// AdminGetDeliveryAgents returns every delivery account
func (h *Handler) AdminGetDeliveryAgents(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	agents, err := h.svc.ListDeliveryAgents(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(agents), "delivery_agents": agents})
}

// AdminGetAllOrders pages through all orders, 50 per page (?page=N)
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	page := 1
	if raw := c.Query("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
			return
		}
		page = p
	}
	orders, err := h.svc.ListAllOrders(c.Request.Context(), sess, page)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "count": len(orders), "orders": orders})
}

type ApproveRestaurantRequest struct {
	Approved *bool `json:"approved" binding:"required"`
}

// AdminApproveRestaurant sets a restaurant's approval flag
func (h *Handler) AdminApproveRestaurant(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req ApproveRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	r, err := h.svc.ApproveRestaurant(c.Request.Context(), sess, id, *req.Approved)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": r})
}
