package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BrowseRestaurants lists approved restaurants
func (h *Handler) BrowseRestaurants(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	rs, err := h.svc.BrowseRestaurants(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rs), "restaurants": rs})
}

// BrowseMenu lists the available items of one approved restaurant
func (h *Handler) BrowseMenu(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	items, err := h.svc.BrowseMenu(c.Request.Context(), sess, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// ── Cart ─────────────────────────────────────────────────────────────────────

// GetCart returns the session's cart and its displayed total
func (h *Handler) GetCart(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	ct, err := h.carts.Get(c.Request.Context(), sess.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": ct, "total": ct.Total()})
}

type AddToCartRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"qty"`
}

// AddToCart adds qty (default 1) of a menu item to the session's cart
func (h *Handler) AddToCart(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx := c.Request.Context()
	ct, err := h.carts.Get(ctx, sess.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.svc.AddToCart(ctx, sess, ct, req.MenuItemID, req.Quantity); err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.carts.Save(ctx, sess.ID, ct); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added to cart", "cart": ct, "total": ct.Total()})
}

// ClearCart empties the session's cart
func (h *Handler) ClearCart(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	if err := h.carts.Delete(c.Request.Context(), sess.ID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// Checkout turns the session's cart into a pending order
func (h *Handler) Checkout(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	ct, err := h.carts.Get(ctx, sess.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	order, err := h.svc.Checkout(ctx, sess, ct)
	if err != nil {
		h.respondError(c, err)
		return
	}
	// The order exists at this point; a stale cart is only an annoyance.
	if err := h.carts.Save(ctx, sess.ID, ct); err != nil {
		h.log.WithError(err).WithField("order_id", order.ID).Warn("cart not cleared after checkout")
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Order placed successfully",
		"tracking_id": order.TrackingID,
		"order":       order,
	})
}

// ── Orders ───────────────────────────────────────────────────────────────────

// GetMyOrders returns all orders of the logged-in customer
func (h *Handler) GetMyOrders(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	orders, err := h.svc.ListMyOrders(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one order with its status history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	detail, err := h.svc.MyOrder(c.Request.Context(), sess, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CancelOrder cancels a pending order
func (h *Handler) CancelOrder(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}
	order, err := h.svc.CancelOrder(c.Request.Context(), sess, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": order})
}
