package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"foodees-api/access"
	"foodees-api/errs"

	"github.com/gin-gonic/gin"
)

// ── Restaurant Management ────────────────────────────────────────────────────

// CreateRestaurant registers a restaurant awaiting superadmin approval
func (h *Handler) CreateRestaurant(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	var req access.RestaurantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	r, err := h.svc.CreateRestaurant(c.Request.Context(), sess, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created, awaiting approval", "restaurant": r})
}

// GetMyRestaurant returns the approved restaurant the caller manages
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	r, err := h.svc.MyRestaurant(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": r})
}

// GetMyRestaurants lists everything the caller owns, approved or not
func (h *Handler) GetMyRestaurants(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	rs, err := h.svc.MyRestaurants(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rs), "restaurants": rs})
}

// GetDailyRevenue returns revenue per day for the caller's restaurant
func (h *Handler) GetDailyRevenue(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	points, err := h.svc.DailyRevenue(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"daily_revenue": points})
}

// ── Menu Management ──────────────────────────────────────────────────────────

// GetMenu returns the caller's full menu
func (h *Handler) GetMenu(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	items, err := h.svc.ListMenu(c.Request.Context(), sess)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "menu": items})
}

// AddMenuItem accepts JSON, or multipart form fields with an optional
// "image" file.
func (h *Handler) AddMenuItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var in access.MenuItemInput
	uploaded := false
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		var err error
		if in, err = menuItemFromForm(c); err != nil {
			h.respondError(c, err)
			return
		}
		if fh, ferr := c.FormFile("image"); ferr == nil {
			f, err := fh.Open()
			if err != nil {
				h.badRequest(c, err)
				return
			}
			ref, err := h.images.Save(ctx, fh.Filename, f)
			f.Close()
			if err != nil {
				h.respondError(c, err)
				return
			}
			in.ImagePath = ref
			uploaded = true
		}
	} else if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, err)
		return
	}

	item, err := h.svc.AddMenuItem(ctx, sess, in)
	if err != nil {
		if uploaded {
			_ = h.images.Delete(ctx, in.ImagePath)
		}
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Menu item added", "item": item})
}

// DeleteMenuItem removes an item from the caller's menu, and its image once
// nothing else references it
func (h *Handler) DeleteMenuItem(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	id, err := paramID(c, "itemId")
	if err != nil {
		h.respondError(c, err)
		return
	}
	deleted, err := h.svc.DeleteMenuItem(c.Request.Context(), sess, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if deleted.ReleasedImage != "" {
		if err := h.images.Delete(c.Request.Context(), deleted.ReleasedImage); err != nil {
			h.log.WithError(err).WithField("menu_item_id", id).Warn("menu image not removed")
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deleted"})
}

func menuItemFromForm(c *gin.Context) (access.MenuItemInput, error) {
	in := access.MenuItemInput{
		Name:      c.PostForm("name"),
		HindiName: c.PostForm("hindi_name"),
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		return in, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	in.Price = price
	if raw := c.PostForm("is_available"); raw != "" {
		avail, err := strconv.ParseBool(raw)
		if err != nil {
			return in, errs.NewValueIsInvalidErrorWithCause("is_available", err)
		}
		in.IsAvailable = &avail
	}
	return in, nil
}
