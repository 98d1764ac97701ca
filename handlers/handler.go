// Package handlers translates HTTP requests into access-layer calls and
// access-layer errors into HTTP status codes.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodees-api/access"
	"foodees-api/cart"
	"foodees-api/errs"
	"foodees-api/middleware"
	"foodees-api/statemachine"
	"foodees-api/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc      *access.Service
	carts    cart.Store
	images   storage.ImageStore
	secret   []byte
	tokenTTL time.Duration
	log      *logrus.Logger
}

func New(svc *access.Service, carts cart.Store, images storage.ImageStore, secret []byte, tokenTTL time.Duration, log *logrus.Logger) *Handler {
	return &Handler{
		svc:      svc,
		carts:    carts,
		images:   images,
		secret:   secret,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// respondError maps the error taxonomy onto status codes. Anything
// unclassified is logged and reported as a 500 without details.
func (h *Handler) respondError(c *gin.Context, err error) {
	var te *statemachine.TransitionError
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &te):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    te.From,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(te.From),
		})
	case errs.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.log.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// session returns the caller's session. Routes behind AuthRequired always
// have one; a missing session answers 401.
func (h *Handler) session(c *gin.Context) (access.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
	}
	return sess, ok
}

func paramID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, errors.New("must be a positive integer"))
	}
	return uint(id), nil
}
