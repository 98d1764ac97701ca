package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"foodees-api/access"
	"foodees-api/errs"
	"foodees-api/middleware"
	"foodees-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func newRouter() *gin.Engine {
	return newVerifiedRouter(nil)
}

func newVerifiedRouter(v middleware.SessionVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders", middleware.AuthRequired(secret, v), middleware.RoleRequired(models.RoleCustomer), func(c *gin.Context) {
		sess, _ := middleware.SessionFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": sess.UserID, "session_id": sess.ID})
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateAndParseToken(t *testing.T) {
	user := &models.User{ID: 7, Name: "Rahul Sharma", Role: models.RoleCustomer}
	token, sess, err := middleware.GenerateToken(user, secret, time.Hour)
	require.NoError(t, err)
	assert.Len(t, sess.ID, 36)

	parsed, err := middleware.ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, sess, parsed)

	_, again, err := middleware.GenerateToken(user, secret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, sess.ID, again.ID)

	_, err = middleware.ParseToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestAuthRequired(t *testing.T) {
	r := newRouter()
	customer := &models.User{ID: 3, Name: "Rahul", Role: models.RoleCustomer}

	token, sess, err := middleware.GenerateToken(customer, secret, time.Hour)
	require.NoError(t, err)
	w := get(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sess.ID)

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)

	expired, _, err := middleware.GenerateToken(customer, secret, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, expired).Code)
}

func TestRoleRequired(t *testing.T) {
	r := newRouter()
	agent := &models.User{ID: 4, Name: "Delivery Boy 1", Role: models.RoleDelivery}
	token, _, err := middleware.GenerateToken(agent, secret, time.Hour)
	require.NoError(t, err)

	w := get(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "customer")
}

type verifierFunc func(context.Context, access.Session) error

func (f verifierFunc) VerifySession(ctx context.Context, sess access.Session) error {
	return f(ctx, sess)
}

func TestAuthRequired_VerifiesSession(t *testing.T) {
	var verdict error
	var seen access.Session
	r := newVerifiedRouter(verifierFunc(func(_ context.Context, sess access.Session) error {
		seen = sess
		return verdict
	}))
	customer := &models.User{ID: 3, Name: "Rahul", Role: models.RoleCustomer}
	token, sess, err := middleware.GenerateToken(customer, secret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, token).Code)
	assert.Equal(t, sess, seen)

	verdict = errs.ErrUnauthenticated
	w := get(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "no longer active")

	verdict = errors.New("database is locked")
	assert.Equal(t, http.StatusInternalServerError, get(r, token).Code)
}
