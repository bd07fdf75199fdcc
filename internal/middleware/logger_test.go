package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/subkart/core/internal/middleware"
	"github.com/subkart/core/internal/models"
	"github.com/subkart/core/internal/modules/auth/token"
	"github.com/subkart/core/internal/pkg/kv"
)

func TestLoggerCarriesIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	user := &models.User{ID: primitive.NewObjectID(), Email: "asha@example.com"}
	tokens := token.NewService(kv.NewMemoryStore(),
		&fakeUsers{byID: map[string]*models.User{user.ID.Hex(): user}}, time.Hour)

	r := gin.New()
	r.Use(middleware.Logger(log))
	r.GET("/me", middleware.Protect(tokens), func(c *gin.Context) { c.Status(http.StatusOK) })

	tok, err := tokens.Issue(user.ID.Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me?full=1", nil)
	req.Header.Set("x-access-token", tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, user.ID.Hex(), fields["user"])
	assert.Equal(t, "/me?full=1", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestLoggerAnonymousRequestHasNoUserField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	r := gin.New()
	r.Use(middleware.Logger(log))
	r.GET("/public", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	entries := logs.All()
	require.Len(t, entries, 1)
	_, hasUser := entries[0].ContextMap()["user"]
	assert.False(t, hasUser)
}
