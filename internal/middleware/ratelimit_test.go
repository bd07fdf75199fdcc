package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/subkart/core/internal/middleware"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedisClient(t)

	r := gin.New()
	r.Use(middleware.RateLimit(rdb))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 100; i++ {
		assert.Equal(t, http.StatusOK, do(), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestRateLimitPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedisClient(t)

	r := gin.New()
	r.Use(middleware.RateLimit(rdb))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 101; i++ {
		do("203.0.113.7")
	}
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.7"))
	assert.Equal(t, http.StatusOK, do("203.0.113.8"), "a different client is not affected")
}

func TestIdempotenceBlocksDuplicatePost(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedisClient(t)

	hits := 0
	r := gin.New()
	r.Use(middleware.Idempotence(rdb))
	r.POST("/api/orders", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"totalPrice":1}`))
		req.RemoteAddr = "203.0.113.7:1234"
		req.Header.Set("User-Agent", "test-client")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, do())
	assert.Equal(t, http.StatusConflict, do())
	assert.Equal(t, 1, hits)
}

func TestIdempotenceDistinctBodiesPass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedisClient(t)

	r := gin.New()
	r.Use(middleware.Idempotence(rdb))
	r.POST("/api/orders", func(c *gin.Context) { c.JSON(http.StatusCreated, gin.H{"ok": true}) })

	do := func(body string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		req.RemoteAddr = "203.0.113.7:1234"
		req.Header.Set("User-Agent", "test-client")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, do(`{"totalPrice":1}`))
	assert.Equal(t, http.StatusCreated, do(`{"totalPrice":2}`))
}

func TestIdempotenceSkipsAuthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb := newRedisClient(t)

	hits := 0
	r := gin.New()
	r.Use(middleware.Idempotence(rdb))
	r.POST("/api/users/login", func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(`{"email":"a@b.c"}`))
		req.RemoteAddr = "203.0.113.7:1234"
		req.Header.Set("User-Agent", "test-client")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("attempt %d", i+1))
	}
	assert.Equal(t, 3, hits)
}
