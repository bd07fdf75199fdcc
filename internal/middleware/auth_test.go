package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/subkart/core/internal/middleware"
	"github.com/subkart/core/internal/models"
	"github.com/subkart/core/internal/modules/auth/token"
	"github.com/subkart/core/internal/pkg/kv"
)

type fakeUsers struct {
	byID map[string]*models.User
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	return f.byID[id], nil
}

type gateFixture struct {
	router *gin.Engine
	tokens *token.Service
	user   *models.User
	admin  *models.User
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	user := &models.User{ID: primitive.NewObjectID(), Name: "Asha", Email: "asha@example.com"}
	admin := &models.User{ID: primitive.NewObjectID(), Name: "Root", Email: "root@example.com", IsAdmin: true}
	finder := &fakeUsers{byID: map[string]*models.User{
		user.ID.Hex():  user,
		admin.ID.Hex(): admin,
	}}
	tokens := token.NewService(kv.NewMemoryStore(), finder, time.Hour)

	r := gin.New()
	protected := r.Group("", middleware.Protect(tokens))
	protected.GET("/me", func(c *gin.Context) {
		id := middleware.CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "isAdmin": id.IsAdmin})
	})
	protected.GET("/admin", middleware.AdminOnly(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return &gateFixture{router: r, tokens: tokens, user: user, admin: admin}
}

func (f *gateFixture) do(t *testing.T, build func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if build != nil {
		build(req)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func rejectionCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestGateNoToken(t *testing.T) {
	f := newGateFixture(t)
	w := f.do(t, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "NO_TOKEN", rejectionCode(t, w))
}

func TestGateCookie(t *testing.T) {
	f := newGateFixture(t)
	tok, err := f.tokens.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	w := f.do(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: tok})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), f.user.ID.Hex())
}

func TestGateAccessTokenHeader(t *testing.T) {
	f := newGateFixture(t)
	tok, err := f.tokens.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	w := f.do(t, func(req *http.Request) {
		req.Header.Set("x-access-token", tok)
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateBearerHeader(t *testing.T) {
	f := newGateFixture(t)
	tok, err := f.tokens.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	w := f.do(t, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+tok)
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

// The cookie wins over the headers, so a stale header token cannot override
// the session.
func TestGateCookiePriority(t *testing.T) {
	f := newGateFixture(t)
	tok, err := f.tokens.Issue(f.user.ID.Hex())
	require.NoError(t, err)

	w := f.do(t, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: tok})
		req.Header.Set("x-access-token", "garbage")
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGateRevokedToken(t *testing.T) {
	f := newGateFixture(t)
	tok, err := f.tokens.Issue(f.user.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(context.Background(), tok))

	w := f.do(t, func(req *http.Request) {
		req.Header.Set("x-access-token", tok)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REVOKED", rejectionCode(t, w))
}

func TestGateMalformedToken(t *testing.T) {
	f := newGateFixture(t)
	w := f.do(t, func(req *http.Request) {
		req.Header.Set("x-access-token", "not-a-jwt")
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "MALFORMED_TOKEN", rejectionCode(t, w))
}

func TestAdminOnly(t *testing.T) {
	f := newGateFixture(t)

	userTok, err := f.tokens.Issue(f.user.ID.Hex())
	require.NoError(t, err)
	adminTok, err := f.tokens.Issue(f.admin.ID.Hex())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("x-access-token", userTok)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "ADMIN_REQUIRED", rejectionCode(t, w))

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("x-access-token", adminTok)
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNormalizeBearer(t *testing.T) {
	cases := map[string]string{
		"":               "",
		"Bearer abc":     "abc",
		"bearer abc":     "abc",
		"  Bearer abc  ": "abc",
		"abc":            "abc",
	}
	for in, want := range cases {
		assert.Equal(t, want, middleware.NormalizeBearer(in), "input %q", in)
	}
}
