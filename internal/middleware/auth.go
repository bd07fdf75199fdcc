package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/subkart/core/internal/modules/auth/token"
	"github.com/subkart/core/internal/pkg/rejection"
	"github.com/subkart/core/internal/pkg/response"
)

const (
	// ContextKeyIdentity holds the *token.Identity of the authenticated user.
	ContextKeyIdentity = "auth_identity"

	// CookieName is the session cookie the login handler sets.
	CookieName = "jwt"

	accessTokenHeader = "x-access-token"
)

// Protect returns the request gate: it extracts a candidate token, verifies
// it, and attaches the resolved identity to the context. Rejections never
// reach the wrapped handler.
func Protect(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ExtractToken(c)
		if raw == "" {
			response.Reject(c, rejection.NoToken)
			return
		}
		identity, err := tokens.Verify(c.Request.Context(), raw)
		if err != nil {
			response.Fail(c, err)
			return
		}
		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// AdminOnly requires an already-attached identity with the admin flag.
// Must run after Protect.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if id == nil || !id.IsAdmin {
			response.Reject(c, rejection.AdminRequired)
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the authenticated identity, or nil.
func CurrentIdentity(c *gin.Context) *token.Identity {
	v, ok := c.Get(ContextKeyIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*token.Identity)
	return id
}

// IsAuthenticated reports whether the request carries a verified identity.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentIdentity(c) != nil
}

// ExtractToken picks the candidate token in priority order: session cookie,
// x-access-token header, then a standard bearer Authorization header.
func ExtractToken(c *gin.Context) string {
	if raw, err := c.Cookie(CookieName); err == nil {
		if tok := strings.TrimSpace(raw); tok != "" {
			return tok
		}
	}
	if tok := strings.TrimSpace(c.GetHeader(accessTokenHeader)); tok != "" {
		return tok
	}
	return NormalizeBearer(c.GetHeader("Authorization"))
}

// NormalizeBearer strips an optional Bearer prefix and surrounding spaces.
func NormalizeBearer(raw string) string {
	tok := strings.TrimSpace(raw)
	if tok == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(tok), "bearer ") {
		return strings.TrimSpace(tok[7:])
	}
	return tok
}
