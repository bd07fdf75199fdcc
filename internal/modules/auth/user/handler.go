package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/subkart/core/internal/middleware"
	"github.com/subkart/core/internal/models"
	"github.com/subkart/core/internal/modules/auth/token"
	"github.com/subkart/core/internal/pkg/mail"
	"github.com/subkart/core/internal/pkg/response"
)

type Handler struct {
	svc    *Service
	tokens *token.Service
	mailer *mail.Sender
}

func NewHandler(svc *Service, tokens *token.Service, mailer *mail.Sender) *Handler {
	return &Handler{svc: svc, tokens: tokens, mailer: mailer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	g := rg.Group("/users")
	g.POST("", h.register)
	g.POST("/login", h.login)
	g.POST("/logout", protect, h.logout)
	g.GET("/profile", protect, h.profile)
	g.PUT("/profile", protect, h.updateProfile)

	admin := g.Group("", protect, middleware.AdminOnly())
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
	admin.DELETE("/:id", h.remove)
}

// authPayload is the wire shape login and register answer with.
func authPayload(u *models.User, tok string) gin.H {
	return gin.H{
		"_id":     u.ID.Hex(),
		"name":    u.Name,
		"email":   u.Email,
		"isAdmin": u.IsAdmin,
		"token":   tok,
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, tok string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, tok, int(h.tokens.TTL().Seconds()), "/", "", false, true)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide name, email and password")
		return
	}
	u, err := h.svc.Register(c.Request.Context(), &dto)
	if err != nil {
		if err == errEmailTaken {
			response.BadRequest(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}

	tok, err := h.tokens.Issue(u.ID.Hex())
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.setSessionCookie(c, tok)

	// best effort, registration succeeds even if the mail does not go out
	_ = h.mailer.SendWelcome(c.Request.Context(), u.Email, u.Name)

	response.Created(c, authPayload(u, tok))
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide email and password")
		return
	}
	u, err := h.svc.Login(c.Request.Context(), dto.Email, dto.Password)
	if err != nil {
		if err == errInvalidCredentials {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		response.Fail(c, err)
		return
	}

	tok, err := h.tokens.Issue(u.ID.Hex())
	if err != nil {
		response.Fail(c, err)
		return
	}
	h.setSessionCookie(c, tok)
	response.OK(c, authPayload(u, tok))
}

// logout revokes the presented token so it can never be replayed, then
// clears the session cookie.
func (h *Handler) logout(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if err := h.tokens.Revoke(c.Request.Context(), identity.Token); err != nil {
		response.Fail(c, err)
		return
	}
	c.SetCookie(middleware.CookieName, "", -1, "/", "", false, true)
	response.Success(c, "Logged out successfully")
}

func (h *Handler) profile(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	u, err := h.svc.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if u == nil {
		response.NotFound(c, errUserNotFound.Error())
		return
	}
	response.OK(c, u)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid profile payload")
		return
	}
	identity := middleware.CurrentIdentity(c)
	oid, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		response.NotFound(c, errUserNotFound.Error())
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), oid, &dto)
	if err != nil {
		if err == errUserNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) list(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, users)
}

func (h *Handler) get(c *gin.Context) {
	u, err := h.svc.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	if u == nil {
		response.NotFound(c, errUserNotFound.Error())
		return
	}
	response.OK(c, u)
}

func (h *Handler) remove(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.NotFound(c, errUserNotFound.Error())
		return
	}
	if err := h.svc.Delete(c.Request.Context(), oid); err != nil {
		if err == errUserNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.Success(c, "User removed")
}
