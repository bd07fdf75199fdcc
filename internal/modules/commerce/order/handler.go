package order

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/subkart/core/internal/middleware"
	"github.com/subkart/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	g := rg.Group("/orders", protect)
	g.POST("", h.create)
	g.GET("/myorders", h.myOrders)
	g.GET("/:id", h.get)
	g.PUT("/:id/pay", h.pay)

	admin := g.Group("", middleware.AdminOnly())
	admin.GET("", h.list)
	admin.GET("/undelivered", h.undelivered)
	admin.GET("/user/:email", h.byEmail)
	admin.DELETE("/:id", h.remove)
	admin.PUT("/:id/deliver", h.deliver)
	admin.PUT("/:id/subscription", h.updateSubscription)
}

func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	identity := middleware.CurrentIdentity(c)
	oid, err := primitive.ObjectIDFromHex(identity.UserID)
	return oid, err == nil
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide orderItems and totalPrice")
		return
	}
	uid, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	o, err := h.svc.Create(c.Request.Context(), uid, &dto)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, o)
}

func (h *Handler) get(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	uid, _ := callerID(c)
	o, err := h.svc.Get(c.Request.Context(), c.Param("id"), uid, identity.IsAdmin)
	if err != nil {
		switch err {
		case errOrderNotFound:
			response.NotFound(c, err.Error())
		case errNotYourOrder:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
		default:
			response.Fail(c, err)
		}
		return
	}
	response.OK(c, o)
}

func (h *Handler) myOrders(c *gin.Context) {
	uid, ok := callerID(c)
	if !ok {
		response.BadRequest(c, "invalid user id")
		return
	}
	orders, err := h.svc.ListByUser(c.Request.Context(), uid)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *Handler) list(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *Handler) undelivered(c *gin.Context) {
	orders, err := h.svc.ListUndelivered(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *Handler) byEmail(c *gin.Context) {
	orders, err := h.svc.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, orders)
}

func (h *Handler) pay(c *gin.Context) {
	var dto PayDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid payment payload")
		return
	}
	o, err := h.svc.MarkPaid(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		if err == errOrderNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, o)
}

func (h *Handler) deliver(c *gin.Context) {
	// subscription details are optional, an empty body is fine
	var dto DeliverDTO
	_ = c.ShouldBindJSON(&dto)

	o, err := h.svc.MarkDelivered(c.Request.Context(), c.Param("id"), dto.SubscriptionDetails)
	if err != nil {
		if err == errOrderNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, o)
}

func (h *Handler) updateSubscription(c *gin.Context) {
	var dto SubscriptionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid subscription payload")
		return
	}
	o, err := h.svc.UpdateSubscription(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		if err == errOrderNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, o)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == errOrderNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.Success(c, "Order removed")
}
