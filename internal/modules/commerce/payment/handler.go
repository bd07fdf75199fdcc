package payment

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
	g := rg.Group("/payment", protect)
	g.POST("/orders", h.createOrder)
	g.POST("/verify", h.verify)
}

func (h *Handler) createOrder(c *gin.Context) {
	var dto CreateOrderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide amount")
		return
	}
	order, err := h.svc.CreateOrder(c.Request.Context(), &dto)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, order)
}

func (h *Handler) verify(c *gin.Context) {
	var dto VerifyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide razorpay_order_id, razorpay_payment_id and razorpay_signature")
		return
	}

	identity := middleware.CurrentIdentity(c)
	uid, err := primitive.ObjectIDFromHex(identity.UserID)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	order, err := h.svc.Confirm(c.Request.Context(), uid, &dto)
	if err != nil {
		if err == errBadSignature {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"order":   order,
	})
}
