package product

import (
	"github.com/gin-gonic/gin"

	"github.com/subkart/core/internal/middleware"
	"github.com/subkart/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, protect gin.HandlerFunc) {
	g := rg.Group("/products")
	g.GET("", h.list)
	g.GET("/:id", h.get)

	admin := g.Group("", protect, middleware.AdminOnly())
	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.remove)
	admin.PUT("/toggleon/:id", h.toggleOn)
	admin.PUT("/toggleoff/:id", h.toggleOff)
}

func (h *Handler) list(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, products)
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if err == errProductNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide name and price")
		return
	}
	p, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Created(c, p)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid product payload")
		return
	}
	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), &dto)
	if err != nil {
		if err == errProductNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, p)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == errProductNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.Success(c, "Product removed")
}

func (h *Handler) toggleOn(c *gin.Context) {
	h.setActive(c, true)
}

func (h *Handler) toggleOff(c *gin.Context) {
	h.setActive(c, false)
}

func (h *Handler) setActive(c *gin.Context, active bool) {
	p, err := h.svc.SetActive(c.Request.Context(), c.Param("id"), active)
	if err != nil {
		if err == errProductNotFound {
			response.NotFound(c, err.Error())
			return
		}
		response.Fail(c, err)
		return
	}
	response.OK(c, p)
}
