package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subkart/core/internal/middleware"
	"github.com/subkart/core/internal/modules/auth/otp"
	"github.com/subkart/core/internal/modules/auth/token"
	"github.com/subkart/core/internal/modules/auth/user"
	"github.com/subkart/core/internal/modules/commerce/order"
	"github.com/subkart/core/internal/modules/commerce/payment"
	"github.com/subkart/core/internal/modules/commerce/product"
	"github.com/subkart/core/internal/modules/notify"
	"github.com/subkart/core/internal/modules/system"
	"github.com/subkart/core/internal/pkg/kv"
	"github.com/subkart/core/internal/pkg/mail"
	pkgredis "github.com/subkart/core/internal/pkg/redis"
	"github.com/subkart/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not Found")
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":    "subkart-core",
		"version": "1.0.0",
	}
	r.GET("/", func(c *gin.Context) { c.PureJSON(http.StatusOK, appInfo) })

	// Shared services. Revocation and OTP state live in redis so every
	// instance sees the same picture.
	store := kv.NewRedisStore(rc)
	userSvc := user.NewService(db)
	tokenSvc := token.NewService(store, userSvc, a.cfg.TokenTTL)
	mailer := mail.New(a.cfg.Mail)
	otpSvc := otp.NewService(store, mailer, userSvc, a.logger)

	protect := middleware.Protect(tokenSvc)
	adminOnly := middleware.AdminOnly()

	registerCronJobs(a.sched, a.logger, otpSvc, store)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(rc.Raw()))
	api.Use(middleware.Idempotence(rc.Raw()))

	system.RegisterRoutes(api, db, a.sched, a.cfg.PayPalClientID, protect, adminOnly)

	user.NewHandler(userSvc, tokenSvc, mailer).RegisterRoutes(api, protect)
	notify.NewHandler(otpSvc, mailer).RegisterRoutes(api)

	product.NewHandler(product.NewService(db)).RegisterRoutes(api, protect)
	order.NewHandler(order.NewService(db)).RegisterRoutes(api, protect)
	payment.NewHandler(payment.NewService(a.cfg.Razorpay, db)).RegisterRoutes(api, protect)
}
