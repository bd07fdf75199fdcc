// Package notify exposes the transactional email endpoints: welcome mail and
// the OTP password-reset flow.
package notify

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/subkart/core/internal/modules/auth/otp"
	"github.com/subkart/core/internal/pkg/mail"
	"github.com/subkart/core/internal/pkg/rejection"
	"github.com/subkart/core/internal/pkg/response"
)

type Handler struct {
	otpSvc *otp.Service
	mailer *mail.Sender
}

func NewHandler(otpSvc *otp.Service, mailer *mail.Sender) *Handler {
	return &Handler{otpSvc: otpSvc, mailer: mailer}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/email")
	g.POST("/welcome", h.welcome)
	g.POST("/send-otp", h.sendOTP)
	g.POST("/verify-otp", h.verifyOTP)
	g.POST("/reset-password", h.resetPassword)
}

type welcomeDTO struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"  binding:"required"`
}

func (h *Handler) welcome(c *gin.Context) {
	var dto welcomeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide email and name")
		return
	}
	if err := h.mailer.SendWelcome(c.Request.Context(), dto.Email, dto.Name); err != nil {
		response.Reject(c, rejection.EmailSendFailed)
		return
	}
	response.Success(c, "Welcome email sent successfully")
}

type sendOTPDTO struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *Handler) sendOTP(c *gin.Context) {
	var dto sendOTPDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide email")
		return
	}
	otpID, err := h.otpSvc.RequestReset(c.Request.Context(), dto.Email)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"otpId":   otpID,
		"message": "OTP sent successfully",
	})
}

type verifyOTPDTO struct {
	OtpID string      `json:"otpId" binding:"required"`
	OTP   json.Number `json:"otp"   binding:"required"`
	Email string      `json:"email" binding:"required,email"`
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var dto verifyOTPDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide otpId, otp and email")
		return
	}
	// clients send the code as either a string or a number
	code, err := dto.OTP.Int64()
	if err != nil {
		response.Reject(c, rejection.OTPCodeMismatch)
		return
	}
	if err := h.otpSvc.Verify(c.Request.Context(), dto.OtpID, int(code), dto.Email); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, "OTP verified successfully")
}

type resetPasswordDTO struct {
	OtpID       string `json:"otpId"       binding:"required"`
	Email       string `json:"email"       binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *Handler) resetPassword(c *gin.Context) {
	var dto resetPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Please provide otpId, email and newPassword")
		return
	}
	if err := h.otpSvc.ResetPassword(c.Request.Context(), dto.OtpID, dto.Email, dto.NewPassword); err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, "Password reset successfully")
}
