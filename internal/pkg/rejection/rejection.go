// Package rejection defines the machine-readable outcomes surfaced to API
// clients when authentication, OTP, or delivery checks fail. Codes and
// messages are part of the wire contract.
package rejection

import "net/http"

// Rejection is a structured, per-request failure. It implements error so
// services can return it through normal error plumbing.
type Rejection struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (r *Rejection) Error() string { return r.Code + ": " + r.Message }

// Auth rejections.
var (
	NoToken = &Rejection{
		Status:  http.StatusUnauthorized,
		Code:    "NO_TOKEN",
		Message: "Authentication required - No token provided",
	}
	TokenRevoked = &Rejection{
		Status:  http.StatusUnauthorized,
		Code:    "TOKEN_REVOKED",
		Message: "Session expired - Please login again",
	}
	TokenExpired = &Rejection{
		Status:  http.StatusUnauthorized,
		Code:    "TOKEN_EXPIRED",
		Message: "Session expired - Please login again",
	}
	MalformedToken = &Rejection{
		Status:  http.StatusUnauthorized,
		Code:    "MALFORMED_TOKEN",
		Message: "Invalid authentication format",
	}
	UserNotFound = &Rejection{
		Status:  http.StatusUnauthorized,
		Code:    "USER_NOT_FOUND",
		Message: "Account not found - Please register",
	}
	AdminRequired = &Rejection{
		Status:  http.StatusForbidden,
		Code:    "ADMIN_REQUIRED",
		Message: "Administrator privileges required",
	}
)

// OTP rejections.
var (
	UnknownOTPRequest = &Rejection{
		Status:  http.StatusBadRequest,
		Code:    "UNKNOWN_REQUEST",
		Message: "Invalid OTP request",
	}
	OTPExpired = &Rejection{
		Status:  http.StatusBadRequest,
		Code:    "EXPIRED",
		Message: "OTP has expired",
	}
	OTPCodeMismatch = &Rejection{
		Status:  http.StatusBadRequest,
		Code:    "CODE_MISMATCH",
		Message: "Invalid OTP code",
	}
	OTPEmailMismatch = &Rejection{
		Status:  http.StatusBadRequest,
		Code:    "EMAIL_MISMATCH",
		Message: "Email does not match OTP request",
	}
	OTPNotVerified = &Rejection{
		Status:  http.StatusBadRequest,
		Code:    "NOT_VERIFIED",
		Message: "OTP not verified",
	}
)

// Delivery rejection.
var EmailSendFailed = &Rejection{
	Status:  http.StatusBadGateway,
	Code:    "EMAIL_SEND_FAILED",
	Message: "Failed to send email",
}
