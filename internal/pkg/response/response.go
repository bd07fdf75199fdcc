package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/subkart/core/internal/pkg/rejection"
)

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Success sends the original API's {success:true, message} envelope.
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Reject sends a structured rejection with its HTTP status and aborts the
// request.
func Reject(c *gin.Context, r *rejection.Rejection) {
	c.AbortWithStatusJSON(r.Status, gin.H{
		"success": false,
		"code":    r.Code,
		"message": r.Message,
	})
}

// Fail maps an error onto the wire: rejections keep their code/status,
// anything else becomes a 500.
func Fail(c *gin.Context, err error) {
	var r *rejection.Rejection
	if errors.As(err, &r) {
		Reject(c, r)
		return
	}
	InternalError(c, err)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "message": message})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"success": false, "message": "Method Not Allowed"})
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{"success": false, "message": message})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "message": message})
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
}
