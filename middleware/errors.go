package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/logger"
	"github.com/kendall-kelly/order-tracking-api/services"
)

// StatusFor maps a service error kind to an HTTP status code
func StatusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusUnprocessableEntity
	case services.KindConflict:
		// Registration conflicts are reported as 400, matching the public API contract
		return http.StatusBadRequest
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError writes the error envelope for err and aborts the chain
func RespondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		svcErr = &services.Error{Kind: services.KindInternal, Code: "INTERNAL_ERROR", Message: "Internal server error", Err: err}
	}

	status := StatusFor(svcErr.Kind)
	if status >= http.StatusInternalServerError {
		logger.WithCtx(c.Request.Context()).Error("request failed", "code", svcErr.Code, "error", err.Error())
	}
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}

	body := gin.H{
		"code":    svcErr.Code,
		"message": svcErr.Message,
	}
	if len(svcErr.Fields) > 0 {
		body["details"] = svcErr.Fields
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   body,
	})
}

// RespondValidationError reports a request body that could not be bound
func RespondValidationError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}
