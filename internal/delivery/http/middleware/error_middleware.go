package middleware

import (
	"errors"
	"net/http"

	"simhire-backend/internal/delivery/http/response"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		reqID, _ := c.Get("RequestID")

		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code < http.StatusInternalServerError {
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Never expose internal error details to clients
		cause := err
		var stack string
		if appErr != nil {
			if appErr.Err != nil {
				cause = appErr.Err
			}
			stack = string(appErr.Stack)
		}
		attrs := []any{"path", c.FullPath(), "request_id", reqID, "error", cause}
		if stack != "" {
			attrs = append(attrs, "stack", stack)
		}
		logger.Log.ErrorContext(c.Request.Context(), "internal server error", attrs...)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
