package middleware

import (
	"net/http"

	"github.com/easayliu/media-url-resolver/internal/shared/errors"
	"github.com/easayliu/media-url-resolver/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中设置的错误,自动转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if serviceErr, ok := err.(*errors.ServiceError); ok {
			c.JSON(mapErrorCodeToHTTPStatus(serviceErr.Code), gin.H{
				"error":   serviceErr.Message,
				"code":    serviceErr.Code,
				"details": serviceErr.Details,
			})
			return
		}

		// 未知错误,返回500
		logger.Error("Unhandled request error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"code":  errors.ErrorCodeInternalError,
		})
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrorCodeInvalidRequest, errors.ErrorCodeUnsupportedPath:
		return http.StatusBadRequest
	case errors.ErrorCodeNotFound:
		return http.StatusNotFound
	case errors.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrorCodeTimeout:
		return http.StatusRequestTimeout
	case errors.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", "path", c.Request.URL.Path, "panic", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  errors.ErrorCodeInternalError,
				})
			}
		}()
		c.Next()
	}
}

// RequestLogger 请求日志中间件
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}
