package errors

import (
	"net/http"
	"regexp"
	"strings"

	"codeberg.org/wexam/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. to answer the request
//     These functions write the JSON envelope and abort the handler chain
//   - Clients only ever see a human message and a code; raw error text,
//     upstream bodies and stack traces stay in the server logs
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Use typed or sentinel errors when the handler must pick a status code
//   - Do not log errors in non-handler code (avoid double logging)

// UUID format: xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx (36 characters)
var uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func respond(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	respond(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// returns a 403 forbidden error
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "permission denied"
	}

	respond(c, http.StatusForbidden, CodeForbidden, message)
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"

	if resource != "" {
		message = resource + " not found"
	}

	respond(c, http.StatusNotFound, CodeNotFound, message)
}

// returns a 400 bad request error, err is only logged
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	if err != nil {
		logger.FromContext(c.Request.Context()).Debug("bad request",
			"path", c.Request.URL.Path,
			"error", err,
		)
	}

	respond(c, http.StatusBadRequest, CodeBadRequest, message)
}

// returns a 400 for an input field that failed validation
func ValidationError(c *gin.Context, message string) {
	if message == "" {
		message = "validation failed"
	}

	respond(c, http.StatusBadRequest, CodeValidationError, message)
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	info := classifyError(err)

	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"category", info.category,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"user_id", c.GetString("user_id"),
	)

	respond(c, http.StatusInternalServerError, CodeServerError, message)
}

// returns a 500 for a quiz generation that exhausted every model route
func GenerationFailed(c *gin.Context, message string, err error) {
	logger.FromContext(c.Request.Context()).Error("quiz generation failed",
		"error", err,
		"user_id", c.GetString("user_id"),
	)

	respond(c, http.StatusInternalServerError, CodeGenerationFailed, message)
}

// returns a 502 when a third-party lookup failed
func UpstreamFailed(c *gin.Context, message string, err error) {
	if message == "" {
		message = "upstream service unavailable"
	}

	logger.FromContext(c.Request.Context()).Warn(message,
		"error", err,
		"path", c.Request.URL.Path,
	)

	respond(c, http.StatusBadGateway, CodeUpstreamFailed, message)
}

// returns a 409 conflict error
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "resource conflict"
	}

	respond(c, http.StatusConflict, CodeConflict, message)
}

// returns a 429 for generic request throttling
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	respond(c, http.StatusTooManyRequests, CodeTooManyRequests, message)
}

// returns a 429 for an exhausted daily quota
func RateLimited(c *gin.Context, message string) {
	respond(c, http.StatusTooManyRequests, CodeRateLimited, message)
}

// returns a 405 with the bare envelope callers expect
func MethodNotAllowed(c *gin.Context) {
	respond(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method Not Allowed")
}

// validates a UUID string format
func IsValidUUID(id string) bool {
	if id == "" {
		return false
	}

	return uuidRegex.MatchString(strings.ToLower(id))
}

// validates a UUID parameter from the request path, answering 404 when malformed
func ValidatePathUUID(c *gin.Context, paramName string) (string, bool) {
	id := c.Param(paramName)

	if id == "" {
		BadRequest(c, "missing "+paramName, nil)
		return "", false
	}

	if !IsValidUUID(id) {
		NotFound(c, "resource")
		return "", false
	}

	return id, true
}
