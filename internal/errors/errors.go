package errors

import (
	stderrors "errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/daybook-api/internal/constants"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeInvalidFormat = "INVALID_FORMAT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	// Range errors
	ErrCodeRangeNotSatisfiable = "RANGE_NOT_SATISFIABLE"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError represents a standardized API error response. It shares the
// message/statusCode fields of the success envelope.
type APIError struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"statusCode"`
	Code       string      `json:"code"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	body := *err
	body.StatusCode = statusCode
	c.JSON(statusCode, body)
}

// AbortWithError sends an error response and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, err *APIError) {
	RespondWithError(c, statusCode, err)
	c.Abort()
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	RespondWithError(c, http.StatusForbidden, NewAPIError(ErrCodeForbidden, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// BadRequestWithDetails sends a 400 response with details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// BindingError sends a 400 response for a failed ShouldBind call. Validator
// failures are reported per field.
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[lowerFirst(fe.Field())] = describeFieldError(fe)
		}
		RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeMissingField, "Invalid request body", fields))
		return
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidFormat, "Invalid request body"))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// ConflictWithDetails sends a 409 response with details
func ConflictWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusConflict, NewAPIErrorWithDetails(ErrCodeConflict, message, details))
}

// RangeNotSatisfiable sends a 416 response
func RangeNotSatisfiable(c *gin.Context, message string) {
	if message == "" {
		message = "Requested range not satisfiable"
	}
	RespondWithError(c, http.StatusRequestedRangeNotSatisfiable, NewAPIError(ErrCodeRangeNotSatisfiable, message))
}

// InternalError sends a 500 response. The cause is logged, never returned.
func InternalError(c *gin.Context, message string, cause ...error) {
	if message == "" {
		message = "Internal server error"
	}
	requestID, _ := c.Get(constants.ContextKeyRequestID)
	path := ""
	method := ""
	if c.Request != nil {
		path = c.Request.URL.Path
		method = c.Request.Method
	}
	if len(cause) > 0 && cause[0] != nil {
		log.Printf("[%v] %s %s: %s: %v", requestID, method, path, message, cause[0])
	} else {
		log.Printf("[%v] %s %s: %s", requestID, method, path, message)
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed on " + fe.Tag()
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
