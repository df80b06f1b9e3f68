package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rentease/rentease-backend/pkg/logger"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed error code/message pair
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps database and transport errors to a stable code and a
// message that is safe to return to clients. Details stay in the server log.
func ParseError(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: "Requested record not found"}
	}

	errStr := strings.ToLower(err.Error())

	// Postgres unique constraint violation (23505)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		if strings.Contains(errStr, "email") {
			return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Email already registered"}
		}
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Backend temporarily unavailable, please retry"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Server error"}
}

// ParseAndRespond parses err and writes the mapped error response. The
// fallback status is used unless the parsed code implies a better one.
func ParseAndRespond(c *gin.Context, fallbackStatus int, err error, operation string) {
	info := ParseError(err)

	status := fallbackStatus
	switch info.Code {
	case ResourceNotFound:
		status = http.StatusNotFound
	case AuthEmailAlreadyExists, ResourceAlreadyExists:
		status = http.StatusConflict
	case InternalDatabaseError:
		status = http.StatusServiceUnavailable
	}

	logger.Error("Request failed: "+operation, err, map[string]interface{}{
		"error_code": info.Code,
	})

	RespondWithError(c, status, info.Code, info.Message)
}
