package httpapi

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/horizon/internal/auth"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/gin-gonic/gin"
)

type ErrorCode int

const (
	OK ErrorCode = 0

	InvalidRequest   ErrorCode = 40001
	Unauthenticated  ErrorCode = 40101
	Forbidden        ErrorCode = 40301
	NotFound         ErrorCode = 40401
	QuotaExceeded    ErrorCode = 40901
	InvalidState     ErrorCode = 40902
	AlreadyPublished ErrorCode = 40903

	Internal ErrorCode = 50001
)

// Response is the envelope every endpoint writes.
type Response[T any] struct {
	Code ErrorCode `json:"code"`
	Data T         `json:"data"`
	Msg  string    `json:"msg"`
}

// Success writes data with HTTP 200 and code 0.
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"code": OK,
		"data": data,
		"msg":  "",
	})
}

// HTTPError writes an error envelope with the given HTTP status.
func HTTPError(c *gin.Context, httpCode int, msg string, code ErrorCode) {
	c.AbortWithStatusJSON(httpCode, gin.H{
		"code": code,
		"data": nil,
		"msg":  msg,
	})
}

// BadRequestError reports a request that failed binding or parsing.
func BadRequestError(c *gin.Context, msg string) {
	HTTPError(c, http.StatusBadRequest, msg, InvalidRequest)
}

// Error maps a service error onto its HTTP status and error code.
func Error(c *gin.Context, err error) {
	status, code := classify(err)
	HTTPError(c, status, err.Error(), code)
}

func classify(err error) (int, ErrorCode) {
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusConflict, QuotaExceeded
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, Forbidden
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, InvalidState
	case errors.Is(err, domain.ErrAlreadyPublished):
		return http.StatusConflict, AlreadyPublished
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, NotFound
	case errors.Is(err, domain.ErrInvalid), errors.Is(err, domain.ErrUnmappedReference):
		return http.StatusBadRequest, InvalidRequest
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, Unauthenticated
	default:
		return http.StatusInternalServerError, Internal
	}
}
