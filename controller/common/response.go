package common

import (
	"errors"
	"net/http"
	"strconv"

	"personalhub/middleware"
	"personalhub/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatusFor maps a service or store error to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrConflict), errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, services.ErrAlreadyCompletedToday):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrCaptchaRejected),
		errors.Is(err, gorm.ErrForeignKeyViolated):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAIUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, services.ErrAIRequest), errors.Is(err, services.ErrStorage), errors.Is(err, services.ErrEmail):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err using the {"error": ...} shape. Unexpected errors are logged and hidden.
func Fail(c *gin.Context, err error) {
	code := StatusFor(err)
	msg := err.Error()
	switch {
	case code == http.StatusInternalServerError:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		msg = "Internal server error"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		msg = "A record with the same unique value already exists"
	case errors.Is(err, gorm.ErrRecordNotFound):
		msg = services.ErrNotFound.Error()
	}
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func BadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// ParamID reads a positive integer path parameter, answering 400 otherwise.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// CurrentUser answers 401 when the request is not authenticated.
func CurrentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return id, ok
}
