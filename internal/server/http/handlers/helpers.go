package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/hotelworks/loyalty/internal/domain/errors"
)

// CustomerIDParam parses the :id path segment. Reports false after writing
// a 400 response when the segment is not a positive integer.
func CustomerIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// WriteDomainError maps ledger errors onto HTTP statuses.
func WriteDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidArgument):
		c.Status(http.StatusUnprocessableEntity)
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		c.Status(http.StatusPaymentRequired)
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	default:
		c.Status(http.StatusInternalServerError)
	}
}
