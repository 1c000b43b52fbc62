package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-marketplace/internal/api/shared/errors"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondInternalError responds with an internal server error and logs it
func respondInternalError(c *gin.Context, err error, message string) {
	logger.Error(err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message))
}

// respondDomainError maps a ledger error onto a stable HTTP status and error
// code. Unknown errors surface as 500 without leaking internals.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(err.Error()))
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError(err.Error()))
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPriceTooLow),
		errors.Is(err, domain.ErrRoyaltyTooHigh):
		c.JSON(http.StatusBadRequest, apierrors.NewValidationError(err.Error()))
	case errors.Is(err, domain.ErrInsufficientPayment),
		errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, apierrors.NewPaymentRequiredError(err.Error()))
	case errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrAlreadyListed),
		errors.Is(err, domain.ErrNotRegistered),
		errors.Is(err, domain.ErrNotListed),
		errors.Is(err, domain.ErrNotForSale),
		errors.Is(err, domain.ErrSelfPurchase),
		errors.Is(err, domain.ErrTransferFailed),
		errors.Is(err, domain.ErrReentrantCall),
		errors.Is(err, domain.ErrNothingToWithdraw):
		c.JSON(http.StatusConflict, apierrors.NewConflictError(err.Error()))
	default:
		respondInternalError(c, err, "Internal server error")
	}
}
