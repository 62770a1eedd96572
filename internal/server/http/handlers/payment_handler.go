package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelworks/loyalty/internal/server/http/dto"
)

// PaymentHandler accepts payment notifications from billing.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Record handles POST /api/payments.
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.facade.RecordPayment(c.Request.Context(), req.CustomerID, req.Amount)
	if err != nil {
		WriteDomainError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, dto.PaymentResponse{
		ID:         event.ID,
		CustomerID: event.CustomerID,
		Amount:     event.Amount,
		Status:     string(event.Status),
		CreatedAt:  event.CreatedAt,
	})
}
