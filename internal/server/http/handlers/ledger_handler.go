package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hotelworks/loyalty/internal/server/http/dto"
)

// LedgerHandler manages point accrual, redemption and ledger reads.
type LedgerHandler struct {
	facade LedgerFacade
}

// NewLedgerHandler constructs LedgerHandler.
func NewLedgerHandler(facade LedgerFacade) *LedgerHandler {
	return &LedgerHandler{facade: facade}
}

// Accrue handles POST /api/customers/:id/points/accrue.
func (h *LedgerHandler) Accrue(c *gin.Context) {
	customerID, ok := CustomerIDParam(c)
	if !ok {
		return
	}
	var req dto.AccrueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.Accrue(c.Request.Context(), customerID, req.Amount)
	if err != nil {
		WriteDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccrueResponse{PointsAdded: result.PointsAdded, Balance: result.NewBalance})
}

// Redeem handles POST /api/customers/:id/points/redeem.
func (h *LedgerHandler) Redeem(c *gin.Context) {
	customerID, ok := CustomerIDParam(c)
	if !ok {
		return
	}
	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.Redeem(c.Request.Context(), customerID, req.Points)
	if err != nil {
		WriteDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RedeemResponse{PointsUsed: result.PointsUsed, Balance: result.NewBalance, Discount: result.Discount})
}

// Adjust handles POST /api/customers/:id/points/adjust.
func (h *LedgerHandler) Adjust(c *gin.Context) {
	customerID, ok := CustomerIDParam(c)
	if !ok {
		return
	}
	var req dto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	balance, err := h.facade.AdjustPoints(c.Request.Context(), customerID, req.Delta)
	if err != nil {
		WriteDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AdjustResponse{Balance: balance})
}

// Balance handles GET /api/customers/:id/balance.
func (h *LedgerHandler) Balance(c *gin.Context) {
	customerID, ok := CustomerIDParam(c)
	if !ok {
		return
	}
	balance, err := h.facade.Balance(c.Request.Context(), customerID)
	if err != nil {
		WriteDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance})
}

// History handles GET /api/customers/:id/points/history.
func (h *LedgerHandler) History(c *gin.Context) {
	customerID, ok := CustomerIDParam(c)
	if !ok {
		return
	}
	entries, err := h.facade.History(c.Request.Context(), customerID)
	if err != nil {
		WriteDomainError(c, err)
		return
	}
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.HistoryEntryResponse{ID: e.ID, PointDelta: e.PointDelta, Kind: string(e.Kind), CreatedAt: e.CreatedAt})
	}
	c.JSON(http.StatusOK, resp)
}

// PointsInfo handles GET /api/customers/:id/points.
func (h *LedgerHandler) PointsInfo(c *gin.Context) {
	customerID, ok := CustomerIDParam(c)
	if !ok {
		return
	}
	info, err := h.facade.PointsInfo(c.Request.Context(), customerID)
	if err != nil {
		WriteDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PointsInfoResponse{
		CustomerID:   info.CustomerID,
		FullName:     info.FullName,
		Balance:      info.PointBalance,
		ProgramName:  info.ProgramName,
		DiscountRate: info.DiscountRate,
	})
}
