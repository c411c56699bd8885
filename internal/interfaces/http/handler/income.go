package handler

import (
	"github.com/gin-gonic/gin"

	appledger "github.com/mandi/backend/internal/application/ledger"
)

// IncomeHandler exposes commission income reporting endpoints
type IncomeHandler struct {
	BaseHandler
	incomeService *appledger.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler
func NewIncomeHandler(incomeService *appledger.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// RegisterRoutes registers income routes on the API group
func (h *IncomeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	incomes := rg.Group("/incomes")
	{
		incomes.GET("", h.List)
		incomes.GET("/summary", h.Summary)
	}
}

// incomeRangeRequest binds the optional date-range query string
type incomeRangeRequest struct {
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
}

// List returns commission rows, optionally limited to a date range
func (h *IncomeHandler) List(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req incomeRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	dateFrom, _ := parseDate(req.DateFrom)
	dateTo, _ := parseDate(req.DateTo)

	incomes, err := h.incomeService.List(c.Request.Context(), tenant, dateFrom, dateTo)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, incomes)
}

// Summary aggregates trade and commission totals for a date range
func (h *IncomeHandler) Summary(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req incomeRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	dateFrom, _ := parseDate(req.DateFrom)
	dateTo, _ := parseDate(req.DateTo)

	summary, err := h.incomeService.Summary(c.Request.Context(), tenant, dateFrom, dateTo)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, summary)
}
