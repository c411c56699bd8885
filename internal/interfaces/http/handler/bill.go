package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/mandi/backend/internal/application/billing"
	"github.com/mandi/backend/internal/interfaces/http/dto"
)

// BillHandler exposes bill CRUD and day-summary endpoints
type BillHandler struct {
	BaseHandler
	billService *appbilling.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(billService *appbilling.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// RegisterRoutes registers bill routes on the API group
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/bills")
	{
		bills.POST("", h.Create)
		bills.GET("", h.List)
		bills.GET("/farmers", h.FarmersForDate)
		bills.GET("/:id", h.Get)
		bills.PUT("/:id", h.Update)
		bills.DELETE("/:id", h.Delete)
	}
}

// Create creates a bill with its vegetable lines
func (h *BillHandler) Create(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appbilling.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, bill)
}

// listBillsRequest binds the bill list query string
type listBillsRequest struct {
	dto.ListRequest
	DateFrom    string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	FarmerName  string `form:"farmer_name"`
	VillageName string `form:"village_name"`
	MerchantID  string `form:"merchant_id" binding:"omitempty,uuid"`
}

// List returns bills matching the filters, newest first
func (h *BillHandler) List(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req listBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	query := appbilling.ListBillsQuery{
		FarmerName:  req.FarmerName,
		VillageName: req.VillageName,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}
	if query.DateFrom, err = parseDate(req.DateFrom); err != nil {
		h.BadRequest(c, "date_from must be yyyy-mm-dd")
		return
	}
	if query.DateTo, err = parseDate(req.DateTo); err != nil {
		h.BadRequest(c, "date_to must be yyyy-mm-dd")
		return
	}
	// The inclusive upper bound covers the whole closing day.
	if query.DateTo != nil {
		end := query.DateTo.Add(24*time.Hour - time.Nanosecond)
		query.DateTo = &end
	}
	if req.MerchantID != "" {
		id, err := uuid.Parse(req.MerchantID)
		if err != nil {
			h.BadRequest(c, "merchant_id must be a UUID")
			return
		}
		query.MerchantID = &id
	}

	bills, err := h.billService.List(c.Request.Context(), tenant, query)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, bills)
}

// Get returns one bill with its items
func (h *BillHandler) Get(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	billID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), tenant, billID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, bill)
}

// Update replaces the bill's contents wholesale
func (h *BillHandler) Update(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	billID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	var req appbilling.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), tenant, billID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, bill)
}

// Delete removes a bill, its income rows, and refreshes merchant balances
func (h *BillHandler) Delete(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	billID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), tenant, billID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// FarmersForDate summarizes each farmer's bills for one calendar day,
// defaulting to today
func (h *BillHandler) FarmersForDate(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.DateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "date must be yyyy-mm-dd")
		return
	}

	farmers, err := h.billService.FarmersForDate(c.Request.Context(), tenant, dayOrToday(req.Date))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, farmers)
}
