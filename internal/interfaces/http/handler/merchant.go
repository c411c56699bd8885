package handler

import (
	"github.com/gin-gonic/gin"

	appledger "github.com/mandi/backend/internal/application/ledger"
	"github.com/mandi/backend/internal/domain/shared"
	"github.com/mandi/backend/internal/interfaces/http/dto"
)

// MerchantHandler exposes merchant CRUD, statements and credit endpoints
type MerchantHandler struct {
	BaseHandler
	merchantService *appledger.MerchantService
	creditService   *appledger.CreditService
}

// NewMerchantHandler creates a new MerchantHandler
func NewMerchantHandler(merchantService *appledger.MerchantService, creditService *appledger.CreditService) *MerchantHandler {
	return &MerchantHandler{
		merchantService: merchantService,
		creditService:   creditService,
	}
}

// RegisterRoutes registers merchant and credit routes on the API group
func (h *MerchantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	merchants := rg.Group("/merchants")
	{
		merchants.POST("", h.Create)
		merchants.GET("", h.List)
		merchants.GET("/summary", h.DaySummary)
		merchants.GET("/:id", h.Get)
		merchants.PUT("/:id", h.Update)
		merchants.DELETE("/:id", h.Delete)
		merchants.GET("/:id/statement", h.Statement)
		merchants.GET("/:id/credits", h.ListCredits)
	}

	credits := rg.Group("/credits")
	{
		credits.POST("", h.CreateCredit)
		credits.PUT("/:id", h.UpdateCredit)
		credits.DELETE("/:id", h.DeleteCredit)
	}
}

// Create registers a merchant and seeds the opening-balance entry
func (h *MerchantHandler) Create(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appledger.CreateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	merchant, err := h.merchantService.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, merchant)
}

// List returns the tenant's merchants ordered by name
func (h *MerchantHandler) List(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	merchants, err := h.merchantService.List(c.Request.Context(), tenant, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, merchants)
}

// Get returns one merchant with its cached balance
func (h *MerchantHandler) Get(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	merchantID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	merchant, err := h.merchantService.Get(c.Request.Context(), tenant, merchantID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, merchant)
}

// Update changes merchant details; revising the opening balance rewrites
// the opening entry and recomputes the balance
func (h *MerchantHandler) Update(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	merchantID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	var req appledger.UpdateMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	merchant, err := h.merchantService.Update(c.Request.Context(), tenant, merchantID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, merchant)
}

// Delete removes a merchant together with its ledger entries
func (h *MerchantHandler) Delete(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	merchantID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	if err := h.merchantService.Delete(c.Request.Context(), tenant, merchantID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// Statement returns the merchant with trades, credits and derived totals
func (h *MerchantHandler) Statement(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	merchantID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	detail, err := h.merchantService.Detail(c.Request.Context(), tenant, merchantID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, detail)
}

// DaySummary summarizes every merchant's trade for one calendar day,
// defaulting to today
func (h *MerchantHandler) DaySummary(c *gin.Context) {
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

	summary, err := h.merchantService.DaySummary(c.Request.Context(), tenant, dayOrToday(req.Date))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, summary)
}

// ListCredits returns the merchant's ledger entries, newest first
func (h *MerchantHandler) ListCredits(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	merchantID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	entries, err := h.creditService.ListByMerchant(c.Request.Context(), tenant, merchantID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, entries)
}

// CreateCredit records a payment received from a merchant
func (h *MerchantHandler) CreateCredit(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appledger.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.creditService.Create(c.Request.Context(), tenant, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, entry)
}

// UpdateCredit revises a recorded payment
func (h *MerchantHandler) UpdateCredit(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	entryID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	var req appledger.UpdateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entry, err := h.creditService.Update(c.Request.Context(), tenant, entryID, req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, entry)
}

// DeleteCredit removes a recorded payment
func (h *MerchantHandler) DeleteCredit(c *gin.Context) {
	tenant, err := tenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	entryID, ok := bindID(c)
	if !ok {
		h.BadRequest(c, "id must be a UUID")
		return
	}

	if err := h.creditService.Delete(c.Request.Context(), tenant, entryID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
