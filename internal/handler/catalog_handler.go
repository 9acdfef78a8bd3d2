package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"takeoffs/internal/domain"
	"takeoffs/internal/port"
)

// CatalogHandler handles price-book endpoints.
type CatalogHandler struct {
	catalogRepo port.CatalogRepository
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogRepo port.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalogRepo: catalogRepo}
}

// Upsert handles PUT /api/v1/catalog
func (h *CatalogHandler) Upsert(c *gin.Context) {
	var req struct {
		Trade       domain.Trade `json:"trade" binding:"required"`
		Code        string       `json:"code"`
		Material    string       `json:"material"`
		Size        string       `json:"size"`
		Description string       `json:"description"`
		UnitCost    float64      `json:"unit_cost"`
		LaborRate   float64      `json:"labor_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if domain.ParseTrade(string(req.Trade)) == domain.TradeUnknown {
		RespondError(c, http.StatusBadRequest, "UNKNOWN_TRADE", "unknown trade")
		return
	}
	if req.Code == "" && (req.Material == "" || req.Size == "") {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "either code or material and size are required")
		return
	}

	row := &domain.CatalogPrice{
		Trade:       req.Trade,
		Code:        req.Code,
		Material:    req.Material,
		Size:        req.Size,
		Description: req.Description,
		UnitCost:    req.UnitCost,
		LaborRate:   req.LaborRate,
	}
	if err := h.catalogRepo.Upsert(c.Request.Context(), row); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, row)
}

// List handles GET /api/v1/catalog
func (h *CatalogHandler) List(c *gin.Context) {
	if tradeStr := c.Query("trade"); tradeStr != "" {
		trade := domain.ParseTrade(tradeStr)
		if trade == domain.TradeUnknown {
			RespondError(c, http.StatusBadRequest, "UNKNOWN_TRADE", "unknown trade")
			return
		}
		rows, err := h.catalogRepo.ListByTrade(c.Request.Context(), trade)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, rows)
		return
	}

	rows, err := h.catalogRepo.ListAll(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// Delete handles DELETE /api/v1/catalog/:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid catalog row ID")
		return
	}

	if err := h.catalogRepo.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "catalog row deleted"})
}
