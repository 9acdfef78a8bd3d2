package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"takeoffs/internal/csvexport"
	"takeoffs/internal/domain"
	"takeoffs/internal/service"
	"takeoffs/internal/takeoff"
	"takeoffs/internal/xlsxexport"
)

// AnalysisHandler handles takeoff analysis endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Request handles POST /api/v1/analyses
func (h *AnalysisHandler) Request(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input service.AnalysisRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.RequestedBy = userID

	a, err := h.analysisService.Request(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, a)
}

// AnalyzeText handles POST /api/v1/analyses/text
// Runs the estimation pipeline over caller-provided analysis text without
// queueing, storage, or the LLM. Nothing is persisted.
func (h *AnalysisHandler) AnalyzeText(c *gin.Context) {
	var req struct {
		RawText           string              `json:"raw_text" binding:"required"`
		Trade             domain.Trade        `json:"trade" binding:"required"`
		AnalysisType      domain.AnalysisType `json:"analysis_type"`
		WasteFactorPct    float64             `json:"waste_factor_pct"`
		StudSpacingIn     float64             `json:"stud_spacing_in"`
		IncludeGridSystem bool                `json:"include_grid_system"`
		ContingencyRate   float64             `json:"contingency_rate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.analysisService.AnalyzeText(c.Request.Context(), req.RawText, service.AnalysisRequestInput{
		Trade:             req.Trade,
		AnalysisType:      req.AnalysisType,
		WasteFactorPct:    req.WasteFactorPct,
		StudSpacingIn:     req.StudSpacingIn,
		IncludeGridSystem: req.IncludeGridSystem,
		ContingencyRate:   req.ContingencyRate,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// GetByID handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return
	}

	a, err := h.analysisService.GetByID(c.Request.Context(), analysisID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, a)
}

// GetResult handles GET /api/v1/analyses/:id/result
func (h *AnalysisHandler) GetResult(c *gin.Context) {
	result, ok := h.loadResult(c)
	if !ok {
		return
	}
	RespondOK(c, result)
}

// GetReport handles GET /api/v1/analyses/:id/report
func (h *AnalysisHandler) GetReport(c *gin.Context) {
	result, ok := h.loadResult(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(takeoff.Report(result)))
}

// ExportCSV handles GET /api/v1/analyses/:id/export.csv
func (h *AnalysisHandler) ExportCSV(c *gin.Context) {
	result, ok := h.loadResult(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "estimate_"+c.Param("id")+".csv"))
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteResult(result); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
}

// ExportXLSX handles GET /api/v1/analyses/:id/export.xlsx
func (h *AnalysisHandler) ExportXLSX(c *gin.Context) {
	result, ok := h.loadResult(c)
	if !ok {
		return
	}

	f, err := xlsxexport.Build(result)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = f.Close() }()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "estimate_"+c.Param("id")+".xlsx"))
	if err := f.Write(c.Writer); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%v] xlsx export write: %v", requestID, err)
	}
}

// ListByProject handles GET /api/v1/projects/:id/analyses
func (h *AnalysisHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid project ID")
		return
	}

	offset, limit := parsePagination(c)

	analyses, total, err := h.analysisService.ListByProject(c.Request.Context(), projectID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, analyses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListByBlueprint handles GET /api/v1/blueprints/:id/analyses
func (h *AnalysisHandler) ListByBlueprint(c *gin.Context) {
	blueprintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid blueprint ID")
		return
	}

	analyses, err := h.analysisService.ListByBlueprint(c.Request.Context(), blueprintID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, analyses)
}

func (h *AnalysisHandler) loadResult(c *gin.Context) (*takeoff.AnalysisResult, bool) {
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid analysis ID")
		return nil, false
	}

	result, err := h.analysisService.GetResult(c.Request.Context(), analysisID)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return result, true
}
