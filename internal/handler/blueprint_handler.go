package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"takeoffs/internal/service"
)

// BlueprintHandler handles blueprint upload and management endpoints.
type BlueprintHandler struct {
	blueprintService service.BlueprintService
}

// NewBlueprintHandler creates a new BlueprintHandler.
func NewBlueprintHandler(blueprintService service.BlueprintService) *BlueprintHandler {
	return &BlueprintHandler{blueprintService: blueprintService}
}

// Upload handles POST /api/v1/projects/:id/blueprints
func (h *BlueprintHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid project ID")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	bp, err := h.blueprintService.Upload(c.Request.Context(), service.BlueprintUploadInput{
		ProjectID:   projectID,
		UploadedBy:  userID,
		SheetNumber: c.PostForm("sheet_number"),
		File:        file,
		Header:      header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, bp)
}

// ListByProject handles GET /api/v1/projects/:id/blueprints
func (h *BlueprintHandler) ListByProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid project ID")
		return
	}

	offset, limit := parsePagination(c)

	blueprints, total, err := h.blueprintService.ListByProject(c.Request.Context(), projectID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, blueprints, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/blueprints/:id
func (h *BlueprintHandler) GetByID(c *gin.Context) {
	blueprintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid blueprint ID")
		return
	}

	bp, err := h.blueprintService.GetByID(c.Request.Context(), blueprintID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bp)
}

// GetDownloadURL handles GET /api/v1/blueprints/:id/download
func (h *BlueprintHandler) GetDownloadURL(c *gin.Context) {
	blueprintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid blueprint ID")
		return
	}

	url, err := h.blueprintService.GetDownloadURL(c.Request.Context(), blueprintID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"url": url})
}

// Delete handles DELETE /api/v1/blueprints/:id
func (h *BlueprintHandler) Delete(c *gin.Context) {
	blueprintID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid blueprint ID")
		return
	}

	if err := h.blueprintService.Delete(c.Request.Context(), blueprintID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "blueprint deleted"})
}
