package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/services"
	"github.com/hmansoor/campusgate/internal/middleware"
)

// ImportController handles bulk student import operations
type ImportController struct {
	importService *services.ImportService
}

// NewImportController creates a new ImportController
func NewImportController(importService *services.ImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// ImportStudents handles a bulk student import
// @Summary Bulk import students
// @Description Validates and imports a batch of student records. Row failures do not abort the batch; each row's outcome is reported individually and rows that pass are committed.
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ImportStudentsRequest true "Student rows to import"
// @Success 200 {object} dto.StructuredResponse{data=dto.ImportResult} "Import completed"
// @Failure 400 {object} dto.ErrorResponse "Empty batch or malformed request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Import transaction failed"
// @Router /students/import [post]
func (c *ImportController) ImportStudents(ctx *gin.Context) {
	var req dto.ImportStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid import request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if len(req.Data) == 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeEmptyBatch, "Student data is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.importService.ImportStudents(ctx, req.Data)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(result, "Import completed"))
}

// GetImportHistory lists recent import audit entries
// @Summary Import history
// @Description Retrieves the most recent bulk import audit entries, newest first
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ImportLogResponse} "History retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/import/history [get]
func (c *ImportController) GetImportHistory(ctx *gin.Context) {
	entries, err := c.importService.GetImportHistory(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.ImportLogResponse, 0, len(entries))
	for _, entry := range entries {
		var details interface{}
		if len(entry.ErrorDetails) > 0 {
			if err := json.Unmarshal(entry.ErrorDetails, &details); err != nil {
				details = string(entry.ErrorDetails)
			}
		}

		responses = append(responses, dto.ImportLogResponse{
			ID:                entry.ID,
			BatchID:           entry.BatchID,
			ImportType:        entry.ImportType,
			TotalRecords:      entry.TotalRecords,
			SuccessfulRecords: entry.SuccessfulRecords,
			FailedRecords:     entry.FailedRecords,
			ErrorDetails:      details,
			CreatedAt:         entry.CreatedAt.Format(time.RFC3339),
		})
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}
