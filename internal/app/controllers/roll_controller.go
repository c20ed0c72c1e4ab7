package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/services"
	"github.com/hmansoor/campusgate/internal/middleware"
)

// RollController handles roll number parsing and validation
type RollController struct {
	rollService *services.RollService
}

// NewRollController creates a new RollController
func NewRollController(rollService *services.RollService) *RollController {
	return &RollController{
		rollService: rollService,
	}
}

// ParseRoll decodes a roll number
// @Summary Parse a roll number
// @Description Decodes a roll number into admission year, program, shift and serial, derives the current year level and lists open sections for placement
// @Tags rolls
// @Accept json
// @Produce json
// @Param roll_number query string true "Roll number" example(25-SWT-01)
// @Success 200 {object} dto.StructuredResponse{data=dto.ParseRollResponse} "Roll number parsed successfully"
// @Failure 400 {object} dto.ErrorResponse "Malformed roll number or out-of-range admission year"
// @Failure 404 {object} dto.ErrorResponse "Unknown program code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rolls/parse [get]
func (c *RollController) ParseRoll(ctx *gin.Context) {
	rollNumber := strings.TrimSpace(ctx.Query("roll_number"))
	if rollNumber == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roll number is required")
		errorDetail = errorDetail.WithField("roll_number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.rollService.ParseRoll(ctx, rollNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(result, "Roll number parsed successfully"))
}

// ValidateRoll checks a roll number
// @Summary Validate a roll number
// @Description Checks whether a roll number is well-formed and names an active program. Malformed input yields valid=false, not an error.
// @Tags rolls
// @Accept json
// @Produce json
// @Param roll_number query string true "Roll number" example(25-SWT-01)
// @Success 200 {object} dto.APIResponse{data=dto.ValidateRollResponse} "Validation result"
// @Failure 400 {object} dto.ErrorResponse "Missing roll number parameter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rolls/validate [get]
func (c *RollController) ValidateRoll(ctx *gin.Context) {
	rollNumber := strings.TrimSpace(ctx.Query("roll_number"))
	if rollNumber == "" {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Roll number is required")
		errorDetail = errorDetail.WithField("roll_number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	result, err := c.rollService.ValidateRoll(ctx, rollNumber)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
