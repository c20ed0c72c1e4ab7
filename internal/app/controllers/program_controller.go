package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/services"
	"github.com/hmansoor/campusgate/internal/middleware"
)

// ProgramController handles program catalog operations
type ProgramController struct {
	programService *services.ProgramService
}

// NewProgramController creates a new ProgramController
func NewProgramController(programService *services.ProgramService) *ProgramController {
	return &ProgramController{
		programService: programService,
	}
}

// GetPrograms retrieves all active programs
// @Summary List programs
// @Description Retrieves all active programs ordered by code
// @Tags programs
// @Accept json
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ProgramResponse} "Programs retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs [get]
func (c *ProgramController) GetPrograms(ctx *gin.Context) {
	programs, err := c.programService.ListPrograms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      programs,
		Timestamp: time.Now(),
	})
}

// GetProgramSections retrieves the sections of a program
// @Summary List program sections
// @Description Retrieves all active sections of a program, ordered by year level, shift and name
// @Tags programs
// @Accept json
// @Produce json
// @Param id path int true "Program ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.SectionResponse} "Sections retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid program ID"
// @Failure 404 {object} dto.ErrorResponse "Program not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /programs/{id}/sections [get]
func (c *ProgramController) GetProgramSections(ctx *gin.Context) {
	idStr := ctx.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid program ID")
		errorDetail = errorDetail.WithDetails("Program ID must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	sections, err := c.programService.ListProgramSections(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      sections,
		Timestamp: time.Now(),
	})
}
