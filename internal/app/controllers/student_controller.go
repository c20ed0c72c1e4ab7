package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/app/services"
	"github.com/hmansoor/campusgate/internal/middleware"
	"github.com/hmansoor/campusgate/internal/pkg/helpers"
)

// StudentController handles student listing operations
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// GetStudents retrieves a filtered page of students
// @Summary List students
// @Description Retrieves students filtered by program, shift, year level, section and a free-text search over roll number, name and email
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param program query string false "Program code"
// @Param shift query string false "Shift" Enums(Morning, Evening)
// @Param year query string false "Year level" Enums(1st, 2nd, 3rd)
// @Param section query string false "Section name"
// @Param search query string false "Search over roll number, name and email"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) GetStudents(ctx *gin.Context) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)

	result, err := c.studentService.ListStudents(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      result,
		Timestamp: time.Now(),
	})
}
