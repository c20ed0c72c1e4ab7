package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/hmansoor/campusgate/internal/app/controllers"
	"github.com/hmansoor/campusgate/internal/app/models"
	"github.com/hmansoor/campusgate/internal/app/models/dto"
	"github.com/hmansoor/campusgate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	rollController *controllers.RollController,
	programController *controllers.ProgramController,
	studentController *controllers.StudentController,
	importController *controllers.ImportController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Public roll number utilities ---
	// Used by registration forms before any session exists.
	rolls := v1.Group("/rolls")
	{
		rolls.GET("/parse", rollController.ParseRoll)
		rolls.GET("/validate", rollController.ValidateRoll)
	}

	// --- Public program catalog ---
	programs := v1.Group("/programs")
	{
		programs.GET("", programController.GetPrograms)
		programs.GET("/:id/sections", programController.GetProgramSections)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Student management is admin-only
		studentsAdminProtected := authenticated.Group("/students")
		studentsAdminProtected.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			studentsAdminProtected.GET("", studentController.GetStudents)
			studentsAdminProtected.POST("/import", importController.ImportStudents)
			studentsAdminProtected.GET("/import/history", importController.GetImportHistory)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
