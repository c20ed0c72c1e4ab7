package main

import (
	"os"

	"github.com/hmansoor/campusgate/internal/pkg/logger"
	"github.com/hmansoor/campusgate/internal/server"
)

// @title CampusGate API
// @version 1.0
// @description Attendance and student management backend for D.A.E institutes

// @contact.name API Support
// @contact.email support@campusgate.edu.pk

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
