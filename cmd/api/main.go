package main

import (
	"os"

	"github.com/yigit/unischedule/internal/bootstrap"
	"github.com/yigit/unischedule/internal/pkg/logger"
	"github.com/yigit/unischedule/internal/server"
)

// @title UniSchedule API
// @version 1.0
// @description Section scheduling and enrollment conflict engine
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

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
	srv, err := server.NewServer(bootstrap.ConfigPath())
	if err != nil {
		// Setup steps log their own details
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal arrives
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
