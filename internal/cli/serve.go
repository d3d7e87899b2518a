package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gpaccess/backend/internal/handlers"
	"github.com/gpaccess/backend/internal/server"
)

func ServeCmd() *cobra.Command {
	var cfgPath string
	var logMode string
	var mockData bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Wait for the data store, migrate, and serve the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(cfgPath, logMode)
			if err != nil {
				return err
			}
			defer app.Log.Sync()

			if mockData || strings.EqualFold(os.Getenv("MOCK_DATA"), "true") {
				app.Log.Info("Loading mock data before serving", "dir", app.Config.Seed.Dir)
				if err := app.SeedService.LoadAll(cmd.Context(), app.Config.Seed.Dir); err != nil {
					app.Log.Warn("Mock data load failed", "error", err)
				}
			}

			router := server.NewRouter(server.RouterConfig{
				PracticeHandler:     handlers.NewPracticeHandler(app.PracticeService),
				AddressHandler:      handlers.NewAddressHandler(app.AddressService),
				EmployeeHandler:     handlers.NewEmployeeHandler(app.EmployeeService),
				AccessSystemHandler: handlers.NewAccessSystemHandler(app.SystemService),
				CORSOrigins:         app.Config.Server.CORSOrigins,
			})

			app.Log.Info("Server listening", "port", app.Config.Server.Port)
			return router.Run(":" + app.Config.Server.Port)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "gpaccess.yaml", "path to the YAML config file")
	cmd.Flags().StringVarP(&logMode, "log-mode", "l", os.Getenv("LOG_MODE"), "development | production")
	cmd.Flags().BoolVarP(&mockData, "mock-data", "m", false, "load mock data into tables on start")
	return cmd
}
