package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func SeedCmd() *cobra.Command {
	var cfgPath string
	var logMode string
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load JSON mock-data fixtures into the store and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap(cfgPath, logMode)
			if err != nil {
				return err
			}
			defer app.Log.Sync()

			seedDir := dir
			if seedDir == "" {
				seedDir = app.Config.Seed.Dir
			}
			return app.SeedService.LoadAll(cmd.Context(), seedDir)
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "gpaccess.yaml", "path to the YAML config file")
	cmd.Flags().StringVarP(&logMode, "log-mode", "l", os.Getenv("LOG_MODE"), "development | production")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "fixture directory (defaults to the configured seed dir)")
	return cmd
}
