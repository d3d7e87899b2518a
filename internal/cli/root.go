package cli

import "github.com/spf13/cobra"

// RootCmd runs serve when invoked without a subcommand; the serve flags
// are shared with the root so `gpaccess-backend -m` works as well.
func RootCmd() *cobra.Command {
	serveCmd := ServeCmd()

	rootCmd := &cobra.Command{
		Use:   "gpaccess-backend",
		Short: "Backend API for GP practice access systems",
		RunE:  serveCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	rootCmd.AddCommand(serveCmd, SeedCmd())
	return rootCmd
}
