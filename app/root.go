// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "catalog-api",
	Short: "catalog-api serves the offering catalog",
	Long: `catalog-api is the backend of the offering catalog. It manages brands,
products, offerings, the activity library, staffing, pricing and WBS entries
behind an OIDC login with directory based roles.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory holding main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
