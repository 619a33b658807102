package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/offering-catalog/catalog-api/internal/config"
)

func init() { //nolint: gochecknoinits
	dumpCmd.Flags().BoolVar(&dumpJSON, "json", false, "Print JSON instead of TOML")

	configCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the effective configuration, after environment overrides",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			// secrets stay out of terminals and CI logs
			c.OIDC.ClientSecret = redact(c.OIDC.ClientSecret)
			c.DB.Password = redact(c.DB.Password)
			c.DB.URL = redact(c.DB.URL)
			c.Directory.LDAP.BindPassword = redact(c.Directory.LDAP.BindPassword)
			c.Webserver.CookieEncryptionKey = redact(c.Webserver.CookieEncryptionKey)

			out, err := config.DumpConfig(&c)
			if dumpJSON {
				out, err = config.DumpConfigJSON(&c)
			}

			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err
		},
	}
)

func redact(s string) string {
	if s == "" {
		return ""
	}

	return "********"
}
