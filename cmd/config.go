package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpupo63/portfolio-site/config"
)

var configPath string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manages the site configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes an example site configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = appConfig.SiteConfigPath
		}
		if err := config.WriteExampleSite(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s, fill in supabase.url and supabase.anonKey\n", path)
		return nil
	},
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validates the site configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = appConfig.SiteConfigPath
		}
		site, err := loadSite(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (keys: %v)\n", path, site.Keys())
		if keys := placeholderKeys(site); len(keys) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: %v still hold the example values\n", keys)
		}
		return nil
	},
}

// placeholderKeys lists the keys of site left at the value config init wrote
func placeholderKeys(site *config.SiteConfig) []string {
	example := config.ExampleSite()
	var keys []string
	if site.Supabase.URL == example.Supabase.URL {
		keys = append(keys, "supabase.url")
	}
	if site.Supabase.AnonKey == example.Supabase.AnonKey {
		keys = append(keys, "supabase.anonKey")
	}
	return keys
}

func init() {
	configCmd.PersistentFlags().StringVar(&configPath, "path", "", "site config file (default SITE_CONFIG_PATH)")
	configCmd.AddCommand(configInitCmd, configCheckCmd)
}
