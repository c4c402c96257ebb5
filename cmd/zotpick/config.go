package main

import (
	"fmt"
	"strconv"

	"github.com/matsen/zotpick/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change global configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the effective configuration",
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Long: `Set a configuration value in ` + "`" + `~/.config/zotpick/config.yml` + "`" + `.

Keys: zotero_db, cache_dir, cache_ttl_seconds, cite_template, preview_template`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("zotero_db:         %s\n", cfg.ZoteroDB)
		fmt.Printf("cache_dir:         %s\n", cfg.CacheDir)
		fmt.Printf("cache_ttl_seconds: %d\n", cfg.CacheTTLSeconds)
		fmt.Printf("cite_template:     %s\n", cfg.CiteTemplate)
		fmt.Printf("preview_template:  %s\n", cfg.PreviewTemplate)
		return nil
	}
	return outputJSON(cfg)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	switch key {
	case "zotero_db":
		cfg.ZoteroDB = config.ExpandTilde(value)
	case "cache_dir":
		cfg.CacheDir = config.ExpandTilde(value)
	case "cache_ttl_seconds":
		ttl, err := strconv.Atoi(value)
		if err != nil || ttl <= 0 {
			exitWithError(ExitDataError, "cache_ttl_seconds must be a positive integer")
		}
		cfg.CacheTTLSeconds = ttl
	case "cite_template":
		cfg.CiteTemplate = value
	case "preview_template":
		cfg.PreviewTemplate = value
	default:
		exitWithError(ExitDataError, "unknown config key: %s", key)
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("%s = %s\n", key, value)
		return nil
	}
	return outputJSON(map[string]string{"status": "updated", "key": key, "value": value})
}
