package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cs-coach/internal/config"
	"github.com/pable/go-cs-coach/log"
)

var (
	cfgFile string
	dbPath  string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "cscoach",
	Short: "CS2 gameplay coaching tool",
	Long:  "Analyze CS2 match event dumps for gameplay mistakes: crosshair placement, avoidable deaths, utility usage, economy and positioning.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if cmd.Flags().Changed("db") {
			cfg.DBPath = dbPath
		}
		log.Init(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "path to SQLite database")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(askCmd)
}
