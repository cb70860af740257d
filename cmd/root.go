package cmd

import (
	"github.com/spf13/cobra"

	"github.com/linguoquest/linguoquest/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "linguoquest",
	Short: "Language quiz arcade",
	Long: "LinguoQuest: four quiz games (Escape, Battle, Story, Sprint) over LLM-generated " +
		"English, Hindi and French questions for grades 6-8.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINGUOQUEST_DB)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LINGUOQUEST_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("env-file", "", "Read settings from this .env file instead of ./.env")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(syllabusCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment, then applies persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var files []string
	if f, _ := cmd.Flags().GetString("env-file"); f != "" {
		files = append(files, f)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	return cfg, cfg.Validate()
}
