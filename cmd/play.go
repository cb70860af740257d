package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/linguoquest/linguoquest/internal/app"
	"github.com/linguoquest/linguoquest/internal/arcade"
	"github.com/linguoquest/linguoquest/internal/bank"
	"github.com/linguoquest/linguoquest/internal/logging"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds dependencies, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The screen belongs to the UI, so the log goes to a file.
	if cfg.Log.OutputPath == "stderr" || cfg.Log.OutputPath == "" {
		if cfg.Log.OutputPath, err = logFilePath(); err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	supplier, offline := newSupplier(cmd.Context(), cfg, st.LLMEventRepo(), bank.NewMemory(), log)
	launcher := arcade.New(supplier, cfg.Player,
		arcade.WithScores(st.ScoreRepo()),
		arcade.WithLogger(log),
	)

	log.Info("starting terminal ui", zap.String("player", cfg.Player), zap.Bool("offline", offline))
	return app.Run(app.Deps{
		Launcher: launcher,
		Scores:   st.ScoreRepo(),
		Offline:  offline,
	})
}
