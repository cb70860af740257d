package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linguoquest/linguoquest/internal/engine"
	"github.com/linguoquest/linguoquest/internal/store"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show recorded rounds and totals per mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		player := cfg.Player
		if all {
			player = ""
		}

		ctx := cmd.Context()
		repo := st.ScoreRepo()
		recent, err := repo.RecentScores(ctx, store.ScoreQuery{Player: player, Limit: limit})
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			fmt.Println("No rounds recorded yet.")
			return nil
		}

		fmt.Printf("%-6s  %-16s  %-12s  %-20s  %-8s  %5s  %6s  %s\n",
			"Seq", "Time", "Player", "Mode", "Subject", "Grade", "Points", "Penalty")
		fmt.Println(strings.Repeat("─", 96))
		for _, r := range recent {
			penalty := ""
			if r.Penalty {
				penalty = "yes"
			}
			fmt.Printf("%-6d  %-16s  %-12s  %-20s  %-8s  %5s  %6d  %s\n",
				r.Sequence,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Player, 12),
				engine.Mode(r.Mode).Title(),
				r.Subject,
				r.Grade,
				r.Points,
				penalty,
			)
		}

		totals, err := repo.ModeTotals(ctx, player)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("Totals by Mode")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-20s  %6s  %8s  %9s\n", "Mode", "Rounds", "Points", "Penalties")
		fmt.Println(strings.Repeat("─", 56))
		var rounds, points int
		for _, t := range totals {
			fmt.Printf("%-20s  %6d  %8d  %9d\n", engine.Mode(t.Mode).Title(), t.Rounds, t.Points, t.Penalties)
			rounds += t.Rounds
			points += t.Points
		}
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-20s  %6d  %8d\n", "TOTAL", rounds, points)
		return nil
	},
}

func init() {
	scoresCmd.Flags().IntP("limit", "n", 20, "Number of rounds to show")
	scoresCmd.Flags().Bool("all", false, "Show every player, not just LINGUOQUEST_PLAYER")
}
