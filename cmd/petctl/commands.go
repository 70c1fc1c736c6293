package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/osse101/NotionPet_Go/internal/auth"
	"github.com/osse101/NotionPet_Go/internal/config"
	"github.com/osse101/NotionPet_Go/internal/cooldown"
	"github.com/osse101/NotionPet_Go/internal/database"
	"github.com/osse101/NotionPet_Go/internal/difficulty"
	"github.com/osse101/NotionPet_Go/internal/progression"
)

var (
	flagOrder    []string
	flagPrevious []string
	flagCurrent  []string
	flagTTL      time.Duration
	flagCheckDB  bool
)

var levelCmd = &cobra.Command{
	Use:   "level <exp>",
	Short: "Show the progression for a lifetime experience total",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid experience %q: %w", args[0], err)
		}
		result, err := progression.Compute(exp)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "level:      %d\n", result.Level)
		fmt.Fprintf(out, "progress:   %.1f%%\n", result.Progress)
		fmt.Fprintf(out, "xp:         %d / %d\n", result.XPInCurrentLevel, result.XPForNextLevel)
		fmt.Fprintf(out, "rebirths:   %d\n", result.RebirthCount)
		fmt.Fprintf(out, "cycle xp:   %d\n", result.CurrentCycleXP)
		return nil
	},
}

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Show the experience reward of each difficulty option",
	RunE: func(cmd *cobra.Command, _ []string) error {
		view := difficulty.BuildView("", difficulty.NormalizeNames(flagOrder))
		out := cmd.OutOrStdout()
		for _, tier := range view.Rewards {
			name := tier.OptionName
			if name == "" {
				name = "-"
			}
			fmt.Fprintf(out, "%d. %-20s %d\n", tier.Rank, name, tier.Exp)
		}
		if len(view.Unranked) > 0 {
			fmt.Fprintf(out, "other (%d): %s\n", view.OtherExp, strings.Join(view.Unranked, ", "))
		}
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Merge a saved difficulty order with the property's current options",
	RunE: func(cmd *cobra.Command, _ []string) error {
		merged := difficulty.ReconcileOrder(difficulty.NormalizeNames(flagPrevious), difficulty.NormalizeNames(flagCurrent))
		out := cmd.OutOrStdout()
		for i, name := range merged {
			fmt.Fprintf(out, "%d. %s\n", i+1, name)
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an API token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		token, err := auth.NewAuthenticator(cfg.JWTSecret, cfg.JWTIssuer).Issue(args[0], flagTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

var cooldownResetCmd = &cobra.Command{
	Use:   "cooldown-reset <user-id>",
	Short: "Let a user refresh experience again right away",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		pool, err := database.NewPool(cfg.GetDBConnString(), 1, time.Minute, time.Minute)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := cooldown.NewPostgresService(pool, cooldown.Config{})
		if err := svc.Clear(cmd.Context(), args[0], cooldown.ActionRefresh); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cooldown cleared for %s\n", args[0])
		return nil
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the environment is complete",
	RunE: func(cmd *cobra.Command, _ []string) error {
		warnings, err := config.ValidateEnvWithWarnings()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		fmt.Fprintln(out, "environment ok")
		if !flagCheckDB {
			return nil
		}

		db := config.LoadDatabase()
		pool, err := database.NewPool(db.GetDBConnString(), 1, time.Minute, time.Minute)
		if err != nil {
			return err
		}
		defer pool.Close()
		pending, err := database.PendingMigrations(cmd.Context(), pool)
		if err != nil {
			return err
		}
		if pending > 0 {
			return fmt.Errorf("%d migration(s) pending, run setup", pending)
		}
		fmt.Fprintln(out, "database ok")
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&flagCheckDB, "db", false, "also connect to the database and check migrations")
	rewardsCmd.Flags().StringSliceVar(&flagOrder, "order", nil, "difficulty options from hardest to easiest")
	_ = rewardsCmd.MarkFlagRequired("order")

	reconcileCmd.Flags().StringSliceVar(&flagPrevious, "previous", nil, "saved order")
	reconcileCmd.Flags().StringSliceVar(&flagCurrent, "current", nil, "options currently on the property")

	tokenCmd.Flags().DurationVar(&flagTTL, "ttl", 24*time.Hour, "token lifetime")
}
