// petctl is an operator tool for NotionPet.
//
// Usage:
//
//	petctl level <exp>                      - Show level, progress and rebirths for an experience total
//	petctl rewards --order a,b,c            - Show the reward of each rank for a difficulty order
//	petctl reconcile --previous a,b --current b,c
//	                                        - Merge a saved difficulty order with the current options
//	petctl token <user-id> [--ttl 24h]      - Issue an API token for a user
//	petctl cooldown-reset <user-id>         - Clear a user's manual refresh cooldown
//	petctl doctor                           - Check the environment file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "petctl",
	Short: "Operator tool for NotionPet",
	Long: `petctl inspects the progression and difficulty rules offline and
issues API tokens for users. Commands that touch the database read the
same environment as the server.

Examples:
  petctl level 3300
  petctl rewards --order Hard,Medium,Easy
  petctl reconcile --previous Hard,Easy --current Easy,Hard,Epic
  petctl token 7c1e0d36 --ttl 720h`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(rewardsCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(cooldownResetCmd)
	rootCmd.AddCommand(doctorCmd)
}
