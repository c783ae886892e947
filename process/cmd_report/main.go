package main

import (
	"log/slog"
	"os"

	"github.com/so637/personal-budget-tracker-backend/pkg/database"
	"github.com/so637/personal-budget-tracker-backend/process/report"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		username string
		month    string
		list     bool
		verbose  bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a month-bounded budget report for one user",
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn, err := database.DSNFromEnv()
			if err != nil {
				return err
			}
			db, err := database.Open(dsn, slog.Default(), verbose)
			if err != nil {
				return err
			}
			r, err := report.Build(cmd.Context(), db, username, month, list)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username to report for")
	cmd.Flags().StringVarP(&month, "month", "m", "", "month to report (YYYY-MM)")
	cmd.Flags().BoolVar(&list, "list", false, "list the month's transactions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every SQL statement")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("month")
	return cmd
}
