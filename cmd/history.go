package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milliele/pypub/internal/db"
	"github.com/milliele/pypub/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded release runs",
	Long:  "Show recorded release runs (project, version, status, failed step, publisher)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		filter, _ := cmd.Flags().GetString("filter")
		asJSON, _ := cmd.Flags().GetBool("json")

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		repo := history.NewRepository(dbConn)
		var runs []history.Run
		if filter != "" {
			runs, err = repo.FilterRuns(filter, limit)
		} else {
			runs, err = repo.ListRuns(limit)
		}
		if err != nil {
			return err
		}

		if asJSON {
			views := make([]history.RunView, 0, len(runs))
			for i := range runs {
				views = append(views, history.NewRunView(&runs[i]))
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(views)
		}

		if len(runs) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}
		for _, run := range runs {
			version := ""
			if run.Version.Valid {
				version = run.Version.String
			}
			fmt.Printf("#%d\t%s\t%s\t%s\t%s", run.ID, run.Project, version, run.Status, run.StartedAt)
			if run.FailedStep.Valid {
				fmt.Printf("\tfailed at %s", run.FailedStep.String)
				if run.ExitCode.Valid {
					fmt.Printf(" (exit %d)", run.ExitCode.Int64)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 = all)")
	historyCmd.Flags().String("filter", "", "Fuzzy filter on project, version, status, or failed step")
	historyCmd.Flags().Bool("json", false, "Emit runs as JSON")
	rootCmd.AddCommand(historyCmd)
}
