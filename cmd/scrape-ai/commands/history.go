package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/runstore"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/serviceutil"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/sqliteutil"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history [enterprise]",
	Short: "Shows recorded scrape runs, newest first.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()

		enterprise := ""
		if len(args) == 1 {
			enterprise = args[0]
		}

		db, err := sqliteutil.OpenDB(runstore.Schema, cfg.HistoryDb)
		if err != nil {
			serviceutil.Fatal("failed to open history db", err)
		}
		defer db.Close()

		runs, err := runstore.NewStore(db).History(cmd.Context(), enterprise)
		if err != nil {
			serviceutil.Fatal("failed to read history", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Enterprise", "Date", "Comments", "Status"})
		for _, run := range runs {
			status := "ok"
			if run.Failed {
				status = "failed"
			}
			t.AppendRow(table.Row{run.Enterprise, run.RunDate, run.Comments, status})
		}
		t.Render()
	},
}
