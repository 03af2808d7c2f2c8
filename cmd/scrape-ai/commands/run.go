package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/browser"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/configutil"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/report"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/runstore"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/scrapers/catalyst"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/serviceutil"
	"github.com/matt-meaningfulgigs/scrape-ai/lib/sqliteutil"
	"github.com/spf13/cobra"
)

// Config comes from config.json5 (with config.local.json5 overrides,
// that is where the password belongs). SCRAPE_AI_PASSWORD in the
// environment or a .env file wins over both.
type Config struct {
	Enterprises   []string `json:"enterprises"`
	Password      string   `json:"password"`
	EmailDomain   string   `json:"email_domain"`
	AppUrl        string   `json:"app_url"`
	ApiBase       string   `json:"api_base"`
	Output        string   `json:"output"`
	HistoryDb     string   `json:"history_db"`
	Headless      bool     `json:"headless"`
	StrictCapture bool     `json:"strict_capture"`
}

const (
	defaultOutput    = "AI_Comments.xlsx"
	defaultHistoryDb = "scrape_history.db"
)

var runOutput *string

func init() {
	runOutput = runCmd.Flags().String("output", "", "Overrides the report path from config.")
	rootCmd.AddCommand(runCmd)
}

func readConfig() Config {
	godotenv.Load()

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if v := os.Getenv("SCRAPE_AI_PASSWORD"); v != "" {
		cfg.Password = v
	}
	if cfg.Output == "" {
		cfg.Output = defaultOutput
	}
	if cfg.HistoryDb == "" {
		cfg.HistoryDb = defaultHistoryDb
	}
	return cfg
}

var runCmd = &cobra.Command{
	Use:   "run [--output <path/to/report.xlsx>]",
	Short: "Scrapes every configured enterprise and writes the comment report.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		if len(cfg.Enterprises) == 0 {
			serviceutil.Fatal("no enterprises configured", errors.New("config key 'enterprises' is empty"))
		}
		if cfg.Password == "" {
			serviceutil.Fatal("no password configured", errors.New("set it in config.local.json5 or SCRAPE_AI_PASSWORD"))
		}
		if *runOutput != "" {
			cfg.Output = *runOutput
		}

		driver, err := browser.NewPlaywrightDriver(browser.PlaywrightOptions{
			Headless: cfg.Headless,
		})
		if err != nil {
			serviceutil.Fatal("failed to start browser driver", err)
		}
		defer driver.Close()

		scraper := catalyst.NewScraper(driver, catalyst.ScraperOptions{
			AppURL:        cfg.AppUrl,
			APIBase:       cfg.ApiBase,
			EmailDomain:   cfg.EmailDomain,
			Password:      cfg.Password,
			StrictCapture: cfg.StrictCapture,
		})

		ctx := cmd.Context()
		// the run date is fixed here so every sheet of the run shares it
		date := time.Now().UTC()

		slog.Info("starting scraping", "enterprises", len(cfg.Enterprises))
		t1 := time.Now()
		results := scraper.ScrapeAll(ctx, cfg.Enterprises)
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		workbook := report.NewWorkbook()
		for _, result := range results {
			name := report.SheetName(result.Enterprise, date)
			slog.Info("adding sheet", "sheet", name, "comments", len(result.Comments))
			if err := workbook.AppendSheet(name, report.CommentRows(result.Comments)); err != nil {
				serviceutil.Fatal("failed to build report", err)
			}
		}
		if err := workbook.WriteFile(cfg.Output); err != nil {
			serviceutil.Fatal("failed to write report", err)
		}
		slog.Info("report written", "path", cfg.Output)

		recordHistory(ctx, cfg, date, results)
		printSummary(date, results)
	},
}

// recordHistory is best-effort, a broken history db never fails a run
// that already produced its report.
func recordHistory(ctx context.Context, cfg Config, date time.Time, results []catalyst.EnterpriseResult) {
	db, err := sqliteutil.OpenDB(runstore.Schema, cfg.HistoryDb)
	if err != nil {
		slog.Warn("failed to open history db, skipping history", "path", cfg.HistoryDb, "err", err)
		return
	}
	defer db.Close()

	runs := make([]runstore.EnterpriseRun, len(results))
	for i, result := range results {
		runs[i] = runstore.EnterpriseRun{
			Enterprise: result.Enterprise,
			RunDate:    date.Format(time.DateOnly),
			Comments:   int64(len(result.Comments)),
			Failed:     result.Failed,
		}
	}
	if err := runstore.NewStore(db).Record(ctx, time.Now(), runs); err != nil {
		slog.Warn("failed to record run history", "err", err)
	}
}

func printSummary(date time.Time, results []catalyst.EnterpriseResult) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Enterprise", "Sheet", "Comments", "Status"})
	for _, result := range results {
		status := "ok"
		if result.Failed {
			status = "failed"
		}
		t.AppendRow(table.Row{
			result.Enterprise,
			report.SheetName(result.Enterprise, date),
			len(result.Comments),
			status,
		})
	}
	t.Render()
}
