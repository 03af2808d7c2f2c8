package runstore

const Schema = `
CREATE TABLE IF NOT EXISTS scrape_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	enterprise TEXT NOT NULL,
	run_date TEXT NOT NULL,
	comments INTEGER NOT NULL,
	failed INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scrape_runs_enterprise ON scrape_runs (enterprise);
`
