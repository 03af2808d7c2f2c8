// Package runstore keeps a local history of scrape runs, one row per
// enterprise per run.
package runstore

import (
	"context"
	"database/sql"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

type EnterpriseRun struct {
	Enterprise string
	RunDate    string
	Comments   int64
	Failed     bool
}

// Record writes every enterprise's outcome of one run in a single
// transaction.
func (s Store) Record(ctx context.Context, at time.Time, runs []EnterpriseRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, run := range runs {
		failed := 0
		if run.Failed {
			failed = 1
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO scrape_runs (enterprise, run_date, comments, failed, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			run.Enterprise, run.RunDate, run.Comments, failed, at.Unix(),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// History returns recorded runs, newest first. An empty enterprise
// returns every enterprise's history.
func (s Store) History(ctx context.Context, enterprise string) ([]EnterpriseRun, error) {
	query := `SELECT enterprise, run_date, comments, failed FROM scrape_runs`
	args := []any{}
	if enterprise != "" {
		query += ` WHERE enterprise = ?`
		args = append(args, enterprise)
	}
	query += ` ORDER BY created_at DESC, enterprise ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EnterpriseRun
	for rows.Next() {
		var run EnterpriseRun
		var failed int
		if err := rows.Scan(&run.Enterprise, &run.RunDate, &run.Comments, &failed); err != nil {
			return nil, err
		}
		run.Failed = failed != 0
		out = append(out, run)
	}
	return out, rows.Err()
}
