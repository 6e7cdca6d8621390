package archive

import (
	"context"
	"fmt"
	"time"

	"jobwatch-engine/internal/domain"
	"jobwatch-engine/internal/pipeline"
)

// RecordJob inserts the job keyed on its identity; a re-announced identity
// is ignored. Returns whether a row was actually added.
func (d *DB) RecordJob(ctx context.Context, j domain.Job, firstSeen time.Time) (added bool, err error) {
	remote := 0
	if j.IsRemote {
		remote = 1
	}
	_, err = d.pool.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs
  (identity, board, title, department, team, location, is_remote, employment_type, published_at, job_url, apply_url, first_seen)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		j.Identity, j.Board, j.Title, j.Department, j.Team, j.Location,
		remote, j.EmploymentType, j.PublishedAt, j.JobURL, j.ApplyURL,
		firstSeen.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("archive insert job: %w", err)
	}

	var changes int
	if e := d.pool.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// RecordRun appends one summary row for a completed cycle.
func (d *DB) RecordRun(ctx context.Context, res pipeline.Result) error {
	boolInt := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}
	_, err := d.pool.ExecContext(ctx, `
INSERT INTO runs (started_at, finished_at, first_run, skipped, fetched, new_jobs, removed, notified)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		res.StartedAt.UTC().Format(time.RFC3339),
		res.FinishedAt.UTC().Format(time.RFC3339),
		boolInt(res.FirstRun), boolInt(res.Skipped),
		res.Fetched, res.New, res.Removed, res.Notified,
	)
	if err != nil {
		return fmt.Errorf("archive insert run: %w", err)
	}
	return nil
}
