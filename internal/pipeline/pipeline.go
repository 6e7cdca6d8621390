// Package pipeline sequences one watch cycle: fetch, load state, diff,
// persist, notify. The ordering invariant lives here: the seen-set is
// written before the first notification attempt, so a crash mid-send can
// drop alerts but never duplicate them on the next run.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"jobwatch-engine/internal/diff"
	"jobwatch-engine/internal/domain"
	"jobwatch-engine/internal/notify"
	"jobwatch-engine/internal/state"
)

// Fetcher yields the postings currently listed on one board.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Job, error)
}

// Messenger delivers one message; false means dropped after retry.
type Messenger interface {
	Send(ctx context.Context, text string) bool
}

// Archiver records history. Optional and best-effort.
type Archiver interface {
	RecordJob(ctx context.Context, j domain.Job, firstSeen time.Time) (added bool, err error)
	RecordRun(ctx context.Context, res Result) error
}

type Config struct {
	Heartbeat       bool
	SnippetMaxRunes int
}

type Pipeline struct {
	cfg      Config
	fetchers []Fetcher
	store    *state.Store
	sender   Messenger
	arch     Archiver // may be nil
	logger   *zap.SugaredLogger
	now      func() time.Time
}

func New(cfg Config, fetchers []Fetcher, store *state.Store, sender Messenger, arch Archiver, logger *zap.SugaredLogger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetchers: fetchers,
		store:    store,
		sender:   sender,
		arch:     arch,
		logger:   logger,
		now:      time.Now,
	}
}

// Result summarizes one cycle. Ephemeral: nothing here is read back on the
// next run.
type Result struct {
	StartedAt  time.Time
	FinishedAt time.Time
	FirstRun   bool
	Skipped    bool // every board failed or was empty; nothing persisted
	Fetched    int
	New        int
	Removed    int
	Notified   int
}

// Run executes one cycle. It never fails: every step degrades to
// logged-and-continue, and the caller always gets a summary.
func (p *Pipeline) Run(ctx context.Context) Result {
	res := Result{StartedAt: p.now()}

	jobs := p.fetchAll(ctx)
	res.Fetched = len(jobs)
	if len(jobs) == 0 {
		// Persisting an empty set here would mark every known job as
		// removed and re-announce the whole board after an outage.
		p.logger.Warnw("no jobs returned from any board, skipping cycle")
		res.Skipped = true
		res.FinishedAt = p.now()
		return res
	}

	current := make(map[string]struct{}, len(jobs))
	byID := make(map[string]domain.Job, len(jobs))
	for _, j := range jobs {
		current[j.Identity] = struct{}{}
		byID[j.Identity] = j
	}

	seen, firstRun, err := p.store.Load()
	if err != nil {
		p.logger.Warnw("state unreadable, starting with empty seen-set", "err", err)
	}
	res.FirstRun = firstRun

	added, removed := diff.Split(current, seen)
	res.New = len(added)
	res.Removed = len(removed)

	// Persist before notifying. Removed identities are pruned here and
	// never announced.
	if err := p.store.Save(current); err != nil {
		p.logger.Errorw("state save failed, continuing with in-memory state",
			"path", p.store.Path(), "err", err)
	}

	p.archiveJobs(ctx, byID, added)

	if firstRun {
		p.logger.Infow("first run: current jobs recorded, notifications suppressed",
			"jobs", len(current))
	} else {
		if len(removed) > 0 {
			p.logger.Infow("jobs no longer listed", "count", len(removed))
		}
		res.Notified = p.notifyNew(ctx, byID, added)
	}

	res.FinishedAt = p.now()
	p.recordRun(ctx, res)
	return res
}

// fetchAll walks the boards in order. A failing board contributes nothing;
// the run goes on with whatever the rest returned.
func (p *Pipeline) fetchAll(ctx context.Context) []domain.Job {
	var out []domain.Job
	for _, f := range p.fetchers {
		jobs, err := f.Fetch(ctx)
		if err != nil {
			p.logger.Errorw("board fetch failed", "board", f.Name(), "err", err)
			continue
		}
		p.logger.Infow("board fetched", "board", f.Name(), "jobs", len(jobs))
		out = append(out, jobs...)
	}
	return out
}

// notifyNew sends one alert per new identity, in sorted order, each with an
// independent outcome. With nothing new it sends the heartbeat instead.
func (p *Pipeline) notifyNew(ctx context.Context, byID map[string]domain.Job, added []string) int {
	if len(added) == 0 {
		p.logger.Infow("no new jobs this cycle")
		if p.cfg.Heartbeat {
			p.sender.Send(ctx, notify.FormatHeartbeat(p.now()))
		}
		return 0
	}

	p.logger.Infow("new jobs found, sending alerts", "count", len(added))
	sent := 0
	for _, id := range added {
		j := byID[id]
		if p.sender.Send(ctx, notify.FormatNewJob(j, p.cfg.SnippetMaxRunes)) {
			sent++
			p.logger.Infow("notified", "board", j.Board, "title", j.Title, "id", id)
		}
	}
	return sent
}

func (p *Pipeline) archiveJobs(ctx context.Context, byID map[string]domain.Job, added []string) {
	if p.arch == nil {
		return
	}
	firstSeen := p.now()
	for _, id := range added {
		if _, err := p.arch.RecordJob(ctx, byID[id], firstSeen); err != nil {
			p.logger.Warnw("archive insert failed", "id", id, "err", err)
		}
	}
}

func (p *Pipeline) recordRun(ctx context.Context, res Result) {
	if p.arch == nil {
		return
	}
	if err := p.arch.RecordRun(ctx, res); err != nil {
		p.logger.Warnw("archive run record failed", "err", err)
	}
}
