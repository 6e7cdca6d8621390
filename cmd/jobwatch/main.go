package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"jobwatch-engine/internal/archive"
	"jobwatch-engine/internal/config"
	"jobwatch-engine/internal/ingest/ashby"
	"jobwatch-engine/internal/notify"
	"jobwatch-engine/internal/pipeline"
	"jobwatch-engine/internal/secrets"
	"jobwatch-engine/internal/state"
)

func main() {
	setup := flag.Bool("setup", false,
		"store TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID from the environment into the OS keychain, then exit")
	clearSecrets := flag.Bool("clear-secrets", false,
		"remove stored Telegram credentials from the OS keychain, then exit")
	flag.Parse()

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	if *setup {
		if err := secrets.Store(); err != nil {
			logger.Fatalf("setup failed: %v", err)
		}
		logger.Infow("telegram credentials stored in keychain")
		return
	}
	if *clearSecrets {
		if err := secrets.Clear(); err != nil {
			logger.Fatalf("clearing secrets failed: %v", err)
		}
		logger.Infow("telegram credentials removed from keychain")
		return
	}

	// Data dir: env if provided (the scheduler can pass one), else local.
	dataDir := os.Getenv("JOBWATCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logger.Fatalf("data dir %s: %v", dataDir, err)
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		logger.Fatalf("config bootstrap failed: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("config load failed (%s): %v", cfgPath, err)
	}
	v := config.Validate(cfg)
	for _, w := range v.Warnings {
		logger.Warnw("config warning", "msg", w)
	}
	if !v.OK() {
		logger.Fatalf("config invalid (%s):\n- %s", cfgPath, strings.Join(v.Errors, "\n- "))
	}

	// Fail fast on missing credentials, before any network call.
	creds, err := secrets.Resolve()
	if err != nil {
		logger.Fatalf("%v", err)
	}

	// Best-effort guard against overlapping runs. The scheduler owns
	// non-overlap; this just makes a misconfigured one harmless.
	lock := flock.New(filepath.Join(dataDir, "jobwatch.lock"))
	if locked, lerr := lock.TryLock(); lerr != nil {
		logger.Warnw("run lock unavailable, continuing", "err", lerr)
	} else if !locked {
		logger.Warnw("another run is in progress, exiting")
		return
	} else {
		defer func() { _ = lock.Unlock() }()
	}

	var arch pipeline.Archiver
	if cfg.Archive.Enabled {
		db, aerr := archive.Open(filepath.Join(dataDir, cfg.Archive.File))
		if aerr != nil {
			logger.Warnw("archive unavailable, continuing without it", "err", aerr)
		} else {
			defer func() { _ = db.Close() }()
			arch = db
		}
	}

	fetchers := make([]pipeline.Fetcher, 0, len(cfg.Boards))
	for _, b := range cfg.Boards {
		fetchers = append(fetchers, ashby.New(ashby.Config{
			Board:   b.Name,
			URL:     b.URL,
			Timeout: time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		}))
	}

	sender := notify.New(notify.Config{
		BotToken:          creds.BotToken,
		ChatID:            creds.ChatID,
		Timeout:           time.Duration(cfg.Notify.TimeoutSeconds) * time.Second,
		RetryDelay:        time.Duration(cfg.Notify.RetryDelaySeconds) * time.Second,
		MessagesPerSecond: cfg.Notify.MessagesPerSecond,
	}, logger)

	store := state.NewStore(filepath.Join(dataDir, cfg.State.File))

	pipe := pipeline.New(pipeline.Config{
		Heartbeat:       cfg.Notify.Heartbeat,
		SnippetMaxRunes: cfg.Notify.SnippetMaxRunes,
	}, fetchers, store, sender, arch, logger)

	res := pipe.Run(context.Background())

	logger.Infow("run complete",
		"fetched", res.Fetched,
		"new", res.New,
		"removed", res.Removed,
		"notified", res.Notified,
		"first_run", res.FirstRun,
		"skipped", res.Skipped,
		"took", res.FinishedAt.Sub(res.StartedAt))
}

func newLogger() *zap.SugaredLogger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		zap.InfoLevel,
	)
	return zap.New(core).Sugar().Named("jobwatch")
}
