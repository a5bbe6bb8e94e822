package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mithun-t/expense-tracker/internal/config"
	"github.com/mithun-t/expense-tracker/internal/expense"
	applog "github.com/mithun-t/expense-tracker/internal/log"
	"github.com/mithun-t/expense-tracker/internal/storage"
)

// session is one command invocation's view of the expense data: config,
// opened backend and a loaded store.
type session struct {
	cfg     *config.Config
	logger  *applog.Logger
	backend storage.Backend
	store   *expense.Store
}

// openSession resolves config (file, then .env/environment, then flags),
// opens storage and loads the collection. A failed load is logged and the
// session starts empty.
func openSession(ctx context.Context, cmd *cobra.Command, opts *globalOptions) (*session, error) {
	configPath, err := filepath.Abs(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	baseDir := filepath.Dir(configPath)

	if err := config.LoadEnv(filepath.Join(baseDir, ".env")); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if opts.backend != "" {
		cfg.Storage.Backend = opts.backend
	}
	if opts.dataPath != "" {
		cfg.Storage.Path = opts.dataPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := applog.DefaultConfig()
	logCfg.Level, _ = applog.ParseLevel(cfg.Log.Level)
	logCfg.Component = applog.ComponentCLI
	logCfg.Output = cmd.ErrOrStderr()
	logger := applog.New(logCfg)
	applog.SetDefault(logger)

	backend, err := storage.Open(cfg.StorageOptions(baseDir))
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	logger.WithComponent(applog.ComponentStorage).DebugContext(ctx, "storage opened",
		applog.FieldBackend, cfg.Storage.Backend)

	store := expense.NewStore(backend, cfg.Storage.Key, logger)
	_ = store.Load(ctx)

	return &session{cfg: cfg, logger: logger, backend: backend, store: store}, nil
}

func (s *session) Close() error {
	return s.backend.Close()
}

func (s *session) money(d decimal.Decimal) string {
	return s.cfg.Display.Currency + d.StringFixed(2)
}

// withSession opens a session, runs fn and closes the session.
func withSession(cmd *cobra.Command, opts *globalOptions, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

// parseDate accepts "2006-01-02" (local midnight) or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
