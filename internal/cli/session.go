package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradetracker/config"
	"github.com/rustyeddy/tradetracker/internal/logging"
	"github.com/rustyeddy/tradetracker/ledger"
	"github.com/rustyeddy/tradetracker/report"
	"github.com/rustyeddy/tradetracker/tracker"
)

// session is one command's view of the configured ledger.
type session struct {
	cfg     *config.Config
	log     *zap.Logger
	store   *ledger.Store
	tracker *tracker.Tracker
}

// loadConfig resolves the configuration: defaults, then the config file,
// then .env and TRACKER_* variables, then flags.
func (rc *RootConfig) loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := config.Default()
	if rc.ConfigPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(rc.ConfigPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if rc.StoreType != "" {
		cfg.Store.Type = rc.StoreType
	}
	if rc.StorePath != "" {
		cfg.Store.Path = rc.StorePath
	}
	if rc.LogLevel != "" {
		cfg.Log.Level = rc.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (rc *RootConfig) open() (*session, error) {
	cfg, err := rc.loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	backend, err := newBackend(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	ttl, err := cfg.Cache.ParseTTL()
	if err != nil {
		return nil, err
	}
	opts := []ledger.StoreOption{
		ledger.WithCache(ledger.NewCache(ttl)),
		ledger.WithLogger(log),
	}
	if cfg.Store.ConflictCheck {
		opts = append(opts, ledger.WithConflictCheck())
	}
	store := ledger.NewStore(backend, ledger.Schema{IncludeValue: cfg.Store.ValueColumn}, opts...)

	opening, err := cfg.Account.Opening()
	if err != nil {
		return nil, err
	}

	log.Debug("store opened",
		zap.String("type", cfg.Store.Type),
		zap.String("path", cfg.Store.Path))

	return &session{
		cfg:   cfg,
		log:   log,
		store: store,
		tracker: tracker.New(store,
			tracker.WithOpeningValue(opening),
			tracker.WithLogger(log)),
	}, nil
}

func (s *session) Close() error {
	_ = s.log.Sync()
	return s.store.Close()
}

func (s *session) reportOptions() report.Options {
	return report.Options{Currency: s.cfg.Account.Currency}
}

func newBackend(sc config.StoreConfig) (ledger.Backend, error) {
	switch sc.Type {
	case "csv":
		return ledger.NewCSV(sc.Path), nil
	case "sqlite":
		return ledger.NewSQLite(sc.Path)
	case "memory":
		return ledger.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store type %q", sc.Type)
}

// render prints Markdown, styled when writing to a terminal.
func (rc *RootConfig) render(cmd *cobra.Command, md string) error {
	out := cmd.OutOrStdout()
	if !rc.Plain && isTerminal(out) {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
		if md, err = r.Render(md); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	} else if md != "" && md[len(md)-1] != '\n' {
		md += "\n"
	}
	_, err := io.WriteString(out, md)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
