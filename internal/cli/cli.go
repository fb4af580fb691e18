// Package cli wires the cobra command tree over the domain services. It is
// the presentation layer: every domain failure surfaces as a printed
// message, never a panic.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"gemba.tools/internal/audit"
	"gemba.tools/internal/auth"
	"gemba.tools/internal/config"
	"gemba.tools/internal/obs"
	"gemba.tools/internal/store"
	"gemba.tools/internal/store/filekv"
	"gemba.tools/internal/store/sqlitekv"
)

var version = "0.3.1"

// app bundles the services a command needs.
type app struct {
	cfg      config.Config
	adapter  *store.Adapter
	accounts *auth.Service
	audits   *audit.Repository
	closeFn  func() error
}

func (a *app) close() {
	if a.closeFn != nil {
		_ = a.closeFn()
	}
}

type rootOptions struct {
	configFile string
	dataDir    string
	backend    string
}

func (o *rootOptions) buildApp() (*app, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.backend != "" {
		cfg.Backend = config.Backend(o.backend)
	}

	var (
		kv      store.KV
		closeFn func() error
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
			return nil, err
		}
		db, err := sqlitekv.Open(cfg.SQLitePath())
		if err != nil {
			return nil, err
		}
		kv, closeFn = db, db.Close
	case config.BackendFile:
		fs, err := filekv.New(afero.NewOsFs(), cfg.DataDir)
		if err != nil {
			return nil, err
		}
		kv = fs
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	adapter := store.NewAdapter(kv, obs.Logger())
	accounts := auth.NewService(adapter, cfg.SessionSecret, auth.WithBcryptCost(cfg.BcryptCost))
	return &app{
		cfg:      cfg,
		adapter:  adapter,
		accounts: accounts,
		audits:   audit.NewRepository(adapter),
		closeFn:  closeFn,
	}, nil
}

// NewRootCommand assembles the gemba CLI.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "gemba",
		Short:         "Local-first 5S workplace audit manager",
		Long:          "gemba manages 5S workplace audits: accounts, scored audit forms, and dashboard metrics, all persisted locally.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			obs.Init()
			obs.InitBuildInfo(version, "dev")
		},
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "path to a gemba.yaml configuration file")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "override the data directory")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "storage backend: file or sqlite")

	root.AddCommand(
		newRegisterCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newChangePasswordCommand(opts),
		newAuditCommand(opts),
		newDashboardCommand(opts),
		newQuestionsCommand(opts),
		newDirectoryCommand(opts),
	)
	return root
}
