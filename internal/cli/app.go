package cli

import (
	"log/slog"

	"github.com/srplumbing/srbill/internal/catalog"
	"github.com/srplumbing/srbill/internal/config"
	"github.com/srplumbing/srbill/internal/invoices"
	"github.com/srplumbing/srbill/internal/payments"
	"github.com/srplumbing/srbill/internal/render"
	"github.com/srplumbing/srbill/internal/reports"
	"github.com/srplumbing/srbill/internal/storage"
)

// app bundles the configured services a subcommand works against.
type app struct {
	cfg      config.Config
	sub      *storage.SQLiteSubstrate
	store    *storage.Store
	catalog  *catalog.Service
	invoices *invoices.Service
	payments *payments.Service
	gate     *payments.Gate
	reports  *reports.Engine
	render   *render.Renderer
}

// openApp loads configuration, opens the database and wires every
// service. Callers must Close the returned app.
func openApp(opts *RootOptions) (*app, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading config", err)
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}

	sub, err := storage.OpenSQLite(cfg.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening database", err)
	}

	st := storage.New(sub)
	if err := st.Init(); err != nil {
		sub.Close()
		return nil, WrapExitError(ExitCommandError, "initializing store", err)
	}

	inv := invoices.NewService(st)
	pay := payments.NewService(st)

	slog.Debug("opened billing database", "path", cfg.Database)

	return &app{
		cfg:      cfg,
		sub:      sub,
		store:    st,
		catalog:  catalog.NewService(st),
		invoices: inv,
		payments: pay,
		gate:     payments.NewGate(st),
		reports:  reports.NewEngine(inv, pay),
		render:   render.New(cfg),
	}, nil
}

func (a *app) Close() error {
	return a.sub.Close()
}
