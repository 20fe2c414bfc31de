package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	accountinadapter "studylog/internal/modules/account/adapter/in"
	accountoutadapter "studylog/internal/modules/account/adapter/out"
	accountdto "studylog/internal/modules/account/dto"
	accountservice "studylog/internal/modules/account/service"
	accountusecase "studylog/internal/modules/account/usecase"
	exportinadapter "studylog/internal/modules/export/adapter/in"
	exportoutadapter "studylog/internal/modules/export/adapter/out"
	exportusecase "studylog/internal/modules/export/usecase"
	goalinadapter "studylog/internal/modules/goal/adapter/in"
	goaloutadapter "studylog/internal/modules/goal/adapter/out"
	goalservice "studylog/internal/modules/goal/service"
	goalusecase "studylog/internal/modules/goal/usecase"
	plugininadapter "studylog/internal/modules/plugin/adapter/in"
	pluginoutadapter "studylog/internal/modules/plugin/adapter/out"
	pluginservice "studylog/internal/modules/plugin/service"
	pluginusecase "studylog/internal/modules/plugin/usecase"
	sessioninadapter "studylog/internal/modules/session/adapter/in"
	sessionoutadapter "studylog/internal/modules/session/adapter/out"
	sessiondto "studylog/internal/modules/session/dto"
	sessionservice "studylog/internal/modules/session/service"
	sessionusecase "studylog/internal/modules/session/usecase"
	statsinadapter "studylog/internal/modules/stats/adapter/in"
	statsoutadapter "studylog/internal/modules/stats/adapter/out"
	statsdomain "studylog/internal/modules/stats/domain"
	statsout "studylog/internal/modules/stats/port/out"
	statsservice "studylog/internal/modules/stats/service"
	statsusecase "studylog/internal/modules/stats/usecase"
	"studylog/internal/platform/clock"
	"studylog/internal/platform/config"
	"studylog/internal/platform/id"
	"studylog/internal/platform/logging"
	"studylog/internal/platform/sqlitedb"
	uiapp "studylog/internal/ui/app"
)

const bcryptCost = 10

// Version is reported by the MCP server.
const Version = "0.1.0"

type App struct {
	Config     config.Config
	Logger     hclog.Logger
	AccountCLI accountinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	GoalCLI    goalinadapter.CLIHandler
	StatsCLI   statsinadapter.CLIHandler
	ExportCLI  exportinadapter.CLIHandler
	PluginCLI  plugininadapter.CLIHandler

	db *sql.DB
}

// New wires every module against the vault in cfg and seeds the first
// administrator. Logs go to logOut.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(cfg.LogLevel, logOut)
	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	sessionIndex, err := sessionoutadapter.NewSQLiteSessionIndex(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new session index: %w", err)
	}
	sessionUC := sessionusecase.NewInteractor(sessionservice.NewSessionService(
		ids, cfg.Location, sessionoutadapter.NewVaultSessionStore(cfg.VaultPath), sessionIndex, logger))

	goalStore, err := goaloutadapter.NewSQLiteGoalStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new goal store: %w", err)
	}
	goalUC := goalusecase.NewInteractor(goalservice.NewGoalService(clk, goalStore, logger))

	renderer, err := statsoutadapter.NewMustacheRenderer(cfg.Report.Template)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("report template: %w", err)
	}
	var notifier statsout.Notifier
	if cfg.Notify {
		notifier = statsoutadapter.NewDesktopNotifier("studylog")
	}
	goalPeriod, err := statsdomain.ParsePeriod(cfg.GoalPeriod)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	statsUC := statsusecase.NewInteractor(statsservice.NewStatsService(
		clk, cfg.Location, goalPeriod,
		statsoutadapter.NewSessionSourceAdapter(sessionUC),
		statsoutadapter.NewGoalSourceAdapter(goalUC),
		renderer, notifier, logger))

	userStore, err := accountoutadapter.NewSQLiteUserStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("new user store: %w", err)
	}
	accountUC := accountusecase.NewInteractor(accountservice.NewAccountService(
		clk, ids, userStore,
		accountoutadapter.NewFileCurrentUserStore(cfg.StateDir, clk),
		accountoutadapter.NewBcryptHasher(bcryptCost), logger), sessionUC, goalUC, statsUC)

	exportUC := exportusecase.NewInteractor(exportusecase.Deps{
		Clock:     clk,
		Location:  cfg.Location,
		Stats:     statsUC,
		Files:     exportoutadapter.NewLocalFileSink("."),
		Writer:    exportoutadapter.NewFPDFWriter("."),
		Inspector: exportoutadapter.NewPDFInspector("."),
		Clipboard: exportoutadapter.NewSystemClipboard(),
		Dashboard: exportoutadapter.NewVaultDashboardStore(cfg.VaultPath),
		Logger:    logger,
	})

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.StateDir),
		pluginoutadapter.NewGRPCHost(logger),
		logger,
	), statsUC, cfg.VaultPath)

	seed, err := accountUC.EnsureAdmin(context.Background(), cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if seed.Created {
		logger.Info("administrator seeded", "email", cfg.Admin.Email)
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		AccountCLI: accountinadapter.NewCLIHandler(accountUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		GoalCLI:    goalinadapter.NewCLIHandler(goalUC),
		StatsCLI:   statsinadapter.NewCLIHandler(statsUC),
		ExportCLI:  exportinadapter.NewCLIHandler(exportUC),
		PluginCLI:  plugininadapter.NewCLIHandler(pluginUC),
		db:         db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// MCPServer serves the logged-in user's statistics over stdio.
func (a *App) MCPServer(user accountdto.UserOutput) *statsinadapter.MCPServer {
	return statsinadapter.NewMCPServer(a.StatsCLI, user.ID, Version, a.Config.Location)
}

func RunTUI(app *App, user accountdto.UserOutput) error {
	model := uiapp.NewModel(uiapp.Ports{
		Sessions: sessionDeleter{app.SessionCLI},
		Goals:    app.GoalCLI,
		Stats:    app.StatsCLI,
		Accounts: accountPort{app.AccountCLI},
		Plugins:  app.PluginCLI,
		Export:   app.ExportCLI,
	}, user, app.Config.Location)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// sessionDeleter and accountPort adapt CLI handler method shapes to the TUI ports.

type sessionDeleter struct{ sessioninadapter.CLIHandler }

func (s sessionDeleter) Delete(ctx context.Context, ownerID string, ids ...string) (sessiondto.DeleteOutput, error) {
	return s.CLIHandler.Delete(ctx, ownerID, ids)
}

type accountPort struct{ accountinadapter.CLIHandler }

func (a accountPort) ListUsers(ctx context.Context) ([]accountdto.UserOutput, error) {
	return a.Users(ctx)
}
