package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/centavoapp/centavo/cmd/tui/internal/view"
	"github.com/centavoapp/centavo/internal/config"
	"github.com/centavoapp/centavo/internal/database"
	"github.com/centavoapp/centavo/internal/export"
	"github.com/centavoapp/centavo/internal/importer"
	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/report"
	"github.com/centavoapp/centavo/internal/snapshot/memstore"
	"github.com/centavoapp/centavo/internal/snapshot/sqlstore"
)

type View int

const (
	ViewLogin        View = 0
	ViewMenu         View = 1
	ViewTransactions View = 2
	ViewWallets      View = 3
	ViewBudgets      View = 4
	ViewReports      View = 5
	ViewExport       View = 6
	ViewImport       View = 7
)

type model struct {
	ledgerService *ledger.Service
	reportService *report.Service
	exportService *export.Service
	importService *importer.Service

	currentView View

	loginView        view.LoginModel
	transactionsView view.TransactionsModel
	walletsView      view.WalletsModel
	budgetsView      view.BudgetsModel
	reportsView      view.ReportModel
	exportView       view.ExportModel
	importView       view.ImportModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var snap ledger.Snapshotter

	switch cfg.Storage.Backend {
	case database.BackendMemory:
		snap = memstore.New()
	case database.BackendPostgres:
		db, err := database.OpenPostgres(cfg.ConnectionString())
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}

		snap = sqlstore.New(db)
	default:
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}

		snap = sqlstore.New(db)
	}

	ledgerSvc := ledger.NewService(ledger.NewStore(), snap, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ledgerSvc.Load(ctx); err != nil {
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	reportSvc := report.New(ledgerSvc.Store())
	exportSvc := export.NewService(ledgerSvc.Store())
	importSvc := importer.NewService(ledgerSvc, slog.Default())

	startView := ViewLogin
	if ledgerSvc.Store().User() != nil {
		// A persisted session skips the login screen.
		startView = ViewMenu
	}

	return model{
		ledgerService: ledgerSvc,
		reportService: reportSvc,
		exportService: exportSvc,
		importService: importSvc,
		currentView:   startView,
		loginView:     view.NewLoginModel(ledgerSvc),
	}
}

func (m model) Init() tea.Cmd {
	if m.currentView == ViewLogin {
		return m.loginView.Init()
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.ledgerService)

				return m, m.transactionsView.Init()
			case "2":
				m.currentView = ViewWallets
				m.walletsView = view.NewWalletsModel(m.ledgerService)

				return m, m.walletsView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.ledgerService, m.reportService)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewReports
				m.reportsView = view.NewReportModel(m.reportService)

				return m, m.reportsView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			case "6":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.importService)

				return m, m.importView.Init()
			case "0":
				m.ledgerService.Logout(context.Background())
				m.currentView = ViewLogin
				m.loginView = view.NewLoginModel(m.ledgerService)

				return m, m.loginView.Init()
			}
		}
	case view.SessionStartedMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewWallets:
		var newModel tea.Model
		newModel, cmd = m.walletsView.Update(msg)
		m.walletsView = newModel.(view.WalletsModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewReports:
		var newModel tea.Model
		newModel, cmd = m.reportsView.Update(msg)
		m.reportsView = newModel.(view.ReportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return m.menuView()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewWallets:
		return m.walletsView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewReports:
		return m.reportsView.View()
	case ViewExport:
		return m.exportView.View()
	case ViewImport:
		return m.importView.View()
	}

	return "Unknown View"
}

func (m model) menuView() string {
	header := "Centavo"

	if user := m.ledgerService.Store().User(); user != nil {
		header = fmt.Sprintf("Centavo — %s", user.FullName)
	}

	if wallet := m.ledgerService.Store().CurrentWallet(); wallet != nil {
		header += fmt.Sprintf("\nWallet: %s (%s)", wallet.Name, view.FormatMoney(wallet.Balance, wallet.Currency))
	}

	return lipgloss.NewStyle().Padding(2).Render(
		header + "\n\n" +
			"1. Transactions\n" +
			"2. Wallets\n" +
			"3. Budgets\n" +
			"4. Reports\n" +
			"5. Export\n" +
			"6. Import\n\n" +
			"0. Logout\n" +
			"q. Quit",
	)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
