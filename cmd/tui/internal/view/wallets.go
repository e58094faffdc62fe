package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/ledger"
)

type walletState int

const (
	walletStateList walletState = iota
	walletStateAdding
)

type WalletsModel struct {
	CommonModel
	svc *ledger.Service

	state  walletState
	cursor int
	form   *huh.Form
	status string

	formName     string
	formCurrency string
}

func NewWalletsModel(svc *ledger.Service) WalletsModel {
	return WalletsModel{svc: svc}
}

func (m WalletsModel) Title() string { return "Wallets" }

func (m WalletsModel) ShortHelp() string {
	if m.state == walletStateAdding {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | Enter: switch | a: add | d: delete"
}

func (m WalletsModel) Init() tea.Cmd {
	return nil
}

func (m WalletsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(walletMutationMsg); ok {
		if result.err != nil {
			m.status = fmt.Sprintf("Error: %v", result.err)
		} else {
			m.status = result.status
		}

		m.state = walletStateList
		m.cursor = 0

		return m, nil
	}

	switch m.state {
	case walletStateList:
		return m.updateList(msg)
	case walletStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m WalletsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	wallets := m.svc.Store().Wallets()

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(wallets)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(wallets) {
			return m, m.selectWalletCmd(wallets[m.cursor].ID)
		}
	case "a":
		return m.startAdding()
	case "d":
		if m.cursor < len(wallets) {
			return m, m.deleteWalletCmd(wallets[m.cursor].ID)
		}
	}

	return m, nil
}

func (m WalletsModel) startAdding() (tea.Model, tea.Cmd) {
	m.formName = ""
	m.formCurrency = "USD"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Wallet Name").
				Value(&m.formName),

			huh.NewInput().
				Key("currency").
				Title("Currency").
				Placeholder("USD").
				Value(&m.formCurrency),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = walletStateAdding

	return m, m.form.Init()
}

func (m WalletsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = walletStateList
			m.form = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	name := m.form.GetString("name")
	currency := m.form.GetString("currency")
	svc := m.svc

	return m, func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if _, err := svc.CreateWallet(ctx, ledger.WalletParams{Name: name, Currency: currency}); err != nil {
			return walletMutationMsg{err: err}
		}

		return walletMutationMsg{status: "Wallet added."}
	}
}

func (m WalletsModel) View() string {
	if m.state == walletStateAdding {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	store := m.svc.Store()
	current := store.CurrentWallet()

	s := "Wallets:\n\n"

	for i, w := range store.Wallets() {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		marker := " "
		if current != nil && current.ID == w.ID {
			marker = "*"
		}

		line := fmt.Sprintf("%s %s %s  %s", cursor, marker, w.Name, FormatMoney(w.Balance, w.Currency))
		if w.IsDefault {
			line += lipgloss.NewStyle().Faint(true).Render("  (default)")
		}

		s += line + "\n"
	}

	if m.status != "" {
		s += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(s)
}

type walletMutationMsg struct {
	status string
	err    error
}

func (m WalletsModel) selectWalletCmd(id uuid.UUID) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.SelectWallet(ctx, id); err != nil {
			return walletMutationMsg{err: err}
		}

		return walletMutationMsg{status: "Switched wallet."}
	}
}

func (m WalletsModel) deleteWalletCmd(id uuid.UUID) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.DeleteWallet(ctx, id); err != nil {
			return walletMutationMsg{err: err}
		}

		return walletMutationMsg{status: "Wallet deleted."}
	}
}
