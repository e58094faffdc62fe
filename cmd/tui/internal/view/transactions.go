package view

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/ledger"
)

type txState int

const (
	txStateList txState = iota
	txStateAdding
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx       *ledger.Transaction
	category string
}

func (i txItem) Title() string {
	amount := FormatAmount(i.tx.Amount)
	if i.tx.Type == ledger.TypeExpense {
		amount = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("-" + amount)
	} else {
		amount = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render("+" + amount)
	}

	return fmt.Sprintf("%s  %s  %s", FormatDate(i.tx.Date), amount, i.tx.Description)
}

func (i txItem) Description() string {
	return lipgloss.NewStyle().Faint(true).Render(i.category)
}

func (i txItem) FilterValue() string {
	return i.tx.Description + " " + i.category
}

type TransactionsModel struct {
	CommonModel
	svc *ledger.Service

	state  txState
	list   list.Model
	form   *huh.Form
	status string

	formDesc     string
	formAmount   string
	formCategory string
	formDate     string
}

func NewTransactionsModel(svc *ledger.Service) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	m := TransactionsModel{svc: svc, list: l}
	m.refreshListItems()

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateList:
		return "Esc: back | a: add | d: delete | /: filter"
	case txStateAdding:
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return ""
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case txMutationMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.status
		}

		m.state = txStateList
		m.refreshListItems()

		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	}

	switch m.state {
	case txStateList:
		return m.updateList(msg)
	case txStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.list.FilterState() != list.Filtering {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "a":
				return m.startAdding()
			case "d":
				return m.deleteSelected()
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startAdding() (tea.Model, tea.Cmd) {
	categories := m.svc.Store().Categories()
	if len(categories) == 0 {
		m.status = "No categories available."
		return m, nil
	}

	options := make([]huh.Option[string], len(categories))
	for i, c := range categories {
		label := fmt.Sprintf("%s %s (%s)", c.Icon, c.Name, c.Type)
		options[i] = huh.NewOption(label, c.ID.String())
	}

	m.formDesc = ""
	m.formAmount = ""
	m.formCategory = categories[0].ID.String()
	m.formDate = FormatDate(time.Now())

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.formDesc),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					if _, err := parseCents(s); err != nil {
						return fmt.Errorf("enter a positive amount like 12.50")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateAdding

	return m, m.form.Init()
}

func (m TransactionsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = txStateList
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

	return m, m.createTxCmd(
		m.form.GetString("description"),
		m.form.GetString("amount"),
		m.form.GetString("category"),
		m.form.GetString("date"),
	)
}

func (m TransactionsModel) deleteSelected() (tea.Model, tea.Cmd) {
	selected, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return m, nil
	}

	svc := m.svc
	id := selected.tx.ID

	return m, func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.DeleteTransaction(ctx, id); err != nil {
			return txMutationMsg{err: err}
		}

		return txMutationMsg{status: "Deleted."}
	}
}

func (m TransactionsModel) View() string {
	switch m.state {
	case txStateList:
		header := m.walletHeader()

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(header + statusLine + m.list.View())

	case txStateAdding:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	return ""
}

func (m TransactionsModel) walletHeader() string {
	wallet := m.svc.Store().CurrentWallet()
	if wallet == nil {
		return ""
	}

	return lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("%s — balance %s", wallet.Name, FormatMoney(wallet.Balance, wallet.Currency)),
	) + "\n\n"
}

func (m *TransactionsModel) refreshListItems() {
	store := m.svc.Store()

	wallet := store.CurrentWallet()
	if wallet == nil {
		m.list.SetItems(nil)
		return
	}

	var items []list.Item

	for _, tx := range store.Transactions() {
		if tx.WalletID != wallet.ID {
			continue
		}

		name := "Unknown"
		if cat := store.CategoryByID(tx.CategoryID); cat != nil {
			name = fmt.Sprintf("%s %s", cat.Icon, cat.Name)
		}

		items = append(items, txItem{tx: tx, category: name})
	}

	m.list.SetItems(items)
}

type txMutationMsg struct {
	status string
	err    error
}

func (m TransactionsModel) createTxCmd(desc, amount, categoryID, date string) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		cents, err := parseCents(amount)
		if err != nil {
			return txMutationMsg{err: err}
		}

		catID, err := uuid.Parse(categoryID)
		if err != nil {
			return txMutationMsg{err: err}
		}

		txDate, err := time.Parse(time.DateOnly, date)
		if err != nil {
			return txMutationMsg{err: err}
		}

		txType := ledger.TypeExpense
		if cat := svc.Store().CategoryByID(catID); cat != nil {
			txType = cat.Type
		}

		ctx, cancel := OpCtx()
		defer cancel()

		_, err = svc.CreateTransaction(ctx, ledger.TransactionParams{
			CategoryID:  catID,
			Amount:      cents,
			Type:        txType,
			Description: desc,
			Date:        txDate,
		})
		if err != nil {
			return txMutationMsg{err: err}
		}

		return txMutationMsg{status: "Added."}
	}
}

// parseCents converts a decimal string like "12.50" into cents.
func parseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	if val <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}

	return int64(math.Round(val * 100)), nil
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", i.Description())
}
