package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/report"
)

type budgetState int

const (
	budgetStateList budgetState = iota
	budgetStateAdding
)

type BudgetsModel struct {
	CommonModel
	svc     *ledger.Service
	reports *report.Service

	state  budgetState
	cursor int
	form   *huh.Form
	status string

	formCategory string
	formLimit    string
	formPeriod   string
}

func NewBudgetsModel(svc *ledger.Service, reports *report.Service) BudgetsModel {
	return BudgetsModel{svc: svc, reports: reports}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetStateAdding {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | a: add | d: delete"
}

func (m BudgetsModel) Init() tea.Cmd {
	return nil
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(budgetMutationMsg); ok {
		if result.err != nil {
			m.status = fmt.Sprintf("Error: %v", result.err)
		} else {
			m.status = result.status
		}

		m.state = budgetStateList
		m.cursor = 0

		return m, nil
	}

	switch m.state {
	case budgetStateList:
		return m.updateList(msg)
	case budgetStateAdding:
		return m.updateAdding(msg)
	}

	return m, nil
}

func (m BudgetsModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	statuses := m.reports.BudgetStatuses()

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(statuses)-1 {
			m.cursor++
		}
	case "a":
		return m.startAdding()
	case "d":
		if m.cursor < len(statuses) {
			return m, m.deleteBudgetCmd(statuses[m.cursor].Budget.ID)
		}
	}

	return m, nil
}

func (m BudgetsModel) startAdding() (tea.Model, tea.Cmd) {
	var options []huh.Option[string]

	for _, c := range m.svc.Store().Categories() {
		if c.Type != ledger.TypeExpense {
			continue
		}

		options = append(options, huh.NewOption(fmt.Sprintf("%s %s", c.Icon, c.Name), c.ID.String()))
	}

	if len(options) == 0 {
		m.status = "No expense categories available."
		return m, nil
	}

	m.formCategory = ""
	m.formLimit = ""
	m.formPeriod = string(ledger.PeriodMonthly)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("limit").
				Title("Limit").
				Placeholder("500.00").
				Value(&m.formLimit).
				Validate(func(s string) error {
					if _, err := parseCents(s); err != nil {
						return fmt.Errorf("enter a positive amount like 500.00")
					}
					return nil
				}),

			huh.NewSelect[string]().
				Key("period").
				Title("Period").
				Options(
					huh.NewOption("Weekly", string(ledger.PeriodWeekly)),
					huh.NewOption("Monthly", string(ledger.PeriodMonthly)),
					huh.NewOption("Yearly", string(ledger.PeriodYearly)),
				).
				Value(&m.formPeriod),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = budgetStateAdding

	return m, m.form.Init()
}

func (m BudgetsModel) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetStateList
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

	return m, m.createBudgetCmd(
		m.form.GetString("category"),
		m.form.GetString("limit"),
		m.form.GetString("period"),
	)
}

func (m BudgetsModel) View() string {
	if m.state == budgetStateAdding {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	statuses := m.reports.BudgetStatuses()

	s := "Budgets:\n\n"

	if len(statuses) == 0 {
		s += lipgloss.NewStyle().Faint(true).Render("No budgets yet. Press 'a' to add one.") + "\n"
	}

	for i, status := range statuses {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, renderBudgetLine(status))
	}

	if m.status != "" {
		s += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1).Render(s)
}

// renderBudgetLine shows one budget as name, consumption bar and flags.
func renderBudgetLine(status report.BudgetStatus) string {
	b := status.Budget

	line := fmt.Sprintf("%-14s %s  %s / %s (%.0f%%, %s)",
		status.CategoryName,
		consumptionBar(status.Percentage),
		FormatAmount(b.Spent),
		FormatAmount(b.Limit),
		status.Percentage,
		b.Period,
	)

	switch {
	case status.IsOverBudget:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(line + "  OVER")
	case status.IsWarning:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(line + "  warning")
	}

	return line
}

const barWidth = 20

func consumptionBar(pct float64) string {
	filled := int(pct / 100 * barWidth)
	if filled > barWidth {
		filled = barWidth
	}

	if filled < 0 {
		filled = 0
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

type budgetMutationMsg struct {
	status string
	err    error
}

func (m BudgetsModel) createBudgetCmd(categoryID, limit, period string) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		catID, err := uuid.Parse(categoryID)
		if err != nil {
			return budgetMutationMsg{err: err}
		}

		cents, err := parseCents(limit)
		if err != nil {
			return budgetMutationMsg{err: err}
		}

		ctx, cancel := OpCtx()
		defer cancel()

		_, err = svc.CreateBudget(ctx, ledger.BudgetParams{
			CategoryID: catID,
			Limit:      cents,
			Period:     ledger.BudgetPeriod(period),
		})
		if err != nil {
			return budgetMutationMsg{err: err}
		}

		return budgetMutationMsg{status: "Budget added."}
	}
}

func (m BudgetsModel) deleteBudgetCmd(id uuid.UUID) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if err := svc.DeleteBudget(ctx, id); err != nil {
			return budgetMutationMsg{err: err}
		}

		return budgetMutationMsg{status: "Budget deleted."}
	}
}
