package view

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/report"
)

type reportState int

const (
	reportStatePeriod reportState = iota
	reportStateResult
)

type ReportModel struct {
	CommonModel
	reports *report.Service

	state  reportState
	picker PeriodPicker
	result *report.Report
}

func NewReportModel(reports *report.Service) ReportModel {
	return ReportModel{reports: reports, picker: NewPeriodPicker()}
}

func (m ReportModel) Title() string { return "Reports" }

func (m ReportModel) ShortHelp() string {
	if m.state == reportStateResult {
		return "Esc: back to period | any key: menu"
	}

	return "Esc: back | Enter: select"
}

func (m ReportModel) Init() tea.Cmd {
	return nil
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if selected, ok := msg.(PeriodSelectedMsg); ok {
		m.result = m.reports.ForPeriod(selected.Period, uuid.Nil)
		m.state = reportStateResult

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case reportStatePeriod:
			if keyMsg.Type == tea.KeyEsc {
				return m, Back
			}
		case reportStateResult:
			if keyMsg.Type == tea.KeyEsc {
				m.state = reportStatePeriod
				return m, nil
			}

			return m, Back
		}
	}

	if m.state == reportStatePeriod {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ReportModel) View() string {
	if m.state == reportStatePeriod {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(m.renderReport())
}

func (m ReportModel) renderReport() string {
	rep := m.result
	if rep == nil {
		return "No report."
	}

	periodLabel := string(rep.Period)
	if periodLabel == "" {
		periodLabel = "all time"
	}

	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Report (%s)", periodLabel))

	income := lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Render(FormatAmount(rep.TotalIncome))
	expense := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(FormatAmount(rep.TotalExpense))

	s := fmt.Sprintf("%s\n\nIncome:  %s\nExpense: %s\nBalance: %s\nTransactions: %d\n",
		header, income, expense, FormatAmount(rep.Balance), rep.TransactionCount)

	if len(rep.ExpensesByCategory) > 0 {
		s += "\nTop Expenses:\n"
		for _, row := range rep.ExpensesByCategory {
			s += fmt.Sprintf("  %-16s %10s  (%d)\n", row.Name, FormatAmount(row.Amount), row.Count)
		}
	}

	if len(rep.IncomeByCategory) > 0 {
		s += "\nIncome Sources:\n"
		for _, row := range rep.IncomeByCategory {
			s += fmt.Sprintf("  %-16s %10s  (%d)\n", row.Name, FormatAmount(row.Amount), row.Count)
		}
	}

	if len(rep.DailyTotals) > 0 {
		s += "\nDaily Activity:\n"

		days := make([]string, 0, len(rep.DailyTotals))
		for day := range rep.DailyTotals {
			days = append(days, day)
		}

		sort.Strings(days)

		for _, day := range days {
			totals := rep.DailyTotals[day]
			s += fmt.Sprintf("  %s  +%s  -%s\n", day, FormatAmount(totals.Income), FormatAmount(totals.Expense))
		}
	}

	return s
}
