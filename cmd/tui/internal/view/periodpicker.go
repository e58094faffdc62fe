package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/centavoapp/centavo/internal/report"
)

// PeriodSelectedMsg is emitted when the user picks a reporting window.
type PeriodSelectedMsg struct {
	Period report.Period
}

var periodChoices = []struct {
	period report.Period
	label  string
}{
	{"", "All Time"},
	{report.PeriodWeek, "Past Week"},
	{report.PeriodMonth, "Past Month"},
	{report.PeriodQuarter, "Past Quarter"},
	{report.PeriodYear, "Past Year"},
}

// PeriodPicker is a cursor list over the trailing reporting windows.
type PeriodPicker struct {
	cursor int
}

func NewPeriodPicker() PeriodPicker {
	return PeriodPicker{}
}

func (m PeriodPicker) Update(msg tea.Msg) (PeriodPicker, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.Type {
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case tea.KeyDown:
		if m.cursor < len(periodChoices)-1 {
			m.cursor++
		}
	case tea.KeyEnter:
		period := periodChoices[m.cursor].period
		return m, func() tea.Msg {
			return PeriodSelectedMsg{Period: period}
		}
	}

	return m, nil
}

func (m PeriodPicker) View() string {
	s := "Select Period:\n\n"

	for i, choice := range periodChoices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, choice.label)
	}

	return s + "\n(Enter to select, Esc to back)"
}
