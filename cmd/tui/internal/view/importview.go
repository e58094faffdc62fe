package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/centavoapp/centavo/internal/importer"
)

type importState int

const (
	importStateForm importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	imports *importer.Service

	state   importState
	form    *huh.Form
	spinner spinner.Model
	err     error
	result  *importer.Result

	path string
}

func NewImportModel(imports *importer.Service) ImportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ImportModel{imports: imports, spinner: s}
	m.form = m.buildForm()

	return m
}

func (m ImportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("CSV File").
				Placeholder("./transactions.csv").
				Value(&m.path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a file path")
					}
					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ImportModel) Title() string { return "Import" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateImporting:
		return "Importing..."
	case importStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ImportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateForm:
		return m.updateForm(msg)
	case importStateImporting:
		return m.updateImporting(msg)
	case importStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		return m, nil
	}

	return m, nil
}

func (m ImportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.path = m.form.GetString("path")
	m.state = importStateImporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runImportCmd())
}

func (m ImportModel) updateImporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(importDoneMsg); ok {
		m.state = importStateResult
		m.err = result.err
		m.result = result.result

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case importStateImporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Importing transactions...", m.spinner.View()),
		)

	case importStateResult:
		return lipgloss.NewStyle().Padding(1).Render(m.renderResult())
	}

	return ""
}

func (m ImportModel) renderResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Import Complete!")

	s := fmt.Sprintf("%s\n\nImported: %d\nSkipped:  %d\n", header, m.result.Imported, m.result.Skipped)

	if len(m.result.Errors) > 0 {
		s += "\nProblems:\n"
		for _, e := range m.result.Errors {
			s += "  " + lipgloss.NewStyle().Faint(true).Render(e) + "\n"
		}
	}

	return s
}

type importDoneMsg struct {
	result *importer.Result
	err    error
}

func (m ImportModel) runImportCmd() tea.Cmd {
	imports := m.imports
	path := m.path

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := OpCtx()
		defer cancel()

		result, err := imports.Import(ctx, f, uuid.Nil)

		return importDoneMsg{result: result, err: err}
	}
}
