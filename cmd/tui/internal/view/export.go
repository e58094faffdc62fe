package view

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/centavoapp/centavo/internal/export"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exporter *export.Service

	state   exportState
	form    *huh.Form
	spinner spinner.Model
	err     error
	written string

	format string
	dir    string
}

func NewExportModel(exporter *export.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ExportModel{
		exporter: exporter,
		spinner:  s,
		format:   "csv",
		dir:      "./exports",
	}
	m.form = m.buildForm()

	return m
}

func (m ExportModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV", "csv"),
					huh.NewOption("JSON", "json"),
				).
				Value(&m.format),

			huh.NewInput().
				Key("dir").
				Title("Output Directory").
				Description("Created if it doesn't exist").
				Placeholder("./exports").
				Value(&m.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateExporting:
		return "Exporting..."
	case exportStateResult:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}

		return m, nil
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.format = m.form.GetString("format")
	m.dir = m.form.GetString("dir")
	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportDoneMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.written = result.path

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Writing export file...", m.spinner.View()),
		)

	case exportStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(
				lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
			)
		}

		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")).Render("Export Complete!")

		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s\n\nWritten to %s", header, m.written),
		)
	}

	return ""
}

type exportDoneMsg struct {
	path string
	err  error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	exporter := m.exporter
	format, dir := m.format, m.dir

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: err}
		}

		name := fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102_150405"), format)
		path := filepath.Join(dir, name)

		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: err}
		}
		defer f.Close()

		if format == "json" {
			err = exporter.WriteJSON(f)
		} else {
			err = exporter.WriteCSV(f)
		}

		if err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: path}
	}
}
