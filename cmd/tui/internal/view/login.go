package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/centavoapp/centavo/internal/ledger"
)

// SessionStartedMsg is emitted once login or registration succeeded.
type SessionStartedMsg struct {
	User *ledger.User
}

type loginState int

const (
	loginStateForm loginState = iota
	loginStateBusy
)

type LoginModel struct {
	CommonModel
	svc *ledger.Service

	state loginState
	form  *huh.Form
	err   error

	email    string
	password string
	fullName string
	register bool
}

func NewLoginModel(svc *ledger.Service) LoginModel {
	m := LoginModel{svc: svc}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return fmt.Errorf("enter a valid email")
					}
					return nil
				}),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.password),

			huh.NewInput().
				Key("full_name").
				Title("Full Name (registration only)").
				Value(&m.fullName),

			huh.NewConfirm().
				Key("register").
				Title("New here?").
				Affirmative("Register").
				Negative("Login").
				Value(&m.register),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m LoginModel) Title() string { return "Sign In" }

func (m LoginModel) ShortHelp() string { return "Enter/Tab: navigate | Ctrl+C: quit" }

func (m LoginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = loginStateForm
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return SessionStartedMsg{User: msg.user} }
	}

	if m.state == loginStateBusy {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.email = m.form.GetString("email")
	m.password = m.form.GetString("password")
	m.fullName = m.form.GetString("full_name")
	m.register = m.form.GetBool("register")
	m.state = loginStateBusy

	return m, m.startSessionCmd()
}

func (m LoginModel) View() string {
	if m.state == loginStateBusy {
		return lipgloss.NewStyle().Padding(1).Render("Signing in...")
	}

	errLine := ""
	if m.err != nil {
		errLine = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}

	return lipgloss.NewStyle().Padding(1).Render(errLine + m.form.View())
}

type sessionResultMsg struct {
	user *ledger.User
	err  error
}

func (m LoginModel) startSessionCmd() tea.Cmd {
	svc := m.svc
	email, password, fullName := m.email, m.password, m.fullName
	register := m.register

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		var (
			user *ledger.User
			err  error
		)

		if register {
			user, err = svc.Register(ctx, email, password, fullName)
		} else {
			user, err = svc.Login(ctx, email, password)
		}

		return sessionResultMsg{user: user, err: err}
	}
}
