package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	auth *domain.AuthResponse
	err  error
}

type loginField int

const (
	loginFieldEmail loginField = iota
	loginFieldPassword
	numLoginFields
)

type loginModel struct {
	client     *api.Client
	inputs     [numLoginFields]textinput.Model
	focus      loginField
	banner     string // inline validation / API error
	submitting bool
	width      int
	height     int
}

func newLoginModel(c *api.Client) loginModel {
	m := loginModel{client: c}

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 120
	email.Width = 36
	email.Focus()
	m.inputs[loginFieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 120
	password.Width = 36
	m.inputs[loginFieldPassword] = password

	return m
}

func (m loginModel) Init() tea.Cmd {
	return textinput.Blink
}

// validate runs the pre-flight checks; a failure never reaches the API.
func (m loginModel) validate() string {
	email := strings.TrimSpace(m.inputs[loginFieldEmail].Value())
	password := m.inputs[loginFieldPassword].Value()
	switch {
	case email == "":
		return "email is required"
	case !validEmail(email):
		return "email is invalid"
	case password == "":
		return "password is required"
	}
	return ""
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	if banner := m.validate(); banner != "" {
		m.banner = banner
		return m, nil
	}
	m.banner = ""
	m.submitting = true

	c := m.client
	email := strings.TrimSpace(m.inputs[loginFieldEmail].Value())
	password := m.inputs[loginFieldPassword].Value()
	return m, func() tea.Msg {
		auth, err := c.Login(context.Background(), email, password)
		return loginResultMsg{auth: auth, err: err}
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.banner = errorMessage(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m = m.setFocus((m.focus + 1) % numLoginFields)
			return m, nil
		case "shift+tab", "up":
			m = m.setFocus((m.focus + numLoginFields - 1) % numLoginFields)
			return m, nil
		case "enter":
			if m.focus == loginFieldPassword {
				return m.submit()
			}
			m = m.setFocus(loginFieldPassword)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m loginModel) setFocus(f loginField) loginModel {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
	return m
}

func (m loginModel) editing() bool {
	return true // the login screen is always a form
}

func (m loginModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Sign in") + "\n")
	sb.WriteString(" " + dimStyle.Render("use your back-office account") + "\n\n")

	if m.banner != "" {
		sb.WriteString(" " + errorBannerStyle.Render(m.banner) + "\n\n")
	}

	sb.WriteString(" " + inputLabelStyle.Render("Email") + "\n")
	sb.WriteString(" " + m.inputs[loginFieldEmail].View() + "\n\n")
	sb.WriteString(" " + inputLabelStyle.Render("Password") + "\n")
	sb.WriteString(" " + m.inputs[loginFieldPassword].View() + "\n\n")

	if m.submitting {
		sb.WriteString(" " + dimStyle.Render("signing in...") + "\n")
	} else {
		sb.WriteString(" " + helpKeyStyle.Render("enter") + helpLabelStyle.Render(" sign in  ") +
			helpKeyStyle.Render("ctrl+s") + helpLabelStyle.Render(" create account") + "\n")
	}
	return sb.String()
}
