package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

// signupResultMsg carries the outcome of an account creation attempt.
type signupResultMsg struct {
	user *domain.User
	err  error
}

type signupField int

const (
	signupFieldName signupField = iota
	signupFieldEmail
	signupFieldPassword
	signupFieldConfirm
	numSignupFields
)

var signupLabels = [numSignupFields]string{"Name", "Email", "Password (min. 6 characters)", "Confirm password"}

type signupModel struct {
	client     *api.Client
	inputs     [numSignupFields]textinput.Model
	focus      signupField
	banner     string
	submitting bool
	width      int
	height     int
}

func newSignupModel(c *api.Client) signupModel {
	m := signupModel{client: c}
	placeholders := [numSignupFields]string{"full name", "email", "password", "repeat password"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 36
		if signupField(i) == signupFieldPassword || signupField(i) == signupFieldConfirm {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		m.inputs[i] = ti
	}
	m.inputs[signupFieldName].Focus()
	return m
}

func (m signupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m signupModel) validate() string {
	name := strings.TrimSpace(m.inputs[signupFieldName].Value())
	email := strings.TrimSpace(m.inputs[signupFieldEmail].Value())
	password := m.inputs[signupFieldPassword].Value()
	confirm := m.inputs[signupFieldConfirm].Value()
	switch {
	case name == "":
		return "name is required"
	case email == "":
		return "email is required"
	case !validEmail(email):
		return "email is invalid"
	case password == "":
		return "password is required"
	case len(password) < 6:
		return "password must have at least 6 characters"
	case password != confirm:
		return "passwords do not match"
	}
	return ""
}

func (m signupModel) submit() (signupModel, tea.Cmd) {
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
	req := domain.CreateUserRequest{
		Name:     strings.TrimSpace(m.inputs[signupFieldName].Value()),
		Email:    strings.TrimSpace(m.inputs[signupFieldEmail].Value()),
		Password: m.inputs[signupFieldPassword].Value(),
	}
	return m, func() tea.Msg {
		user, err := c.Signup(context.Background(), req)
		return signupResultMsg{user: user, err: err}
	}
}

func (m signupModel) Update(msg tea.Msg) (signupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case signupResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.banner = errorMessage(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m = m.setFocus((m.focus + 1) % numSignupFields)
			return m, nil
		case "shift+tab", "up":
			m = m.setFocus((m.focus + numSignupFields - 1) % numSignupFields)
			return m, nil
		case "enter":
			if m.focus == signupFieldConfirm {
				return m.submit()
			}
			m = m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m signupModel) setFocus(f signupField) signupModel {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
	return m
}

func (m signupModel) editing() bool {
	return true
}

func (m signupModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Create account") + "\n")
	sb.WriteString(" " + dimStyle.Render("register to access the system") + "\n\n")

	if m.banner != "" {
		sb.WriteString(" " + errorBannerStyle.Render(m.banner) + "\n\n")
	}

	for i, input := range m.inputs {
		sb.WriteString(" " + inputLabelStyle.Render(signupLabels[i]) + "\n")
		sb.WriteString(" " + input.View() + "\n\n")
	}

	if m.submitting {
		sb.WriteString(" " + dimStyle.Render("creating account...") + "\n")
	} else {
		sb.WriteString(" " + helpKeyStyle.Render("enter") + helpLabelStyle.Render(" create  ") +
			helpKeyStyle.Render("esc") + helpLabelStyle.Render(" back to sign in") + "\n")
	}
	return sb.String()
}
