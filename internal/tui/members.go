package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

type membersLoadedMsg struct {
	users []domain.User
	err   error
}

type memberSavedMsg struct {
	created bool
	err     error
}

type memberDeletedMsg struct {
	err error
}

type membersMode int

const (
	membersModeList membersMode = iota
	membersModeForm
	membersModeDelete
)

type memberField int

const (
	memberFieldName memberField = iota
	memberFieldEmail
	memberFieldPassword
	numMemberFields
)

var memberLabels = [numMemberFields]string{"Name", "Email", "Password (min. 6 characters)"}

type membersModel struct {
	client  *api.Client
	session *session.Store

	users   []domain.User
	tbl     table.Model
	loading bool
	err     string

	mode       membersMode
	editTarget *domain.User
	target     *domain.User
	inputs     [numMemberFields]textinput.Model
	focus      memberField

	width  int
	height int
}

func newMembersModel(c *api.Client, s *session.Store) membersModel {
	m := membersModel{client: c, session: s, loading: true}

	m.tbl = table.New(
		table.WithColumns(memberColumns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Foreground(lipgloss.Color("#8890a0"))
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#f97316")).
		Bold(true)
	m.tbl.SetStyles(styles)

	placeholders := [numMemberFields]string{"full name", "email", "leave empty to keep"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 40
		if memberField(i) == memberFieldPassword {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		m.inputs[i] = ti
	}
	return m
}

func memberColumns(width int) []table.Column {
	name := width / 3
	if name < 18 {
		name = 18
	}
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Email", Width: name},
		{Title: "Role", Width: 10},
	}
}

func (m membersModel) Init() tea.Cmd {
	return m.load()
}

func (m membersModel) load() tea.Cmd {
	c, token := m.client, m.session.Token()
	return func() tea.Msg {
		users, err := c.ListUsers(context.Background(), token)
		return membersLoadedMsg{users: users, err: err}
	}
}

func (m *membersModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.users))
	for _, u := range m.users {
		rows = append(rows, table.Row{u.Name, u.Email, u.Role})
	}
	m.tbl.SetRows(rows)
}

func (m membersModel) selected() *domain.User {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.users) {
		return nil
	}
	return &m.users[i]
}

func (m membersModel) Update(msg tea.Msg) (membersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetColumns(memberColumns(msg.Width - 10))
		if msg.Height > 10 {
			m.tbl.SetHeight(msg.Height - 8)
		}
		return m, nil

	case membersLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errorMessage(msg.err)
			return m, reportError(msg.err)
		}
		m.err = ""
		m.users = msg.users
		m.refreshRows()
		return m, nil

	case memberSavedMsg:
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.mode = membersModeList
		outcome := "Member updated"
		if msg.created {
			outcome = "Member created"
		}
		return m, tea.Batch(notify(domain.NotifySuccess, outcome), m.load())

	case memberDeletedMsg:
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.mode = membersModeList
		m.target = nil
		return m, tea.Batch(notify(domain.NotifySuccess, "Member removed"), m.load())

	case tea.KeyMsg:
		switch m.mode {
		case membersModeForm:
			return m.updateForm(msg)
		case membersModeDelete:
			return m.updateDelete(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m membersModel) updateList(msg tea.KeyMsg) (membersModel, tea.Cmd) {
	switch msg.String() {
	case "n":
		return m.openForm(nil), textinput.Blink
	case "e":
		if sel := m.selected(); sel != nil {
			return m.openForm(sel), textinput.Blink
		}
		return m, nil
	case "d":
		if sel := m.selected(); sel != nil {
			m.mode = membersModeDelete
			m.target = sel
		}
		return m, nil
	case "r":
		m.loading = true
		return m, m.load()
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m membersModel) updateDelete(msg tea.KeyMsg) (membersModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.target == nil {
			m.mode = membersModeList
			return m, nil
		}
		c, token, id := m.client, m.session.Token(), m.target.ID
		return m, func() tea.Msg {
			return memberDeletedMsg{err: c.DeleteUser(context.Background(), token, id)}
		}
	case "n", "esc":
		m.mode = membersModeList
		m.target = nil
	}
	return m, nil
}

func (m membersModel) openForm(existing *domain.User) membersModel {
	m.mode = membersModeForm
	m.editTarget = existing
	values := [numMemberFields]string{}
	if existing != nil {
		values = [numMemberFields]string{existing.Name, existing.Email, ""}
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.focus = memberFieldName
	m.inputs[m.focus].Focus()
	return m
}

func (m membersModel) updateForm(msg tea.KeyMsg) (membersModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = membersModeList
		return m, nil
	case "tab", "down":
		m = m.setFormFocus((m.focus + 1) % numMemberFields)
		return m, nil
	case "shift+tab", "up":
		m = m.setFormFocus((m.focus + numMemberFields - 1) % numMemberFields)
		return m, nil
	case "enter":
		if m.focus == memberFieldPassword {
			return m.submitForm()
		}
		m = m.setFormFocus(m.focus + 1)
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m membersModel) setFormFocus(f memberField) membersModel {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
	return m
}

func (m membersModel) submitForm() (membersModel, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[memberFieldName].Value())
	email := strings.TrimSpace(m.inputs[memberFieldEmail].Value())
	password := m.inputs[memberFieldPassword].Value()

	c, token := m.client, m.session.Token()
	if m.editTarget != nil {
		if name == "" && email == "" && password == "" {
			return m, notify(domain.NotifyWarning, "Nothing to update")
		}
		if email != "" && !validEmail(email) {
			return m, notify(domain.NotifyWarning, "Email is invalid")
		}
		if password != "" && len(password) < 6 {
			return m, notify(domain.NotifyWarning, "Password must have at least 6 characters")
		}
		id := m.editTarget.ID
		req := domain.UpdateUserRequest{Name: name, Email: email, Password: password}
		return m, func() tea.Msg {
			return memberSavedMsg{err: c.UpdateUser(context.Background(), token, id, req)}
		}
	}

	switch {
	case name == "" || email == "" || password == "":
		return m, notify(domain.NotifyWarning, "Name, email and password are required")
	case !validEmail(email):
		return m, notify(domain.NotifyWarning, "Email is invalid")
	case len(password) < 6:
		return m, notify(domain.NotifyWarning, "Password must have at least 6 characters")
	}
	req := domain.CreateUserRequest{Name: name, Email: email, Password: password}
	return m, func() tea.Msg {
		_, err := c.CreateUser(context.Background(), token, req)
		return memberSavedMsg{created: true, err: err}
	}
}

func (m membersModel) editing() bool {
	return m.mode == membersModeForm
}

func (m membersModel) View() string {
	switch m.mode {
	case membersModeForm:
		return m.viewForm()
	case membersModeDelete:
		return m.viewDelete()
	}

	if m.loading {
		return " " + dimStyle.Render("loading members...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}

	var sb strings.Builder
	if len(m.users) == 0 {
		sb.WriteString(" " + dimStyle.Render("no members registered") + "\n")
	} else {
		sb.WriteString(m.tbl.View() + "\n")
		sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d member(s)", len(m.users))) + "\n")
	}
	sb.WriteString(" " + helpKeyStyle.Render("n") + helpLabelStyle.Render(" new  ") +
		helpKeyStyle.Render("e") + helpLabelStyle.Render(" edit  ") +
		helpKeyStyle.Render("d") + helpLabelStyle.Render(" delete  ") +
		helpKeyStyle.Render("r") + helpLabelStyle.Render(" reload") + "\n")
	return sb.String()
}

func (m membersModel) viewForm() string {
	title := "New member"
	if m.editTarget != nil {
		title = "Edit member"
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title) + "\n\n")
	for i, input := range m.inputs {
		label := memberLabels[i]
		if m.editTarget != nil {
			label += dimStyle.Render("  (empty keeps current)")
		}
		sb.WriteString(inputLabelStyle.Render(label) + "\n")
		sb.WriteString(input.View() + "\n\n")
	}
	sb.WriteString(helpKeyStyle.Render("ctrl+s") + helpLabelStyle.Render(" save  ") +
		helpKeyStyle.Render("esc") + helpLabelStyle.Render(" cancel"))
	return overlayStyle.Render(sb.String())
}

func (m membersModel) viewDelete() string {
	if m.target == nil {
		return ""
	}
	body := titleStyle.Render("Remove member") + "\n\n" +
		fmt.Sprintf("Remove %s? This cannot be undone.\n\n", accentStyle.Render(m.target.Name)) +
		helpKeyStyle.Render("y") + helpLabelStyle.Render(" confirm  ") +
		helpKeyStyle.Render("n") + helpLabelStyle.Render(" cancel")
	return overlayStyle.Render(body)
}
