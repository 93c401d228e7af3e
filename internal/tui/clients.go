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

type clientsLoadedMsg struct {
	clients []domain.Client
	err     error
}

type clientSavedMsg struct {
	created bool
	err     error
}

type clientDeletedMsg struct {
	err error
}

type clientsMode int

const (
	clientsModeList clientsMode = iota
	clientsModeSearch
	clientsModeForm
	clientsModeDelete
)

type clientField int

const (
	clientFieldCompany clientField = iota
	clientFieldContact
	clientFieldCNPJ
	numClientFields
)

var clientLabels = [numClientFields]string{"Company name", "Contact person", "CNPJ (optional)"}

type clientsModel struct {
	client  *api.Client
	session *session.Store

	clients []domain.Client
	tbl     table.Model
	search  textinput.Model
	loading bool
	err     string

	mode       clientsMode
	editTarget *domain.Client // nil when creating
	target     *domain.Client // pending delete
	inputs     [numClientFields]textinput.Model
	focus      clientField

	width  int
	height int
}

func newClientsModel(c *api.Client, s *session.Store) clientsModel {
	m := clientsModel{client: c, session: s, loading: true}

	m.tbl = table.New(
		table.WithColumns(clientColumns(80)),
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

	m.search = textinput.New()
	m.search.Placeholder = "search company, contact or CNPJ"
	m.search.CharLimit = 80
	m.search.Width = 40

	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = strings.ToLower(clientLabels[i])
		ti.CharLimit = 120
		ti.Width = 40
		m.inputs[i] = ti
	}
	return m
}

func clientColumns(width int) []table.Column {
	company := width / 3
	if company < 20 {
		company = 20
	}
	return []table.Column{
		{Title: "Company", Width: company},
		{Title: "Contact", Width: 20},
		{Title: "CNPJ", Width: 20},
		{Title: "Created", Width: 12},
	}
}

func (m clientsModel) Init() tea.Cmd {
	return m.load()
}

func (m clientsModel) load() tea.Cmd {
	c, token := m.client, m.session.Token()
	return func() tea.Msg {
		clients, err := c.ListClients(context.Background(), token)
		return clientsLoadedMsg{clients: clients, err: err}
	}
}

// filtered applies the search box to the loaded clients.
func (m clientsModel) filtered() []domain.Client {
	q := strings.ToLower(strings.TrimSpace(m.search.Value()))
	if q == "" {
		return m.clients
	}
	var out []domain.Client
	for _, c := range m.clients {
		if strings.Contains(strings.ToLower(c.CompanyName), q) ||
			strings.Contains(strings.ToLower(c.ContactPerson), q) ||
			strings.Contains(c.CNPJ, q) {
			out = append(out, c)
		}
	}
	return out
}

func (m *clientsModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.clients))
	for _, c := range m.filtered() {
		cnpj := c.CNPJ
		if cnpj == "" {
			cnpj = "-"
		}
		rows = append(rows, table.Row{c.CompanyName, c.ContactPerson, cnpj, formatTime(c.CreatedAt)})
	}
	m.tbl.SetRows(rows)
}

// selected returns the client under the cursor, honoring the filter.
func (m clientsModel) selected() *domain.Client {
	visible := m.filtered()
	i := m.tbl.Cursor()
	if i < 0 || i >= len(visible) {
		return nil
	}
	return &visible[i]
}

func (m clientsModel) Update(msg tea.Msg) (clientsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetColumns(clientColumns(msg.Width - 10))
		if msg.Height > 10 {
			m.tbl.SetHeight(msg.Height - 8)
		}
		return m, nil

	case clientsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errorMessage(msg.err)
			return m, reportError(msg.err)
		}
		m.err = ""
		m.clients = msg.clients
		m.refreshRows()
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.mode = clientsModeList
		outcome := "Client updated"
		if msg.created {
			outcome = "Client created"
		}
		return m, tea.Batch(notify(domain.NotifySuccess, outcome), m.load())

	case clientDeletedMsg:
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.mode = clientsModeList
		m.target = nil
		return m, tea.Batch(notify(domain.NotifySuccess, "Client deleted"), m.load())

	case tea.KeyMsg:
		switch m.mode {
		case clientsModeForm:
			return m.updateForm(msg)
		case clientsModeSearch:
			return m.updateSearch(msg)
		case clientsModeDelete:
			return m.updateDelete(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m clientsModel) updateList(msg tea.KeyMsg) (clientsModel, tea.Cmd) {
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
			m.mode = clientsModeDelete
			m.target = sel
		}
		return m, nil
	case "/":
		m.mode = clientsModeSearch
		m.search.Focus()
		return m, textinput.Blink
	case "r":
		m.loading = true
		return m, m.load()
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m clientsModel) updateSearch(msg tea.KeyMsg) (clientsModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		if msg.String() == "esc" {
			m.search.SetValue("")
		}
		m.mode = clientsModeList
		m.search.Blur()
		m.refreshRows()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refreshRows()
	return m, cmd
}

func (m clientsModel) updateDelete(msg tea.KeyMsg) (clientsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.target == nil {
			m.mode = clientsModeList
			return m, nil
		}
		c, token, id := m.client, m.session.Token(), m.target.ID
		return m, func() tea.Msg {
			return clientDeletedMsg{err: c.DeleteClient(context.Background(), token, id)}
		}
	case "n", "esc":
		m.mode = clientsModeList
		m.target = nil
	}
	return m, nil
}

func (m clientsModel) openForm(existing *domain.Client) clientsModel {
	m.mode = clientsModeForm
	m.editTarget = existing
	values := [numClientFields]string{}
	if existing != nil {
		values = [numClientFields]string{existing.CompanyName, existing.ContactPerson, existing.CNPJ}
	}
	for i := range m.inputs {
		m.inputs[i].SetValue(values[i])
		m.inputs[i].Blur()
	}
	m.focus = clientFieldCompany
	m.inputs[m.focus].Focus()
	return m
}

func (m clientsModel) updateForm(msg tea.KeyMsg) (clientsModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = clientsModeList
		return m, nil
	case "tab", "down":
		m = m.setFormFocus((m.focus + 1) % numClientFields)
		return m, nil
	case "shift+tab", "up":
		m = m.setFormFocus((m.focus + numClientFields - 1) % numClientFields)
		return m, nil
	case "enter":
		if m.focus == clientFieldCNPJ {
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

func (m clientsModel) setFormFocus(f clientField) clientsModel {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
	return m
}

func (m clientsModel) submitForm() (clientsModel, tea.Cmd) {
	company := strings.TrimSpace(m.inputs[clientFieldCompany].Value())
	contact := strings.TrimSpace(m.inputs[clientFieldContact].Value())
	cnpj := strings.TrimSpace(m.inputs[clientFieldCNPJ].Value())
	if company == "" || contact == "" {
		return m, notify(domain.NotifyWarning, "Company name and contact person are required")
	}

	c, token := m.client, m.session.Token()
	if m.editTarget != nil {
		id := m.editTarget.ID
		req := domain.UpdateClientRequest{CompanyName: company, ContactPerson: contact, CNPJ: cnpj}
		return m, func() tea.Msg {
			return clientSavedMsg{err: c.UpdateClient(context.Background(), token, id, req)}
		}
	}
	req := domain.CreateClientRequest{CompanyName: company, ContactPerson: contact, CNPJ: cnpj}
	return m, func() tea.Msg {
		_, err := c.CreateClient(context.Background(), token, req)
		return clientSavedMsg{created: true, err: err}
	}
}

func (m clientsModel) editing() bool {
	return m.mode == clientsModeForm || m.mode == clientsModeSearch
}

func (m clientsModel) View() string {
	switch m.mode {
	case clientsModeForm:
		return m.viewForm()
	case clientsModeDelete:
		return m.viewDelete()
	}

	if m.loading {
		return " " + dimStyle.Render("loading clients...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}

	var sb strings.Builder
	if m.mode == clientsModeSearch || m.search.Value() != "" {
		sb.WriteString(" " + m.search.View() + "\n")
	}
	if len(m.clients) == 0 {
		sb.WriteString(" " + dimStyle.Render("no clients registered") + "\n")
	} else {
		sb.WriteString(m.tbl.View() + "\n")
		sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d client(s)", len(m.filtered()))) + "\n")
	}
	sb.WriteString(" " + helpKeyStyle.Render("n") + helpLabelStyle.Render(" new  ") +
		helpKeyStyle.Render("e") + helpLabelStyle.Render(" edit  ") +
		helpKeyStyle.Render("d") + helpLabelStyle.Render(" delete  ") +
		helpKeyStyle.Render("/") + helpLabelStyle.Render(" search  ") +
		helpKeyStyle.Render("r") + helpLabelStyle.Render(" reload") + "\n")
	return sb.String()
}

func (m clientsModel) viewForm() string {
	title := "New client"
	if m.editTarget != nil {
		title = "Edit client"
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title) + "\n\n")
	for i, input := range m.inputs {
		sb.WriteString(inputLabelStyle.Render(clientLabels[i]) + "\n")
		sb.WriteString(input.View() + "\n\n")
	}
	sb.WriteString(helpKeyStyle.Render("ctrl+s") + helpLabelStyle.Render(" save  ") +
		helpKeyStyle.Render("esc") + helpLabelStyle.Render(" cancel"))
	return overlayStyle.Render(sb.String())
}

func (m clientsModel) viewDelete() string {
	if m.target == nil {
		return ""
	}
	body := titleStyle.Render("Delete client") + "\n\n" +
		fmt.Sprintf("Remove %s? This cannot be undone.\n\n", accentStyle.Render(m.target.CompanyName)) +
		helpKeyStyle.Render("y") + helpLabelStyle.Render(" confirm  ") +
		helpKeyStyle.Render("n") + helpLabelStyle.Render(" cancel")
	return overlayStyle.Render(body)
}
