package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

type refundsLoadedMsg struct {
	refunds []domain.Refund
	err     error
}

type refundUpdatedMsg struct {
	status domain.RefundStatus
	err    error
}

// refundTabs filter the listing; the first shows everything.
var refundTabs = []struct {
	label  string
	status domain.RefundStatus
}{
	{"All", ""},
	{"Pending", domain.RefundPending},
	{"Approved", domain.RefundApproved},
	{"Rejected", domain.RefundRejected},
}

type refundsModel struct {
	client  *api.Client
	session *session.Store

	refunds []domain.Refund
	tbl     table.Model
	tab     int
	loading bool
	err     string

	detail *domain.Refund // open overlay, nil when closed

	width  int
	height int
}

func newRefundsModel(c *api.Client, s *session.Store) refundsModel {
	m := refundsModel{client: c, session: s, loading: true}

	m.tbl = table.New(
		table.WithColumns(refundColumns(80)),
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
	return m
}

func refundColumns(width int) []table.Column {
	desc := width / 3
	if desc < 24 {
		desc = 24
	}
	return []table.Column{
		{Title: "Description", Width: desc},
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 10},
		{Title: "Requester", Width: 18},
		{Title: "Created", Width: 12},
	}
}

func (m refundsModel) Init() tea.Cmd {
	return m.load()
}

func (m refundsModel) load() tea.Cmd {
	c, token := m.client, m.session.Token()
	return func() tea.Msg {
		refunds, err := c.ListRefunds(context.Background(), token)
		return refundsLoadedMsg{refunds: refunds, err: err}
	}
}

// filtered applies the active status tab.
func (m refundsModel) filtered() []domain.Refund {
	status := refundTabs[m.tab].status
	if status == "" {
		return m.refunds
	}
	var out []domain.Refund
	for _, r := range m.refunds {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func (m refundsModel) countByStatus(status domain.RefundStatus) int {
	if status == "" {
		return len(m.refunds)
	}
	n := 0
	for _, r := range m.refunds {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (m *refundsModel) refreshRows() {
	visible := m.filtered()
	rows := make([]table.Row, 0, len(visible))
	for _, r := range visible {
		requester := "-"
		if r.User != nil {
			requester = r.User.Name
		}
		rows = append(rows, table.Row{
			r.Description,
			formatCurrency(r.Amount),
			strings.ToLower(string(r.Status)),
			requester,
			formatTime(r.CreatedAt),
		})
	}
	m.tbl.SetRows(rows)
}

func (m refundsModel) selected() *domain.Refund {
	visible := m.filtered()
	i := m.tbl.Cursor()
	if i < 0 || i >= len(visible) {
		return nil
	}
	return &visible[i]
}

// setStatus approves or rejects the refund through the gateway.
func (m refundsModel) setStatus(id string, status domain.RefundStatus) tea.Cmd {
	c, token := m.client, m.session.Token()
	return func() tea.Msg {
		err := c.UpdateRefund(context.Background(), token, id, domain.UpdateRefundRequest{Status: status})
		return refundUpdatedMsg{status: status, err: err}
	}
}

func (m refundsModel) Update(msg tea.Msg) (refundsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetColumns(refundColumns(msg.Width - 10))
		if msg.Height > 10 {
			m.tbl.SetHeight(msg.Height - 9)
		}
		return m, nil

	case refundsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errorMessage(msg.err)
			return m, reportError(msg.err)
		}
		m.err = ""
		m.refunds = msg.refunds
		m.refreshRows()
		return m, nil

	case refundUpdatedMsg:
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.detail = nil
		outcome := "Refund approved"
		if msg.status == domain.RefundRejected {
			outcome = "Refund rejected"
		}
		return m, tea.Batch(notify(domain.NotifySuccess, outcome), m.load())

	case tea.KeyMsg:
		if m.detail != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m refundsModel) updateList(msg tea.KeyMsg) (refundsModel, tea.Cmd) {
	switch msg.String() {
	case "tab", "right":
		m.tab = (m.tab + 1) % len(refundTabs)
		m.refreshRows()
		return m, nil
	case "shift+tab", "left":
		m.tab = (m.tab + len(refundTabs) - 1) % len(refundTabs)
		m.refreshRows()
		return m, nil
	case "enter":
		m.detail = m.selected()
		return m, nil
	case "a":
		if sel := m.selected(); sel != nil && sel.Status == domain.RefundPending {
			return m, m.setStatus(sel.ID, domain.RefundApproved)
		}
		return m, nil
	case "x":
		if sel := m.selected(); sel != nil && sel.Status == domain.RefundPending {
			return m, m.setStatus(sel.ID, domain.RefundRejected)
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

func (m refundsModel) updateDetail(msg tea.KeyMsg) (refundsModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.detail = nil
	case "a":
		if m.detail.Status == domain.RefundPending {
			return m, m.setStatus(m.detail.ID, domain.RefundApproved)
		}
	case "x":
		if m.detail.Status == domain.RefundPending {
			return m, m.setStatus(m.detail.ID, domain.RefundRejected)
		}
	}
	return m, nil
}

func (m refundsModel) editing() bool { return false }

func (m refundsModel) View() string {
	if m.detail != nil {
		return m.viewDetail()
	}
	if m.loading {
		return " " + dimStyle.Render("loading refunds...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}

	var tabs []string
	for i, t := range refundTabs {
		label := fmt.Sprintf("%s (%d)", t.label, m.countByStatus(t.status))
		if i == m.tab {
			tabs = append(tabs, selectedStyle.Render(label))
		} else {
			tabs = append(tabs, dimStyle.Render(label))
		}
	}

	var sb strings.Builder
	sb.WriteString(" " + strings.Join(tabs, metaStyle.Render("  |  ")) + "\n\n")
	visible := m.filtered()
	if len(visible) == 0 {
		sb.WriteString(" " + dimStyle.Render("no refunds here") + "\n")
	} else {
		sb.WriteString(m.tbl.View() + "\n")
		sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("total: %d refund(s)", len(visible))) + "\n")
	}
	sb.WriteString(" " + helpKeyStyle.Render("tab") + helpLabelStyle.Render(" filter  ") +
		helpKeyStyle.Render("enter") + helpLabelStyle.Render(" detail  ") +
		helpKeyStyle.Render("a") + helpLabelStyle.Render(" approve  ") +
		helpKeyStyle.Render("x") + helpLabelStyle.Render(" reject  ") +
		helpKeyStyle.Render("r") + helpLabelStyle.Render(" reload") + "\n")
	return sb.String()
}

func (m refundsModel) viewDetail() string {
	r := m.detail
	requester := "-"
	if r.User != nil {
		requester = fmt.Sprintf("%s <%s>", r.User.Name, r.User.Email)
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Refund detail") + "\n\n")
	sb.WriteString(inputLabelStyle.Render("Description") + "\n" + r.Description + "\n\n")
	sb.WriteString(inputLabelStyle.Render("Amount") + "\n" + formatCurrency(r.Amount) + "\n\n")
	sb.WriteString(inputLabelStyle.Render("Status") + "\n" + statusLabel(r.Status) + "\n\n")
	sb.WriteString(inputLabelStyle.Render("Requester") + "\n" + requester + "\n\n")
	sb.WriteString(inputLabelStyle.Render("Created") + "\n" + formatTime(r.CreatedAt) + "\n\n")
	if r.Status == domain.RefundPending {
		sb.WriteString(helpKeyStyle.Render("a") + helpLabelStyle.Render(" approve  ") +
			helpKeyStyle.Render("x") + helpLabelStyle.Render(" reject  "))
	}
	sb.WriteString(helpKeyStyle.Render("esc") + helpLabelStyle.Render(" close"))
	return overlayStyle.Render(sb.String())
}
