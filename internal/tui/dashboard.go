package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

// recentRefunds is how many report rows the dashboard previews.
const recentRefunds = 3

type summaryLoadedMsg struct {
	summary *domain.DashboardSummary
	err     error
}

type reportLoadedMsg struct {
	reports []domain.RefundReport
	err     error
}

type dashboardModel struct {
	client  *api.Client
	session *session.Store

	summary       *domain.DashboardSummary
	recent        []domain.RefundReport
	summaryLoaded bool
	reportLoaded  bool

	width  int
	height int
}

func newDashboardModel(c *api.Client, s *session.Store) dashboardModel {
	return dashboardModel{client: c, session: s}
}

// Init fires both loads at once. There is no ordering guarantee between
// them; the screen is ready only when both results have landed.
func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.loadSummary(), m.loadReport())
}

func (m dashboardModel) loadSummary() tea.Cmd {
	c, token := m.client, m.session.Token()
	return func() tea.Msg {
		summary, err := c.DashboardSummary(context.Background(), token)
		return summaryLoadedMsg{summary: summary, err: err}
	}
}

func (m dashboardModel) loadReport() tea.Cmd {
	c, token := m.client, m.session.Token()
	return func() tea.Msg {
		reports, err := c.RefundsReport(context.Background(), token, "")
		return reportLoadedMsg{reports: reports, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case summaryLoadedMsg:
		m.summaryLoaded = true
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		m.summary = msg.summary
		return m, nil

	case reportLoadedMsg:
		m.reportLoaded = true
		if msg.err != nil {
			return m, reportError(msg.err)
		}
		if len(msg.reports) > recentRefunds {
			msg.reports = msg.reports[:recentRefunds]
		}
		m.recent = msg.reports
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" {
			m.summaryLoaded = false
			m.reportLoaded = false
			return m, tea.Batch(m.loadSummary(), m.loadReport())
		}
	}
	return m, nil
}

func (m dashboardModel) editing() bool { return false }

func (m dashboardModel) ready() bool {
	return m.summaryLoaded && m.reportLoaded
}

func renderCard(title, value, footer string) string {
	body := cardTitleStyle.Render(title) + "\n" +
		cardValueStyle.Render(value) + "\n" +
		metaStyle.Render(footer)
	return cardStyle.Render(body)
}

func (m dashboardModel) View() string {
	if !m.ready() {
		return " " + dimStyle.Render("loading dashboard...")
	}
	if m.summary == nil {
		return " " + dimStyle.Render("dashboard unavailable")
	}

	s := m.summary
	greeting := "Hello"
	if u := m.session.User(); u != nil && u.Name != "" {
		greeting = "Hello, " + u.Name
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Total amount", formatCurrency(s.Refunds.TotalAmount),
			fmt.Sprintf("%d refunds", s.Refunds.TotalRefunds)),
		" ",
		renderCard("Pending refunds", fmt.Sprintf("%d", s.Refunds.ByStatus.Pending),
			"awaiting approval"),
		" ",
		renderCard("Active members", fmt.Sprintf("%d", s.Users.ActiveUsers),
			fmt.Sprintf("of %d total", s.Users.TotalUsers)),
		" ",
		renderCard("Closed contracts", fmt.Sprintf("%d", s.Clients.ClosedContracts),
			fmt.Sprintf("%d clients", s.Clients.TotalClients)),
	)

	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render(greeting) + "  " +
		metaStyle.Render("generated "+formatTime(s.GeneratedAt)) + "\n\n")
	sb.WriteString(cards + "\n\n")

	sb.WriteString(" " + titleStyle.Render("Recent refunds") + "\n")
	if len(m.recent) == 0 {
		sb.WriteString(" " + dimStyle.Render("no refunds yet") + "\n")
	}
	for _, r := range m.recent {
		sb.WriteString(fmt.Sprintf(" %s  %s  %s  %s\n",
			statusLabel(r.Status),
			helpKeyStyle.Render(formatCurrency(r.Amount)),
			truncStr(r.Description, 48),
			metaStyle.Render(formatTime(r.CreatedAt)),
		))
	}

	sb.WriteString("\n " + helpKeyStyle.Render("r") + helpLabelStyle.Render(" reload") + "\n")
	return sb.String()
}
