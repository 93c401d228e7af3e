package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/refundesk/refundesk/internal/browser"
	"github.com/refundesk/refundesk/internal/export"
	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

type reportsLoadedMsg struct {
	reports []domain.RefundReport
	err     error
}

type reportExportedMsg struct {
	path string
	err  error
}

type reportsModel struct {
	client   *api.Client
	session  *session.Store
	exportTo string // directory for CSV files

	reports  []domain.RefundReport
	tbl      table.Model
	tab      int // index into refundTabs, filter applied server-side
	loading  bool
	err      string
	lastPath string // most recent export

	width  int
	height int
}

func newReportsModel(c *api.Client, s *session.Store, exportDir string) reportsModel {
	m := reportsModel{client: c, session: s, exportTo: exportDir, loading: true}

	m.tbl = table.New(
		table.WithColumns(reportColumns(80)),
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

func reportColumns(width int) []table.Column {
	desc := width / 3
	if desc < 24 {
		desc = 24
	}
	return []table.Column{
		{Title: "Description", Width: desc},
		{Title: "Amount", Width: 14},
		{Title: "Status", Width: 10},
		{Title: "Created", Width: 12},
		{Title: "Days open", Width: 10},
	}
}

func (m reportsModel) Init() tea.Cmd {
	return m.load()
}

// load fetches the report; the status filter travels as a query
// parameter, so filtering happens server-side.
func (m reportsModel) load() tea.Cmd {
	c, token, status := m.client, m.session.Token(), refundTabs[m.tab].status
	return func() tea.Msg {
		reports, err := c.RefundsReport(context.Background(), token, status)
		return reportsLoadedMsg{reports: reports, err: err}
	}
}

func (m *reportsModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.reports))
	for _, r := range m.reports {
		rows = append(rows, table.Row{
			r.Description,
			formatCurrency(r.Amount),
			strings.ToLower(string(r.Status)),
			formatTime(r.CreatedAt),
			fmt.Sprintf("%d", r.DaysSinceCreation),
		})
	}
	m.tbl.SetRows(rows)
}

func (m reportsModel) exportCmd() tea.Cmd {
	reports, dir := m.reports, m.exportTo
	return func() tea.Msg {
		path, err := export.RefundsCSV(dir, reports)
		return reportExportedMsg{path: path, err: err}
	}
}

func (m reportsModel) Update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tbl.SetColumns(reportColumns(msg.Width - 10))
		if msg.Height > 10 {
			m.tbl.SetHeight(msg.Height - 9)
		}
		return m, nil

	case reportsLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = errorMessage(msg.err)
			return m, reportError(msg.err)
		}
		m.err = ""
		m.reports = msg.reports
		m.refreshRows()
		return m, nil

	case reportExportedMsg:
		if msg.err != nil {
			return m, notify(domain.NotifyError, "export failed: "+msg.err.Error())
		}
		m.lastPath = msg.path
		clipboard.WriteAll(msg.path) //nolint:errcheck // clipboard is best-effort
		return m, notify(domain.NotifySuccess, "Report exported to "+msg.path)

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right":
			m.tab = (m.tab + 1) % len(refundTabs)
			m.loading = true
			return m, m.load()
		case "shift+tab", "left":
			m.tab = (m.tab + len(refundTabs) - 1) % len(refundTabs)
			m.loading = true
			return m, m.load()
		case "x":
			if len(m.reports) == 0 {
				return m, notify(domain.NotifyWarning, "Nothing to export")
			}
			return m, m.exportCmd()
		case "o":
			if m.lastPath != "" {
				browser.Open(m.lastPath) //nolint:errcheck // best-effort open
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
	return m, nil
}

func (m reportsModel) editing() bool { return false }

func (m reportsModel) View() string {
	if m.loading {
		return " " + dimStyle.Render("loading report...")
	}
	if m.err != "" {
		return " " + dimStyle.Render("error: "+m.err)
	}

	var tabs []string
	for i, t := range refundTabs {
		if i == m.tab {
			tabs = append(tabs, selectedStyle.Render(t.label))
		} else {
			tabs = append(tabs, dimStyle.Render(t.label))
		}
	}

	var total float64
	for _, r := range m.reports {
		total += r.Amount
	}

	var sb strings.Builder
	sb.WriteString(" " + strings.Join(tabs, metaStyle.Render("  |  ")) + "\n\n")
	if len(m.reports) == 0 {
		sb.WriteString(" " + dimStyle.Render("no rows for this filter") + "\n")
	} else {
		sb.WriteString(m.tbl.View() + "\n")
		sb.WriteString(" " + metaStyle.Render(fmt.Sprintf("%d row(s), %s total", len(m.reports), formatCurrency(total))) + "\n")
	}
	if m.lastPath != "" {
		sb.WriteString(" " + metaStyle.Render("last export: "+m.lastPath) + "\n")
	}
	sb.WriteString(" " + helpKeyStyle.Render("tab") + helpLabelStyle.Render(" filter  ") +
		helpKeyStyle.Render("x") + helpLabelStyle.Render(" export csv  ") +
		helpKeyStyle.Render("o") + helpLabelStyle.Render(" open last  ") +
		helpKeyStyle.Render("r") + helpLabelStyle.Render(" reload") + "\n")
	return sb.String()
}
