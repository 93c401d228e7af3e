package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/pkg/domain"
)

func newTestSession(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(session.NewFileStorage(t.TempDir()), nil)
}

func newTestDashboard(t *testing.T) dashboardModel {
	m := newDashboardModel(nil, newTestSession(t))
	m.width = 100
	m.height = 30
	return m
}

func testSummary() *domain.DashboardSummary {
	return &domain.DashboardSummary{
		Refunds: domain.RefundsSummary{
			TotalRefunds: 12,
			TotalAmount:  3456.78,
			ByStatus:     domain.RefundsByStatus{Pending: 4, Approved: 6, Rejected: 2},
		},
		Users:       domain.UsersSummary{TotalUsers: 9, ActiveUsers: 7},
		Clients:     domain.ClientsSummary{TotalClients: 5, ClosedContracts: 3},
		GeneratedAt: time.Now(),
	}
}

func TestDashboardLoadingUntilBothResults(t *testing.T) {
	m := newTestDashboard(t)
	if !strings.Contains(m.View(), "loading dashboard") {
		t.Errorf("expected loading state, got:\n%s", m.View())
	}

	m, _ = m.Update(summaryLoadedMsg{summary: testSummary()})
	if !strings.Contains(m.View(), "loading dashboard") {
		t.Error("expected loading to persist until the report lands")
	}

	m, _ = m.Update(reportLoadedMsg{})
	if strings.Contains(m.View(), "loading dashboard") {
		t.Errorf("expected dashboard to render after both results, got:\n%s", m.View())
	}
}

func TestDashboardRendersCards(t *testing.T) {
	m := newTestDashboard(t)
	m, _ = m.Update(summaryLoadedMsg{summary: testSummary()})
	m, _ = m.Update(reportLoadedMsg{})

	view := m.View()
	for _, want := range []string{"Total amount", "R$ 3.456,78", "Pending refunds", "Active members", "Closed contracts"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in dashboard view, got:\n%s", want, view)
		}
	}
}

func TestDashboardGreetsUser(t *testing.T) {
	m := newTestDashboard(t)
	m.session.SetUser(&domain.User{ID: 1, Name: "Marina", Email: "marina@acme.com"})
	m, _ = m.Update(summaryLoadedMsg{summary: testSummary()})
	m, _ = m.Update(reportLoadedMsg{})

	if !strings.Contains(m.View(), "Hello, Marina") {
		t.Errorf("expected greeting with user name, got:\n%s", m.View())
	}
}

func TestDashboardRecentRefundsCapped(t *testing.T) {
	m := newTestDashboard(t)
	reports := []domain.RefundReport{
		{ID: "1", Description: "Flight tickets", Amount: 100, Status: domain.RefundPending, CreatedAt: time.Now()},
		{ID: "2", Description: "Team lunch", Amount: 200, Status: domain.RefundApproved, CreatedAt: time.Now()},
		{ID: "3", Description: "Hotel", Amount: 300, Status: domain.RefundRejected, CreatedAt: time.Now()},
		{ID: "4", Description: "Taxi ride", Amount: 400, Status: domain.RefundPending, CreatedAt: time.Now()},
	}
	m, _ = m.Update(summaryLoadedMsg{summary: testSummary()})
	m, _ = m.Update(reportLoadedMsg{reports: reports})

	if len(m.recent) != recentRefunds {
		t.Errorf("expected %d recent refunds, got %d", recentRefunds, len(m.recent))
	}
	view := m.View()
	if !strings.Contains(view, "Flight tickets") {
		t.Errorf("expected first report in view, got:\n%s", view)
	}
	if strings.Contains(view, "Taxi ride") {
		t.Errorf("expected fourth report to be cut, got:\n%s", view)
	}
}

func TestDashboardReloadKey(t *testing.T) {
	m := newTestDashboard(t)
	m.client = nil
	m, _ = m.Update(summaryLoadedMsg{summary: testSummary()})
	m, _ = m.Update(reportLoadedMsg{})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("expected reload command on 'r'")
	}
	if m.ready() {
		t.Error("expected loading state after reload")
	}
}
