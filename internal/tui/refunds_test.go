package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/refundesk/refundesk/pkg/domain"
)

func makeRefund(id, desc string, amount float64, status domain.RefundStatus) domain.Refund {
	return domain.Refund{
		ID:          id,
		Description: desc,
		Amount:      amount,
		Status:      status,
		User:        &domain.RefundUser{ID: "u1", Name: "Marina"},
		CreatedAt:   time.Now(),
	}
}

func newTestRefunds(t *testing.T) refundsModel {
	m := newRefundsModel(nil, newTestSession(t))
	m.width = 100
	m.height = 30
	return m
}

func TestRefundsLoaded(t *testing.T) {
	m := newTestRefunds(t)
	m, _ = m.Update(refundsLoadedMsg{refunds: []domain.Refund{
		makeRefund("1", "Conference travel", 1200, domain.RefundPending),
	}})

	view := m.View()
	if !strings.Contains(view, "Conference travel") {
		t.Errorf("expected refund description, got:\n%s", view)
	}
	if !strings.Contains(view, "R$ 1.200,00") {
		t.Errorf("expected formatted amount, got:\n%s", view)
	}
}

func TestRefundsTabFiltering(t *testing.T) {
	m := newTestRefunds(t)
	m, _ = m.Update(refundsLoadedMsg{refunds: []domain.Refund{
		makeRefund("1", "Pending one", 10, domain.RefundPending),
		makeRefund("2", "Approved one", 20, domain.RefundApproved),
		makeRefund("3", "Rejected one", 30, domain.RefundRejected),
	}})

	if got := len(m.filtered()); got != 3 {
		t.Fatalf("All tab: expected 3 refunds, got %d", got)
	}

	// tab → Pending
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	visible := m.filtered()
	if len(visible) != 1 || visible[0].Status != domain.RefundPending {
		t.Errorf("Pending tab: expected 1 pending refund, got %v", visible)
	}

	// tab → Approved
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	visible = m.filtered()
	if len(visible) != 1 || visible[0].Status != domain.RefundApproved {
		t.Errorf("Approved tab: expected 1 approved refund, got %v", visible)
	}
}

func TestRefundsTabCounters(t *testing.T) {
	m := newTestRefunds(t)
	m, _ = m.Update(refundsLoadedMsg{refunds: []domain.Refund{
		makeRefund("1", "a", 1, domain.RefundPending),
		makeRefund("2", "b", 2, domain.RefundPending),
		makeRefund("3", "c", 3, domain.RefundApproved),
	}})

	view := m.View()
	if !strings.Contains(view, "All (3)") {
		t.Errorf("expected 'All (3)' tab, got:\n%s", view)
	}
	if !strings.Contains(view, "Pending (2)") {
		t.Errorf("expected 'Pending (2)' tab, got:\n%s", view)
	}
	if !strings.Contains(view, "Approved (1)") {
		t.Errorf("expected 'Approved (1)' tab, got:\n%s", view)
	}
	if !strings.Contains(view, "Rejected (0)") {
		t.Errorf("expected 'Rejected (0)' tab, got:\n%s", view)
	}
}

func TestRefundsApproveOnlyPending(t *testing.T) {
	m := newTestRefunds(t)
	m, _ = m.Update(refundsLoadedMsg{refunds: []domain.Refund{
		makeRefund("1", "already done", 10, domain.RefundApproved),
	}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd != nil {
		t.Error("expected no command when approving a non-pending refund")
	}
}

func TestRefundsDetailOverlay(t *testing.T) {
	m := newTestRefunds(t)
	m, _ = m.Update(refundsLoadedMsg{refunds: []domain.Refund{
		makeRefund("1", "Team offsite", 500, domain.RefundPending),
	}})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.detail == nil {
		t.Fatal("expected detail overlay after enter")
	}
	if !strings.Contains(m.View(), "Team offsite") {
		t.Errorf("expected detail to show description, got:\n%s", m.View())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.detail != nil {
		t.Error("expected detail overlay closed after esc")
	}
}

func TestRefundsUpdateReloads(t *testing.T) {
	m := newTestRefunds(t)
	m.client = nil
	m, cmd := m.Update(refundUpdatedMsg{status: domain.RefundApproved})
	if cmd == nil {
		t.Fatal("expected notification + reload command after an update")
	}
	if m.detail != nil {
		t.Error("expected detail overlay closed after an update")
	}
}

func TestRefundsEmptyTabMessage(t *testing.T) {
	m := newTestRefunds(t)
	m, _ = m.Update(refundsLoadedMsg{})
	if !strings.Contains(m.View(), "no refunds here") {
		t.Errorf("expected empty message, got:\n%s", m.View())
	}
}
