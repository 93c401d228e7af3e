package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/refundesk/refundesk/pkg/domain"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 1,00"},
		{1234.56, "R$ 1.234,56"},
		{1000000, "R$ 1.000.000,00"},
		{0.1, "R$ 0,10"},
		{99.999, "R$ 100,00"},
		{-250.5, "-R$ 250,50"},
	}
	for _, tc := range tests {
		if got := formatCurrency(tc.amount); got != tc.want {
			t.Errorf("formatCurrency(%v) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1234.56", 1234.56},
		{"1.234,56", 1234.56},
		{"R$ 1.234,56", 1234.56},
		{"42", 42},
		{" 7,50 ", 7.5},
	}
	for _, tc := range tests {
		got, err := parseAmount(tc.in)
		if err != nil {
			t.Errorf("parseAmount(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountRejectsInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "0", "-10", "12,34,56"} {
		if _, err := parseAmount(in); err == nil {
			t.Errorf("parseAmount(%q) expected error, got nil", in)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name@example.com.br", "x@y.z"}
	for _, s := range valid {
		if !validEmail(s) {
			t.Errorf("validEmail(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "plain", "@b.co", "a@", "a@b", "a@b.", "a@@b.co", "a b@c.co"}
	for _, s := range invalid {
		if validEmail(s) {
			t.Errorf("validEmail(%q) = true, want false", s)
		}
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("short", 10); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
	got := truncStr("a very long description indeed", 10)
	if len([]rune(got)) != 10 {
		t.Errorf("expected 10 runes, got %d (%q)", len([]rune(got)), got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestFormatTimeRelative(t *testing.T) {
	now := time.Now()
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "-"},
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
	}
	for _, tc := range tests {
		if got := formatTime(tc.t); got != tc.want {
			t.Errorf("formatTime(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if !strings.Contains(statusLabel(domain.RefundPending), "pending") {
		t.Error("expected 'pending' label")
	}
	if !strings.Contains(statusLabel(domain.RefundApproved), "approved") {
		t.Error("expected 'approved' label")
	}
	if !strings.Contains(statusLabel(domain.RefundRejected), "rejected") {
		t.Error("expected 'rejected' label")
	}
}
