package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/refundesk/refundesk/pkg/api"
)

func fillSignup(m signupModel, name, email, password, confirm string) signupModel {
	values := [numSignupFields]string{name, email, password, confirm}
	for f, v := range values {
		m = m.setFocus(signupField(f))
		for _, r := range v {
			m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		}
	}
	return m
}

func submitSignup(m signupModel) (signupModel, tea.Cmd) {
	m = m.setFocus(signupFieldConfirm)
	return m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSignupRequiresName(t *testing.T) {
	m := fillSignup(newSignupModel(nil), "", "a@b.co", "secret1", "secret1")
	m, _ = submitSignup(m)
	if !strings.Contains(m.View(), "name is required") {
		t.Errorf("expected 'name is required', got:\n%s", m.View())
	}
}

func TestSignupShortPassword(t *testing.T) {
	m := fillSignup(newSignupModel(nil), "Ana", "a@b.co", "12345", "12345")
	m, _ = submitSignup(m)
	if !strings.Contains(m.View(), "at least 6 characters") {
		t.Errorf("expected short-password banner, got:\n%s", m.View())
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	m := fillSignup(newSignupModel(nil), "Ana", "a@b.co", "secret1", "secret2")
	m, _ = submitSignup(m)
	if !strings.Contains(m.View(), "passwords do not match") {
		t.Errorf("expected mismatch banner, got:\n%s", m.View())
	}
}

func TestSignupValidFormSubmits(t *testing.T) {
	m := fillSignup(newSignupModel(api.New("")), "Ana", "a@b.co", "secret1", "secret1")
	m, cmd := submitSignup(m)
	if cmd == nil {
		t.Fatal("expected a submit command for a valid form")
	}
	if !m.submitting {
		t.Error("expected submitting=true after submit")
	}
}

func TestSignupResultErrorShowsBanner(t *testing.T) {
	m := newSignupModel(nil)
	m.submitting = true
	m, _ = m.Update(signupResultMsg{err: &api.APIError{StatusCode: 409, Message: "conflict (e.g., duplicate email)"}})
	if !strings.Contains(m.View(), "duplicate email") {
		t.Errorf("expected conflict banner, got:\n%s", m.View())
	}
}
