package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

type refundCreatedMsg struct {
	refund *domain.Refund
	err    error
}

type refundFormField int

const (
	refundFieldDescription refundFormField = iota
	refundFieldAmount
	numRefundFields
)

// newRefundModel is the "request a reimbursement" form. The refund is
// always created for the signed-in user.
type newRefundModel struct {
	client  *api.Client
	session *session.Store

	inputs     [numRefundFields]textinput.Model
	focus      refundFormField
	banner     string
	submitting bool
	width      int
	height     int
}

func newNewRefundModel(c *api.Client, s *session.Store) newRefundModel {
	m := newRefundModel{client: c, session: s}

	desc := textinput.New()
	desc.Placeholder = "what was the expense?"
	desc.CharLimit = 200
	desc.Width = 48
	desc.Focus()
	m.inputs[refundFieldDescription] = desc

	amount := textinput.New()
	amount.Placeholder = "0,00"
	amount.CharLimit = 16
	amount.Width = 16
	m.inputs[refundFieldAmount] = amount

	return m
}

func (m newRefundModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m newRefundModel) submit() (newRefundModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	description := strings.TrimSpace(m.inputs[refundFieldDescription].Value())
	if description == "" {
		m.banner = "description is required"
		return m, nil
	}
	amount, err := parseAmount(m.inputs[refundFieldAmount].Value())
	if err != nil {
		m.banner = "amount must be a positive number"
		return m, nil
	}
	user := m.session.User()
	if user == nil {
		m.banner = "profile not loaded, sign in again"
		return m, nil
	}

	m.banner = ""
	m.submitting = true
	c, token := m.client, m.session.Token()
	req := domain.CreateRefundRequest{
		Description: description,
		Amount:      amount,
		UserID:      strconv.FormatInt(user.ID, 10),
	}
	return m, func() tea.Msg {
		refund, err := c.CreateRefund(context.Background(), token, req)
		return refundCreatedMsg{refund: refund, err: err}
	}
}

func (m newRefundModel) Update(msg tea.Msg) (newRefundModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refundCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.banner = errorMessage(msg.err)
			return m, reportError(msg.err)
		}
		m.inputs[refundFieldDescription].SetValue("")
		m.inputs[refundFieldAmount].SetValue("")
		m = m.setFocus(refundFieldDescription)
		return m, notify(domain.NotifySuccess, "Refund requested")

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m = m.setFocus((m.focus + 1) % numRefundFields)
			return m, nil
		case "shift+tab", "up":
			m = m.setFocus((m.focus + numRefundFields - 1) % numRefundFields)
			return m, nil
		case "enter":
			if m.focus == refundFieldAmount {
				return m.submit()
			}
			m = m.setFocus(refundFieldAmount)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m newRefundModel) setFocus(f refundFormField) newRefundModel {
	m.inputs[m.focus].Blur()
	m.focus = f
	m.inputs[m.focus].Focus()
	return m
}

func (m newRefundModel) editing() bool { return true }

func (m newRefundModel) View() string {
	var sb strings.Builder
	sb.WriteString(" " + titleStyle.Render("Request reimbursement") + "\n\n")

	if m.banner != "" {
		sb.WriteString(" " + errorBannerStyle.Render(m.banner) + "\n\n")
	}

	sb.WriteString(" " + inputLabelStyle.Render("Description") + "\n")
	sb.WriteString(" " + m.inputs[refundFieldDescription].View() + "\n\n")
	sb.WriteString(" " + inputLabelStyle.Render("Amount (R$)") + "\n")
	sb.WriteString(" " + m.inputs[refundFieldAmount].View() + "\n\n")

	if m.submitting {
		sb.WriteString(" " + dimStyle.Render("submitting...") + "\n")
	} else {
		sb.WriteString(" " + helpKeyStyle.Render("enter") + helpLabelStyle.Render(" submit") + "\n")
	}
	return sb.String()
}
