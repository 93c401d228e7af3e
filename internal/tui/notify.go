package tui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

// notifyTTL is how long a notification stays on screen.
const notifyTTL = 5 * time.Second

// notifyMsg carries a new notification to the root model.
type notifyMsg struct {
	n domain.Notification
}

// notifyExpiredMsg removes a notification after its TTL.
type notifyExpiredMsg struct {
	id uuid.UUID
}

// sessionExpiredMsg is emitted when the API answers 401; the root model
// clears the session and sends the user back to the login screen.
type sessionExpiredMsg struct{}

// notify queues a notification of the given type.
func notify(typ domain.NotificationType, message string) tea.Cmd {
	return func() tea.Msg {
		return notifyMsg{n: domain.NewNotification(typ, message)}
	}
}

func expireCmd(id uuid.UUID) tea.Cmd {
	return tea.Tick(notifyTTL, func(time.Time) tea.Msg {
		return notifyExpiredMsg{id: id}
	})
}

// errorMessage extracts the user-facing text from a gateway failure.
func errorMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var connErr *api.ConnError
	if errors.As(err, &connErr) {
		return connErr.Error()
	}
	return err.Error()
}

// reportError converts a gateway failure into user feedback. A 401
// additionally expires the session.
func reportError(err error) tea.Cmd {
	cmds := []tea.Cmd{notify(domain.NotifyError, errorMessage(err))}
	if api.IsStatus(err, 401) {
		cmds = append(cmds, func() tea.Msg { return sessionExpiredMsg{} })
	}
	return tea.Batch(cmds...)
}

func notifyStyleFor(typ domain.NotificationType) func(...string) string {
	switch typ {
	case domain.NotifySuccess:
		return notifySuccessStyle.Render
	case domain.NotifyError:
		return notifyErrorStyle.Render
	case domain.NotifyWarning:
		return notifyWarningStyle.Render
	default:
		return notifyInfoStyle.Render
	}
}

// renderNotifications draws the transient notification stack, newest last.
func renderNotifications(notices []domain.Notification, width int) string {
	if len(notices) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, n := range notices {
		render := notifyStyleFor(n.Type)
		line := render("● ") + render(truncStr(n.Message, width-4))
		sb.WriteString(" " + line + "\n")
	}
	return sb.String()
}
