package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/refundesk/refundesk/internal/guard"
	"github.com/refundesk/refundesk/internal/session"
	"github.com/refundesk/refundesk/pkg/api"
	"github.com/refundesk/refundesk/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewSignup
	viewDashboard
	viewClients
	viewMembers
	viewRefunds
	viewNewRefund
	viewReports
)

var viewRoutes = map[view]guard.Route{
	viewLogin:     guard.RouteLogin,
	viewSignup:    guard.RouteSignup,
	viewDashboard: guard.RouteHome,
	viewClients:   guard.RouteClients,
	viewMembers:   guard.RouteMembers,
	viewRefunds:   guard.RouteRefunds,
	viewNewRefund: guard.RouteNewRefund,
	viewReports:   guard.RouteReports,
}

var routeViews = map[guard.Route]view{
	guard.RouteLogin:     viewLogin,
	guard.RouteSignup:    viewSignup,
	guard.RouteHome:      viewDashboard,
	guard.RouteClients:   viewClients,
	guard.RouteMembers:   viewMembers,
	guard.RouteRefunds:   viewRefunds,
	guard.RouteNewRefund: viewNewRefund,
	guard.RouteReports:   viewReports,
}

// App is the root Bubbletea model.
type App struct {
	client    *api.Client
	session   *session.Store
	exportDir string
	version   string

	view      view
	login     loginModel
	signup    signupModel
	dashboard dashboardModel
	clients   clientsModel
	members   membersModel
	refunds   refundsModel
	newRefund newRefundModel
	reports   reportsModel

	notices []domain.Notification
	width   int
	height  int
}

// NewApp creates the root model. The starting screen comes from the
// guard: home when a session was rehydrated, login otherwise.
func NewApp(c *api.Client, s *session.Store, exportDir, version string) App {
	a := App{
		client:    c,
		session:   s,
		exportDir: exportDir,
		version:   version,
		view:      viewDashboard,
	}
	if target, redirect := guard.Evaluate(guard.RouteHome, s.IsAuthenticated()); redirect {
		a.view = routeViews[target]
	}
	a = a.freshModel(a.view)
	return a
}

func (a App) Init() tea.Cmd {
	return a.activeInit()
}

// freshModel rebuilds the model behind v so every navigation lands on a
// screen that loads from scratch, the way a full page navigation would.
func (a App) freshModel(v view) App {
	switch v {
	case viewLogin:
		a.login = newLoginModel(a.client)
	case viewSignup:
		a.signup = newSignupModel(a.client)
	case viewDashboard:
		a.dashboard = newDashboardModel(a.client, a.session)
	case viewClients:
		a.clients = newClientsModel(a.client, a.session)
	case viewMembers:
		a.members = newMembersModel(a.client, a.session)
	case viewRefunds:
		a.refunds = newRefundsModel(a.client, a.session)
	case viewNewRefund:
		a.newRefund = newNewRefundModel(a.client, a.session)
	case viewReports:
		a.reports = newReportsModel(a.client, a.session, a.exportDir)
	}
	return a
}

func (a App) activeInit() tea.Cmd {
	switch a.view {
	case viewLogin:
		return a.login.Init()
	case viewSignup:
		return a.signup.Init()
	case viewDashboard:
		return a.dashboard.Init()
	case viewClients:
		return a.clients.Init()
	case viewMembers:
		return a.members.Init()
	case viewRefunds:
		return a.refunds.Init()
	case viewNewRefund:
		return a.newRefund.Init()
	case viewReports:
		return a.reports.Init()
	}
	return nil
}

// navigate switches screens, letting the guard veto the destination.
func (a App) navigate(v view) (App, tea.Cmd) {
	if target, redirect := guard.Evaluate(viewRoutes[v], a.session.IsAuthenticated()); redirect {
		v = routeViews[target]
	}
	a.view = v
	a = a.freshModel(v)
	cmds := []tea.Cmd{a.activeInit()}
	if a.width > 0 {
		a, _ = a.propagateSize(a.bodySize())
	}
	return a, tea.Batch(cmds...)
}

// bodySize is the window minus chrome: header (2), tab bar (1),
// notification area (up to 3) and help hints handled per screen.
func (a App) bodySize() tea.WindowSizeMsg {
	h := a.height - 6
	if h < 5 {
		h = 5
	}
	return tea.WindowSizeMsg{Width: a.width, Height: h}
}

func (a App) propagateSize(msg tea.WindowSizeMsg) (App, tea.Cmd) {
	a.login, _ = a.login.Update(msg)
	a.signup, _ = a.signup.Update(msg)
	a.dashboard, _ = a.dashboard.Update(msg)
	a.clients, _ = a.clients.Update(msg)
	a.members, _ = a.members.Update(msg)
	a.refunds, _ = a.refunds.Update(msg)
	a.newRefund, _ = a.newRefund.Update(msg)
	a.reports, _ = a.reports.Update(msg)
	return a, nil
}

// isEditing reports whether the active screen is capturing text, in
// which case global single-letter keys stay out of the way.
func (a App) isEditing() bool {
	switch a.view {
	case viewLogin:
		return a.login.editing()
	case viewSignup:
		return a.signup.editing()
	case viewDashboard:
		return a.dashboard.editing()
	case viewClients:
		return a.clients.editing()
	case viewMembers:
		return a.members.editing()
	case viewRefunds:
		return a.refunds.editing()
	case viewNewRefund:
		return a.newRefund.editing()
	case viewReports:
		return a.reports.editing()
	}
	return false
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.propagateSize(a.bodySize())

	case notifyMsg:
		a.notices = append(a.notices, msg.n)
		return a, expireCmd(msg.n.ID)

	case notifyExpiredMsg:
		kept := a.notices[:0]
		for _, n := range a.notices {
			if n.ID != msg.id {
				kept = append(kept, n)
			}
		}
		a.notices = kept
		return a, nil

	case sessionExpiredMsg:
		a.session.Logout()
		next, cmd := a.navigate(viewLogin)
		return next, tea.Batch(cmd, notify(domain.NotifyWarning, "Session expired, sign in again"))

	case loginResultMsg:
		if msg.err == nil && msg.auth != nil {
			a.session.SetToken(msg.auth.AccessToken)
			user := msg.auth.User
			a.session.SetUser(&user)
			next, cmd := a.navigate(viewDashboard)
			return next, tea.Batch(cmd, notify(domain.NotifySuccess, "Signed in successfully"))
		}
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		return a, tea.Batch(cmd, notify(domain.NotifyError, errorMessage(msg.err)))

	case signupResultMsg:
		if msg.err == nil {
			next, cmd := a.navigate(viewLogin)
			return next, tea.Batch(cmd, notify(domain.NotifySuccess, "Account created, sign in to continue"))
		}
		var cmd tea.Cmd
		a.signup, cmd = a.signup.Update(msg)
		return a, tea.Batch(cmd, notify(domain.NotifyError, errorMessage(msg.err)))

	case tea.KeyMsg:
		if next, cmd, handled := a.handleGlobalKey(msg); handled {
			return next, cmd
		}
	}

	return a.forward(msg)
}

// handleGlobalKey deals with quitting, tab switching and the
// login/signup crossover keys.
func (a App) handleGlobalKey(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit, true
	}

	switch a.view {
	case viewLogin:
		if key == "ctrl+s" {
			next, cmd := a.navigate(viewSignup)
			return next, cmd, true
		}
		return a, nil, false
	case viewSignup:
		if key == "esc" {
			next, cmd := a.navigate(viewLogin)
			return next, cmd, true
		}
		return a, nil, false
	}

	// Protected screens from here on.
	if key == "ctrl+l" {
		a.session.Logout()
		next, cmd := a.navigate(viewLogin)
		return next, tea.Batch(cmd, notify(domain.NotifyInfo, "Signed out")), true
	}

	if a.isEditing() {
		return a, nil, false
	}

	switch key {
	case "q":
		return a, tea.Quit, true
	case "esc":
		if a.view != viewDashboard {
			next, cmd := a.navigate(viewDashboard)
			return next, cmd, true
		}
		return a, nil, false
	}

	tabs := map[string]view{
		"1": viewDashboard,
		"2": viewClients,
		"3": viewMembers,
		"4": viewRefunds,
		"5": viewNewRefund,
		"6": viewReports,
	}
	if target, ok := tabs[key]; ok {
		if target == a.view {
			return a, nil, true
		}
		next, cmd := a.navigate(target)
		return next, cmd, true
	}
	return a, nil, false
}

func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewSignup:
		a.signup, cmd = a.signup.Update(msg)
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case viewClients:
		a.clients, cmd = a.clients.Update(msg)
	case viewMembers:
		a.members, cmd = a.members.Update(msg)
	case viewRefunds:
		a.refunds, cmd = a.refunds.Update(msg)
	case viewNewRefund:
		a.newRefund, cmd = a.newRefund.Update(msg)
	case viewReports:
		a.reports, cmd = a.reports.Update(msg)
	}
	return a, cmd
}

func (a App) activeView() string {
	switch a.view {
	case viewLogin:
		return a.login.View()
	case viewSignup:
		return a.signup.View()
	case viewDashboard:
		return a.dashboard.View()
	case viewClients:
		return a.clients.View()
	case viewMembers:
		return a.members.View()
	case viewRefunds:
		return a.refunds.View()
	case viewNewRefund:
		return a.newRefund.View()
	case viewReports:
		return a.reports.View()
	}
	return ""
}

func (a App) View() string {
	header := " " + accentStyle.Render("REFUNDESK")
	if a.version != "" {
		header += " " + metaStyle.Render(a.version)
	}
	if u := a.session.User(); u != nil {
		who := u.Email
		if who == "" {
			who = u.Name
		}
		right := dimStyle.Render(who) + "  " + helpKeyStyle.Render("ctrl+l") + helpLabelStyle.Render(" sign out")
		pad := a.width - lipgloss.Width(header) - lipgloss.Width(right) - 1
		if pad < 1 {
			pad = 1
		}
		header += strings.Repeat(" ", pad) + right
	}

	var sb strings.Builder
	sb.WriteString(header + "\n")
	sb.WriteString(a.tabBar() + "\n")
	sb.WriteString(renderNotifications(a.notices, a.width))
	sb.WriteString(a.activeView())
	return sb.String()
}

// tabBar renders the protected-screen navigation, or a hint on the
// public screens.
func (a App) tabBar() string {
	if a.view == viewLogin || a.view == viewSignup {
		return " " + metaStyle.Render(strings.Repeat("─", max(a.width-2, 4)))
	}
	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Dashboard", viewDashboard},
		{"2", "Clients", viewClients},
		{"3", "Members", viewMembers},
		{"4", "Refunds", viewRefunds},
		{"5", "New refund", viewNewRefund},
		{"6", "Reports", viewReports},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := t.key + " " + t.name
		if t.v == a.view {
			parts = append(parts, selectedStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	return " " + strings.Join(parts, metaStyle.Render("   "))
}
