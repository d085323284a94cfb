package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fitcoach/internal/api"
	"fitcoach/internal/config"
	"fitcoach/internal/service"
)

// Screen identifiers
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenRegister
	ScreenDashboard
	ScreenDiet
	ScreenWorkout
	ScreenAdvanced
	ScreenCalories
	ScreenCoach
	ScreenHistory
	ScreenProfile
	ScreenHelp
)

// SessionExpiredMsg is broadcast when the backend rejects the token.
// The app wipes local state and returns to the login screen.
type SessionExpiredMsg struct{}

// LoggedInMsg is sent after a successful login or registration.
type LoggedInMsg struct{}

// showRegisterMsg and showLoginMsg flip between the two auth screens.
type showRegisterMsg struct{}
type showLoginMsg struct{}

// sessionExpired converts an unauthorized error into the global
// expiry message. Screens call it first on every error result.
func sessionExpired(err error) tea.Cmd {
	if err == nil || !errors.Is(err, api.ErrUnauthorized) {
		return nil
	}
	return func() tea.Msg { return SessionExpiredMsg{} }
}

// App is the root Bubble Tea model
type App struct {
	screen     Screen
	prevScreen Screen

	// Screen models
	login     LoginModel
	register  RegisterModel
	dashboard DashboardModel
	diet      DietModel
	workout   WorkoutModel
	advanced  AdvancedModel
	calories  CaloriesModel
	coach     CoachModel
	history   HistoryModel
	profile   ProfileModel
	help      HelpModel

	// Services
	coachSvc   *service.Coach
	historySvc *service.HistoryService
	display    config.DisplayConfig

	// Window dimensions
	width  int
	height int

	status string
}

// NewApp creates the root model. authenticated picks the start screen.
func NewApp(coachSvc *service.Coach, historySvc *service.HistoryService, display config.DisplayConfig, authenticated bool) *App {
	screen := ScreenLogin
	if authenticated {
		screen = ScreenDashboard
	}

	return &App{
		screen:     screen,
		coachSvc:   coachSvc,
		historySvc: historySvc,
		display:    display,
		login:      NewLoginModel(coachSvc),
		register:   NewRegisterModel(coachSvc),
		dashboard:  NewDashboardModel(coachSvc, historySvc, display),
		diet:       NewDietModel(coachSvc),
		workout:    NewWorkoutModel(coachSvc),
		advanced:   NewAdvancedModel(coachSvc),
		calories:   NewCaloriesModel(coachSvc),
		coach:      NewCoachModel(coachSvc),
		history:    NewHistoryModel(historySvc),
		profile:    NewProfileModel(coachSvc),
		help:       NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenDashboard {
		return a.dashboard.Init()
	}
	return a.login.Init()
}

// navTargets maps global keys to screens. Only active once logged in
// and when the focused screen is not capturing text input.
var navTargets = map[string]Screen{
	"1": ScreenDashboard,
	"2": ScreenDiet,
	"3": ScreenWorkout,
	"4": ScreenAdvanced,
	"5": ScreenCalories,
	"6": ScreenCoach,
	"7": ScreenHistory,
	"8": ScreenProfile,
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		if a.loggedIn() && !a.capturingInput() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "?":
				if a.screen != ScreenHelp {
					a.prevScreen = a.screen
					a.screen = ScreenHelp
				}
				return a, nil
			case "esc":
				if a.screen == ScreenHelp {
					a.screen = a.prevScreen
					return a, nil
				}
			case "ctrl+l":
				a.coachSvc.Logout()
				return a.resetToLogin()
			default:
				if target, ok := navTargets[msg.String()]; ok && target != a.screen {
					return a.switchTo(target)
				}
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case showRegisterMsg:
		a.register = NewRegisterModel(a.coachSvc)
		a.screen = ScreenRegister
		return a, a.register.Init()

	case showLoginMsg:
		return a.resetToLogin()

	case LoggedInMsg:
		a.dashboard = NewDashboardModel(a.coachSvc, a.historySvc, a.display)
		a.screen = ScreenDashboard
		a.status = ""
		return a, a.dashboard.Init()

	case SessionExpiredMsg:
		a.coachSvc.Logout()
		model, cmd := a.resetToLogin()
		a.status = "Session expired, please log in again"
		return model, cmd
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenLogin:
		var m tea.Model
		m, cmd = a.login.Update(msg)
		a.login = m.(LoginModel)
	case ScreenRegister:
		var m tea.Model
		m, cmd = a.register.Update(msg)
		a.register = m.(RegisterModel)
	case ScreenDashboard:
		var m tea.Model
		m, cmd = a.dashboard.Update(msg)
		a.dashboard = m.(DashboardModel)
	case ScreenDiet:
		var m tea.Model
		m, cmd = a.diet.Update(msg)
		a.diet = m.(DietModel)
	case ScreenWorkout:
		var m tea.Model
		m, cmd = a.workout.Update(msg)
		a.workout = m.(WorkoutModel)
	case ScreenAdvanced:
		var m tea.Model
		m, cmd = a.advanced.Update(msg)
		a.advanced = m.(AdvancedModel)
	case ScreenCalories:
		var m tea.Model
		m, cmd = a.calories.Update(msg)
		a.calories = m.(CaloriesModel)
	case ScreenCoach:
		var m tea.Model
		m, cmd = a.coach.Update(msg)
		a.coach = m.(CoachModel)
	case ScreenHistory:
		var m tea.Model
		m, cmd = a.history.Update(msg)
		a.history = m.(HistoryModel)
	case ScreenProfile:
		var m tea.Model
		m, cmd = a.profile.Update(msg)
		a.profile = m.(ProfileModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

// switchTo changes screens, re-initializing the target so it loads
// fresh data.
func (a *App) switchTo(target Screen) (tea.Model, tea.Cmd) {
	a.screen = target
	switch target {
	case ScreenDashboard:
		a.dashboard = NewDashboardModel(a.coachSvc, a.historySvc, a.display)
		return a, a.dashboard.Init()
	case ScreenDiet:
		return a, a.diet.Init()
	case ScreenWorkout:
		return a, a.workout.Init()
	case ScreenAdvanced:
		return a, a.advanced.Init()
	case ScreenCalories:
		return a, a.calories.Init()
	case ScreenCoach:
		return a, a.coach.Init()
	case ScreenHistory:
		a.history = NewHistoryModel(a.historySvc)
		return a, a.history.Init()
	case ScreenProfile:
		a.profile = NewProfileModel(a.coachSvc)
		return a, a.profile.Init()
	}
	return a, nil
}

func (a *App) resetToLogin() (tea.Model, tea.Cmd) {
	a.login = NewLoginModel(a.coachSvc)
	a.register = NewRegisterModel(a.coachSvc)
	a.screen = ScreenLogin
	return a, a.login.Init()
}

func (a *App) loggedIn() bool {
	return a.screen != ScreenLogin && a.screen != ScreenRegister
}

// capturingInput reports whether the focused screen owns the keyboard,
// which suspends global navigation keys.
func (a *App) capturingInput() bool {
	switch a.screen {
	case ScreenDiet:
		return a.diet.capturingInput()
	case ScreenWorkout:
		return a.workout.capturingInput()
	case ScreenAdvanced:
		return a.advanced.capturingInput()
	case ScreenCalories:
		return a.calories.capturingInput()
	case ScreenCoach:
		return a.coach.capturingInput()
	case ScreenHistory:
		return a.history.capturingInput()
	case ScreenProfile:
		return a.profile.capturingInput()
	}
	return false
}

// View renders the app
func (a *App) View() string {
	header := headerStyle.Render("FitCoach")

	var content string
	switch a.screen {
	case ScreenLogin:
		content = a.login.View()
	case ScreenRegister:
		content = a.register.View()
	case ScreenDashboard:
		content = a.dashboard.View()
	case ScreenDiet:
		content = a.diet.View()
	case ScreenWorkout:
		content = a.workout.View()
	case ScreenAdvanced:
		content = a.advanced.View()
	case ScreenCalories:
		content = a.calories.View()
	case ScreenCoach:
		content = a.coach.View()
	case ScreenHistory:
		content = a.history.View()
	case ScreenProfile:
		content = a.profile.View()
	case ScreenHelp:
		content = a.help.View()
	}

	parts := []string{header}
	if a.loggedIn() {
		parts = append(parts, a.renderNav())
	}
	parts = append(parts, content)
	if a.status != "" {
		parts = append(parts, statusStyle.Render(a.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		screen Screen
	}{
		{"1", "Dashboard", ScreenDashboard},
		{"2", "Diet", ScreenDiet},
		{"3", "Workout", ScreenWorkout},
		{"4", "Advanced", ScreenAdvanced},
		{"5", "Calories", ScreenCalories},
		{"6", "Coach", ScreenCoach},
		{"7", "History", ScreenHistory},
		{"8", "Profile", ScreenProfile},
		{"?", "Help", ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if a.screen == item.screen {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}
