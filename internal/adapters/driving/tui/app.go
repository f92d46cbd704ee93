package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/views/calculator"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/abacus/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/abacus/internal/core/domain"
	"github.com/custodia-labs/abacus/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// configChanges signals that the config file was reloaded.
	configChanges <-chan struct{}

	// styles holds the TUI styles, shared by every view.
	styles *styles.Styles

	// theme is the palette currently applied to styles.
	theme domain.ThemeName

	// menuView is the main navigation menu.
	menuView *menu.View

	// calculatorView is the display and keypad.
	calculatorView *calculator.View

	// settingsView is the settings configuration view component.
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// helpReturn is the view esc returns to from help.
	helpReturn messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
// The saved theme is applied before the first render.
func NewApp(ports *Ports) (*App, error) {
	if ports == nil {
		return nil, fmt.Errorf("creating app: %w", ErrInvalidPorts)
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	theme := domain.DefaultAppSettings().Display.Theme
	if ports.Settings != nil {
		if current, err := ports.Settings.Get(); err == nil {
			theme = current.Display.Theme
		} else {
			logger.Warn("loading settings: %v", err)
		}
	}

	s := styles.NewStyles(styles.ThemeByName(theme))

	return &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		theme:          theme,
		menuView:       menu.NewView(s),
		calculatorView: calculator.NewView(s, ports.Calculator, ports.Sessions),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu, // Start with menu
		helpReturn:     messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.calculatorView.WithContext(ctx)
	return a
}

// WithConfigChanges re-reads settings whenever changes fires.
func (a *App) WithConfigChanges(changes <-chan struct{}) *App {
	a.configChanges = changes
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("abacus"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.calculatorView.SetDimensions(msg.Width, msg.Height)
		a.settingsView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewCalculator:
			a.calculatorView, cmd = a.calculatorView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			switch msg.String() {
			case "esc", "?":
				a.currentView = a.helpReturn
			case "q":
				return a, tea.Quit
			}
		}
		return a, cmd

	case messages.ViewChanged:
		if msg.View == messages.ViewHelp {
			a.helpReturn = a.currentView
			if a.helpReturn == messages.ViewHelp {
				a.helpReturn = messages.ViewMenu
			}
		}
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewCalculator:
			return a, a.calculatorView.Init()
		case messages.ViewSettings:
			a.settingsView.Reset()
			return a, a.settingsView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// Nothing to load
		}
		return a, nil

	case messages.SessionOpened:
		if msg.Err != nil {
			a.err = msg.Err
			logger.Warn("opening session: %v", msg.Err)
		}
		a.calculatorView, cmd = a.calculatorView.Update(msg)
		return a, cmd

	case messages.TokenPressed:
		logger.Debug("pressed %q, display %q", msg.Token, msg.Display.Buffer)
		return a, nil

	case messages.ThemeChanged:
		a.applyTheme(msg.Theme)
		return a, nil

	case messages.SettingsLoaded:
		if msg.Err == nil && msg.Settings != nil {
			a.applyTheme(msg.Settings.Display.Theme)
		}
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.ConfigReloaded:
		logger.Debug("config reloaded")
		if a.ports.Settings == nil {
			return a, nil
		}
		return a, settings.LoadSettings(a.ports.Settings)

	case messages.ErrorOccurred:
		a.err = msg.Err
		if a.currentView == messages.ViewCalculator {
			a.calculatorView, cmd = a.calculatorView.Update(msg)
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// applyTheme restyles every view in place.
func (a *App) applyTheme(theme domain.ThemeName) {
	if theme == a.theme {
		return
	}
	a.styles.Apply(styles.ThemeByName(theme))
	a.theme = theme
	logger.Debug("theme set to %s", theme)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewCalculator:
		return a.calculatorView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Calculator:
  0-9 . 00    Type digits
  + - * / %   Type operator (x also multiplies)
  = or enter  Evaluate
  backspace   Delete last character
  c or del    Clear
  arrows      Move on the keypad
  space       Press the highlighted key

` + a.styles.Help.Render("[esc] back")
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))

	if a.configChanges != nil {
		go forwardConfigChanges(a.ctx, a.configChanges, p)
	}

	_, err := p.Run()
	if cerr := a.calculatorView.Close(context.WithoutCancel(a.ctx)); cerr != nil {
		logger.Warn("closing session: %v", cerr)
	}
	return err
}

// sender is the part of tea.Program used to inject messages.
type sender interface {
	Send(msg tea.Msg)
}

// forwardConfigChanges turns config reloads into ConfigReloaded messages.
func forwardConfigChanges(ctx context.Context, changes <-chan struct{}, p sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			p.Send(messages.ConfigReloaded{})
		}
	}
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Theme returns the palette currently applied.
func (a *App) Theme() domain.ThemeName {
	return a.theme
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
