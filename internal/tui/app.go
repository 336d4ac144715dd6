// Package tui implements the terminal user interface for medboard.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/medboard/medboard/internal/config"
	"github.com/medboard/medboard/internal/hospital"
	"github.com/medboard/medboard/internal/journal"
	"github.com/medboard/medboard/internal/services/admissions"
	"github.com/medboard/medboard/internal/services/transfers"
	"github.com/medboard/medboard/internal/services/treatment"
	"github.com/medboard/medboard/internal/services/triage"
	"github.com/medboard/medboard/internal/services/warehouse"
	"github.com/medboard/medboard/internal/tui/components"
	historyview "github.com/medboard/medboard/internal/tui/views/history"
	treatmentview "github.com/medboard/medboard/internal/tui/views/treatment"
	waitingview "github.com/medboard/medboard/internal/tui/views/waiting"
	wardsview "github.com/medboard/medboard/internal/tui/views/wards"
	warehouseview "github.com/medboard/medboard/internal/tui/views/warehouse"
)

// Module identifies an application screen.
type Module string

const (
	ModuleDashboard Module = "dashboard"
	ModuleWards     Module = "wards"
	ModuleWaiting   Module = "waiting"
	ModuleTreatment Module = "treatment"
	ModuleWarehouse Module = "warehouse"
	ModuleHistory   Module = "history"
	ModuleHelp      Module = "help"
)

// Services bundles everything the shell operates on.
type Services struct {
	State      *hospital.State
	Admissions *admissions.Service
	Triage     *triage.Service
	Transfers  *transfers.Service
	Treatment  *treatment.Service
	Warehouse  *warehouse.Service
	Journal    *journal.Journal
}

type alertLevel int

const (
	alertInfo alertLevel = iota
	alertWarn
	alertCrit
)

// App is the root bubbletea model.
type App struct {
	hospitalName string
	svc          Services
	theme        *Theme
	keys         KeyMap

	module Module
	width  int
	height int
	ready  bool

	showConfirm bool
	quitting    bool

	alert      string
	alertLevel alertLevel

	// dayOpen tracks whether this day's arrivals were already admitted.
	dayOpen bool

	waitingView   *waitingview.QueueView
	wardsView     *wardsview.BoardView
	treatmentView *treatmentview.CureView
	warehouseView *warehouseview.StockView
	historyView   *historyview.LogView
}

// NewApp creates the application shell.
func NewApp(cfg *config.Config, svc Services) *App {
	theme := NewTheme(cfg.Display.ColorScheme)

	app := &App{
		hospitalName:  cfg.Hospital.Name,
		svc:           svc,
		theme:         theme,
		keys:          DefaultKeyMap(),
		module:        ModuleDashboard,
		waitingView:   waitingview.NewQueueView(svc.Transfers),
		wardsView:     wardsview.NewBoardView(svc.State),
		treatmentView: treatmentview.NewCureView(svc.State, svc.Treatment),
		warehouseView: warehouseview.NewStockView(svc.State, svc.Warehouse),
		historyView:   historyview.NewLogView(svc.Journal),
	}

	tableStyles := components.TableStyles{
		Header:   theme.TableHeader,
		Row:      theme.TableRow,
		RowAlt:   theme.TableRowAlt,
		Selected: theme.Selected,
		Footer:   theme.Muted,
	}
	app.waitingView.SetTableStyles(tableStyles)
	app.treatmentView.SetTableStyles(tableStyles)
	app.warehouseView.SetTableStyles(tableStyles)
	app.historyView.SetTableStyles(tableStyles)

	app.warehouseView.SetFormStyles(components.FormStyles{
		Label:   theme.Label,
		Focused: theme.Focused,
		Blurred: theme.Muted,
		Title:   theme.Title,
	})

	return app
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	// Quit confirmation takes everything.
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		default:
			a.showConfirm = false
		}
		return a, nil
	}

	// Open forms swallow keystrokes except escape and enter.
	if a.module == ModuleWarehouse && a.warehouseView.InForm() {
		switch {
		case a.keys.Back.Matches(msg):
			a.warehouseView.Cancel()
			return a, nil
		case a.keys.Select.Matches(msg):
			a.submitWarehouse(ctx)
			return a, nil
		default:
			return a, a.warehouseView.UpdateForm(msg)
		}
	}

	if a.keys.IsQuit(msg) {
		a.showConfirm = true
		return a, nil
	}

	if a.keys.IsFunctionKey(msg) {
		a.switchModule(ctx, Module(a.keys.GetFunctionKeyModule(msg)))
		return a, nil
	}

	// Day controls work from any screen.
	switch {
	case a.keys.BeginDay.Matches(msg):
		a.beginDay(ctx)
		return a, nil
	case a.keys.AdvanceTurn.Matches(msg):
		a.advanceTurn(ctx)
		return a, nil
	case a.keys.EndDay.Matches(msg):
		a.endDay(ctx)
		return a, nil
	}

	a.handleModuleKey(ctx, msg)
	return a, nil
}

func (a *App) switchModule(ctx context.Context, m Module) {
	if m == "quit" {
		a.showConfirm = true
		return
	}
	a.module = m
	a.alert = ""
	a.refresh(ctx)
}

func (a *App) refresh(ctx context.Context) {
	switch a.module {
	case ModuleWaiting:
		a.waitingView.Load(ctx)
	case ModuleTreatment:
		a.treatmentView.Load(ctx)
	case ModuleWarehouse:
		a.warehouseView.Load(ctx)
	case ModuleHistory:
		a.historyView.Load(ctx)
	}
}

func (a *App) handleModuleKey(ctx context.Context, msg tea.KeyMsg) {
	switch a.module {
	case ModuleWaiting:
		switch {
		case a.keys.Up.Matches(msg):
			a.waitingView.MoveUp()
		case a.keys.Down.Matches(msg):
			a.waitingView.MoveDown()
		case MatchesAny(msg, a.keys.Right, a.keys.PageDown):
			a.waitingView.NextPage()
			a.waitingView.Load(ctx)
		case MatchesAny(msg, a.keys.Left, a.keys.PageUp):
			a.waitingView.PrevPage()
			a.waitingView.Load(ctx)
		case a.keys.Select.Matches(msg):
			if a.waitingView.Picking() {
				p, ward, err := a.waitingView.ConfirmTransfer(ctx)
				if err != nil {
					a.setAlert(fmt.Sprintf("Transfer failed: %v", err), alertCrit)
				} else {
					a.setAlert(fmt.Sprintf("%s transferred to %s", p.FullName(), ward), alertInfo)
				}
			} else {
				a.waitingView.OpenPicker()
			}
		case a.keys.Back.Matches(msg):
			a.waitingView.ClosePicker()
		}

	case ModuleWards:
		switch {
		case a.keys.Up.Matches(msg):
			a.wardsView.MoveUp()
		case a.keys.Down.Matches(msg):
			a.wardsView.MoveDown()
		}

	case ModuleTreatment:
		switch {
		case a.keys.Up.Matches(msg):
			a.treatmentView.MoveUp()
		case a.keys.Down.Matches(msg):
			a.treatmentView.MoveDown()
		case a.keys.Select.Matches(msg):
			if a.treatmentView.InWard() {
				p, err := a.treatmentView.TreatSelected(ctx)
				if err != nil {
					a.setAlert(fmt.Sprintf("Treatment failed: %v", err), alertCrit)
				} else {
					a.setAlert(fmt.Sprintf("%s cured and discharged", p.FullName()), alertInfo)
				}
			} else {
				a.treatmentView.EnterWard()
			}
		case a.keys.Back.Matches(msg):
			a.treatmentView.LeaveWard()
		}

	case ModuleWarehouse:
		switch {
		case a.keys.Up.Matches(msg):
			a.warehouseView.MoveUp()
		case a.keys.Down.Matches(msg):
			a.warehouseView.MoveDown()
		case msg.String() == "p":
			a.warehouseView.OpenProcure()
		case msg.String() == "d":
			a.warehouseView.StartDistribute()
		case a.keys.Select.Matches(msg):
			a.submitWarehouse(ctx)
		case a.keys.Back.Matches(msg):
			a.warehouseView.Cancel()
		}

	case ModuleHistory:
		switch {
		case a.keys.Up.Matches(msg):
			a.historyView.MoveUp()
		case a.keys.Down.Matches(msg):
			a.historyView.MoveDown()
		case a.keys.PageUp.Matches(msg):
			a.historyView.PageUp()
		case a.keys.PageDown.Matches(msg):
			a.historyView.PageDown()
		case msg.String() == "d":
			a.historyView.ToggleDayFilter(a.svc.State.Day)
			a.historyView.Load(ctx)
		}
	}
}

func (a *App) submitWarehouse(ctx context.Context) {
	result, err := a.warehouseView.Submit(ctx)
	if err != nil {
		a.setAlert(fmt.Sprintf("Warehouse: %v", err), alertCrit)
		return
	}
	if result != "" {
		a.setAlert(result, alertInfo)
	}
}

func (a *App) beginDay(ctx context.Context) {
	if a.dayOpen {
		a.setAlert("Today's arrivals were already admitted", alertWarn)
		return
	}

	arrivals := a.svc.Admissions.GenerateArrivals(ctx)
	res := a.svc.Admissions.AdmitDaily(ctx, a.svc.State.Policy.DailyAdmissions)
	a.dayOpen = true

	msg := fmt.Sprintf("Day %d: %d arrivals, %d admitted", a.svc.State.Day, len(arrivals), len(res.Admitted))
	if res.Backlog > 0 {
		msg += fmt.Sprintf(", %d still at intake", res.Backlog)
		a.setAlert(msg, alertWarn)
	} else {
		a.setAlert(msg, alertInfo)
	}
	a.refresh(ctx)
}

func (a *App) advanceTurn(ctx context.Context) {
	report := a.svc.Triage.AdvanceTurn(ctx)
	a.setAlert(turnLine(report), turnLevel(report))
	a.refresh(ctx)
}

func (a *App) endDay(ctx context.Context) {
	summary := a.svc.Triage.RunEndOfDay(ctx)
	a.dayOpen = false

	msg := fmt.Sprintf("Day %d closed: %s, %d supplies replenished", summary.ClosedDay, turnLine(summary.Turn), summary.Replenished)
	a.setAlert(msg, turnLevel(summary.Turn))
	a.refresh(ctx)
}

func turnLine(r triage.TurnReport) string {
	return fmt.Sprintf("%d patients processed, %d escalated, %d deaths", r.Processed, len(r.Escalated), len(r.Deaths))
}

func turnLevel(r triage.TurnReport) alertLevel {
	if len(r.Deaths) > 0 {
		return alertCrit
	}
	if len(r.Escalated) > 0 {
		return alertWarn
	}
	return alertInfo
}

func (a *App) setAlert(msg string, level alertLevel) {
	a.alert = msg
	a.alertLevel = level
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if !a.ready {
		return "Initializing..."
	}

	width := ContentWidth(a.width, 60, 0)
	height := ContentHeight(a.height, 7)

	var b strings.Builder
	b.WriteString(a.renderHeader(width))
	b.WriteString("\n")
	b.WriteString(a.renderAlert(width))
	b.WriteString("\n")

	if a.showConfirm {
		b.WriteString(a.renderConfirm())
	} else {
		b.WriteString(a.renderModule(width, height))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter(width))

	return b.String()
}

func (a *App) renderHeader(width int) string {
	stats := a.svc.State.Statistics()

	left := a.theme.Title.Render(strings.ToUpper(a.hospitalName))
	right := a.theme.Value.Render(fmt.Sprintf(
		"Day %d  Rep %+d  Cured %d  Deceased %d  Actions %d",
		stats.Day, stats.Reputation, stats.Cured, stats.Deceased, stats.ActionsLeft,
	))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	var b strings.Builder
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteString("\n")
	b.WriteString(a.theme.DrawDoubleLine(width))

	if stats.InDanger > 0 {
		b.WriteString("\n")
		b.WriteString(a.theme.AlertCrit.Render(fmt.Sprintf(" ⚠ %d critical patients near death in the waiting room ", stats.InDanger)))
	}

	return b.String()
}

func (a *App) renderAlert(width int) string {
	if a.alert == "" {
		return ""
	}
	text := " " + Truncate(a.alert, width-2) + " "
	switch a.alertLevel {
	case alertCrit:
		return a.theme.AlertCrit.Render(text)
	case alertWarn:
		return a.theme.AlertWarn.Render(text)
	default:
		return a.theme.Alert.Render(text)
	}
}

func (a *App) renderModule(width, height int) string {
	switch a.module {
	case ModuleWaiting:
		return a.waitingView.Render(width, height)
	case ModuleWards:
		return a.wardsView.Render(width, height)
	case ModuleTreatment:
		return a.treatmentView.Render(width, height)
	case ModuleWarehouse:
		return a.warehouseView.Render(width, height)
	case ModuleHistory:
		return a.historyView.Render(width, height)
	case ModuleHelp:
		return a.renderHelp()
	default:
		return a.renderDashboard(width)
	}
}

func (a *App) renderDashboard(width int) string {
	stats := a.svc.State.Statistics()

	var b strings.Builder
	b.WriteString(a.theme.Title.Render("═══ DASHBOARD ═══"))
	b.WriteString("\n\n")

	line := func(label string, value string) {
		b.WriteString(a.theme.Label.Render(fmt.Sprintf("  %-22s", label)))
		b.WriteString(a.theme.Value.Render(value))
		b.WriteString("\n")
	}

	line("Day", fmt.Sprintf("%d", stats.Day))
	line("Reputation", fmt.Sprintf("%+d", stats.Reputation))
	line("Patients cured", fmt.Sprintf("%d", stats.Cured))
	line("Patients deceased", fmt.Sprintf("%d", stats.Deceased))
	b.WriteString("\n")
	line("Waiting room", fmt.Sprintf("%d patients", stats.Waiting))
	line("Intake backlog", fmt.Sprintf("%d patients", stats.IntakeBacklog))
	line("Critical in hospital", fmt.Sprintf("%d", stats.Critical))
	if stats.InDanger > 0 {
		b.WriteString(a.theme.Error.Render(fmt.Sprintf("  %-22s%d", "Near death", stats.InDanger)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	line("Actions left today", fmt.Sprintf("%d", stats.ActionsLeft))
	line("Warehouse quota left", fmt.Sprintf("%d", stats.QuotaLeft))

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("  b:Begin day (admit arrivals)   t:Advance turn   e:End day"))
	b.WriteString("\n")

	return b.String()
}

func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	section := func(title string, rows [][2]string) {
		b.WriteString(a.theme.Subtitle.Render(title))
		b.WriteString("\n")
		for _, r := range rows {
			b.WriteString(a.theme.Label.Render(fmt.Sprintf("  %-14s", r[0])))
			b.WriteString(a.theme.Value.Render(r[1]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("Screens", [][2]string{
		{"F2", "Dashboard with the day's counters"},
		{"F3", "Ward board: occupancy and shelf stock"},
		{"F4", "Waiting room queue and transfers"},
		{"F5", "Treatment: cure patients in wards"},
		{"F6", "Central warehouse: procure and distribute"},
		{"F7", "Event history"},
	})

	section("Day cycle", [][2]string{
		{"b", "Begin the day: admit new arrivals"},
		{"t", "Advance one turn of the waiting room"},
		{"e", "Close the day: final turn, restock, new budgets"},
	})

	section("Everywhere", [][2]string{
		{"Up/Down", "Move selection"},
		{"Enter", "Select / confirm"},
		{"Esc", "Back / cancel"},
		{"q, F10", "Quit"},
	})

	return b.String()
}

func (a *App) renderConfirm() string {
	content := a.theme.Label.Render("The simulation state is not saved.") + "\n\n" +
		a.theme.Value.Render("[y] Quit    [any other key] Stay")
	return "\n\n" + a.theme.Panel("Leave the hospital?", content, 46)
}

func (a *App) renderFooter(width int) string {
	var b strings.Builder
	b.WriteString(a.theme.DrawHorizontalLine(width))
	b.WriteString("\n")
	b.WriteString(a.theme.Footer.Render(Truncate(a.keys.StatusBarHelp(), width)))
	return b.String()
}

// Run starts the TUI and blocks until the user quits.
func Run(cfg *config.Config, svc Services) error {
	app := NewApp(cfg, svc)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}
