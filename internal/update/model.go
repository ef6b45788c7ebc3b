package update

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/goodbuddi/internal/chime"
	"github.com/sandeepkv93/goodbuddi/internal/editor"
	"github.com/sandeepkv93/goodbuddi/internal/model"
	"github.com/sandeepkv93/goodbuddi/internal/scheduler"
	"github.com/sandeepkv93/goodbuddi/internal/timer"
)

type View string

const (
	ViewToday View = "Today"
	ViewWeek  View = "Week"
)

type Modal string

const (
	ModalNone     Modal = ""
	ModalActivity Modal = "activity"
	ModalEndDay   Modal = "end-day"
	ModalPhrases  Modal = "phrases"
)

// Planner is the storage-backed day bookkeeping the TUI drives.
type Planner interface {
	Now() time.Time
	Today() string
	Commit(ctx context.Context, dateKey, text string) (model.DayPlan, error)
	Load(ctx context.Context, dateKey string) (model.DayPlan, error)
	Week(ctx context.Context, day time.Time) ([]model.DayPlan, error)
	CompleteActivity(ctx context.Context, plan *model.DayPlan, eventID, activityID string) (model.Event, error)
	SkipActivity(ctx context.Context, plan *model.DayPlan, eventID, activityID string) (model.Event, error)
	Reflect(ctx context.Context, plan model.DayPlan, exciting string) (model.Reflection, error)
	Reflection(ctx context.Context, dateKey string) (model.Reflection, bool, error)
	Phrases(ctx context.Context) (model.PhraseBook, error)
	SavePhrases(ctx context.Context, book model.PhraseBook) (model.PhraseBook, error)
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Today string
	Week  string
	Help  string
	Quit  string
}

type TodayFocus string

const (
	FocusScratchpad TodayFocus = "scratchpad"
	FocusEvents     TodayFocus = "events"
)

type TodayState struct {
	Plan    model.DayPlan
	Buffer  editor.Buffer
	Dirty   bool
	Focus   TodayFocus
	Editing bool
	Cursor  int
}

type WeekState struct {
	Monday   time.Time
	Plans    []model.DayPlan
	Cursor   int
	Selected int
	Buffer   editor.Buffer
	Dirty    bool
	Editing  bool
}

type ActivityState struct {
	EventID      string
	Index        int
	Countdown    timer.Countdown
	PresetCursor int
	Message      string
	tickID       int
}

type EndDayState struct {
	Saved      bool
	Reflection model.Reflection
}

type PhrasesState struct {
	Book   model.PhraseBook
	Cursor int
	Adding bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Options wires the model to its collaborators. Zero values fall back to
// no-op implementations.
type Options struct {
	Context      context.Context
	Planner      Planner
	Scheduler    *scheduler.Engine
	Player       chime.Player
	Notifier     chime.Notifier
	Logger       *zap.Logger
	UserName     string
	AlertLead    time.Duration
	TimerMinutes int
	Rand         *rand.Rand
}

type Model struct {
	CurrentView View
	Modal       Modal
	Today       TodayState
	Week        WeekState
	Activity    ActivityState
	EndDay      EndDayState
	Phrases     PhrasesState
	Palette     CommandPaletteState
	Billboard   string
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	AlertLog    []scheduler.Alert
	Quitting    bool
	LastError   error

	ctx          context.Context
	planner      Planner
	scheduler    *scheduler.Engine
	player       chime.Player
	notifier     chime.Notifier
	logger       *zap.Logger
	userName     string
	alertLead    time.Duration
	timerMinutes int
	rng          *rand.Rand

	weekTable       table.Model
	commandInput    textinput.Model
	phraseInput     textinput.Model
	reflectionArea  textarea.Model
	timerProgress   progress.Model
	detailsViewport viewport.Model
	helpModel       help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TimerTickMsg drives the activity countdown. ID ties a tick to the run
// that scheduled it so ticks from a paused run are dropped.
type TimerTickMsg struct {
	ID int
}

type AlertDueMsg struct {
	Alert scheduler.Alert
}

// RolloverMsg is sent by the daily job when a new day starts.
type RolloverMsg struct {
	At time.Time
}

// ScratchpadImportedMsg reports that the watched file replaced a stored plan.
type ScratchpadImportedMsg struct {
	Plan model.DayPlan
}

func NewModel(opts Options) Model {
	m := Model{
		CurrentView: ViewToday,
		Keys: GlobalKeyMap{
			Today: "1",
			Week:  "2",
			Help:  "?",
			Quit:  "q",
		},
		ctx:          opts.Context,
		planner:      opts.Planner,
		scheduler:    opts.Scheduler,
		player:       opts.Player,
		notifier:     opts.Notifier,
		logger:       opts.Logger,
		userName:     opts.UserName,
		alertLead:    opts.AlertLead,
		timerMinutes: opts.TimerMinutes,
		rng:          opts.Rand,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.player == nil {
		m.player = chime.NoopPlayer{}
	}
	if m.notifier == nil {
		m.notifier = chime.NoopNotifier{}
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.timerMinutes <= 0 {
		m.timerMinutes = timer.Presets[0]
	}
	m.Today.Focus = FocusScratchpad
	m.Week.Selected = -1
	m.Phrases.Book = model.DefaultPhraseBook()
	m.initBubbleComponents()

	if m.planner != nil {
		now := m.planner.Now()
		m.Week.Monday = model.MondayOfWeek(now)
		m.loadDate(m.planner.Today())
		m.loadWeek()
		if book, err := m.planner.Phrases(m.ctx); err == nil {
			m.Phrases.Book = book
		} else {
			m.setError(err)
		}
	}
	m.Billboard = m.Phrases.Book.Daily(m.rng)
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Plan", Width: 38},
	}
	m.weekTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(8))

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.phraseInput = textinput.New()
	m.phraseInput.Prompt = "phrase> "
	m.phraseInput.CharLimit = 120
	m.phraseInput.Width = 48

	m.reflectionArea = textarea.New()
	m.reflectionArea.SetWidth(100)
	m.reflectionArea.SetHeight(5)
	m.reflectionArea.ShowLineNumbers = false
	m.reflectionArea.Placeholder = "A win, a spark, a surprise..."

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	m.detailsViewport = viewport.New(100, 6)
	m.helpModel = help.New()
}

// syncBubbleData pushes model state into the bubbles components before a
// render.
func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.Week.Plans))
	for _, p := range m.Week.Plans {
		day, err := model.ParseDateKey(p.DateKey)
		if err != nil {
			continue
		}
		label := day.Format("Mon Jan 2")
		if m.planner != nil && p.DateKey == m.planner.Today() {
			label += " *"
		}
		rows = append(rows, table.Row{label, weekPreview(p)})
	}
	m.weekTable.SetRows(rows)
	if len(rows) > 0 && m.Week.Cursor < len(rows) {
		m.weekTable.SetCursor(m.Week.Cursor)
	}

	m.commandInput.SetValue(m.Palette.Input)
	if m.Palette.Active {
		m.commandInput.Focus()
	} else {
		m.commandInput.Blur()
	}

	if act, ok := m.currentActivity(); ok {
		m.detailsViewport.SetContent(renderDetails(act.Details))
	}
}
