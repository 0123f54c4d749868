package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"sidekick/internal/api"
	"sidekick/internal/models"
	"sidekick/internal/notify"
	"sidekick/internal/reminder"
	"sidekick/internal/weather"
)

type Tab int

const (
	TabNotifications Tab = iota
	TabHabits
	TabRoutines
	TabTodos
	tabCount
)

var tabTitles = []string{"Notifications", "Habits", "Routines", "Todos"}

// Deps are the running services the dashboard reads from and acts on.
type Deps struct {
	Sink     *notify.Sink
	Poller   *api.Poller
	Client   *api.Client
	Gate     *weather.Gate
	Coords   *reminder.Coordinates
	Location *time.Location
}

type Model struct {
	deps Deps

	tab     Tab
	cursors [tabCount]int

	notifications []models.Notification
	snap          api.Snapshot
	weatherSnap   *weather.Snapshot

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	form     *huh.Form
	todoForm *TodoFormModel

	loaded   bool
	quitting bool
	errText  string
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	if deps.Location == nil {
		deps.Location = time.Local
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		deps:          deps,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		spinner:       sp,
		notifications: deps.Sink.List(),
		snap:          deps.Poller.Snapshot(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForSink(),
		m.waitForBackend(),
		m.fetchWeather(),
	)
}

// Messages

type sinkUpdatedMsg struct{}

type backendUpdatedMsg struct{}

type weatherMsg struct {
	snapshot weather.Snapshot
}

type weatherTickMsg struct{}

type actionDoneMsg struct {
	err error
}

// Commands

func (m Model) waitForSink() tea.Cmd {
	updates := m.deps.Sink.Updates()
	return func() tea.Msg {
		<-updates
		return sinkUpdatedMsg{}
	}
}

func (m Model) waitForBackend() tea.Cmd {
	updates := m.deps.Poller.Updates()
	return func() tea.Msg {
		<-updates
		return backendUpdatedMsg{}
	}
}

func (m Model) fetchWeather() tea.Cmd {
	if m.deps.Coords == nil || m.deps.Gate == nil {
		return nil
	}
	gate, coords := m.deps.Gate, m.deps.Coords
	return func() tea.Msg {
		return weatherMsg{snapshot: gate.Current(context.Background(), coords.Latitude, coords.Longitude)}
	}
}

func scheduleWeatherTick() tea.Cmd {
	return tea.Tick(10*time.Minute, func(time.Time) tea.Msg {
		return weatherTickMsg{}
	})
}

func (m Model) toggleCompletion() tea.Cmd {
	client := m.deps.Client
	if client == nil {
		return nil
	}

	switch m.tab {
	case TabHabits:
		if h, ok := itemAt(m.snap.Habits, m.cursors[TabHabits]); ok {
			return func() tea.Msg {
				return actionDoneMsg{err: client.SetHabitCompleted(context.Background(), h.ID, !h.Completed)}
			}
		}
	case TabRoutines:
		if r, ok := itemAt(m.snap.Routines, m.cursors[TabRoutines]); ok {
			return func() tea.Msg {
				return actionDoneMsg{err: client.SetRoutineCompleted(context.Background(), r.ID, !r.Completed)}
			}
		}
	case TabTodos:
		if t, ok := itemAt(m.snap.Todos, m.cursors[TabTodos]); ok {
			return func() tea.Msg {
				return actionDoneMsg{err: client.SetTodoCompleted(context.Background(), t.ID, !t.Completed)}
			}
		}
	}
	return nil
}

func itemAt[T any](items []T, i int) (T, bool) {
	var zero T
	if i < 0 || i >= len(items) {
		return zero, false
	}
	return items[i], true
}

func (m Model) rowCount() int {
	switch m.tab {
	case TabNotifications:
		return len(m.notifications)
	case TabHabits:
		return len(m.snap.Habits)
	case TabRoutines:
		return len(m.snap.Routines)
	case TabTodos:
		return len(m.snap.Todos)
	}
	return 0
}

func (m *Model) clampCursor() {
	count := m.rowCount()
	if m.cursors[m.tab] >= count {
		m.cursors[m.tab] = count - 1
	}
	if m.cursors[m.tab] < 0 {
		m.cursors[m.tab] = 0
	}
}
