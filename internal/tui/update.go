package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"sidekick/internal/constants"
	"sidekick/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The add-todo form owns the input while it is open
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		if !m.loaded {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case sinkUpdatedMsg:
		m.notifications = m.deps.Sink.List()
		m.clampCursor()
		return m, m.waitForSink()

	case backendUpdatedMsg:
		m.snap = m.deps.Poller.Snapshot()
		m.loaded = true
		m.clampCursor()
		return m, m.waitForBackend()

	case weatherMsg:
		snapshot := msg.snapshot
		m.weatherSnap = &snapshot
		return m, scheduleWeatherTick()

	case weatherTickMsg:
		return m, m.fetchWeather()

	case actionDoneMsg:
		if msg.err != nil {
			m.errText = msg.err.Error()
		} else {
			m.errText = ""
			m.deps.Poller.Refresh()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		m.tab = (m.tab + 1) % tabCount
		m.clampCursor()

	case key.Matches(msg, m.keys.ShiftTab):
		m.tab = (m.tab - 1 + tabCount) % tabCount
		m.clampCursor()

	case key.Matches(msg, m.keys.Up):
		if m.cursors[m.tab] > 0 {
			m.cursors[m.tab]--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursors[m.tab] < m.rowCount()-1 {
			m.cursors[m.tab]++
		}

	case key.Matches(msg, m.keys.Refresh):
		m.deps.Poller.Refresh()
		return m, m.fetchWeather()

	case key.Matches(msg, m.keys.Dismiss):
		if m.tab == TabNotifications {
			if n, ok := itemAt(m.notifications, m.cursors[TabNotifications]); ok {
				m.deps.Sink.Remove(n.ID)
			}
		}

	case key.Matches(msg, m.keys.Clear):
		if m.tab == TabNotifications {
			m.deps.Sink.Clear()
		}

	case key.Matches(msg, m.keys.Complete):
		if m.tab != TabNotifications {
			return m, m.toggleCompletion()
		}

	case key.Matches(msg, m.keys.Add):
		if m.tab == TabTodos {
			m.todoForm = &TodoFormModel{
				Date: time.Now().In(m.deps.Location).Format(constants.DateFormat),
				Risk: models.RiskLow,
			}
			m.form = NewTodoForm(m.todoForm)
			return m, m.form.Init()
		}
	}

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.form = nil
		m.todoForm = nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		todo, err := m.todoForm.Todo(m.deps.Location)
		m.form = nil
		m.todoForm = nil
		if err != nil {
			m.errText = err.Error()
			return m, tea.Batch(cmds...)
		}
		client := m.deps.Client
		cmds = append(cmds, func() tea.Msg {
			_, err := client.CreateTodo(context.Background(), todo)
			return actionDoneMsg{err: err}
		})
	case huh.StateAborted:
		m.form = nil
		m.todoForm = nil
	}

	return m, tea.Batch(cmds...)
}
