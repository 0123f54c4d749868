package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sidekick/internal/constants"
	"sidekick/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.form != nil {
		return docStyle.Render(m.form.View())
	}

	if !m.loaded {
		return docStyle.Render(fmt.Sprintf("%s Contacting backend...", m.spinner.View()))
	}

	var content string
	switch m.tab {
	case TabNotifications:
		content = m.viewNotifications()
	case TabHabits:
		content = m.viewHabits()
	case TabRoutines:
		content = m.viewRoutines()
	case TabTodos:
		content = m.viewTodos()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		label := title
		if Tab(i) == TabNotifications && len(m.notifications) > 0 {
			label = fmt.Sprintf("%s (%d)", title, len(m.notifications))
		}
		if m.tab == Tab(i) {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewNotifications() string {
	if len(m.notifications) == 0 {
		return dimStyle.Render("All quiet. No notifications.")
	}

	var b strings.Builder
	for i, n := range m.notifications {
		cursor := "  "
		if i == m.cursors[TabNotifications] {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, kindStyle(n.Kind).Render(n.Title)))
		b.WriteString(fmt.Sprintf("    %s\n", n.Message))
		b.WriteString(dimStyle.Render(fmt.Sprintf("    %s\n", n.CreatedAt.In(m.deps.Location).Format("15:04:05"))))
	}
	return b.String()
}

func (m Model) viewHabits() string {
	if len(m.snap.Habits) == 0 {
		return dimStyle.Render("No habits yet.")
	}

	var b strings.Builder
	for i, h := range m.snap.Habits {
		start := h.StartTime
		if start == "" {
			start = constants.DefaultHabitStartTime
		}
		line := fmt.Sprintf("%s %s %s  %s",
			checkbox(h.Completed), h.Name, dimStyle.Render(start),
			dimStyle.Render(strings.Join(h.ScheduleDays, " ")))
		if h.WeatherPreferences != nil && h.WeatherPreferences.Any() {
			line += " " + dimStyle.Render("☂")
		}
		b.WriteString(m.renderRow(i, TabHabits, line, h.Completed))
	}
	return b.String()
}

func (m Model) viewRoutines() string {
	if len(m.snap.Routines) == 0 {
		return dimStyle.Render("No routines yet.")
	}

	var b strings.Builder
	for i, r := range m.snap.Routines {
		line := fmt.Sprintf("%s %s %s", checkbox(r.Completed), r.Name, dimStyle.Render(r.Time))
		if pending := r.PendingTasks(); pending > 0 {
			line += dimStyle.Render(fmt.Sprintf("  %d tasks left", pending))
		}
		b.WriteString(m.renderRow(i, TabRoutines, line, r.Completed))
	}
	return b.String()
}

func (m Model) viewTodos() string {
	if len(m.snap.Todos) == 0 {
		return dimStyle.Render("No todos. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, t := range m.snap.Todos {
		when := ""
		if !t.ScheduledTime.IsZero() {
			when = t.ScheduledTime.In(m.deps.Location).Format("Jan 2 15:04")
		}
		line := fmt.Sprintf("%s %s %s", checkbox(t.Completed), t.Title, dimStyle.Render(when))
		if t.Location != "" {
			line += dimStyle.Render("  @ " + t.Location)
		}
		if t.HighRisk() {
			line += " " + warningStyle.Render("⚠ high risk")
		}
		b.WriteString(m.renderRow(i, TabTodos, line, t.Completed))
	}
	return b.String()
}

func (m Model) renderRow(i int, tab Tab, line string, completed bool) string {
	cursor := "  "
	if i == m.cursors[tab] {
		cursor = selectedStyle.Render("> ")
	}
	if completed {
		line = completedStyle.Render(line)
	}
	return cursor + line + "\n"
}

func (m Model) viewStatus() string {
	var parts []string

	if m.weatherSnap != nil {
		parts = append(parts, m.weatherLine())
	}
	if m.snap.Err != nil {
		parts = append(parts, errorStyle.Render("backend unreachable, showing cached data"))
	} else if !m.snap.FetchedAt.IsZero() {
		parts = append(parts, fmt.Sprintf("synced %s", m.snap.FetchedAt.In(m.deps.Location).Format("15:04:05")))
	}
	if m.errText != "" {
		parts = append(parts, errorStyle.Render(m.errText))
	}

	return statusBarStyle.Render("  " + strings.Join(parts, "  ·  "))
}

func (m Model) weatherLine() string {
	s := m.weatherSnap
	if s.Err {
		return "weather unavailable"
	}
	condition := "clear"
	switch {
	case s.Snowing:
		condition = "snowing"
	case s.Raining:
		condition = "raining"
	case s.CloudCover >= 70:
		condition = "overcast"
	case s.CloudCover >= 30:
		condition = "partly cloudy"
	}
	return fmt.Sprintf("%.1f°C, %s", s.Temperature, condition)
}

func checkbox(done bool) string {
	if done {
		return successStyle.Render("[✓]")
	}
	return "[ ]"
}

func kindStyle(kind models.NotificationKind) lipgloss.Style {
	switch kind {
	case models.KindSuccess:
		return successStyle
	case models.KindWarning:
		return warningStyle
	case models.KindAlert:
		return alertStyle
	default:
		return infoStyle
	}
}
