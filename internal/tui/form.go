package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"sidekick/internal/constants"
	"sidekick/internal/models"
	"sidekick/internal/utils"
)

// TodoFormModel backs the add-todo form fields.
type TodoFormModel struct {
	Title    string
	Date     string
	Time     string
	Location string
	Risk     models.RiskLevel
}

// NewTodoForm creates the add-todo form, pre-filled with today's date.
func NewTodoForm(fm *TodoFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date (YYYY-MM-DD)").
				Value(&fm.Date).
				Validate(func(s string) error {
					if _, err := time.Parse(constants.DateFormat, s); err != nil {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("expected HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Location").
				Description("Optional").
				Value(&fm.Location),
			huh.NewSelect[models.RiskLevel]().
				Title("Risk").
				Description("High-risk todos get weather and traffic warnings").
				Options(
					huh.NewOption("Low", models.RiskLow),
					huh.NewOption("Medium", models.RiskMedium),
					huh.NewOption("High", models.RiskHigh),
				).
				Value(&fm.Risk),
		),
	).WithTheme(huh.ThemeDracula())
}

// Todo converts the submitted form into a backend todo.
func (fm *TodoFormModel) Todo(loc *time.Location) (models.Todo, error) {
	scheduled, err := utils.CombineDateAndTime(fm.Date, fm.Time, loc)
	if err != nil {
		return models.Todo{}, err
	}
	return models.Todo{
		Title:         strings.TrimSpace(fm.Title),
		ScheduledTime: scheduled,
		Location:      strings.TrimSpace(fm.Location),
		RiskLevel:     fm.Risk,
	}, nil
}
