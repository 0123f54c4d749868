// Package api talks to the backend REST API that owns the user's habits,
// routines and todos. The reminder engine only reads these collections;
// mutations are limited to completion toggles and todo creation from the
// dashboard.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sidekick/internal/constants"
	"sidekick/internal/models"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
var ErrUnauthorized = errors.New("backend rejected credentials")

// Client is a thin JSON client for the backend API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL. The token may be
// empty when the backend runs without auth (local development).
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: constants.BackendFetchTimeout},
	}
}

// GetHabits fetches the user's habits.
func (c *Client) GetHabits(ctx context.Context) ([]models.Habit, error) {
	var payload struct {
		Habits []models.Habit `json:"habits"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/habits", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch habits: %w", err)
	}
	return payload.Habits, nil
}

// GetRoutines fetches the user's routines.
func (c *Client) GetRoutines(ctx context.Context) ([]models.Routine, error) {
	var payload struct {
		Routines []models.Routine `json:"routines"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/routines", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch routines: %w", err)
	}
	return payload.Routines, nil
}

// GetTodos fetches the user's todos.
func (c *Client) GetTodos(ctx context.Context) ([]models.Todo, error) {
	var payload struct {
		Todos []models.Todo `json:"todos"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch todos: %w", err)
	}
	return payload.Todos, nil
}

// CreateTodo creates a new todo and returns the backend's version of it.
func (c *Client) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	if err := todo.Validate(); err != nil {
		return models.Todo{}, err
	}
	var payload struct {
		Todo models.Todo `json:"todo"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/todos", todo, &payload); err != nil {
		return models.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}
	return payload.Todo, nil
}

// SetHabitCompleted toggles a habit's completion flag for today.
func (c *Client) SetHabitCompleted(ctx context.Context, id string, completed bool) error {
	body := map[string]bool{"completed": completed}
	if err := c.do(ctx, http.MethodPut, "/api/habits/"+id, body, nil); err != nil {
		return fmt.Errorf("failed to update habit %s: %w", id, err)
	}
	return nil
}

// SetRoutineCompleted toggles a routine's overall completion flag.
func (c *Client) SetRoutineCompleted(ctx context.Context, id string, completed bool) error {
	body := map[string]bool{"completed": completed}
	if err := c.do(ctx, http.MethodPut, "/api/routines/"+id, body, nil); err != nil {
		return fmt.Errorf("failed to update routine %s: %w", id, err)
	}
	return nil
}

// SetTodoCompleted toggles a todo's completion flag.
func (c *Client) SetTodoCompleted(ctx context.Context, id string, completed bool) error {
	body := map[string]bool{"completed": completed}
	if err := c.do(ctx, http.MethodPut, "/api/todos/"+id, body, nil); err != nil {
		return fmt.Errorf("failed to update todo %s: %w", id, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case res.StatusCode < 200 || res.StatusCode >= 300:
		data, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("backend returned status %d: %s", res.StatusCode, strings.TrimSpace(string(data)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
