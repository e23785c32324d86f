package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/harrisonrobin/taskaudit/pkg/model"
)

// DefaultBaseURL is the Todoist REST API root.
const DefaultBaseURL = "https://api.todoist.com/rest/v2"

// TransportError wraps a failed exchange with the task store.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("todoist: %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("todoist: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Store is the capability the orchestrator needs from the remote task
// store. The real implementation is Client; tests substitute an in-memory
// fake.
type Store interface {
	FetchAll(ctx context.Context) ([]model.Task, error)
	UpdateDueDate(ctx context.Context, taskID string, date time.Time, dueString string) error
}

// Client talks to the Todoist REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a Client authenticating every request with the given
// API token as a bearer token.
func NewClient(token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		httpClient: oauth2.NewClient(context.Background(), src),
		baseURL:    DefaultBaseURL,
	}
}

// NewClientWithBaseURL is NewClient pointed at a different API root, for
// tests against a local server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// FetchAll returns every pending task.
func (c *Client) FetchAll(ctx context.Context) ([]model.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tasks", nil)
	if err != nil {
		return nil, &TransportError{Op: "fetch tasks", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "fetch tasks", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			Op:         "fetch tasks",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var wire []wireTask
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, &TransportError{Op: "fetch tasks", Err: fmt.Errorf("failed to decode task json: %w", err)}
	}

	tasks := make([]model.Task, 0, len(wire))
	for _, w := range wire {
		tasks = append(tasks, w.toModel())
	}
	return tasks, nil
}

// UpdateDueDate rewrites a task's due date, preserving the recurrence text
// so the task stays recurring.
func (c *Client) UpdateDueDate(ctx context.Context, taskID string, date time.Time, dueString string) error {
	body, err := json.Marshal(map[string]string{
		"due_date":   date.Format("2006-01-02"),
		"due_string": dueString,
	})
	if err != nil {
		return &TransportError{Op: "update task " + taskID, Err: err}
	}

	url := fmt.Sprintf("%s/tasks/%s", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "update task " + taskID, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "update task " + taskID, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return &TransportError{
			Op:         "update task " + taskID,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}
	return nil
}
