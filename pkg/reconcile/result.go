package reconcile

import "github.com/harrisonrobin/taskaudit/pkg/model"

// IssueKind is one detected defect on a task. The value doubles as the
// human-readable description in the JSON response.
type IssueKind string

const (
	IssueIncompleteTitle          IssueKind = "title is incomplete"
	IssueDuplicatedID             IssueKind = "duplicated ticket id"
	IssueNonSequentialID          IssueKind = "non-sequential ticket id"
	IssueFrequencyMismatch        IssueKind = "frequency emoji does not match label"
	IssueMissingNonFrequencyLabel IssueKind = "missing non-frequency label"
	IssueUpdateFailed             IssueKind = "failed to update due date"
)

// TitleParts are the extracted components of a task title.
type TitleParts struct {
	Freq        string `json:"freq,omitempty"`
	ID          string `json:"id,omitempty"`
	TicketEmoji string `json:"ticket_emoji,omitempty"`
	Text        string `json:"text,omitempty"`
}

// Title is the title annotation attached to every task in the response.
type Title struct {
	IsComplete   bool       `json:"is_complete"`
	Combined     string     `json:"combined,omitempty"`
	ToReplace    bool       `json:"to_replace"`
	DuplicatedID bool       `json:"duplicated_id"`
	SequentialID bool       `json:"sequential_id"`
	Parts        TitleParts `json:"parts"`
}

// FrequencyRef is one detected frequency label.
type FrequencyRef struct {
	Emoji  string `json:"emoji"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// FrequencyLabels is the frequency-validation annotation for one task.
type FrequencyLabels struct {
	List              []FrequencyRef `json:"list"`
	Count             int            `json:"count"`
	EmojiMatchesLabel bool           `json:"emoji_matches_label"`
	HasNonFrequency   bool           `json:"has_non_frequency"`
}

// AnnotatedTask is a task enriched with title and frequency annotations.
type AnnotatedTask struct {
	ID              string          `json:"id"`
	Content         string          `json:"content"`
	Due             *model.Due      `json:"due"`
	Labels          []string        `json:"labels"`
	Title           Title           `json:"title"`
	FrequencyLabels FrequencyLabels `json:"frequency_labels"`
}

// IssueEntry groups the issues detected for one task.
type IssueEntry struct {
	TaskID string   `json:"task_id"`
	Issues []string `json:"issues"`
}

// Result is the aggregate output of one reconciliation run. Every task in
// the snapshot appears in exactly one of the three groups.
type Result struct {
	Status       string           `json:"status"`
	RunID        string           `json:"run_id"`
	OverdueTasks []*AnnotatedTask `json:"overdue_tasks"`
	TodayTasks   []*AnnotatedTask `json:"today_tasks"`
	FutureTasks  []*AnnotatedTask `json:"future_tasks"`
	IssueTasks   []IssueEntry     `json:"issue_tasks"`
}
