package model

// Task represents one pending item fetched from the remote task store.
type Task struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Due     *Due     `json:"due"`
	Labels  []string `json:"labels"`
}

// Due is a task's due descriptor. Date holds either a plain ISO date
// ("2026-01-31") or an ISO datetime; NextRecurrence is filled in during
// snapshot normalization for recurring tasks.
type Due struct {
	Date           string `json:"date"`
	IsRecurring    bool   `json:"is_recurring"`
	String         string `json:"string,omitempty"`
	NextRecurrence string `json:"next_recurrence_date,omitempty"`
}

// HasDueDate reports whether the task carries a due date at all.
func (t Task) HasDueDate() bool {
	return t.Due != nil && t.Due.Date != ""
}

// IsRecurring reports whether the task's due descriptor marks it recurring.
func (t Task) IsRecurring() bool {
	return t.Due != nil && t.Due.IsRecurring
}
