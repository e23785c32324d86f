package todoist

import "github.com/harrisonrobin/taskaudit/pkg/model"

// wireDue mirrors the REST API's due object. Timed tasks carry both date
// and datetime; datetime wins when present.
type wireDue struct {
	Date        string `json:"date"`
	Datetime    string `json:"datetime,omitempty"`
	String      string `json:"string"`
	IsRecurring bool   `json:"is_recurring"`
}

type wireTask struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Labels  []string `json:"labels"`
	Due     *wireDue `json:"due"`
}

func (w wireTask) toModel() model.Task {
	t := model.Task{
		ID:      w.ID,
		Content: w.Content,
		Labels:  w.Labels,
	}
	if t.Labels == nil {
		t.Labels = []string{}
	}
	if w.Due != nil {
		date := w.Due.Date
		if w.Due.Datetime != "" {
			date = w.Due.Datetime
		}
		t.Due = &model.Due{
			Date:        date,
			IsRecurring: w.Due.IsRecurring,
			String:      w.Due.String,
		}
	}
	return t
}
