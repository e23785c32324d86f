package reconcile

import (
	"context"
	"fmt"
	"log"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/harrisonrobin/taskaudit/pkg/frequency"
	"github.com/harrisonrobin/taskaudit/pkg/model"
	"github.com/harrisonrobin/taskaudit/pkg/recurrence"
	"github.com/harrisonrobin/taskaudit/pkg/temporal"
	"github.com/harrisonrobin/taskaudit/pkg/ticket"
	"github.com/harrisonrobin/taskaudit/pkg/todoist"
)

const defaultUpdateLimit = 4

// Reconciler drives one reconciliation pass over the remote task store:
// categorize, advance recurrences, re-categorize, annotate.
type Reconciler struct {
	store       todoist.Store
	loc         *time.Location
	now         func() time.Time
	updateLimit int
}

// New returns a Reconciler reading and updating tasks through store, with
// all date comparisons done in loc.
func New(store todoist.Store, loc *time.Location) *Reconciler {
	return &Reconciler{
		store:       store,
		loc:         loc,
		now:         time.Now,
		updateLimit: defaultUpdateLimit,
	}
}

// Run executes one full reconciliation pass. Only a failed fetch aborts the
// run; individual update failures are recorded as per-task issues.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	now := r.now().In(r.loc)
	today := temporal.DateOnly(now)

	tasks, err := r.store.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	log.Printf("run %s: fetched %d pending tasks", runID, len(tasks))

	r.inferNextRecurrences(tasks)
	buckets := temporal.Categorize(tasks, now)

	updateIssues := make(map[string][]IssueKind)
	updated := make(map[string]bool)

	r.updateOverdueDaily(ctx, buckets.Overdue, today, updated, updateIssues)
	r.advanceRecurrences(ctx, tasks, today, updated, updateIssues)

	// Re-read the snapshot so updated tasks land in their new groups.
	if len(updated) > 0 {
		tasks, err = r.store.FetchAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("refresh tasks after updates: %w", err)
		}
		r.inferNextRecurrences(tasks)
		buckets = temporal.Categorize(tasks, now)
	}

	overdue := r.annotateAll(buckets.Overdue)
	todayGroup := r.annotateAll(buckets.Today)
	// Undated tasks belong to no temporal bucket; report them with future.
	future := r.annotateAll(append(buckets.Future, buckets.Undated...))

	groups := [][]*AnnotatedTask{overdue, todayGroup, future}
	markDuplicatedIDs(groups)
	markSequentialIDs(groups)
	for _, g := range groups {
		r.sortTasks(g)
	}

	return &Result{
		Status:       "ok",
		RunID:        runID,
		OverdueTasks: overdue,
		TodayTasks:   todayGroup,
		FutureTasks:  future,
		IssueTasks:   collectIssues(groups, updateIssues),
	}, nil
}

// inferNextRecurrences fills in the next-recurrence date for every
// recurring task in the snapshot.
func (r *Reconciler) inferNextRecurrences(tasks []model.Task) {
	for _, t := range tasks {
		if !t.IsRecurring() {
			continue
		}
		if next, ok := recurrence.Infer(*t.Due, r.loc); ok {
			t.Due.NextRecurrence = next.Format("2006-01-02")
		}
	}
}

type update struct {
	taskID    string
	date      time.Time
	dueString string
}

// updateOverdueDaily moves overdue recurring tasks whose label set confirms
// the daily tier back to today.
func (r *Reconciler) updateOverdueDaily(ctx context.Context, overdue []model.Task, today time.Time, updated map[string]bool, issues map[string][]IssueKind) {
	label := frequency.Daily.Label()
	var ups []update
	for _, t := range overdue {
		if !t.IsRecurring() || !slices.Contains(t.Labels, label) {
			continue
		}
		ups = append(ups, update{taskID: t.ID, date: today, dueString: dueStringOf(t)})
	}
	log.Printf("overdue recurring tasks with the daily label: %d", len(ups))
	r.dispatchUpdates(ctx, ups, updated, issues)
}

// advanceRecurrences updates any recurring task whose explicit or inferred
// next-recurrence date is due, setting the due date to the value computed
// for its tier. Tasks already updated this run and tasks whose recurrence
// cannot be resolved are left untouched.
func (r *Reconciler) advanceRecurrences(ctx context.Context, tasks []model.Task, today time.Time, updated map[string]bool, issues map[string][]IssueKind) {
	var ups []update
	for _, t := range tasks {
		if !t.IsRecurring() || updated[t.ID] || t.Due.NextRecurrence == "" {
			continue
		}
		next, err := temporal.ParseDueDate(t.Due.NextRecurrence, r.loc)
		if err != nil {
			continue
		}
		if temporal.DateOnly(next.In(r.loc)).After(today) {
			continue
		}
		tier, ok := r.tierOf(t)
		if !ok {
			continue
		}
		newDue, ok := recurrence.Next(tier, t.Due.String, today)
		if !ok {
			continue
		}
		ups = append(ups, update{taskID: t.ID, date: newDue, dueString: dueStringOf(t)})
	}
	r.dispatchUpdates(ctx, ups, updated, issues)
}

// tierOf resolves a task's declared frequency tier, preferring an
// unambiguous label over the title emoji.
func (r *Reconciler) tierOf(t model.Task) (frequency.Frequency, bool) {
	if detected := frequency.Detect(t.Labels); len(detected) == 1 {
		return detected[0], true
	}
	return frequency.FromEmoji(ticket.Parse(t.Content).FrequencyEmoji)
}

// dispatchUpdates issues the due-date updates concurrently. Updates are
// idempotent and unordered; the group settles before the caller proceeds.
// A failed update is recorded as a per-task issue, never an error.
func (r *Reconciler) dispatchUpdates(ctx context.Context, ups []update, updated map[string]bool, issues map[string][]IssueKind) {
	if len(ups) == 0 {
		return
	}
	for _, u := range ups {
		updated[u.taskID] = true
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.updateLimit)
	for _, u := range ups {
		u := u
		g.Go(func() error {
			if err := r.store.UpdateDueDate(gctx, u.taskID, u.date, u.dueString); err != nil {
				log.Printf("failed to update due date for task %s: %v", u.taskID, err)
				mu.Lock()
				issues[u.taskID] = append(issues[u.taskID], IssueUpdateFailed)
				mu.Unlock()
			}
			return nil
		})
	}
	g.Wait()
	log.Printf("issued %d due date updates", len(ups))
}

func dueStringOf(t model.Task) string {
	if t.Due != nil && t.Due.String != "" {
		return t.Due.String
	}
	return "every day"
}

func (r *Reconciler) annotateAll(tasks []model.Task) []*AnnotatedTask {
	out := make([]*AnnotatedTask, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, annotate(t))
	}
	return out
}

// annotate parses the title and cross-checks the frequency labels for one
// task. Integrity marks are filled in later, once the whole snapshot is
// known.
func annotate(t model.Task) *AnnotatedTask {
	parsed := ticket.Parse(t.Content)
	if !parsed.Complete {
		log.Printf("task %s has invalid ticket format: %s", t.ID, t.Content)
	}
	cons := frequency.Check(parsed.FrequencyEmoji, t.Labels)

	list := make([]FrequencyRef, 0, len(cons.Detected))
	for _, f := range cons.Detected {
		list = append(list, FrequencyRef{Emoji: f.Emoji, Name: f.Name, Number: f.Rank})
	}

	return &AnnotatedTask{
		ID:      t.ID,
		Content: t.Content,
		Due:     t.Due,
		Labels:  t.Labels,
		Title: Title{
			IsComplete:   parsed.Complete,
			Combined:     parsed.Combined(),
			ToReplace:    parsed.NeedsRewrite(t.Content),
			SequentialID: true,
			Parts: TitleParts{
				Freq:        parsed.FrequencyEmoji,
				ID:          parsed.ID,
				TicketEmoji: parsed.TypeEmoji,
				Text:        parsed.Text,
			},
		},
		FrequencyLabels: FrequencyLabels{
			List:              list,
			Count:             len(list),
			EmojiMatchesLabel: cons.EmojiMatchesLabel,
			HasNonFrequency:   cons.HasNonFrequency,
		},
	}
}

// markDuplicatedIDs flags every task whose parsed ticket ID occurs on more
// than one task across the whole snapshot.
func markDuplicatedIDs(groups [][]*AnnotatedTask) {
	counts := make(map[string]int)
	for _, g := range groups {
		for _, at := range g {
			if id := at.Title.Parts.ID; id != "" {
				counts[id]++
			}
		}
	}
	for _, g := range groups {
		for _, at := range g {
			at.Title.DuplicatedID = at.Title.Parts.ID != "" && counts[at.Title.Parts.ID] > 1
		}
	}
}

// markSequentialIDs checks every parsed ticket ID against the snapshot-wide
// ID set. Tasks without a parsable ID are excluded from sequence analysis.
func markSequentialIDs(groups [][]*AnnotatedTask) {
	all := make(map[string]struct{})
	for _, g := range groups {
		for _, at := range g {
			if id := at.Title.Parts.ID; id != "" {
				all[id] = struct{}{}
			}
		}
	}
	for _, g := range groups {
		for _, at := range g {
			if id := at.Title.Parts.ID; id != "" {
				at.Title.SequentialID = ticket.Sequential(id, all)
			}
		}
	}
}

// sortTasks orders a group by due date, then ticket ID, then description.
func (r *Reconciler) sortTasks(tasks []*AnnotatedTask) {
	sort.SliceStable(tasks, func(i, j int) bool {
		di, dj := r.dueKey(tasks[i]), r.dueKey(tasks[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if tasks[i].Title.Parts.ID != tasks[j].Title.Parts.ID {
			return tasks[i].Title.Parts.ID < tasks[j].Title.Parts.ID
		}
		return strings.ToLower(tasks[i].Title.Parts.Text) < strings.ToLower(tasks[j].Title.Parts.Text)
	})
}

var maxDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

func (r *Reconciler) dueKey(at *AnnotatedTask) time.Time {
	if at.Due == nil || at.Due.Date == "" {
		return maxDate
	}
	t, err := temporal.ParseDueDate(at.Due.Date, r.loc)
	if err != nil {
		return maxDate
	}
	return temporal.DateOnly(t.In(r.loc))
}

// collectIssues walks the final groups and assembles the per-task issue
// list, folding in any update failures from earlier steps.
func collectIssues(groups [][]*AnnotatedTask, updateIssues map[string][]IssueKind) []IssueEntry {
	entries := []IssueEntry{}
	for _, g := range groups {
		for _, at := range g {
			var issues []string
			if !at.Title.IsComplete {
				issues = append(issues, string(IssueIncompleteTitle))
			}
			if at.Title.DuplicatedID {
				issues = append(issues, string(IssueDuplicatedID))
			}
			if !at.Title.SequentialID {
				issues = append(issues, string(IssueNonSequentialID))
			}
			if !at.FrequencyLabels.EmojiMatchesLabel {
				issues = append(issues, string(IssueFrequencyMismatch))
			}
			if !at.FrequencyLabels.HasNonFrequency {
				issues = append(issues, string(IssueMissingNonFrequencyLabel))
			}
			for _, k := range updateIssues[at.ID] {
				issues = append(issues, string(k))
			}
			if len(issues) > 0 {
				entries = append(entries, IssueEntry{TaskID: at.ID, Issues: issues})
			}
		}
	}
	return entries
}
