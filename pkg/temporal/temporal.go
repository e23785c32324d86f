package temporal

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/harrisonrobin/taskaudit/pkg/model"
)

// ResolveLocation resolves the configured IANA zone name. An empty or
// invalid name falls back to the host's local zone, and to UTC when no
// local zone is available. The fallback chain is part of the contract,
// not an error path.
func ResolveLocation(name string) *time.Location {
	return resolveLocation(name, time.Local)
}

func resolveLocation(name string, local *time.Location) *time.Location {
	if name != "" {
		loc, err := time.LoadLocation(name)
		if err == nil {
			return loc
		}
		log.Printf("invalid time zone %q, falling back to system local", name)
	}
	if local != nil {
		return local
	}
	return time.UTC
}

// ParseDueDate parses a due descriptor date in the given zone. Plain dates
// parse at midnight local; datetimes keep an explicit offset or assume the
// given zone.
func ParseDueDate(value string, loc *time.Location) (time.Time, error) {
	if strings.Contains(value, "T") {
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t.In(loc), nil
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, loc); err == nil {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("unparsable due datetime %q", value)
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable due date %q", value)
	}
	return t, nil
}

// DateOnly truncates t to its calendar date in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Buckets is the result of categorizing a snapshot at day granularity.
// Undated holds tasks with no due date; they belong to none of the three
// temporal groups.
type Buckets struct {
	Overdue []model.Task
	Today   []model.Task
	Future  []model.Task
	Undated []model.Task
}

// Categorize splits tasks into overdue, today and future relative to now's
// calendar date in now's location. Timed due values are compared at day
// granularity too. An unparsable due date is logged and treated as future,
// never as an error.
func Categorize(tasks []model.Task, now time.Time) Buckets {
	var b Buckets
	loc := now.Location()
	today := DateOnly(now)

	for _, t := range tasks {
		if !t.HasDueDate() {
			b.Undated = append(b.Undated, t)
			continue
		}
		due, err := ParseDueDate(t.Due.Date, loc)
		if err != nil {
			log.Printf("could not parse due date for task %s: %v", t.ID, err)
			b.Future = append(b.Future, t)
			continue
		}
		switch d := DateOnly(due.In(loc)); {
		case d.Before(today):
			b.Overdue = append(b.Overdue, t)
		case d.Equal(today):
			b.Today = append(b.Today, t)
		default:
			b.Future = append(b.Future, t)
		}
	}
	return b
}
