package recurrence

import (
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/taskaudit/pkg/frequency"
	"github.com/harrisonrobin/taskaudit/pkg/model"
	"github.com/harrisonrobin/taskaudit/pkg/temporal"
)

// weekdays maps English and Spanish three-letter weekday forms to weekdays.
var weekdays = map[string]time.Weekday{
	"mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
	"sun": time.Sunday,
	"lun": time.Monday, "mar": time.Tuesday, "mié": time.Wednesday,
	"mie": time.Wednesday, "jue": time.Thursday, "vie": time.Friday,
	"sáb": time.Saturday, "sab": time.Saturday, "dom": time.Sunday,
}

type intervalUnit int

const (
	unitWeek intervalUnit = iota
	unitMonth
)

var intervalRe = regexp.MustCompile(`(?:every|cada)\s+(\d+)\s+(weeks?|semanas?|months?|mes(?:es)?)`)

// Infer returns the next recurrence date implied by a due descriptor: an
// explicitly stored next-recurrence date takes precedence, otherwise the
// date is derived from the due date and the raw recurrence text. The false
// return means the pattern is unparsable, which is never an error.
func Infer(due model.Due, loc *time.Location) (time.Time, bool) {
	if due.NextRecurrence != "" {
		if t, err := temporal.ParseDueDate(due.NextRecurrence, loc); err == nil {
			return temporal.DateOnly(t.In(loc)), true
		}
	}
	if due.Date == "" {
		return time.Time{}, false
	}
	start, err := temporal.ParseDueDate(due.Date, loc)
	if err != nil {
		log.Printf("could not infer next recurrence: %v", err)
		return time.Time{}, false
	}
	start = temporal.DateOnly(start.In(loc))
	text := strings.ToLower(strings.TrimSpace(due.String))

	switch {
	case containsAny(text, "every month", "cada mes"):
		return AddMonthsClamped(start, 1), true
	case containsAny(text, "every day", "cada día", "cada dia"):
		return start.AddDate(0, 0, 1), true
	case containsAny(text, "every week", "cada semana"):
		return start.AddDate(0, 0, 7), true
	}
	if n, unit, ok := interval(text); ok {
		if unit == unitWeek {
			return start.AddDate(0, 0, 7*n), true
		}
		return AddMonthsClamped(start, n), true
	}
	if wd, ok := weekdayFromText(text); ok {
		return nextWeekday(start, wd), true
	}
	return time.Time{}, false
}

// Next computes the next due date for a recurring task under the policy for
// its frequency tier, relative to the reference date. An unknown tier
// returns false.
func Next(tier frequency.Frequency, text string, ref time.Time) (time.Time, bool) {
	day := temporal.DateOnly(ref)
	text = strings.ToLower(strings.TrimSpace(text))

	switch tier {
	case frequency.Daily:
		return day.AddDate(0, 0, 1), true
	case frequency.Weekly:
		wd, ok := weekdayFromText(text)
		if !ok {
			wd = day.Weekday()
		}
		return nextWeekday(day, wd), true
	case frequency.Multiweekly:
		return day.AddDate(0, 0, 7*intervalOrDefault(text, unitWeek)), true
	case frequency.Monthly:
		return AddMonthsClamped(day, 1), true
	case frequency.Multimonthly:
		return AddMonthsClamped(day, intervalOrDefault(text, unitMonth)), true
	}
	return time.Time{}, false
}

// AddMonthsClamped advances t by the given number of months, clamping the
// day to the target month's last day instead of letting it overflow.
func AddMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	first = first.AddDate(0, months, 0)
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// nextWeekday returns the next occurrence of wd strictly after day.
func nextWeekday(day time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(day.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return day.AddDate(0, 0, days)
}

// weekdayFromText extracts a weekday from recurrence text like
// "every monday" or "cada sáb".
func weekdayFromText(text string) (time.Weekday, bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 || (fields[0] != "every" && fields[0] != "cada") {
		return 0, false
	}
	name := []rune(fields[1])
	if len(name) > 3 {
		name = name[:3]
	}
	wd, ok := weekdays[string(name)]
	return wd, ok
}

// interval extracts an "every N weeks/months" interval from recurrence text.
func interval(text string) (int, intervalUnit, bool) {
	m := intervalRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	if strings.HasPrefix(m[2], "week") || strings.HasPrefix(m[2], "semana") {
		return n, unitWeek, true
	}
	return n, unitMonth, true
}

// intervalOrDefault parses the interval for the given unit, falling back to
// 2 when the text carries none. The fallback is low confidence, so log it.
func intervalOrDefault(text string, unit intervalUnit) int {
	if n, u, ok := interval(text); ok && u == unit {
		return n
	}
	log.Printf("no interval in recurrence text %q, assuming 2", text)
	return 2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
