package frequency

import "fmt"

// Frequency is one of the five recurrence tiers a task can be assigned.
// Rank orders the tiers from most frequent (daily, 1) to least (monthly, 5).
type Frequency struct {
	Emoji string
	Name  string
	Rank  int
}

// Label returns the canonical label string for the tier,
// e.g. "🟢frequency-01-daily".
func (f Frequency) Label() string {
	return fmt.Sprintf("%sfrequency-%02d-%s", f.Emoji, f.Rank, f.Name)
}

var (
	Daily        = Frequency{Emoji: "🟢", Name: "daily", Rank: 1}
	Multiweekly  = Frequency{Emoji: "🔵", Name: "multiweekly", Rank: 2}
	Weekly       = Frequency{Emoji: "🟡", Name: "weekly", Rank: 3}
	Multimonthly = Frequency{Emoji: "🟠", Name: "multimonthly", Rank: 4}
	Monthly      = Frequency{Emoji: "🔴", Name: "monthly", Rank: 5}
)

var all = [...]Frequency{Daily, Multiweekly, Weekly, Multimonthly, Monthly}

// All returns the five tiers in rank order.
func All() []Frequency {
	out := make([]Frequency, len(all))
	copy(out, all[:])
	return out
}

// AllLabels returns the five canonical label strings in rank order.
func AllLabels() []string {
	labels := make([]string, len(all))
	for i, f := range all {
		labels[i] = f.Label()
	}
	return labels
}

// FromEmoji looks up the tier for a frequency emoji.
func FromEmoji(emoji string) (Frequency, bool) {
	for _, f := range all {
		if f.Emoji == emoji {
			return f, true
		}
	}
	return Frequency{}, false
}

// FromLabel looks up the tier for a canonical label string.
func FromLabel(label string) (Frequency, bool) {
	for _, f := range all {
		if f.Label() == label {
			return f, true
		}
	}
	return Frequency{}, false
}
