package frequency

// Consistency is the result of cross-checking a title's frequency emoji
// against a task's label set.
type Consistency struct {
	// Detected lists the tiers implied by the labels, in label order.
	Detected []Frequency
	// EmojiMatchesLabel is true when the title emoji and exactly one
	// frequency label resolve to the same tier, or when neither is present.
	EmojiMatchesLabel bool
	// HasNonFrequency is true when at least one label is not a frequency label.
	HasNonFrequency bool
}

// Detect returns the tiers implied by the given labels. Labels that are not
// recognized frequency labels are ignored.
func Detect(labels []string) []Frequency {
	var detected []Frequency
	for _, label := range labels {
		if f, ok := FromLabel(label); ok {
			detected = append(detected, f)
		}
	}
	return detected
}

// Check cross-references a title's frequency emoji with the task's labels.
// It never fails; unknown emoji or ambiguous labels simply yield a mismatch.
func Check(titleEmoji string, labels []string) Consistency {
	c := Consistency{Detected: Detect(labels)}
	for _, label := range labels {
		if _, ok := FromLabel(label); !ok {
			c.HasNonFrequency = true
			break
		}
	}

	switch {
	case titleEmoji == "" && len(c.Detected) == 0:
		c.EmojiMatchesLabel = true
	case len(c.Detected) == 1:
		if f, ok := FromEmoji(titleEmoji); ok {
			c.EmojiMatchesLabel = f == c.Detected[0]
		}
	}
	return c
}
