package ticket

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/harrisonrobin/taskaudit/pkg/frequency"
)

// ParsedTitle is the structured view of a raw task title. Fields for
// components the grammar could not find are left empty; Complete reports
// whether every required component was present.
type ParsedTitle struct {
	FrequencyEmoji string
	ID             string
	TypeEmoji      string
	Text           string
	Complete       bool
}

// minTextLen is the minimum description length, in runes, after stripping
// markdown markers and emoji consumed by the grammar.
const minTextLen = 3

// Grammar: <frequency emoji> (<area><cat>-<cat>-<seq>) <type emoji> <text>
var (
	fullRe = regexp.MustCompile(`^\s*(\S+?)\s*\(([A-Z]\d{2}-\d{2}-\d{2})\)\s*(\W)\s*(.+\S)\s*$`)
	idRe   = regexp.MustCompile(`\(([A-Z]\d{2}-\d{2}-\d{2})\)`)
)

// invisibleEdges are characters trimmed from description ends: variation
// selectors, zero-width joiner/space, BOM.
const invisibleEdges = "\uFE0E\uFE0F\u200D\u200B\uFEFF"

// Parse extracts the structured components of a raw task title. It never
// fails: a title that does not match the grammar yields a partial result
// with Complete set to false.
func Parse(raw string) ParsedTitle {
	var p ParsedTitle

	if m := fullRe.FindStringSubmatch(raw); m != nil {
		p.FrequencyEmoji = m[1]
		p.ID = m[2]
		p.TypeEmoji = strings.TrimSpace(m[3])
		p.Text = m[4]
	} else {
		p = partialParse(raw)
	}

	// A title may carry its type emoji glued to the description. Move any
	// leading emoji run out of the text and into the type-emoji slot.
	if lead, rest := splitLeadingEmoji(p.Text); lead != "" {
		p.TypeEmoji += lead
		p.Text = rest
	}
	p.Text = cleanText(p.Text)

	p.Complete = p.FrequencyEmoji != "" && p.ID != "" && p.TypeEmoji != "" &&
		utf8.RuneCountInString(p.Text) >= minTextLen
	return p
}

// partialParse salvages whatever components it can from a title that failed
// the full grammar.
func partialParse(raw string) ParsedTitle {
	var p ParsedTitle
	rest := strings.TrimSpace(raw)

	if loc := idRe.FindStringSubmatchIndex(rest); loc != nil {
		p.ID = rest[loc[2]:loc[3]]
		head := strings.TrimSpace(rest[:loc[0]])
		rest = strings.TrimSpace(rest[loc[1]:])
		if isEmojiToken(head) {
			p.FrequencyEmoji = head
		} else if head != "" {
			rest = strings.TrimSpace(head + " " + rest)
		}
		return withText(p, rest)
	}

	if fields := strings.Fields(rest); len(fields) > 0 {
		if _, ok := frequency.FromEmoji(fields[0]); ok {
			p.FrequencyEmoji = fields[0]
			rest = strings.TrimSpace(strings.TrimPrefix(rest, fields[0]))
		}
	}
	return withText(p, rest)
}

func withText(p ParsedTitle, rest string) ParsedTitle {
	p.Text = rest
	return p
}

// Combined returns the canonical rendering of the parsed components, with
// the ticket ID re-parenthesized.
func (p ParsedTitle) Combined() string {
	id := p.ID
	if id != "" {
		id = "(" + id + ")"
	}
	return p.FrequencyEmoji + id + p.TypeEmoji + p.Text
}

// NeedsRewrite reports whether a complete title's raw content differs from
// its canonical rendering.
func (p ParsedTitle) NeedsRewrite(content string) bool {
	return p.Complete && content != p.Combined()
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "*", "")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, invisibleEdges)
	return strings.TrimSpace(s)
}

// splitLeadingEmoji splits off the run of emoji runes at the start of s.
func splitLeadingEmoji(s string) (lead, rest string) {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isEmojiRune(r) {
			break
		}
		i += size
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// isEmojiToken reports whether s is a non-empty token made of emoji runes
// (or a registered frequency emoji).
func isEmojiToken(s string) bool {
	if s == "" {
		return false
	}
	if _, ok := frequency.FromEmoji(s); ok {
		return true
	}
	for _, r := range s {
		if !isEmojiRune(r) && !strings.ContainsRune(invisibleEdges, r) {
			return false
		}
	}
	return true
}

// isEmojiRune covers the common emoji blocks: pictographs, emoticons,
// transport, miscellaneous and supplemental symbols, colored shapes.
func isEmojiRune(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF:
		return true
	case r >= 0x1F600 && r <= 0x1F64F:
		return true
	case r >= 0x1F680 && r <= 0x1F6FF:
		return true
	case r >= 0x2600 && r <= 0x26FF:
		return true
	case r >= 0x2700 && r <= 0x27BF:
		return true
	case r >= 0x1F900 && r <= 0x1F9FF:
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF:
		return true
	case r >= 0x1F7E0 && r <= 0x1F7FF:
		return true
	}
	return false
}
