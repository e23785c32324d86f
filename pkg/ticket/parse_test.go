package ticket

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParseComplete(t *testing.T) {
	p := Parse("🟢 (A01-02-03) 📝 Buy milk")

	want := ParsedTitle{
		FrequencyEmoji: "🟢",
		ID:             "A01-02-03",
		TypeEmoji:      "📝",
		Text:           "Buy milk",
		Complete:       true,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePlainText(t *testing.T) {
	p := Parse("Buy milk")

	assert.False(t, p.Complete)
	assert.Empty(t, p.FrequencyEmoji)
	assert.Empty(t, p.ID)
	assert.Empty(t, p.TypeEmoji)
	assert.Equal(t, "Buy milk", p.Text)
}

func TestParsePartial(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  ParsedTitle
	}{
		{
			name: "id without frequency emoji",
			raw:  "(A01-02-03) 📝 Buy milk",
			want: ParsedTitle{ID: "A01-02-03", TypeEmoji: "📝", Text: "Buy milk"},
		},
		{
			name: "frequency emoji without id",
			raw:  "🟢 water the plants",
			want: ParsedTitle{FrequencyEmoji: "🟢", Text: "water the plants"},
		},
		{
			name: "no type emoji",
			raw:  "🟢 (A01-02-03) Buy milk",
			want: ParsedTitle{FrequencyEmoji: "🟢", ID: "A01-02-03", Text: "Buy milk"},
		},
		{
			name: "lowercase area letter is not an id",
			raw:  "🟢 (a01-02-03) 📝 Buy milk",
			want: ParsedTitle{FrequencyEmoji: "🟢", Text: "(a01-02-03) 📝 Buy milk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.raw)
			assert.False(t, p.Complete)
			assert.Equal(t, tt.want.FrequencyEmoji, p.FrequencyEmoji, "FrequencyEmoji")
			assert.Equal(t, tt.want.ID, p.ID, "ID")
			assert.Equal(t, tt.want.TypeEmoji, p.TypeEmoji, "TypeEmoji")
		})
	}
}

func TestParseShortDescription(t *testing.T) {
	p := Parse("🟢 (A01-02-03) 📝 Hi")

	assert.False(t, p.Complete)
	assert.Equal(t, "Hi", p.Text)
}

func TestParseStripsMarkdown(t *testing.T) {
	p := Parse("🟢 (A01-02-03) 📝 **Buy milk**")

	assert.True(t, p.Complete)
	assert.Equal(t, "Buy milk", p.Text)
}

func TestParseMigratesLeadingTitleEmoji(t *testing.T) {
	p := Parse("🟢 (A01-02-03) 📝🧹 Sweep the floor")

	assert.True(t, p.Complete)
	assert.Equal(t, "📝🧹", p.TypeEmoji)
	assert.Equal(t, "Sweep the floor", p.Text)
}

func TestCombined(t *testing.T) {
	p := Parse("🟢 (A01-02-03) 📝 Buy milk")
	assert.Equal(t, "🟢(A01-02-03)📝Buy milk", p.Combined())
}

func TestNeedsRewrite(t *testing.T) {
	spaced := "🟢 (A01-02-03) 📝 Buy milk"
	assert.True(t, Parse(spaced).NeedsRewrite(spaced))

	canonical := "🟢(A01-02-03)📝Buy milk"
	assert.False(t, Parse(canonical).NeedsRewrite(canonical))

	// Incomplete titles are never rewrite candidates.
	assert.False(t, Parse("Buy milk").NeedsRewrite("Buy milk"))
}
