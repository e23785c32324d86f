package frequency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelFormat(t *testing.T) {
	assert.Equal(t, "🟢frequency-01-daily", Daily.Label())
	assert.Equal(t, "🔵frequency-02-multiweekly", Multiweekly.Label())
	assert.Equal(t, "🟡frequency-03-weekly", Weekly.Label())
	assert.Equal(t, "🟠frequency-04-multimonthly", Multimonthly.Label())
	assert.Equal(t, "🔴frequency-05-monthly", Monthly.Label())
}

func TestAllRankOrder(t *testing.T) {
	tiers := All()
	require.Len(t, tiers, 5)
	for i, f := range tiers {
		assert.Equal(t, i+1, f.Rank)
	}
	assert.Len(t, AllLabels(), 5)
}

func TestFromEmoji(t *testing.T) {
	f, ok := FromEmoji("🔴")
	require.True(t, ok)
	assert.Equal(t, Monthly, f)

	_, ok = FromEmoji("🤖")
	assert.False(t, ok)

	_, ok = FromEmoji("")
	assert.False(t, ok)
}

func TestFromLabel(t *testing.T) {
	f, ok := FromLabel("🟡frequency-03-weekly")
	require.True(t, ok)
	assert.Equal(t, Weekly, f)

	_, ok = FromLabel("project-home")
	assert.False(t, ok)
}

func TestDetect(t *testing.T) {
	detected := Detect([]string{"project-home", Daily.Label(), Monthly.Label()})
	require.Len(t, detected, 2)
	assert.Equal(t, Daily, detected[0])
	assert.Equal(t, Monthly, detected[1])

	assert.Empty(t, Detect([]string{"project-home"}))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name        string
		emoji       string
		labels      []string
		wantMatches bool
		wantNonFreq bool
	}{
		{
			name:        "matching emoji and label",
			emoji:       "🟡",
			labels:      []string{Weekly.Label(), "project-home"},
			wantMatches: true,
			wantNonFreq: true,
		},
		{
			name:        "monthly emoji with daily label",
			emoji:       "🔴",
			labels:      []string{"🟢frequency-01-daily"},
			wantMatches: false,
			wantNonFreq: false,
		},
		{
			name:        "both absent",
			emoji:       "",
			labels:      []string{"project-home"},
			wantMatches: true,
			wantNonFreq: true,
		},
		{
			name:        "emoji without any frequency label",
			emoji:       "🟢",
			labels:      []string{"project-home"},
			wantMatches: false,
			wantNonFreq: true,
		},
		{
			name:        "label without emoji",
			emoji:       "",
			labels:      []string{Daily.Label()},
			wantMatches: false,
			wantNonFreq: false,
		},
		{
			name:        "ambiguous frequency labels",
			emoji:       "🟢",
			labels:      []string{Daily.Label(), Weekly.Label()},
			wantMatches: false,
			wantNonFreq: false,
		},
		{
			name:        "unknown emoji",
			emoji:       "🤖",
			labels:      []string{Daily.Label()},
			wantMatches: false,
			wantNonFreq: false,
		},
		{
			name:        "no labels at all",
			emoji:       "",
			labels:      nil,
			wantMatches: true,
			wantNonFreq: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Check(tt.emoji, tt.labels)
			assert.Equal(t, tt.wantMatches, c.EmojiMatchesLabel, "EmojiMatchesLabel")
			assert.Equal(t, tt.wantNonFreq, c.HasNonFrequency, "HasNonFrequency")
		})
	}
}
