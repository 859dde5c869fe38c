package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Stats
	}{
		{
			name:    "empty",
			content: "",
			want:    Stats{},
		},
		{
			name:    "plain sentence",
			content: "The river town sleeps.",
			want:    Stats{Words: 4, Chars: 22, CharsWithSpaces: 22},
		},
		{
			name:    "heading and emphasis",
			content: "# City\n\n**walled** town",
			want:    Stats{Words: 3, Chars: 17, CharsWithSpaces: 23},
		},
		{
			name:    "link keeps text",
			content: "see [the keep](http://example.com/keep)",
			want:    Stats{Words: 3, Chars: 12, CharsWithSpaces: 39},
		},
		{
			name:    "code is ignored",
			content: "before ```\nfunc main() {}\n``` after `x := 1` end",
			want:    Stats{Words: 3, Chars: 18, CharsWithSpaces: 48},
		},
		{
			name:    "whitespace only",
			content: "   \n\t ",
			want:    Stats{Words: 0, Chars: 0, CharsWithSpaces: 6},
		},
		{
			name:    "multibyte runes",
			content: "Ærøskøbing café",
			want:    Stats{Words: 2, Chars: 15, CharsWithSpaces: 15},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.content))
		})
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Quote and\n list", PlainText("> Quote and\n- list"))
}

func TestString(t *testing.T) {
	assert.Equal(t, "1 word · 4 characters", Stats{Words: 1, Chars: 4}.String())
	assert.Equal(t, "0 words · 0 characters", Stats{}.String())

	long := strings.Repeat("word ", 1234)
	assert.Equal(t, "1,234 words · 6,169 characters", Compute(long).String())
}
