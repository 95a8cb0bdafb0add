package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordList(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "punctuation and case",
			text: "Red Velvet! Is the group. Red velvet.",
			want: []string{"red", "velvet", "is", "the", "group", "red", "velvet"},
		},
		{
			name: "single letters and numbers dropped",
			text: "a 1999 B2 x-ray",
			want: []string{"ray"},
		},
		{
			name: "digits split words",
			text: "mp3player",
			want: []string{"mp", "player"},
		},
		{
			name: "non ascii letters split words",
			text: "Beyoncé café",
			want: []string{"beyonc", "caf"},
		},
		{
			name: "apostrophes split words",
			text: "Don't stop",
			want: []string{"don", "stop"},
		},
		{
			name: "empty",
			text: "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordList(tt.text))
		})
	}
}

func TestWords_StopsEarly(t *testing.T) {
	var got []string
	for w := range Words("one two three four") {
		got = append(got, w)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"one", "two"}, got)
}
