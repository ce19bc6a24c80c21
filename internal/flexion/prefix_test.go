package flexion_test

import (
	"testing"
	"unicode/utf8"

	"github.com/robalyx/stemdata/internal/flexion"
	"github.com/stretchr/testify/assert"
)

func TestCommonPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{
			name:  "empty input",
			words: nil,
			want:  "",
		},
		{
			name:  "single word",
			words: []string{"рука"},
			want:  "рука",
		},
		{
			name:  "shared stem",
			words: []string{"рука", "рукі"},
			want:  "рук",
		},
		{
			name:  "three words narrow the prefix",
			words: []string{"рука", "рукі", "руцэ"},
			want:  "ру",
		},
		{
			name:  "no shared prefix",
			words: []string{"стол", "рука"},
			want:  "",
		},
		{
			name:  "one word is prefix of another",
			words: []string{"бел", "белы"},
			want:  "бел",
		},
		{
			name:  "identical words",
			words: []string{"дом", "дом"},
			want:  "дом",
		},
		{
			name:  "empty word in set",
			words: []string{"дом", ""},
			want:  "",
		},
		{
			name:  "shared lead byte of different runes",
			words: []string{"ал", "ам"},
			want:  "а",
		},
		{
			name:  "ascii",
			words: []string{"flower", "flow", "flight"},
			want:  "fl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := flexion.CommonPrefix(tt.words)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestCommonPrefixProperties(t *testing.T) {
	t.Parallel()

	sets := [][]string{
		{"стала", "сталы", "стол"},
		{"ўзлесак", "ўзлеску", "ўзлескам"},
		{"сям'я", "сям'і", "сям'ёй"},
		{"a", "b"},
	}

	for _, words := range sets {
		prefix := flexion.CommonPrefix(words)

		// The prefix is a prefix of every input
		for _, word := range words {
			assert.LessOrEqual(t, len(prefix), len(word))
			assert.Equal(t, prefix, word[:len(prefix)])
		}

		// The result does not depend on the order of the inputs
		reversed := make([]string, len(words))
		for i, word := range words {
			reversed[len(words)-1-i] = word
		}
		assert.Equal(t, prefix, flexion.CommonPrefix(reversed))
	}
}
