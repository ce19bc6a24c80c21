package utils_test

import (
	"testing"

	"github.com/robalyx/stemdata/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestContainsWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "empty string", input: "", want: false},
		{name: "single word", input: "рука", want: false},
		{name: "inner space", input: "як быццам", want: true},
		{name: "tab", input: "а\tб", want: true},
		{name: "no-break space", input: "а б", want: true},
		{name: "trailing newline", input: "ая\n", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.ContainsWhitespace(tt.input))
		})
	}
}

func TestIsCompound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "plain word", input: "стол", want: false},
		{name: "hyphenated", input: "па-беларуску", want: true},
		{name: "multi word", input: "з-за таго", want: true},
		{name: "space only", input: "усё роўна", want: true},
		{name: "apostrophe", input: "сям'я", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.IsCompound(tt.input))
		})
	}
}

func TestRemoveDuplicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "nil slice", input: nil, want: []string{}},
		{name: "no duplicates", input: []string{"стол", "стала"}, want: []string{"стол", "стала"}},
		{name: "keeps first occurrence", input: []string{"рука", "рукі", "рука", "руцэ", "рукі"}, want: []string{"рука", "рукі", "руцэ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.RemoveDuplicates(tt.input))
		})
	}
}
