package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil slice", nil, nil},
		{"empty slice", []string{}, []string{}},
		{"trims whitespace", []string{"  https://a.example ", "https://b.example"}, []string{"https://a.example", "https://b.example"}},
		{"drops repeats keeping order", []string{"b", "a", "b"}, []string{"b", "a"}},
		{"drops blanks", []string{"", "  ", "a"}, []string{"a"}},
		{"keeps case", []string{"A", "a"}, []string{"A", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeDomains(t *testing.T) {
	got := DedupeDomains([]string{" Example.COM", "example.com", "", "google.com\n", "GOOGLE.com"})
	assert.Equal(t, []string{"Example.COM", "google.com"}, got)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Empty(t, SplitList(" , ,"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"},
		SplitList("https://a.example, https://b.example,https://a.example"))
}
