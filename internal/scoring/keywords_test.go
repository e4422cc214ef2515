package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTopKeywords(t *testing.T) {
	stop := NewStopwords("with", "and", "the", "for", "this")

	cases := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{
			name:  "ranks by frequency",
			text:  "kite frog frog frog kite",
			limit: 2,
			want:  []string{"frog", "kite"},
		},
		{
			name:  "ties keep first seen order",
			text:  "golang kafka golang kafka redis",
			limit: 3,
			want:  []string{"golang", "kafka", "redis"},
		},
		{
			name:  "drops short tokens and stopwords",
			text:  "The API with this team and that code for Python",
			limit: 10,
			want:  []string{"team", "that", "code", "python"},
		},
		{
			name:  "limit truncates",
			text:  "alpha beta gamma delta",
			limit: 1,
			want:  []string{"alpha"},
		},
		{
			name:  "lowercases and splits on whitespace runs",
			text:  "Docker\n\tDOCKER   docker Kubernetes",
			limit: 5,
			want:  []string{"docker", "kubernetes"},
		},
		{
			name:  "zero limit",
			text:  "alpha beta",
			limit: 0,
			want:  []string{},
		},
		{
			name:  "empty text",
			text:  "",
			limit: 10,
			want:  []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractTopKeywords(tc.text, tc.limit, stop))
		})
	}
}

func TestExtractKeywordsShortTokenLength(t *testing.T) {
	stop := NewStopwords("with", "and", "the", "for")

	got := ExtractKeywords("the cat cat dog dog dog", KeywordOptions{Limit: 1, MinTokenLen: 3, Stopwords: stop})
	assert.Equal(t, []string{"dog"}, got)

	// With the default length rule every token here is too short.
	assert.Empty(t, ExtractTopKeywords("the cat cat dog dog dog", 1, stop))
}

func TestExtractTopKeywordsDeterministic(t *testing.T) {
	text := "build ship build test ship deploy build observe deploy"
	first := ExtractTopKeywords(text, 3, nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, ExtractTopKeywords(text, 3, nil))
	}
	assert.Equal(t, []string{"build", "ship", "deploy"}, first)
}
