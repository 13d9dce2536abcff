package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRepoURL(t *testing.T) {
	valid := []struct {
		url   string
		owner string
		repo  string
	}{
		{"https://github.com/Claude-PSU/study-buddy", "Claude-PSU", "study-buddy"},
		{"https://github.com/Claude-PSU/study-buddy/", "Claude-PSU", "study-buddy"},
		{"  https://github.com/acme/widgets  ", "acme", "widgets"},
		{"https://GitHub.com/acme/widgets", "acme", "widgets"},
		{"https://github.com/acme/widgets/tree/main", "acme", "widgets"},
	}
	for _, tt := range valid {
		t.Run(tt.url, func(t *testing.T) {
			ref, err := ParseRepoURL(tt.url)
			assert.NoError(t, err)
			assert.Equal(t, RepoRef{Owner: tt.owner, Repo: tt.repo}, ref)
		})
	}

	invalid := []string{
		"",
		"https://github.com/acme",
		"https://github.com/acme/",
		"https://github.com/",
		"https://github.com//widgets",
		"https://gitlab.com/acme/widgets",
		"https://www.github.com/acme/widgets",
		"github.com/acme/widgets",
		"ftp://github.com/acme/widgets",
		"::not a url",
	}
	for _, raw := range invalid {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := ParseRepoURL(raw)
			assert.ErrorIs(t, err, ErrInvalidRepoURL)
		})
	}
}

func TestSuggestTitle(t *testing.T) {
	assert.Equal(t, "study buddy v2", SuggestTitle("study-buddy_v2"))
	assert.Equal(t, "engine", SuggestTitle("engine"))
}

func TestReadmeExcerpt(t *testing.T) {
	t.Run("Strips markdown", func(t *testing.T) {
		md := "# Study Buddy\n\nA **Claude** powered `tutor` for [Penn State](https://psu.edu) students.\n\n```go\nfmt.Println(\"hi\")\n```\n\n## Setup\n~~old~~ run it"
		assert.Equal(t, "Study Buddy A Claude powered  for Penn State students. Setup old run it", ReadmeExcerpt(md))
	})

	t.Run("Truncates", func(t *testing.T) {
		excerpt := ReadmeExcerpt(strings.Repeat("é", 800))
		assert.Equal(t, ReadmeExcerptLength, len([]rune(excerpt)))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", ReadmeExcerpt("\n\n"))
	})
}
