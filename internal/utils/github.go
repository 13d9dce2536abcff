package utils

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var ErrInvalidRepoURL = errors.New("invalid GitHub URL, must be github.com/owner/repo")

// RepoRef identifies a repository on github.com
type RepoRef struct {
	Owner string
	Repo  string
}

// ParseRepoURL accepts an absolute github.com URL whose path starts with
// owner and repo. Leading and trailing slashes are ignored.
func ParseRepoURL(raw string) (RepoRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return RepoRef{}, ErrInvalidRepoURL
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return RepoRef{}, ErrInvalidRepoURL
	}
	if strings.ToLower(u.Hostname()) != "github.com" {
		return RepoRef{}, ErrInvalidRepoURL
	}
	path := strings.Trim(u.Path, "/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, ErrInvalidRepoURL
	}
	return RepoRef{Owner: parts[0], Repo: parts[1]}, nil
}

// SuggestTitle turns a repository name like "study-buddy_v2" into "study buddy v2".
func SuggestTitle(repoName string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(repoName)
}

const ReadmeExcerptLength = 500

var readmeRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile("```[\\s\\S]*?```"), ""}, // fenced code
	{regexp.MustCompile("`[^`]+`"), ""},          // inline code
	{regexp.MustCompile(`#{1,6}\s`), ""},         // headings
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`), "$1"},
	{regexp.MustCompile(`[*_~]`), ""},
	{regexp.MustCompile(`\n+`), " "},
}

// ReadmeExcerpt strips common markdown from a README and truncates it to
// ReadmeExcerptLength characters.
func ReadmeExcerpt(markdown string) string {
	s := markdown
	for _, rule := range readmeRules {
		s = rule.re.ReplaceAllString(s, rule.repl)
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > ReadmeExcerptLength {
		s = string([]rune(s)[:ReadmeExcerptLength])
	}
	return s
}
