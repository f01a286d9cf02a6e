// Package filter selects repositories by glob patterns.
package filter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

/* Patterns are matched against the repository slug with '/' as separator:
- * matches within one path segment ("my-org/*")
- ** matches across segments ("**-service")
*/

// Slug names a repository for display and matching. For contents API URLs
// (".../repos/{owner}/{repo}/contents/...") it is "owner/repo", otherwise
// the URL path without its leading slash.
func Slug(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return rawURL
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+3 < len(segments); i++ {
		if segments[i] == "repos" && segments[i+3] == "contents" {
			return segments[i+1] + "/" + segments[i+2]
		}
	}
	return strings.TrimPrefix(u.Path, "/")
}

// Filter keeps repositories matching any include pattern and no exclude
// pattern. With no include patterns everything is included.
type Filter struct {
	include []glob.Glob
	exclude []glob.Glob
}

// New compiles the patterns.
func New(include, exclude []string) (*Filter, error) {
	inc, err := compile(include)
	if err != nil {
		return nil, err
	}
	exc, err := compile(exclude)
	if err != nil {
		return nil, err
	}
	return &Filter{include: inc, exclude: exc}, nil
}

func compile(patterns []string) ([]glob.Glob, error) {
	var out []glob.Glob
	for _, p := range patterns {
		normalized := strings.TrimPrefix(strings.TrimSpace(p), "/")
		if normalized == "" {
			continue
		}
		g, err := glob.Compile(normalized, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid repository pattern %q: %w", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// Match reports whether the repository URL passes the filter.
func (f *Filter) Match(rawURL string) bool {
	if f == nil {
		return true
	}
	slug := Slug(rawURL)
	if len(f.include) > 0 && !matchAny(f.include, slug) {
		return false
	}
	return !matchAny(f.exclude, slug)
}

// Apply returns the matching URLs, keeping their order.
func (f *Filter) Apply(urls []string) []string {
	if f == nil || (len(f.include) == 0 && len(f.exclude) == 0) {
		return urls
	}
	var kept []string
	for _, u := range urls {
		if f.Match(u) {
			kept = append(kept, u)
		}
	}
	return kept
}

func matchAny(globs []glob.Glob, s string) bool {
	for _, g := range globs {
		if g.Match(s) {
			return true
		}
	}
	return false
}
