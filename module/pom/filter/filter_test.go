package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repos = []string{
	"https://github.com/api/v3/repos/my-org/my-project1/contents/pom.xml",
	"https://github.com/api/v3/repos/my-org/my-awesome-project/contents/pom.xml",
	"https://github.com/api/v3/repos/my-other-org/project-3/contents/pom.xml",
	"https://git.example.com/raw/team/service/pom.xml",
}

func TestSlug(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{repos[0], "my-org/my-project1"},
		{repos[2], "my-other-org/project-3"},
		{"https://api.github.com/repos/o/r/contents/sub/pom.xml?ref=main", "o/r"},
		{repos[3], "raw/team/service/pom.xml"},
		{"not a url at all", "not a url at all"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.url))
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name    string
		include []string
		exclude []string
		want    []string
	}{
		{"no patterns", nil, nil, repos},
		{"include org", []string{"my-org/*"}, nil, repos[:2]},
		{"exclude one", nil, []string{"my-org/my-awesome-project"}, []string{repos[0], repos[2], repos[3]}},
		{"include then exclude", []string{"my-org/*"}, []string{"*/*awesome*"}, repos[:1]},
		{"deep pattern", []string{"raw/**"}, nil, repos[3:]},
		{"single star does not cross segments", []string{"raw/*"}, nil, nil},
		{"blank patterns ignored", []string{" "}, nil, repos},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.include, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.Apply(repos))
		})
	}
}

func TestFilter_InvalidPattern(t *testing.T) {
	_, err := New([]string{"my-org/[unclosed"}, nil)
	assert.Error(t, err)
}

func TestFilter_Nil(t *testing.T) {
	var f *Filter
	assert.True(t, f.Match(repos[0]))
	assert.Equal(t, repos, f.Apply(repos))
}
