package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harness/pomwatch/module/pom/policy"
	"github.com/harness/pomwatch/util/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
credentials:
  username: ${TEST_POM_USER}
  password: secret
policy:
  - property: spring.version
    latest: "5.2.3"
    minimum: "5.1.0"
  - property: junit.version
    latest: "4.13"
    minimum: "4.12"
repositories:
  - https://api.github.com/repos/org/app/contents/pom.xml
http:
  timeout: 10s
  retries: 2
report:
  title: Platform
`

const validTOML = `
repositories = ["https://api.github.com/repos/org/app/contents/pom.xml"]
output = "out/report.html"

[[policy]]
property = "spring.version"
latest = "5.2.3"
minimum = "5.1.0"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_YAML(t *testing.T) {
	t.Setenv("TEST_POM_USER", "octocat")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	s, err := LoadConfig(writeFile(t, "pomwatch.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "octocat", s.Credentials.Username)
	assert.Equal(t, "secret", s.Credentials.Password)
	assert.Equal(t, DefaultOutput, s.Output)
	assert.Equal(t, 10*time.Second, s.HTTP.Timeout)
	assert.Equal(t, 2, s.HTTP.Retries)
	assert.Equal(t, "Platform", s.Report.Options().Title)
	require.NotNil(t, s.CompiledPolicy())
	assert.Equal(t, []string{"spring.version", "junit.version"}, s.CompiledPolicy().Properties())
	assert.False(t, s.Publish.Enabled())
}

func TestLoadConfig_TOML(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	s, err := LoadConfig(writeFile(t, "pomwatch.toml", validTOML))
	require.NoError(t, err)
	assert.Equal(t, "out/report.html", s.Output)
	assert.Empty(t, s.Credentials.Username)
	assert.Len(t, s.Repositories, 1)
}

func TestLoadConfig_EnvCredentials(t *testing.T) {
	t.Setenv(EnvUsername, "bot")
	t.Setenv(EnvPassword, "token")

	s, err := LoadConfig(writeFile(t, "pomwatch.toml", validTOML))
	require.NoError(t, err)
	assert.Equal(t, "bot", s.Credentials.Username)
	assert.Equal(t, "token", s.Credentials.Password)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	var fileErr *errors.FileError
	assert.True(t, errors.As(err, &fileErr))

	_, err = LoadConfig(writeFile(t, "bad.yaml", "policy: [unterminated"))
	assert.ErrorContains(t, err, "error parsing config file")

	_, err = LoadConfig(writeFile(t, "unknown.yaml", validYAML+"colour: blue\n"))
	assert.ErrorContains(t, err, "error parsing config file")

	_, err = LoadConfig(writeFile(t, "unknown.toml", validTOML+"\n[extra]\nkey = 1\n"))
	assert.ErrorContains(t, err, "unknown key")
}

func TestValidate(t *testing.T) {
	base := func() *Settings {
		return &Settings{
			Policy: []policy.Rule{{Property: "x.version", Latest: "2", Minimum: "1"}},
			Repositories: []string{
				"https://api.github.com/repos/org/app/contents/pom.xml",
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(s *Settings)
		field  string
	}{
		{"no policy", func(s *Settings) { s.Policy = nil }, "policy"},
		{"inverted bounds", func(s *Settings) { s.Policy[0].Minimum = "3" }, "policy[0]"},
		{"bad scheme", func(s *Settings) { s.Repositories[0] = "ftp://host/pom.xml" }, "repositories[0]"},
		{"no host", func(s *Settings) { s.Repositories[0] = "https:///pom.xml" }, "repositories[0]"},
		{"username without password", func(s *Settings) { s.Credentials.Username = "u" }, "credentials.password"},
		{"negative retries", func(s *Settings) { s.HTTP.Retries = -1 }, "http.retries"},
		{"negative timeout", func(s *Settings) { s.HTTP.Timeout = -time.Second }, "http.timeout"},
		{"publish without endpoint", func(s *Settings) { s.Publish.Bucket = "b" }, "publish.endpoint"},
		{"publish without bucket", func(s *Settings) { s.Publish.Endpoint = "https://s3" }, "publish.bucket"},
		{"publish without keys", func(s *Settings) {
			s.Publish.Endpoint = "https://s3"
			s.Publish.Bucket = "b"
		}, "publish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			err := s.Validate()
			var vErr *errors.ValidationError
			require.True(t, errors.As(err, &vErr), "got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Nil(t, s.CompiledPolicy())
		})
	}

	t.Run("empty repository list is valid", func(t *testing.T) {
		s := base()
		s.Repositories = nil
		require.NoError(t, s.Validate())
		assert.Equal(t, DefaultOutput, s.Output)
	})
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfig, "")
	assert.Equal(t, DefaultPath, ResolvePath(""))
	assert.Equal(t, "custom.toml", ResolvePath("custom.toml"))

	t.Setenv(EnvConfig, "/etc/pomwatch.yaml")
	assert.Equal(t, "/etc/pomwatch.yaml", ResolvePath(""))
	assert.Equal(t, "flag.yaml", ResolvePath("flag.yaml"))
}
