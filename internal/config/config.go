package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/harness/pomwatch/module/pom/policy"
	"github.com/harness/pomwatch/module/pom/publish"
	"github.com/harness/pomwatch/module/pom/report"
	"github.com/harness/pomwatch/util/common/errors"
	"github.com/harness/pomwatch/util/common/fileutil"
)

const (
	// DefaultPath is read when neither --config nor POMWATCH_CONFIG is set.
	DefaultPath   = "pomwatch.yaml"
	DefaultOutput = "versions.html"

	EnvConfig   = "POMWATCH_CONFIG"
	EnvUsername = "POMWATCH_USERNAME"
	EnvPassword = "POMWATCH_PASSWORD"
)

// Settings is everything a run needs. It is built once at start-up and
// passed down explicitly.
type Settings struct {
	Credentials  CredentialsConfig `yaml:"credentials" toml:"credentials"`
	Policy       []policy.Rule     `yaml:"policy" toml:"policy"`
	Repositories []string          `yaml:"repositories" toml:"repositories"`
	Output       string            `yaml:"output" toml:"output"`
	Report       ReportConfig      `yaml:"report" toml:"report"`
	HTTP         HTTPConfig        `yaml:"http" toml:"http"`
	Publish      publish.Config    `yaml:"publish" toml:"publish"`

	compiled *policy.Policy
}

// CredentialsConfig defines the credentials configuration
type CredentialsConfig struct {
	Username string `yaml:"username" toml:"username"`
	Password string `yaml:"password,omitempty" toml:"password"`
}

// ReportConfig customises the rendered page
type ReportConfig struct {
	Title       string `yaml:"title" toml:"title"`
	Heading     string `yaml:"heading" toml:"heading"`
	Description string `yaml:"description" toml:"description"`
	Stylesheet  string `yaml:"stylesheet" toml:"stylesheet"`
	Integrity   string `yaml:"integrity" toml:"integrity"`
}

// Options converts the section into renderer options.
func (r ReportConfig) Options() report.Options {
	return report.Options{
		Title:       r.Title,
		Heading:     r.Heading,
		Description: r.Description,
		Stylesheet:  r.Stylesheet,
		Integrity:   r.Integrity,
	}
}

// HTTPConfig tunes the repository client. Zero values mean a single attempt
// and no client-side timeout.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`
	Retries int           `yaml:"retries" toml:"retries"`
}

// CompiledPolicy returns the validated policy. It is nil until Validate
// has succeeded.
func (s *Settings) CompiledPolicy() *policy.Policy {
	return s.compiled
}

// ResolvePath picks the settings file: the flag value, then POMWATCH_CONFIG,
// then DefaultPath.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	return DefaultPath
}

// LoadConfig loads the settings from a YAML or TOML file, chosen by
// extension, and validates them.
func LoadConfig(path string) (*Settings, error) {
	data, err := fileutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables in the file
	expanded := expandEnv(string(data))

	var settings Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(expanded, &settings)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("error parsing config file: unknown key %q", undecoded[0].String())
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
		dec.KnownFields(true)
		if err := dec.Decode(&settings); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	settings.applyEnv()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// expandEnv expands ${VAR} style environment variables
func expandEnv(content string) string {
	return os.Expand(content, func(key string) string {
		return os.Getenv(key)
	})
}

// applyEnv lets the credentials come from the environment instead of the file.
func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvUsername); v != "" {
		s.Credentials.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		s.Credentials.Password = v
	}
}

// Validate checks the settings, fills defaults and compiles the policy.
func (s *Settings) Validate() error {
	if len(s.Policy) == 0 {
		return errors.NewValidationError("policy", "at least one rule is required")
	}
	compiled, err := policy.New(s.Policy)
	if err != nil {
		return err
	}

	for i, repo := range s.Repositories {
		field := fmt.Sprintf("repositories[%d]", i)
		u, err := url.Parse(strings.TrimSpace(repo))
		if err != nil {
			return errors.NewValidationError(field, err.Error())
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.NewValidationError(field, fmt.Sprintf("unsupported scheme in %q", repo))
		}
		if u.Host == "" {
			return errors.NewValidationError(field, fmt.Sprintf("missing host in %q", repo))
		}
		s.Repositories[i] = strings.TrimSpace(repo)
	}

	if s.Credentials.Username != "" && s.Credentials.Password == "" {
		return errors.NewValidationError("credentials.password",
			"password must be provided when using username authentication")
	}

	if s.HTTP.Retries < 0 {
		return errors.NewValidationError("http.retries", "must not be negative")
	}
	if s.HTTP.Timeout < 0 {
		return errors.NewValidationError("http.timeout", "must not be negative")
	}

	if s.Publish.Enabled() {
		if s.Publish.Endpoint == "" {
			return errors.NewValidationError("publish.endpoint", "is required when publishing")
		}
		if s.Publish.Bucket == "" {
			return errors.NewValidationError("publish.bucket", "is required when publishing")
		}
		if s.Publish.AccessKeyID == "" || s.Publish.SecretAccessKey == "" {
			return errors.NewValidationError("publish", "accessKeyID and secretAccessKey are required")
		}
	}

	if s.Output == "" {
		s.Output = DefaultOutput
	}
	s.compiled = compiled
	return nil
}
