package cmdutils

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/harness/pomwatch/config"
	pomconfig "github.com/harness/pomwatch/internal/config"
	"github.com/harness/pomwatch/internal/terminal"
	"github.com/harness/pomwatch/module/pom/fetch"
	"github.com/harness/pomwatch/module/pom/filter"
	"github.com/harness/pomwatch/module/pom/publish"
	"github.com/harness/pomwatch/util/common/progress"

	"github.com/rs/zerolog/log"
)

// Publisher uploads a rendered report and returns where it went.
type Publisher interface {
	Publish(ctx context.Context, doc []byte) (string, error)
}

// Factory builds the collaborators of a command. Each field can be replaced
// in tests.
type Factory struct {
	Out    io.Writer
	ErrOut io.Writer

	// Terminal is filled in by the root command before any subcommand runs.
	Terminal terminal.Info

	Settings  func() (*pomconfig.Settings, error)
	Fetcher   func(s *pomconfig.Settings) fetch.Fetcher
	Publisher func(cfg publish.Config) (Publisher, error)
	Filter    func() (*filter.Filter, error)
	Progress  func() progress.Reporter
}

func NewFactory() *Factory {
	f := &Factory{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}

	var (
		once     sync.Once
		settings *pomconfig.Settings
		loadErr  error
	)
	f.Settings = func() (*pomconfig.Settings, error) {
		once.Do(func() {
			path := pomconfig.ResolvePath(config.Global.ConfigPath)
			log.Debug().Str("path", path).Msg("Loading settings")
			settings, loadErr = pomconfig.LoadConfig(path)
		})
		return settings, loadErr
	}

	f.Fetcher = func(s *pomconfig.Settings) fetch.Fetcher {
		return fetch.NewClient(s.Credentials.Username, s.Credentials.Password, fetch.Options{
			Timeout: s.HTTP.Timeout,
			Retries: s.HTTP.Retries,
		})
	}

	f.Publisher = func(cfg publish.Config) (Publisher, error) {
		return publish.New(cfg)
	}

	f.Filter = func() (*filter.Filter, error) {
		return filter.New(config.Global.Only, config.Global.Exclude)
	}

	f.Progress = func() progress.Reporter {
		if !f.Terminal.ShowProgress {
			return progress.NewNopReporter()
		}
		return progress.NewAutoReporter(f.ErrOut)
	}

	return f
}
