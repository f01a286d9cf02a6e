package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/harness/pomwatch/internal/config"
	"github.com/harness/pomwatch/module/pom/descriptor"
	"github.com/harness/pomwatch/module/pom/fetch"
	"github.com/harness/pomwatch/module/pom/filter"
	"github.com/harness/pomwatch/module/pom/report"
	"github.com/harness/pomwatch/util/common"
	"github.com/harness/pomwatch/util/common/errors"
	"github.com/harness/pomwatch/util/common/fileutil"
	"github.com/harness/pomwatch/util/common/progress"
)

// Outcome is the result of reading one repository. Exactly one of
// Descriptor and Err is set.
type Outcome struct {
	Repository string                 `json:"repository"`
	Name       string                 `json:"name"`
	Descriptor *descriptor.Descriptor `json:"descriptor,omitempty"`
	Reason     errors.FailureReason   `json:"reason,omitempty"`
	Err        error                  `json:"-"`
}

// OK reports whether the repository made it into the report.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Descriptor != nil
}

// Result is everything a run produced.
type Result struct {
	RunID    string
	Outcomes []Outcome
	Output   string
	Document []byte
	Read     int
	Omitted  int
}

// Descriptors returns the successful descriptors in repository order.
func (r *Result) Descriptors() []*descriptor.Descriptor {
	var out []*descriptor.Descriptor
	for _, o := range r.Outcomes {
		if o.OK() {
			out = append(out, o.Descriptor)
		}
	}
	return out
}

// Omissions returns the failed repositories in repository order.
func (r *Result) Omissions() []report.Omission {
	var out []report.Omission
	for _, o := range r.Outcomes {
		if o.OK() {
			continue
		}
		out = append(out, report.Omission{
			Repository: o.Name,
			Reason:     string(o.Reason),
			Detail:     o.Err.Error(),
		})
	}
	return out
}

// Driver runs the fetch, parse, render and write sequence over the
// configured repositories, one at a time and in order.
type Driver struct {
	settings *config.Settings
	fetcher  fetch.Fetcher
	progress progress.Reporter
	filter   *filter.Filter
}

// New creates a Driver. A nil reporter disables progress output and a nil
// filter keeps every repository.
func New(settings *config.Settings, fetcher fetch.Fetcher, reporter progress.Reporter, f *filter.Filter) *Driver {
	if reporter == nil {
		reporter = progress.NewNopReporter()
	}
	return &Driver{
		settings: settings,
		fetcher:  fetcher,
		progress: reporter,
		filter:   f,
	}
}

// Run collects every repository, renders the report and writes it to the
// configured output path. Omitted repositories are not an error.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	result, err := d.Collect(ctx)
	if err != nil {
		return nil, err
	}
	if err := d.Render(result); err != nil {
		return result, err
	}
	if err := d.Write(result); err != nil {
		return result, err
	}
	return result, nil
}

// Collect fetches and parses every selected repository. It only fails when
// the settings are unusable or ctx is cancelled.
func (d *Driver) Collect(ctx context.Context) (*Result, error) {
	p := d.settings.CompiledPolicy()
	if p == nil {
		return nil, fmt.Errorf("settings have not been validated")
	}
	properties := p.Properties()
	repositories := d.filter.Apply(d.settings.Repositories)

	result := &Result{
		RunID:    uuid.New().String(),
		Outcomes: make([]Outcome, 0, len(repositories)),
		Output:   d.settings.Output,
	}
	runLogger := log.With().
		Str("run_id", result.RunID).
		Int("total_repositories", len(repositories)).
		Logger()
	runLogger.Info().Msg("Starting run")
	runStart := time.Now()

	d.progress.Start(len(repositories))
	for i, repo := range repositories {
		if err := ctx.Err(); err != nil {
			runLogger.Warn().Err(err).Msg("Run cancelled")
			return nil, err
		}
		name := filter.Slug(repo)
		d.progress.Step(i, name)

		repoLogger := runLogger.With().
			Int("index", i).
			Str("repository", name).
			Logger()
		outcome := d.collectOne(ctx, repoLogger, repo, name, properties)
		if outcome.OK() {
			result.Read++
		} else {
			result.Omitted++
			repoLogger.Warn().
				Err(outcome.Err).
				Str("reason", string(outcome.Reason)).
				Msg("Repository omitted from report")
			d.progress.Omitted(name, outcome.Err.Error())
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}
	d.progress.Done(result.Read, result.Omitted)

	runLogger.Info().
		Int("read", result.Read).
		Int("omitted", result.Omitted).
		Dur("duration", time.Since(runStart)).
		Msg("Collection completed")
	return result, nil
}

func (d *Driver) collectOne(ctx context.Context, logger zerolog.Logger, repo, name string, properties []string) Outcome {
	outcome := Outcome{Repository: repo, Name: name}

	step := func(stepName string, fn func() error) bool {
		stepLogger := logger.With().Str("step", stepName).Logger()
		stepLogger.Debug().Msg("Starting step")
		start := time.Now()
		if err := fn(); err != nil {
			outcome.Err = err
			outcome.Reason = errors.ReasonOf(err)
			stepLogger.Debug().
				Err(err).
				Dur("duration", time.Since(start)).
				Msg("Step failed")
			return false
		}
		stepLogger.Debug().
			Dur("duration", time.Since(start)).
			Msg("Step completed successfully")
		return true
	}

	var raw []byte
	if !step("fetch", func() error {
		var err error
		raw, err = d.fetcher.Fetch(ctx, repo)
		if err == nil {
			logger.Debug().Str("size", common.HumanSize(len(raw))).Msg("Descriptor fetched")
		}
		return err
	}) {
		return outcome
	}

	step("parse", func() error {
		parsed, err := descriptor.Parse(raw, properties)
		if err != nil {
			return err
		}
		outcome.Descriptor = parsed
		return nil
	})
	return outcome
}

// Render builds the HTML document for result.
func (d *Driver) Render(result *Result) error {
	doc, err := report.Render(result.Descriptors(), result.Omissions(),
		d.settings.CompiledPolicy(), d.settings.Report.Options())
	if err != nil {
		return err
	}
	result.Document = doc
	log.Debug().
		Str("run_id", result.RunID).
		Str("size", common.HumanSize(len(doc))).
		Msg("Report rendered")
	return nil
}

// Write stores the rendered document at result.Output, replacing any
// existing file.
func (d *Driver) Write(result *Result) error {
	if result.Document == nil {
		return fmt.Errorf("report has not been rendered")
	}
	if err := fileutil.WriteFile(result.Output, result.Document); err != nil {
		return err
	}
	log.Info().
		Str("run_id", result.RunID).
		Str("path", result.Output).
		Msg("Report written")
	return nil
}
