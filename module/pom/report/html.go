// Package report renders descriptor versions as a static HTML page.
package report

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/russross/blackfriday/v2"

	"github.com/harness/pomwatch/module/pom/descriptor"
	"github.com/harness/pomwatch/module/pom/policy"
)

// Page defaults used when the report section leaves a field empty
const (
	DefaultTitle   = "My projects"
	DefaultHeading = "Maven project dependency versions"

	DefaultStylesheet          = "https://stackpath.bootstrapcdn.com/bootstrap/4.4.1/css/bootstrap.min.css"
	DefaultStylesheetIntegrity = "sha384-Vkoo8x4CGsO3+Hhxv8T/Q5PaXtkKtu6ug5TOeNV6gBiFeWPGFN9MuhOf23Q9Ifjh"

	emptyNotice = "No repository descriptor could be read."
)

// Options customises the page around the table.
type Options struct {
	Title       string
	Heading     string
	Description string // markdown
	Stylesheet  string
	Integrity   string
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Heading == "" {
		o.Heading = DefaultHeading
	}
	if o.Stylesheet == "" {
		o.Stylesheet = DefaultStylesheet
		if o.Integrity == "" {
			o.Integrity = DefaultStylesheetIntegrity
		}
	}
	return o
}

// Omission is a repository that did not make it into the table.
type Omission struct {
	Repository string `json:"repository"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail"`
}

type page struct {
	Options
	DescriptionHTML template.HTML
	Table           Table
	Omitted         []Omission
	EmptyNotice     string
	RowHeader       CellKind
	Plain           CellKind
}

var pageTemplate = template.Must(template.New("report").Parse(`<!doctype html>
<html lang="en">
    <head>
        <meta charset="utf-8">
        <meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
        <link rel="stylesheet" href="{{.Stylesheet}}"{{if .Integrity}} integrity="{{.Integrity}}" crossorigin="anonymous"{{end}}>
        <title>{{.Title}}</title>
    </head>
    <body style="background-color:#ccc">
        <div class="container">
            <div class="row">
                <div class="col">
                    <h1>{{.Heading}}</h1>
{{- if .DescriptionHTML}}
                    {{.DescriptionHTML}}
{{- end}}
                </div>
            </div>
            <div class="row">
                <div class="col">
                    <div class="table-responsive">
                        <table class="table table-bordered table-hover table-striped table-dark">
                            <thead>
                                <tr>
{{- range .Table.Header}}
                                    <th scope="col">{{.}}</th>
{{- end}}
                                </tr>
                            </thead>
                            <tbody>
{{- range .Table.Rows}}
                                <tr>
{{- range .}}
{{- if eq .Kind $.RowHeader}}
                                    <th scope="row">{{.Value}}</th>
{{- else if eq .Kind $.Plain}}
                                    <td>{{.Value}}</td>
{{- else}}
                                    <td><span class="badge badge-{{.Color}}">{{.Value}}</span></td>
{{- end}}
{{- end}}
                                </tr>
{{- end}}
                            </tbody>
                        </table>
                    </div>
{{- if not .Table.Rows}}
                    <p class="alert alert-secondary">{{.EmptyNotice}}</p>
{{- end}}
                </div>
            </div>
{{- if .Omitted}}
            <div class="row">
                <div class="col">
                    <h2>Omitted repositories</h2>
                    <ul>
{{- range .Omitted}}
                        <li><code>{{.Repository}}</code> ({{.Reason}}): {{.Detail}}</li>
{{- end}}
                    </ul>
                </div>
            </div>
{{- end}}
        </div>
    </body>
</html>
`))

// Render builds the complete HTML document. It performs no I/O and does
// not modify its arguments; equal inputs give byte-identical output.
func Render(descriptors []*descriptor.Descriptor, omitted []Omission, p *policy.Policy, opts Options) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("render report: policy is required")
	}
	opts = opts.withDefaults()

	data := page{
		Options:     opts,
		Table:       BuildTable(descriptors, p),
		Omitted:     omitted,
		EmptyNotice: emptyNotice,
		RowHeader:   RowHeader,
		Plain:       Plain,
	}
	if opts.Description != "" {
		data.DescriptionHTML = template.HTML(blackfriday.Run([]byte(opts.Description),
			blackfriday.WithExtensions(blackfriday.CommonExtensions),
			blackfriday.WithRenderer(blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
				Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML | blackfriday.Safelink,
			})),
		))
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}
