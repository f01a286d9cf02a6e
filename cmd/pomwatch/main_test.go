package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/harness/pomwatch/cmd/cmdutils"
	"github.com/harness/pomwatch/config"
	pomconfig "github.com/harness/pomwatch/internal/config"
	"github.com/harness/pomwatch/internal/style"
	"github.com/harness/pomwatch/internal/terminal"
	"github.com/harness/pomwatch/util/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appPOM = `<project xmlns="http://maven.apache.org/POM/4.0.0">
  <artifactId>app</artifactId>
  <version>1.0.0</version>
  <properties><java.version>8</java.version></properties>
</project>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	f := cmdutils.NewFactory()
	f.Out = &out
	f.ErrOut = io.Discard
	root := newRootCmd(f)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeSettings(t *testing.T, repos ...string) string {
	t.Helper()
	content := "policy:\n  - {property: java.version, latest: \"12\", minimum: \"8\"}\nrepositories:\n"
	for _, r := range repos {
		content += "  - " + r + "\n"
	}
	path := filepath.Join(t.TempDir(), "pomwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newRepoServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/org/app/contents/pom.xml" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"content":%q,"encoding":"base64"}`, base64.StdEncoding.EncodeToString([]byte(appPOM)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pomwatch version dev")
}

func TestRootCmd_UnsupportedFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "version")
	assert.ErrorContains(t, err, `unsupported format "xml"`)
}

func TestReportCmd_EndToEnd(t *testing.T) {
	t.Setenv("POMWATCH_USERNAME", "")
	t.Setenv("POMWATCH_PASSWORD", "")
	srv := newRepoServer(t)
	settings := writeSettings(t,
		srv.URL+"/repos/org/app/contents/pom.xml",
		srv.URL+"/repos/org/gone/contents/pom.xml",
	)
	output := filepath.Join(t.TempDir(), "versions.html")

	out, err := execute(t, "--config", settings, "report", "--output", output)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+output+" (1 read, 1 omitted)")

	html, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(html), `<span class="badge badge-warning">8</span>`)
}

func TestCheckCmd_JSON(t *testing.T) {
	t.Setenv("POMWATCH_USERNAME", "")
	t.Setenv("POMWATCH_PASSWORD", "")
	srv := newRepoServer(t)
	settings := writeSettings(t, srv.URL+"/repos/org/app/contents/pom.xml")

	out, err := execute(t, "--config", settings, "--json", "check")
	require.NoError(t, err)

	var decoded struct {
		Counts map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, map[string]int{"below-latest": 1}, decoded.Counts)
}

func TestCheckCmd_MissingSettings(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "check")
	assert.ErrorContains(t, err, "stat operation failed")
}

func TestPrintError(t *testing.T) {
	config.Global = config.GlobalFlags{}
	t.Setenv(pomconfig.EnvConfig, "")
	style.Init(false)
	t.Cleanup(func() { style.Init(true) })

	var buf bytes.Buffer
	printError(&buf, terminal.Info{}, errors.NewFileError(pomconfig.DefaultPath, "stat", os.ErrNotExist))
	assert.Contains(t, buf.String(), "Error: stat operation failed on pomwatch.yaml")
	assert.Contains(t, buf.String(), "→ pass --config or set $POMWATCH_CONFIG")

	buf.Reset()
	style.Init(true)
	printError(&buf, terminal.Info{StderrIsTerminal: true, ColorEnabled: true}, fmt.Errorf("boom"))
	assert.Contains(t, buf.String(), "✗")
	assert.Contains(t, buf.String(), "Error: boom")
	assert.NotContains(t, buf.String(), "→")
}
