package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vulpin/reopenwarn/internal/config"
	"github.com/vulpin/reopenwarn/internal/ghoutput"
)

const questionPage = `<html><body class="question-page">
<header class="s-topbar"><a class="my-profile" href="/users/1">me</a></header>
<div id="question" data-questionid="42">
<div class="special-status"><div class="question-status"><h2>Closed<span class="close-status-suffix">.</span></h2></div></div>
</div></body></html>`

const openQuestionPage = `<html><body class="question-page"><div id="question" data-questionid="42"></div></body></html>`

const timelinePage = `<html><body><table><tbody class="event-rows">
<tr><td><span class="event-verb"><a href="/review/reopen/900">reopen</a></span></td></tr>
<tr><td><span class="event-verb">completed</span></td></tr>
<tr><td><span class="event-verb">closed</span></td></tr>
</tbody></table></body></html>`

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func newSite(t *testing.T, question string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/questions/42":
			_, _ = w.Write([]byte(question))
		case "/posts/42/timeline":
			_, _ = w.Write([]byte(timelinePage))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, baseURL string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("NO_COLOR", "1")

	opts := &Options{Environ: config.Vars{
		"REOPENWARN_SITES":     "127.0.0.1,stackoverflow.com",
		"REOPENWARN_BASE_URL":  baseURL,
		"REOPENWARN_LOG_LEVEL": "error",
	}}
	var out bytes.Buffer
	err := execute(context.Background(), args, nil, &out, opts)
	return out.String(), err
}

func TestCheck_Text(t *testing.T) {
	srv := newSite(t, questionPage)
	ghOut := filepath.Join(t.TempDir(), "gh-output")
	t.Setenv(ghoutput.EnvVar, ghOut)

	out, err := run(t, srv.URL, "check", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "A completed reopen review has been found")
	assert.Contains(t, out, srv.URL+"/review/reopen/900")
	assert.Contains(t, out, "note: You do not have access to the review queues")

	data, err := os.ReadFile(ghOut)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reopen_review=completed\n")
	assert.Contains(t, string(data), "review_url="+srv.URL+"/review/reopen/900\n")
}

func TestCheck_AssumeReviewerDropsCaveat(t *testing.T) {
	srv := newSite(t, questionPage)
	t.Setenv(ghoutput.EnvVar, "")

	out, err := run(t, srv.URL, "check", "--assume-reviewer", "--format", "yaml", "42")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "completed", got["state"])
	assert.NotContains(t, got, "caveat")
}

func TestCheck_HTML(t *testing.T) {
	srv := newSite(t, questionPage)
	t.Setenv(ghoutput.EnvVar, "")

	out, err := run(t, srv.URL, "check", "-f", "html", srv.URL+"/questions/42/some-title")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<div class="special-status reopen-review-notice">`))
}

func TestCheck_OpenQuestion(t *testing.T) {
	srv := newSite(t, openQuestionPage)
	t.Setenv(ghoutput.EnvVar, "")

	out, err := run(t, srv.URL, "check", "42")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCheck_FailureIsSilentUnlessStrict(t *testing.T) {
	srv := newSite(t, questionPage)
	t.Setenv(ghoutput.EnvVar, "")

	out, err := run(t, srv.URL, "check", "7")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, srv.URL, "check", "--strict", "7")
	assert.ErrorContains(t, err, "404")
}

func TestCheck_BadArgs(t *testing.T) {
	_, err := run(t, "http://127.0.0.1:1", "check", "--format", "xml", "42")
	assert.ErrorContains(t, err, "unknown format")

	_, err = run(t, "http://127.0.0.1:1", "check", "https://example.com/questions/1")
	assert.ErrorContains(t, err, "not an allowed site")
}

func TestTimeline_YAML(t *testing.T) {
	srv := newSite(t, questionPage)

	out, err := run(t, srv.URL, "timeline", "-o", "yaml", "42")
	require.NoError(t, err)

	var report timelineReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "42", report.PostID)
	require.Len(t, report.Events, 3)
	require.NotNil(t, report.Reopen)
	assert.True(t, report.Reopen.IsCompleted)
}

func TestTimeline_Table(t *testing.T) {
	srv := newSite(t, questionPage)

	out, err := run(t, srv.URL, "timeline", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "completed reopen review: "+srv.URL+"/review/reopen/900")
}

func TestAnnotate_Offline(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "question.html")
	timelinePath := filepath.Join(dir, "timeline.html")
	outPath := filepath.Join(dir, "annotated.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(questionPage), 0o644))
	require.NoError(t, os.WriteFile(timelinePath, []byte(timelinePage), 0o644))

	_, err := run(t, "https://stackoverflow.com",
		"annotate",
		"--page", pagePath,
		"--timeline", timelinePath,
		"--base-url", "http://127.0.0.1",
		"--out", outPath,
	)
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	doc, err := goquery.NewDocumentFromReader(f)
	require.NoError(t, err)

	inserted := doc.Find(".special-status>.question-status").First().Next()
	assert.True(t, inserted.HasClass("reopen-review-notice"))
	href, _ := inserted.Find("h2 a").Attr("href")
	assert.Equal(t, "http://127.0.0.1/review/reopen/900", href)
}

func TestAnnotate_LeavesPageOnFailure(t *testing.T) {
	dir := t.TempDir()
	pagePath := filepath.Join(dir, "question.html")
	require.NoError(t, os.WriteFile(pagePath, []byte(questionPage), 0o644))
	missing := filepath.Join(dir, "missing-timeline.html")

	out, err := run(t, "https://stackoverflow.com", "annotate", "--page", pagePath, "--timeline", missing)
	require.NoError(t, err)
	assert.Contains(t, out, "close-status-suffix")
	assert.NotContains(t, out, "reopen-review-notice")

	_, err = run(t, "https://stackoverflow.com", "annotate", "--strict", "--page", pagePath, "--timeline", missing)
	assert.Error(t, err)
}
