package output

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulpin/reopenwarn/internal/timeline"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestEvents(t *testing.T) {
	var buf bytes.Buffer
	err := Events(&buf, []timeline.Event{
		{Verb: "reopen", HasVerb: true, ReviewURL: "https://stackoverflow.com/review/reopen/3"},
		{},
		{Verb: "closed", HasVerb: true},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "reopen")
	assert.Contains(t, out, "https://stackoverflow.com/review/reopen/3")
	assert.Contains(t, out, "closed")
}

func TestStatus(t *testing.T) {
	var buf bytes.Buffer
	Status(&buf, timeline.ReopenStatus{}, false)
	assert.Contains(t, buf.String(), "no reopen review")

	buf.Reset()
	Status(&buf, timeline.ReopenStatus{ReviewURL: "u", IsCompleted: true}, true)
	assert.Equal(t, "completed reopen review: u\n", buf.String())

	buf.Reset()
	Status(&buf, timeline.ReopenStatus{ReviewURL: "u"}, true)
	assert.Equal(t, "pending reopen review: u\n", buf.String())
}

func TestVerbColor_Passthrough(t *testing.T) {
	assert.Equal(t, "edited", VerbColor("edited"))
}
