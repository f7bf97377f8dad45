package runlog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_AppendWritesTimestampedLines(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "agentlog")
	sink, err := NewFileSink(dir)
	require.NoError(t, err)
	defer sink.Close()

	require.NoError(t, sink.Append("Thought: check the files"))
	require.NoError(t, sink.Append("Observation: ok"))

	content, err := os.ReadFile(sink.Path())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 2)

	stamped := regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{6}\] `)
	assert.Regexp(t, stamped, lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "Thought: check the files"))
	assert.True(t, strings.HasSuffix(lines[1], "Observation: ok"))
}

func TestFileSink_NamesFileAfterStartTime(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "agentlog")
	sink, err := NewFileSink(dir)
	require.NoError(t, err)
	defer sink.Close()

	assert.True(t, strings.HasSuffix(sink.Path(), ".agentrun.log"))
	assert.Equal(t, dir, filepath.Dir(sink.Path()))
}

func TestNop_AcceptsAnything(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Nop{}.Append("whatever"))
}
