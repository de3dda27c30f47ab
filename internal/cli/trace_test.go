package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archangelinux/portfolio/internal/journal"
	"github.com/archangelinux/portfolio/internal/rotator"
	"github.com/archangelinux/portfolio/internal/testutil"
)

// seedJournal records the seed frame and two transitions of the stock rotation.
func seedJournal(t *testing.T, run string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "morph.db")

	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer j.Close()

	ctx := context.Background()
	r, err := rotator.New([]string{"cat", "cart", "art"}, rotator.DefaultInterval, j,
		rotator.WithRunIDGenerator(testutil.NewFixedRunID(run)))
	require.NoError(t, err)
	require.NoError(t, j.Append(ctx, r.Snapshot()))
	for i := 0; i < 2; i++ {
		_, err := r.Advance(ctx)
		require.NoError(t, err)
	}
	return dbPath
}

func executeTrace(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTraceCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTraceMissingDatabaseFlag(t *testing.T) {
	_, err := executeTrace(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
	assert.Contains(t, err.Error(), "db")
}

func TestTraceDatabaseNotFound(t *testing.T) {
	out, err := executeTrace(t, "text", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitUsage, ExitCode(err))
	assert.Contains(t, out, "Error [E002]: journal not found")
}

func TestTraceListsRuns(t *testing.T) {
	dbPath := seedJournal(t, "trace-run")

	out, err := executeTrace(t, "text", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "trace-run frames=3 last_tick=2 variants=3\n", out)
}

func TestTraceShowsFrames(t *testing.T) {
	dbPath := seedJournal(t, "trace-run")

	out, err := executeTrace(t, "text", "--db", dbPath, "--run", "trace-run")
	require.NoError(t, err)
	assert.Contains(t, out, "run: trace-run\n")
	assert.Contains(t, out, `tick=1 step=1 variant="cart"`)
	assert.Contains(t, out, `"c":0 "a":1 "r":3+ "t":2`)
}

func TestTraceUnknownRun(t *testing.T) {
	dbPath := seedJournal(t, "trace-run")

	out, err := executeTrace(t, "text", "--db", dbPath, "--run", "other")
	require.Error(t, err)
	assert.Equal(t, ExitFail, ExitCode(err))
	assert.Contains(t, out, "run not found")
}

func TestTraceEmptyJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	j, err := journal.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	out, err := executeTrace(t, "text", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded.\n", out)
}
