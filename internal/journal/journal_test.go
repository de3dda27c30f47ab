package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archangelinux/portfolio/internal/morph"
	"github.com/archangelinux/portfolio/internal/rotator"
)

func openTestJournal(t *testing.T) (*Journal, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j, path
}

func TestOpen_CreatesDatabase(t *testing.T) {
	_, path := openTestJournal(t)

	_, err := os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	defer j2.Close()

	var version int
	require.NoError(t, j2.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_WALMode(t *testing.T) {
	j, _ := openTestJournal(t)

	var mode string
	require.NoError(t, j.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestAppendAndFrames(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	seed := rotator.Frame{
		Run: "run-a", Tick: 0, Step: 0, Count: 2, Variant: "cat",
		Letters: morph.Sequence{{Char: "c", ID: 0}, {Char: "a", ID: 1}, {Char: "t", ID: 2}},
	}
	next := rotator.Frame{
		Run: "run-a", Tick: 1, Step: 1, Count: 2, Variant: "cart",
		Letters: morph.Sequence{
			{Char: "c", ID: 0}, {Char: "a", ID: 1}, {Char: "r", ID: 3, IsNew: true}, {Char: "t", ID: 2},
		},
		Stats: morph.Stats{Kept: 3, Introduced: 1, Distance: 1},
	}

	require.NoError(t, j.Append(ctx, next))
	require.NoError(t, j.Append(ctx, seed))

	frames, err := j.Frames(ctx, "run-a")
	require.NoError(t, err)
	assert.Equal(t, []rotator.Frame{seed, next}, frames, "frames come back in tick order")
}

func TestAppend_Idempotent(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()
	f := rotator.Frame{Run: "r", Tick: 1, Count: 1, Variant: "x", Letters: morph.Sequence{{Char: "x"}}}

	require.NoError(t, j.Append(ctx, f))
	f.Variant = "changed"
	require.NoError(t, j.Append(ctx, f))

	frames, err := j.Frames(ctx, "r")
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, "x", frames[0].Variant, "first write wins")
}

func TestAppend_EmptyLetters(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, rotator.Frame{Run: "r", Count: 1}))

	frames, err := j.Frames(ctx, "r")
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Empty(t, frames[0].Letters)
}

func TestFrames_UnknownRun(t *testing.T) {
	j, _ := openTestJournal(t)

	frames, err := j.Frames(context.Background(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, frames)
	assert.Empty(t, frames)
}

func TestRuns(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	for _, f := range []rotator.Frame{
		{Run: "b", Tick: 0, Count: 3},
		{Run: "a", Tick: 0, Count: 2},
		{Run: "a", Tick: 1, Step: 1, Count: 2},
	} {
		require.NoError(t, j.Append(ctx, f))
	}

	runs, err := j.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []RunSummary{
		{Run: "a", Frames: 2, LastTick: 1, Variants: 2},
		{Run: "b", Frames: 1, LastTick: 0, Variants: 3},
	}, runs)
}

func TestJournal_AsRotatorPublisher(t *testing.T) {
	j, _ := openTestJournal(t)
	ctx := context.Background()

	r, err := rotator.New([]string{"cat", "cart"}, time.Second, j, rotator.WithRunID("run-pub"))
	require.NoError(t, err)

	var published []rotator.Frame
	for i := 0; i < 3; i++ {
		f, err := r.Advance(ctx)
		require.NoError(t, err)
		published = append(published, f)
	}

	frames, err := j.Frames(ctx, "run-pub")
	require.NoError(t, err)
	assert.Equal(t, published, frames)
}
