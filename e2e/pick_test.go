//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPick(t *testing.T, items ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.WriteConfig("seed_from_items = true\n"))
	path, err := tf.WriteItems(items...)
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("pick", "--items-file", path))
	require.True(t, tf.SeePlain("Search"), "Should show the label")
	return tf
}

func TestPickTypeAndConfirm(t *testing.T) {
	t.Parallel()
	tf := startPick(t, "apple", "banana", "grape")
	defer tf.Cleanup()

	require.NoError(t, tf.Type("ban"))
	require.True(t, tf.SeePlain("▸ banana"), "banana should be highlighted")

	require.NoError(t, tf.SendKeys(KeyEnter))
	code := tf.WaitExit(3 * time.Second)
	if code != 0 {
		tf.DumpTailOnFail(t, "pick-confirm", 4096)
	}
	require.Equal(t, 0, code)

	tail := tf.SnapshotPlain()
	assert.True(t, strings.HasSuffix(strings.TrimSpace(tail), "banana"), "result is printed last")
}

func TestPickNavigationWraps(t *testing.T) {
	t.Parallel()
	tf := startPick(t, "alpha", "beta", "gamma")
	defer tf.Cleanup()

	require.True(t, tf.SeePlain("▸ alpha"))

	// Up from the first row stays put unless cycling is on
	require.NoError(t, tf.SendKeys(KeyUp))
	require.NoError(t, tf.SendKeys(KeyTab))
	require.True(t, tf.SeePlain("▸ beta"))

	require.NoError(t, tf.SendKeys(KeyEnter))
	require.Equal(t, 0, tf.WaitExit(3*time.Second))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(tf.SnapshotPlain()), "beta"))
}

func TestPickDismissExitsOne(t *testing.T) {
	t.Parallel()
	tf := startPick(t, "apple", "banana")
	defer tf.Cleanup()

	require.NoError(t, tf.SendKeys(KeyEsc))
	assert.Equal(t, 1, tf.WaitExit(3*time.Second))
}

func TestPickNoMatches(t *testing.T) {
	t.Parallel()
	tf := startPick(t, "apple", "banana")
	defer tf.Cleanup()

	require.NoError(t, tf.Type("zzz"))
	assert.True(t, tf.SeePlain("no matches"))

	// Enter with nothing highlighted keeps the popup open
	require.NoError(t, tf.SendKeys(KeyEnter))
	assert.Equal(t, -1, tf.WaitExit(300*time.Millisecond))

	require.NoError(t, tf.SendKeys(KeyCtrlC))
	assert.Equal(t, 1, tf.WaitExit(3*time.Second))
}

func TestPickAsyncCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.WriteConfig(`
label = "Remote"

[fetch]
command = ["sh", "-c", "printf '%s\\n' \"$1-one\" \"$1-two\"", "sh"]
format = "lines"
`))

	require.NoError(t, tf.StartApp("pick"))
	require.True(t, tf.SeePlain("Remote"))

	require.NoError(t, tf.Type("xy"))
	require.True(t, tf.SeePlain("xy-two"), "fetched candidates should be listed")

	require.NoError(t, tf.SendKeys(KeyDown))
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.Equal(t, 0, tf.WaitExit(3*time.Second))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(tf.SnapshotPlain()), "xy-two"))
}
