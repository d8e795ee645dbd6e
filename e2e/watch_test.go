//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchHotkeyOpensAndCloses(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.WriteConfig("seed_from_items = true\n"))
	path, err := tf.WriteItems("apple", "banana", "grape")
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("watch", "--items-file", path))
	require.True(t, tf.SeePlain("nothing selected yet"))
	assert.NotContains(t, tf.SnapshotPlain(), "banana", "hidden until the hotkey")

	require.NoError(t, tf.SendKeys(KeyCtrlP))
	require.True(t, tf.SeePlain("banana"))

	require.NoError(t, tf.Type("gra"))
	require.True(t, tf.SeePlain("▸ grape"))
	require.NoError(t, tf.SendKeys(KeyEnter))
	require.True(t, tf.SeePlain("✓ grape"), "selection is listed behind the popup")

	// Re-open and dismiss
	require.NoError(t, tf.SendKeys(KeyCtrlP))
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, tf.SendKeys(KeyEsc))
	// A key right after a bare escape would read as alt+key
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, tf.SendKeys(KeyQuit))
	code := tf.WaitExit(3 * time.Second)
	if code != 0 {
		tf.DumpTailOnFail(t, "watch-exit", 4096)
	}
	assert.Equal(t, 0, code)
}
