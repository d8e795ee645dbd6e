package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuzzyswitch/internal/switcher"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
}

func TestCommandJSON(t *testing.T) {
	skipWithoutShell(t)
	fetch, err := Command(FormatJSON, "sh", "-c", `printf '["%s-1","%s-2"]' "$1" "$FUZZYSWITCH_QUERY"`, "sh")
	require.NoError(t, err)

	v, err := fetch(context.Background(), "ap")

	require.NoError(t, err)
	assert.Equal(t, []any{"ap-1", "ap-2"}, v)
}

func TestCommandLines(t *testing.T) {
	skipWithoutShell(t)
	fetch, err := Command(FormatLines, "sh", "-c", `printf 'apple\n\n  banana \ngrape\n'`, "sh")
	require.NoError(t, err)

	v, err := fetch(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, []any{"apple", "banana", "grape"}, v)
}

func TestCommandFailureIncludesStderr(t *testing.T) {
	skipWithoutShell(t)
	fetch, err := Command(FormatJSON, "sh", "-c", `echo "no index" >&2; exit 3`, "sh")
	require.NoError(t, err)

	_, err = fetch(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no index")
}

func TestCommandNonListFeedsMalformedResult(t *testing.T) {
	skipWithoutShell(t)
	fetch, err := Command(FormatJSON, "sh", "-c", `echo '{"items":["a"]}'`, "sh")
	require.NoError(t, err)
	r := switcher.NewResolver(switcher.Options[string]{Strategy: switcher.StrategyAsync, Fetch: fetch})

	_, err = r.Fetch(context.Background(), switcher.Ticket{Query: "a"})

	var malformed *switcher.MalformedResultError
	assert.ErrorAs(t, err, &malformed)
}

func TestCommandValidation(t *testing.T) {
	_, err := Command(FormatJSON, "  ")
	assert.Error(t, err)

	_, err = Command("xml", "cat")
	assert.Error(t, err)
}

func TestHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gr", r.URL.Query().Get("q"))
		assert.Equal(t, "fruit", r.URL.Query().Get("kind"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]string{"grape", "grapefruit"})
	}))
	defer srv.Close()

	fetch, err := HTTP(srv.URL+"/search?kind=fruit", srv.Client())
	require.NoError(t, err)

	v, err := fetch(context.Background(), "gr")

	require.NoError(t, err)
	assert.Equal(t, []any{"grape", "grapefruit"}, v)
}

func TestHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	fetch, err := HTTP(srv.URL, nil)
	require.NoError(t, err)

	_, err = fetch(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPRejectsBadURL(t *testing.T) {
	_, err := HTTP("ftp://example.com", nil)
	assert.Error(t, err)
}

func TestWithTimeout(t *testing.T) {
	slow := func(ctx context.Context, _ string) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := WithTimeout(slow, 10*time.Millisecond)(context.Background(), "q")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestDedupSharesInFlightCalls(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	fetch := Dedup(func(context.Context, string) (any, error) {
		calls.Add(1)
		<-release
		return []any{"x"}, nil
	})

	var wg sync.WaitGroup
	results := make([]any, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = fetch(context.Background(), "same")
		}(i)
	}

	// Let the goroutines join the in-flight call before releasing it
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, []any{"x"}, r)
	}
}

func TestDedupCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	fetch := Dedup(func(context.Context, string) (any, error) {
		<-release
		return []any{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetch(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDedupCancelsSourceWhenLastCallerLeaves(t *testing.T) {
	seen := make(chan error, 1)
	fetch := Dedup(func(ctx context.Context, _ string) (any, error) {
		<-ctx.Done()
		seen <- ctx.Err()
		return nil, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := fetch(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case err := <-seen:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("source was not cancelled after its only caller left")
	}
}

func TestDedupKeepsSourceWhileACallerWaits(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var sourceErr atomic.Value
	fetch := Dedup(func(ctx context.Context, _ string) (any, error) {
		close(started)
		select {
		case <-release:
			return []any{"x"}, nil
		case <-ctx.Done():
			sourceErr.Store(ctx.Err())
			return nil, ctx.Err()
		}
	})

	done := make(chan struct{})
	var (
		kept    any
		keptErr error
	)
	go func() {
		defer close(done)
		kept, keptErr = fetch(context.Background(), "q")
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	left := make(chan error, 1)
	go func() {
		_, err := fetch(ctx, "q")
		left <- err
	}()
	// Let the second caller join before it cancels
	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-left, context.Canceled)

	close(release)
	<-done
	require.NoError(t, keptErr)
	assert.Equal(t, []any{"x"}, kept)
	assert.Nil(t, sourceErr.Load(), "the shared call survives one caller leaving")
}

func TestDedupStartsAfreshAfterAbandonedCall(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	fetch := Dedup(func(ctx context.Context, q string) (any, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return []any{q}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	_, err := fetch(ctx, "q")
	require.ErrorIs(t, err, context.Canceled)

	v, err := fetch(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []any{"q"}, v)
}

func TestCacheMemoisesSuccesses(t *testing.T) {
	var calls atomic.Int32
	fail := true
	fetch := Cache(func(_ context.Context, q string) (any, error) {
		calls.Add(1)
		if fail {
			return nil, errors.New("flaky")
		}
		return []any{q}, nil
	}, 8, time.Minute)

	_, err := fetch(context.Background(), "a")
	require.Error(t, err)

	fail = false
	v1, err := fetch(context.Background(), "a")
	require.NoError(t, err)
	v2, err := fetch(context.Background(), "a")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int32(2), calls.Load(), "errors are not cached, successes are")
}

func TestCacheDisabled(t *testing.T) {
	var calls atomic.Int32
	fetch := Cache(func(context.Context, string) (any, error) {
		calls.Add(1)
		return []any{}, nil
	}, 8, 0)

	_, _ = fetch(context.Background(), "a")
	_, _ = fetch(context.Background(), "a")

	assert.Equal(t, int32(2), calls.Load())
}

func TestEmpty(t *testing.T) {
	v, err := Empty(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []any{}, v)
}
