package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"fuzzyswitch/internal/config"
	"fuzzyswitch/internal/fetch"
	"fuzzyswitch/internal/switcher"
)

// buildOptions turns the config plus the candidate list into switcher
// options. A configured fetch source selects the asynchronous strategy and
// items are then ignored.
func buildOptions(cfg *config.Config, items []string) (switcher.Options[string], error) {
	match, err := switcher.MatcherByName[string](cfg.Matcher, nil)
	if err != nil {
		return switcher.Options[string]{}, err
	}
	ordering, err := parseOrdering(cfg.Ordering)
	if err != nil {
		return switcher.Options[string]{}, err
	}

	opts := switcher.Options[string]{
		Label:             cfg.Label,
		Items:             items,
		Seed:              cfg.Seed,
		DisplayCount:      cfg.DisplayCount,
		CycleAtEndsOfList: cfg.CycleAtEndsOfList,
		Strategy:          switcher.StrategySync,
		Ordering:          ordering,
		Match:             match,
	}

	if cfg.Fetch.Enabled() {
		f, err := buildFetch(cfg.Fetch)
		if err != nil {
			return switcher.Options[string]{}, err
		}
		opts.Strategy = switcher.StrategyAsync
		opts.Fetch = f
		opts.Items = nil
	} else if len(opts.Seed) == 0 && cfg.SeedFromItems {
		// Show the head of the list before anything is typed
		opts.Seed = items
	}
	return opts, nil
}

// buildFetch wraps the configured source in a timeout, in-flight dedup and
// a short-lived cache, innermost first.
func buildFetch(f config.Fetch) (fetch.Func, error) {
	var (
		src fetch.Func
		err error
	)
	switch {
	case len(f.Command) > 0:
		src, err = fetch.Command(fetch.Format(f.Format), f.Command[0], f.Command[1:]...)
	case f.URL != "":
		src, err = fetch.HTTP(f.URL, nil)
	default:
		return fetch.Empty, nil
	}
	if err != nil {
		return nil, err
	}

	timeout, err := f.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	ttl, err := f.CacheTTLDuration()
	if err != nil {
		return nil, err
	}

	src = fetch.WithTimeout(src, timeout)
	src = fetch.Dedup(src)
	return fetch.Cache(src, f.CacheSize, ttl), nil
}

func parseOrdering(s string) (switcher.Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latest-issued":
		return switcher.OrderLatestIssued, nil
	case "last-resolved":
		return switcher.OrderLastResolved, nil
	default:
		return 0, fmt.Errorf("unknown ordering %q", s)
	}
}

// loadItems picks the candidate list: --items-file first, then piped stdin,
// then the config's items. fromStdin reports whether stdin was consumed, in
// which case keyboard input has to come from the terminal device.
func loadItems(path string, stdin *os.File, cfg *config.Config) (items []string, fromStdin bool, err error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, false, fmt.Errorf("open items file: %w", err)
		}
		defer f.Close()
		items, err := readLines(f)
		if err != nil {
			return nil, false, fmt.Errorf("read items file %s: %w", path, err)
		}
		return items, false, nil
	}

	if stdinPiped(stdin) {
		items, err := readLines(stdin)
		if err != nil {
			return nil, false, fmt.Errorf("read stdin: %w", err)
		}
		return items, true, nil
	}

	return cfg.Items, false, nil
}

// readLines returns the non-blank lines of r, trimmed.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func stdinPiped(f *os.File) bool {
	if f == nil {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
