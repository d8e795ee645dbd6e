package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Format is how a command's stdout is decoded.
type Format string

const (
	FormatJSON  Format = "json"
	FormatLines Format = "lines"
)

// Command runs name with args plus the query as the final argument. The query
// is also exported as FUZZYSWITCH_QUERY for shell one-liners.
func Command(format Format, name string, args ...string) (Func, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("fetch command is empty")
	}
	switch format {
	case FormatJSON, FormatLines:
	case "":
		format = FormatJSON
	default:
		return nil, fmt.Errorf("unknown fetch format %q", format)
	}

	return func(ctx context.Context, query string) (any, error) {
		argv := append(append([]string(nil), args...), query)
		cmd := exec.CommandContext(ctx, name, argv...)
		cmd.Env = append(os.Environ(), QueryEnv+"="+query)

		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		output, err := cmd.Output()
		if err != nil {
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
			}
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		if format == FormatLines {
			return splitLines(output), nil
		}
		return decodeJSON(output)
	}, nil
}

func splitLines(output []byte) []any {
	items := []any{}
	for _, line := range strings.Split(string(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	return items
}

func decodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	return v, nil
}
