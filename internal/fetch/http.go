package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const userAgent = "fuzzyswitch/0.1"

// HTTP issues GET <endpoint>?q=<query> and decodes the JSON body. Existing
// query parameters on endpoint are kept.
func HTTP(endpoint string, client *http.Client) (Func, error) {
	base, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("parse fetch url %q: %w", endpoint, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("fetch url %q: scheme must be http or https", endpoint)
	}
	if client == nil {
		client = http.DefaultClient
	}

	return func(ctx context.Context, query string) (any, error) {
		u := *base
		values := u.Query()
		values.Set("q", query)
		u.RawQuery = values.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%s returned status %d", base.Redacted(), resp.StatusCode)
		}

		var v any
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return v, nil
	}, nil
}
