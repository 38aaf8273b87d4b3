package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"

	"github.com/devyanshfaye/weather-analytics/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

// HTTPClientConfig bundles the HTTP client shared by the providers.
type HTTPClientConfig struct {
	Client *http.Client
}

// doRequest executes a single HTTP attempt through the provider's circuit
// breaker. There are no retries: a failed attempt surfaces immediately as a
// *weather.NetworkError so the caller can report it and stop.
func doRequest(
	ctx context.Context,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (*http.Response, error) {
	if cfg.Client == nil {
		return nil, errNoHTTPClient
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := buildRequest()
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.Do(req)
		if execErr != nil {
			return nil, &weather.NetworkError{URL: req.URL.String(), Err: execErr}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, &weather.NetworkError{URL: req.URL.String(), StatusCode: resp.StatusCode}
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, &weather.NetworkError{URL: req.URL.String(), Err: err}
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// decodeJSON decodes a response body into dst, mapping every decode failure
// (including an empty body) to a *weather.ParseError.
func decodeJSON(resp *http.Response, source string, dst interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &weather.ParseError{Source: source, Err: err}
	}
	return nil
}
