package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// HTTPError is synthesized for any non-2xx response. The body has
// already been read and discarded when it is returned.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("remote: unexpected status %s", e.Status)
}

// httpProvider speaks the default HTTP shape: GET with a query string
// or POST with a JSON body, responding with {"data": …, "total": …}
// unless a TransformResponse hook says otherwise.
type httpProvider[T any] struct {
	cfg Config[T]
}

func (p *httpProvider[T]) FetchPage(ctx context.Context, params map[string]any) (Result[T], error) {
	var zero Result[T]

	req, err := p.newRequest(ctx, params)
	if err != nil {
		return zero, err
	}

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return zero, &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, err
	}

	if p.cfg.TransformResponse != nil {
		return p.cfg.TransformResponse(body)
	}

	var res Result[T]
	if err := json.Unmarshal(body, &res); err != nil {
		return zero, fmt.Errorf("remote: decode response: %w", err)
	}
	return res, nil
}

func (p *httpProvider[T]) newRequest(ctx context.Context, params map[string]any) (*http.Request, error) {
	var req *http.Request
	var err error

	if p.cfg.Method == http.MethodPost {
		body, merr := json.Marshal(params)
		if merr != nil {
			return nil, fmt.Errorf("remote: encode request: %w", merr)
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.URL, bytes.NewReader(body))
		if err == nil {
			req.Header.Set("Content-Type", "application/json")
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
		if err == nil {
			q := url.Values{}
			for k, v := range params {
				q.Set(k, fmt.Sprint(v))
			}
			req.URL.RawQuery = q.Encode()
		}
	}
	if err != nil {
		return nil, err
	}

	for k, v := range p.cfg.Headers {
		req.Header.Set(k, v)
	}
	// Request id for server-side log correlation.
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}
