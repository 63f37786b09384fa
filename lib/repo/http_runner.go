package repo

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// HTTPRunner sends commands to a remote /repo endpoint.
type HTTPRunner struct {
	url    string
	client *http.Client
}

func NewHTTPRunner(url string, client *http.Client) *HTTPRunner {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPRunner{
		url:    url,
		client: client,
	}
}

func (r *HTTPRunner) Run(ctx context.Context, req Request) (*Result, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "error calling %v", r.url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading response from %v", r.url)
	}

	switch {
	case IsFramed(resp.Header):
		return DecodeResult(resp.Header, body)

	case strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") && resp.StatusCode == http.StatusOK:
		var result Result
		err = json.Unmarshal(body, &result)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid response from %v", r.url)
		}
		return &result, nil

	case resp.StatusCode == http.StatusOK:
		return &Result{Stdout: string(body)}, nil

	case resp.StatusCode == http.StatusNotFound:
		return &Result{Stderr: string(body), ExitCode: 1}, nil

	default:
		return nil, errors.Errorf("%v returned %v: %v", r.url, resp.Status, strings.TrimSpace(string(body)))
	}
}
