package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"clicknote/internal/credentials"
	"clicknote/internal/service"
)

// RequestOptions carries the optional parts of a request.
type RequestOptions struct {
	Method string // defaults to GET
	Body   []byte
}

// RawResponse is an uninterpreted HTTP response.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// JSON decodes the body into v. Decoding is always explicit; callers never
// see a half-parsed response.
func (r *RawResponse) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &service.RemoteError{Status: r.StatusCode, Err: err}
	}
	return nil
}

// Fetcher sends authenticated requests relative to a base URL.
// It does not interpret status codes and does not retry.
type Fetcher struct {
	baseURL string
	http    *http.Client
	creds   credentials.Provider
}

// NewFetcher creates a Fetcher. The token is read from creds on every request.
func NewFetcher(baseURL string, httpClient *http.Client, creds credentials.Provider) *Fetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Fetcher{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		http:    httpClient,
		creds:   creds,
	}
}

// Request sends method path (relative to the base URL, may include a query)
// with the stored token in the Authorization header. A missing token is sent
// as an empty header; the remote service rejects it.
func (f *Fetcher) Request(ctx context.Context, path string, opts RequestOptions) (*RawResponse, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	op := method + " " + stripQuery(path)

	token, err := f.creds.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, f.baseURL+strings.TrimPrefix(path, "/"), body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	res, err := f.http.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, query included.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, &service.NetworkError{Op: op, Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &service.NetworkError{Op: op, Err: err}
	}
	return &RawResponse{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       data,
	}, nil
}

// stripQuery keeps credentials in query strings out of error messages.
func stripQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
