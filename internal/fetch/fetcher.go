// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"hostprep/internal/issue"
)

// DefaultMaxResponseBytes caps installer payloads. Bootstrap scripts are
// small; anything near this size is suspect.
const DefaultMaxResponseBytes int64 = 8 << 20

const defaultTimeout = 2 * time.Minute

var (
	// ErrHTTPStatus indicates the remote endpoint answered with a
	// non-success status.
	ErrHTTPStatus = errors.New("http error status")

	// ErrInsecureURL indicates a non-HTTPS installer URL.
	ErrInsecureURL = errors.New("installer url must use https")

	// ErrChecksumRequired indicates an unpinned step while the
	// configuration demands pins.
	ErrChecksumRequired = errors.New("installer checksum required")
)

type (
	// Fetcher downloads installer scripts.
	Fetcher struct {
		client          *http.Client
		maxBytes        int64
		requireChecksum bool
		userAgent       string
	}

	// Option configures a Fetcher.
	Option func(*Fetcher)

	// HTTPStatusError is returned for non-2xx responses.
	HTTPStatusError struct {
		URL        string
		StatusCode int
	}
)

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("fetch %s: server returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *HTTPStatusError) Unwrap() error {
	return ErrHTTPStatus
}

// WithHTTPClient overrides the HTTP client. Used by tests to trust a
// local TLS server.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithMaxResponseBytes caps the accepted payload size.
func WithMaxResponseBytes(n int64) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxBytes = n
		}
	}
}

// WithRequireChecksum makes unpinned fetches an error instead of a
// warning.
func WithRequireChecksum(require bool) Option {
	return func(f *Fetcher) { f.requireChecksum = require }
}

// WithUserAgent sets the User-Agent header on requests.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// New creates a Fetcher. The default transport refuses TLS below 1.2 and
// honors the standard proxy environment variables.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		maxBytes:  DefaultMaxResponseBytes,
		userAgent: "hostprep",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Script downloads the installer at rawURL and returns its body. An empty
// pin skips verification unless checksums are required.
func (f *Fetcher) Script(ctx context.Context, rawURL, pin string) ([]byte, error) {
	if err := checkScheme(rawURL); err != nil {
		return nil, err
	}

	if pin == "" && f.requireChecksum {
		return nil, issue.NewErrorContext().
			WithOperation("fetch installer").
			WithResource(rawURL).
			WithSuggestion("add a sha256 pin to the installer step").
			WithSuggestion("or disable fetch.require_checksum in the configuration").
			Wrap(ErrChecksumRequired).
			BuildError()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := readCapped(resp.Body, f.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read installer body from %s: %w", rawURL, err)
	}

	if pin != "" {
		if err := VerifySHA256(rawURL, body, pin); err != nil {
			return nil, err
		}
	}

	return body, nil
}

func checkScheme(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse installer url %q: %w", rawURL, err)
	}
	if u.Scheme != "https" {
		return fmt.Errorf("%w, got %q", ErrInsecureURL, rawURL)
	}
	return nil
}

// readCapped reads at most max bytes and errors if the body is larger.
func readCapped(r io.Reader, max int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > max {
		return nil, fmt.Errorf("response exceeds %d byte limit", max)
	}
	return body, nil
}
