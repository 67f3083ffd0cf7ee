// SPDX-License-Identifier: MPL-2.0

package fetch

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const installerBody = "#!/bin/sh\nprintf installing\n"

// newTLSFetcher starts a local TLS server serving handler and returns a
// Fetcher whose client trusts it, plus the server URL.
func newTLSFetcher(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Fetcher, string) {
	t.Helper()

	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithHTTPClient(srv.Client())}, opts...)
	return New(opts...), srv.URL
}

func sum(body string) string {
	s := sha256.Sum256([]byte(body))
	return hex.EncodeToString(s[:])
}

func TestScript_FetchesBody(t *testing.T) {
	t.Parallel()

	f, url := newTLSFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(installerBody))
	})

	body, err := f.Script(context.Background(), url, "")
	if err != nil {
		t.Fatalf("Script: %v", err)
	}
	if string(body) != installerBody {
		t.Errorf("body = %q, want %q", body, installerBody)
	}
}

func TestScript_ErrorStatusIsFailure(t *testing.T) {
	t.Parallel()

	f, url := newTLSFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := f.Script(context.Background(), url, "")
	if !errors.Is(err, ErrHTTPStatus) {
		t.Fatalf("err = %v, want ErrHTTPStatus", err)
	}

	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("err %T does not expose the status", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestScript_RejectsPlainHTTP(t *testing.T) {
	t.Parallel()

	f := New()
	_, err := f.Script(context.Background(), "http://sh.rustup.rs", "")
	if !errors.Is(err, ErrInsecureURL) {
		t.Errorf("err = %v, want ErrInsecureURL", err)
	}
}

func TestScript_ChecksumPinMatch(t *testing.T) {
	t.Parallel()

	f, url := newTLSFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(installerBody))
	})

	if _, err := f.Script(context.Background(), url, sum(installerBody)); err != nil {
		t.Errorf("pinned fetch failed: %v", err)
	}

	// Pins are case-insensitive.
	upper := strings.ToUpper(sum(installerBody))
	if _, err := f.Script(context.Background(), url, upper); err != nil {
		t.Errorf("upper-case pin failed: %v", err)
	}
}

func TestScript_ChecksumPinMismatch(t *testing.T) {
	t.Parallel()

	f, url := newTLSFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("tampered"))
	})

	_, err := f.Script(context.Background(), url, sum(installerBody))
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("err = %v, want ErrChecksumMismatch", err)
	}

	var chkErr *ChecksumError
	if !errors.As(err, &chkErr) {
		t.Fatalf("err %T does not expose the digests", err)
	}
	if chkErr.Actual != sum("tampered") {
		t.Errorf("Actual = %s, want digest of served body", chkErr.Actual)
	}
}

func TestScript_RequireChecksumRefusesUnpinned(t *testing.T) {
	t.Parallel()

	f, url := newTLSFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(installerBody))
	}, WithRequireChecksum(true))

	_, err := f.Script(context.Background(), url, "")
	if !errors.Is(err, ErrChecksumRequired) {
		t.Errorf("err = %v, want ErrChecksumRequired", err)
	}

	// A pinned fetch still succeeds.
	if _, err := f.Script(context.Background(), url, sum(installerBody)); err != nil {
		t.Errorf("pinned fetch failed: %v", err)
	}
}

func TestScript_SizeCap(t *testing.T) {
	t.Parallel()

	f, url := newTLSFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}, WithMaxResponseBytes(16))

	if _, err := f.Script(context.Background(), url, ""); err == nil {
		t.Error("oversized response should fail")
	}
}

func TestNew_TransportRefusesOldTLS(t *testing.T) {
	t.Parallel()

	f := New()
	transport, ok := f.client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("transport is %T, want *http.Transport", f.client.Transport)
	}
	if transport.TLSClientConfig.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion = %d, want TLS 1.2", transport.TLSClientConfig.MinVersion)
	}
}

func TestScript_UserAgent(t *testing.T) {
	t.Parallel()

	var got string
	f, url := newTLSFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(installerBody))
	}, WithUserAgent("hostprep-test"))

	if _, err := f.Script(context.Background(), url, ""); err != nil {
		t.Fatalf("Script: %v", err)
	}
	if got != "hostprep-test" {
		t.Errorf("User-Agent = %q, want %q", got, "hostprep-test")
	}
}
