// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package verify

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sitestack/pkg/errors"
)

// httptest certificates are issued for example.com.
const testDomain = "example.com"

type testSite struct {
	tls   *httptest.Server
	plain *httptest.Server
}

func newTestSite(t *testing.T, handler http.Handler) *testSite {
	t.Helper()
	s := &testSite{
		tls: httptest.NewTLSServer(handler),
		plain: httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "https://"+r.Host+r.URL.Path, http.StatusMovedPermanently)
		})),
	}
	t.Cleanup(s.tls.Close)
	t.Cleanup(s.plain.Close)
	return s
}

func (s *testSite) options(extra ...Option) []Option {
	tlsServerAddr := s.tls.Listener.Addr().String()
	plainServerAddr := s.plain.Listener.Addr().String()
	dialer := &net.Dialer{Timeout: time.Second}

	rootCAs := s.tls.Client().Transport.(*http.Transport).TLSClientConfig.RootCAs
	opts := []Option{
		WithDialer(func(ctx context.Context, network, addr string) (net.Conn, error) {
			if _, port, _ := net.SplitHostPort(addr); port == "443" {
				return dialer.DialContext(ctx, network, tlsServerAddr)
			}
			return dialer.DialContext(ctx, network, plainServerAddr)
		}),
		WithTLSConfig(&tls.Config{RootCAs: rootCAs, MinVersion: tls.VersionTLS12}),
		WithTimeout(5 * time.Second),
	}
	return append(opts, extra...)
}

func siteHandler(missingStatus int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			_, _ = w.Write([]byte("<h1>ok</h1>"))
			return
		}
		w.WriteHeader(missingStatus)
	})
}

func probeByName(t *testing.T, res *Result, name string) Probe {
	t.Helper()
	for _, p := range res.Probes {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("probe %q not found", name)
	return Probe{}
}

func TestCheck_Passes(t *testing.T) {
	s := newTestSite(t, siteHandler(http.StatusForbidden))

	res, err := Check(context.Background(), testDomain, s.options()...)
	require.NoError(t, err)

	assert.True(t, res.Passed, "failed probes: %v", res.Failed())
	assert.Equal(t, testDomain, res.Domain)
	assert.Len(t, res.Probes, 4)

	redirect := probeByName(t, res, CheckRedirect)
	assert.Equal(t, http.StatusMovedPermanently, redirect.Status)
	assert.Equal(t, "https://example.com/", redirect.Detail)

	cert := probeByName(t, res, CheckCertificate)
	assert.Contains(t, cert.Detail, "expires")
}

func TestCheck_ErrorDocumentStatus(t *testing.T) {
	s := newTestSite(t, siteHandler(http.StatusNotFound))

	res, err := Check(context.Background(), testDomain, s.options()...)
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, []string{CheckErrorDocument}, res.Failed())

	res, err = Check(context.Background(), testDomain, s.options(WithExpectedErrorStatus(http.StatusNotFound))...)
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestCheck_CertificateMismatch(t *testing.T) {
	s := newTestSite(t, siteHandler(http.StatusForbidden))

	res, err := Check(context.Background(), "www.other.test", s.options()...)
	require.NoError(t, err)
	assert.False(t, res.Passed)

	root := probeByName(t, res, CheckRoot)
	assert.False(t, root.Passed, "TLS verification must fail for a foreign name")
	assert.NotEmpty(t, root.Detail)
}

func TestCheck_NormalizesDomain(t *testing.T) {
	s := newTestSite(t, siteHandler(http.StatusForbidden))

	res, err := Check(context.Background(), " Example.COM. ", s.options()...)
	require.NoError(t, err)
	assert.Equal(t, testDomain, res.Domain)
	assert.True(t, res.Passed)
}

func TestCheck_EmptyDomain(t *testing.T) {
	_, err := Check(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestCheck_CanceledContext(t *testing.T) {
	s := newTestSite(t, siteHandler(http.StatusForbidden))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Check(ctx, testDomain, s.options()...)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

// stallUntilDone holds a request until the client gives up on it.
func stallUntilDone(w http.ResponseWriter, r *http.Request) {
	select {
	case <-r.Context().Done():
	case <-time.After(10 * time.Second):
	}
	w.WriteHeader(http.StatusGatewayTimeout)
}

func TestCheck_RoundTimeout(t *testing.T) {
	s := newTestSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			stallUntilDone(w, r)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))

	start := time.Now()
	res, err := Check(context.Background(), testDomain, s.options(WithRoundTimeout(200*time.Millisecond))...)
	require.NoError(t, err, "an expired round is a failed check, not an error")
	assert.Less(t, time.Since(start), 3*time.Second, "round must end before the 5s request timeout")

	assert.False(t, res.Passed)
	root := probeByName(t, res, CheckRoot)
	assert.False(t, root.Passed)
	assert.NotEmpty(t, root.Detail)
	assert.True(t, probeByName(t, res, CheckErrorDocument).Passed)
}

func TestWait_RetriesAfterRoundTimeout(t *testing.T) {
	var calls atomic.Int32
	s := newTestSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if calls.Add(1) == 1 {
			stallUntilDone(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	res, err := Wait(context.Background(), testDomain, s.options(
		WithRoundTimeout(200*time.Millisecond),
		WithPollInterval(10*time.Millisecond),
		WithWaitTimeout(10*time.Second),
	)...)
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.GreaterOrEqual(t, calls.Load(), int32(2))
}

func TestWait_BecomesReady(t *testing.T) {
	var calls atomic.Int32
	s := newTestSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	res, err := Wait(context.Background(), testDomain, s.options(
		WithPollInterval(10*time.Millisecond),
		WithWaitTimeout(10*time.Second),
	)...)
	require.NoError(t, err)
	assert.True(t, res.Passed)
}

func TestWait_Timeout(t *testing.T) {
	s := newTestSite(t, siteHandler(http.StatusNotFound))

	res, err := Wait(context.Background(), testDomain, s.options(
		WithPollInterval(10*time.Millisecond),
		WithWaitTimeout(100*time.Millisecond),
	)...)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout), "got %v", err)
	if res != nil {
		assert.False(t, res.Passed)
	}
}
