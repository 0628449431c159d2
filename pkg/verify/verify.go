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
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/mchmarny/sitestack/pkg/defaults"
	"github.com/mchmarny/sitestack/pkg/errors"
	"github.com/mchmarny/sitestack/pkg/header"
)

// Check names.
const (
	CheckRoot          = "root"
	CheckRedirect      = "redirect"
	CheckCertificate   = "certificate"
	CheckErrorDocument = "error-document"
)

// MissingObjectPath is requested to exercise the error document.
const MissingObjectPath = "/.sitestack/verify-missing-object"

const userAgent = "sitestack-verify/1.0"

// DialFunc dials a network address.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Option configures the checks.
type Option func(*checker)

// WithExpectedErrorStatus sets the status a missing object must answer with.
func WithExpectedErrorStatus(status int) Option {
	return func(c *checker) {
		c.errorStatus = status
	}
}

// WithDialer routes all connections through dial, e.g. to target a
// distribution before DNS points at it.
func WithDialer(dial DialFunc) Option {
	return func(c *checker) {
		c.dial = dial
	}
}

// WithTLSConfig replaces the TLS client configuration, e.g. to trust a private root.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(c *checker) {
		c.tlsConfig = tlsConfig
	}
}

// WithTimeout bounds each probe request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *checker) {
		c.timeout = timeout
	}
}

// WithRoundTimeout bounds one round of checks. Probes still running when it
// elapses are reported as failed.
func WithRoundTimeout(timeout time.Duration) Option {
	return func(c *checker) {
		c.roundTimeout = timeout
	}
}

// WithPollInterval sets the delay between rounds in Wait.
func WithPollInterval(interval time.Duration) Option {
	return func(c *checker) {
		c.interval = interval
	}
}

// WithWaitTimeout bounds Wait.
func WithWaitTimeout(timeout time.Duration) Option {
	return func(c *checker) {
		c.waitTimeout = timeout
	}
}

// Probe is the outcome of a single check.
type Probe struct {
	Name     string        `json:"name" yaml:"name"`
	URL      string        `json:"url" yaml:"url"`
	Passed   bool          `json:"passed" yaml:"passed"`
	Status   int           `json:"status,omitempty" yaml:"status,omitempty"`
	Detail   string        `json:"detail,omitempty" yaml:"detail,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Result is the outcome of a round of checks.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	Domain string  `json:"domain" yaml:"domain"`
	Passed bool    `json:"passed" yaml:"passed"`
	Probes []Probe `json:"probes" yaml:"probes"`
}

// Failed returns the names of the failed probes.
func (r *Result) Failed() []string {
	var failed []string
	for _, p := range r.Probes {
		if !p.Passed {
			failed = append(failed, p.Name)
		}
	}
	return failed
}

type checker struct {
	domain       string
	errorStatus  int
	dial         DialFunc
	tlsConfig    *tls.Config
	timeout      time.Duration
	roundTimeout time.Duration
	interval     time.Duration
	waitTimeout  time.Duration
	client       *http.Client
}

func newChecker(domain string, opts ...Option) *checker {
	c := &checker{
		domain:       strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), "."),
		errorStatus:  http.StatusForbidden,
		timeout:      defaults.HTTPClientTimeout,
		roundTimeout: defaults.VerifyTimeout,
		interval:     defaults.VerifyPollInterval,
		waitTimeout:  defaults.VerifyWaitTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	dial := c.dial
	if dial == nil {
		dialer := &net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}
		dial = dialer.DialContext
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.tlsConfig != nil {
		tlsConfig = c.tlsConfig.Clone()
	}

	c.client = &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			DialContext:           dial,
			TLSClientConfig:       tlsConfig,
			TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
			ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
			IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		},
		// Redirects are asserted, not followed.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return c
}

// Check runs one round of checks against domain. A failed check is reported
// in the Result; the error is only set when ctx ends or domain is empty.
// A round that outlives the round timeout reports its pending probes as failed.
func Check(ctx context.Context, domain string, opts ...Option) (*Result, error) {
	c := newChecker(domain, opts...)
	defer c.client.CloseIdleConnections()
	return c.run(ctx)
}

// Wait repeats Check until every probe passes or the wait timeout elapses.
// The last Result is returned in both cases.
func Wait(ctx context.Context, domain string, opts ...Option) (*Result, error) {
	c := newChecker(domain, opts...)
	defer c.client.CloseIdleConnections()

	var last *Result
	err := wait.PollUntilContextTimeout(ctx, c.interval, c.waitTimeout, true, func(ctx context.Context) (bool, error) {
		res, err := c.run(ctx)
		if err != nil {
			return false, err
		}
		last = res
		if !res.Passed {
			slog.Info("site not ready", "domain", c.domain, "failed", res.Failed())
		}
		return res.Passed, nil
	})
	if err != nil {
		if wait.Interrupted(err) {
			return last, errors.WrapWithContext(errors.ErrCodeTimeout, "site did not pass checks in time", err,
				map[string]any{"domain": c.domain, "timeout": c.waitTimeout.String()})
		}
		return last, err
	}
	return last, nil
}

func (c *checker) run(ctx context.Context) (*Result, error) {
	if c.domain == "" {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "domain is required")
	}

	probes := []func(context.Context) Probe{
		c.checkRoot,
		c.checkRedirect,
		c.checkCertificate,
		c.checkErrorDocument,
	}
	res := &Result{
		Domain: c.domain,
		Probes: make([]Probe, len(probes)),
	}

	roundCtx, cancel := context.WithTimeout(ctx, c.roundTimeout)
	defer cancel()

	var g errgroup.Group
	for i, probe := range probes {
		g.Go(func() error {
			start := time.Now()
			p := probe(roundCtx)
			p.Duration = time.Since(start)
			res.Probes[i] = p
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, "site checks interrupted", err)
	}
	if roundCtx.Err() != nil {
		slog.Warn("site checks exceeded round timeout", "domain", c.domain, "timeout", c.roundTimeout.String())
	}

	res.Passed = true
	for _, p := range res.Probes {
		if !p.Passed {
			res.Passed = false
		}
		slog.Debug("site check", "name", p.Name, "passed", p.Passed, "status", p.Status, "detail", p.Detail)
	}
	return res, nil
}

func (c *checker) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *checker) probe(ctx context.Context, name, url string, judge func(*http.Response) (bool, string)) Probe {
	p := Probe{Name: name, URL: url}
	resp, err := c.get(ctx, url)
	if err != nil {
		p.Detail = err.Error()
		return p
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()
	p.Status = resp.StatusCode
	p.Passed, p.Detail = judge(resp)
	return p
}

func (c *checker) httpsURL(path string) string {
	return "https://" + c.domain + path
}

func (c *checker) checkRoot(ctx context.Context) Probe {
	return c.probe(ctx, CheckRoot, c.httpsURL("/"), func(resp *http.Response) (bool, string) {
		if resp.StatusCode != http.StatusOK {
			return false, fmt.Sprintf("expected %d, got %d", http.StatusOK, resp.StatusCode)
		}
		return true, ""
	})
}

func (c *checker) checkRedirect(ctx context.Context) Probe {
	return c.probe(ctx, CheckRedirect, "http://"+c.domain+"/", func(resp *http.Response) (bool, string) {
		switch resp.StatusCode {
		case http.StatusMovedPermanently, http.StatusFound, http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		default:
			return false, fmt.Sprintf("expected redirect, got %d", resp.StatusCode)
		}
		loc := resp.Header.Get("Location")
		if !strings.HasPrefix(loc, "https://") {
			return false, fmt.Sprintf("redirect target %q is not https", loc)
		}
		return true, loc
	})
}

func (c *checker) checkCertificate(ctx context.Context) Probe {
	return c.probe(ctx, CheckCertificate, c.httpsURL("/"), func(resp *http.Response) (bool, string) {
		if resp.TLS == nil || len(resp.TLS.PeerCertificates) == 0 {
			return false, "no peer certificate"
		}
		leaf := resp.TLS.PeerCertificates[0]
		if err := leaf.VerifyHostname(c.domain); err != nil {
			return false, err.Error()
		}
		return true, fmt.Sprintf("expires %s", leaf.NotAfter.UTC().Format(time.RFC3339))
	})
}

func (c *checker) checkErrorDocument(ctx context.Context) Probe {
	return c.probe(ctx, CheckErrorDocument, c.httpsURL(MissingObjectPath), func(resp *http.Response) (bool, string) {
		if resp.StatusCode != c.errorStatus {
			return false, fmt.Sprintf("expected %d, got %d", c.errorStatus, resp.StatusCode)
		}
		return true, ""
	})
}
