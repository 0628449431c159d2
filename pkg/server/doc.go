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

// Package server implements the local preview server for site content.
//
// The server answers the way the deployed distribution does for the same
// bucket content, so a site can be checked before it is deployed:
//
//   - "/" serves the index document
//   - an existing object is served as is
//   - a missing object, or a directory key, is answered with the error
//     document and the configured error status (403 by default, as an S3
//     origin behind CloudFront reports missing keys)
//   - GET, HEAD and OPTIONS are allowed, other methods are rejected
//
// There is no directory index below the root, matching the default root
// object semantics of CloudFront.
//
// # Endpoints
//
// System endpoints live under the reserved "/-/" prefix so they never shadow
// site content:
//
//	GET /-/health   Liveness
//	GET /-/ready    Readiness (503 while starting or shutting down)
//	GET /-/metrics  Prometheus metrics
//
// # Middleware
//
// Site requests pass through, outermost first: metrics, request ID
// (X-Request-Id, generated when missing or not a UUID), panic recovery, rate
// limiting (X-RateLimit-* headers, 429 with Retry-After) and request logging.
//
// # Usage
//
//	cfg := server.NewConfig()
//	cfg.Root = "./site-contents"
//	s, err := server.New(cfg)
//	if err != nil {
//	    return err
//	}
//	return s.Run(ctx)
//
// Run shuts the server down gracefully when ctx is canceled, waiting at most
// Config.ShutdownTimeout for in-flight requests.
//
// # Environment Variables
//
//	PORT                      Listen port (default: 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  Graceful shutdown timeout (default: 30)
package server
