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

// Package defaults provides centralized constants for the sitestack tool.
//
// Two kinds of values live here:
//
//   - Site literals: values passed unchanged into resource declarations
//     (certificate region, root and error documents, invalidation paths).
//   - Timeouts: bounds for the outbound HTTP probes run by verify.
//
// # Usage
//
//	import "github.com/mchmarny/sitestack/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.VerifyTimeout)
//	defer cancel()
//
// Site literals are defaults only. Every one of them can be overridden in
// the site configuration except CertificateRegion, which CloudFront
// requires.
package defaults
