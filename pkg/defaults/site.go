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

package defaults

import "time"

// CertificateRegion is the only region CloudFront accepts certificates from.
const CertificateRegion = "us-east-1"

// Site content defaults.
const (
	// AssetPath is the directory uploaded by the deployment step.
	AssetPath = "./site-contents"

	// IndexDocument is served for requests to the distribution root.
	IndexDocument = "index.html"

	// ErrorDocument is served when the origin denies a request.
	ErrorDocument = "error.html"

	// ErrorCachingMinTTL is how long the edge caches error responses.
	ErrorCachingMinTTL = 30 * time.Minute

	// InvalidationPath is invalidated on the distribution after each deployment.
	InvalidationPath = "/*"
)

// InvalidationPaths returns the default distribution paths invalidated after
// a deployment. A new slice is returned on each call.
func InvalidationPaths() []string {
	return []string{InvalidationPath}
}
