// Package cli implements the sitestack command-line interface.
//
// # Overview
//
// sitestack declares the infrastructure for a static site (bucket,
// certificate, CDN distribution, DNS alias record and content deployment)
// with the AWS CDK. It is the app command run by the CDK CLI and can also be
// used directly to inspect and check a site.
//
// # Commands
//
// synth - Synthesize the cloud assembly (default):
//
//	sitestack synth --domain example.com --subdomain www
//
// Run by "cdk synth" and "cdk deploy" through cdk.json. The assembly is
// written to CDK_OUTDIR when the CDK CLI sets it.
//
// plan - Describe the declared resources:
//
//	sitestack plan --domain example.com --subdomain www --format table
//
// verify - Smoke-check a deployed site:
//
//	sitestack verify --domain example.com --subdomain www --wait
//
// preview - Serve the site content locally:
//
//	sitestack preview --asset-path ./site-contents --port 8080
//
// Missing objects are answered with the error document and status 403, as
// the distribution does.
//
// # Configuration
//
// Site settings are resolved in this order, later sources winning:
//
//  1. built-in defaults
//  2. the --config file (YAML or JSON)
//  3. CDK context (cdk synth -c domain=example.com -c subdomain=www)
//  4. flags and their SITE_* environment variables
//
// cdk.json carries only CDK feature flags. Site settings come from the
// config file or are passed per deployment:
//
//	cdk deploy -c domain=example.com -c subdomain=www
//
// A flag given as --aaaa=false or --error-cache-minutes=0 overrides a
// value set by a lower layer.
//
// # Environment Variables
//
//	LOG_LEVEL        Logging verbosity when --log-level is not set
//	SITE_CONFIG      Config file path
//	SITE_DOMAIN      Apex domain
//	SITE_SUBDOMAIN   Subdomain
//	SITE_AAAA        Create the IPv6 alias record (true or false)
//	SITE_ERROR_CACHE_MINUTES
//	                 Edge cache time for error responses
//	CDK_OUTDIR       Cloud assembly directory (set by the CDK CLI)
//
// # Exit Codes
//
//	0  Success
//	1  Any error, including failed verify checks
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/mchmarny/sitestack/pkg/cli.version=1.0.0'"
package cli
