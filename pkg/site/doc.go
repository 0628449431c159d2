// Package site holds the caller-supplied configuration for a static site and
// the rules for turning it into the values passed to resource declarations.
//
// The central value is the site domain:
//
//	cfg := site.Config{DomainName: "example.com", SubDomain: "www"}
//	cfg.SiteDomain() // "www.example.com"
//
// Configuration is layered. Defaults are applied first, then a config file,
// then CDK context values, then flags and environment variables:
//
//	cfg := site.Default()
//	cfg.Merge(*fileCfg)
//	cfg.Merge(site.FromContext(lookup))
//	cfg.Merge(flagCfg)
//	if err := cfg.Normalize(); err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
package site
