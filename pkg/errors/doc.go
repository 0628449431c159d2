// Package errors provides structured error types for programmatic error
// handling across the sitestack packages.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeInvalidRequest,
//	    "invalid site domain",
//	    cause,
//	    map[string]any{
//	        "domain":    cfg.DomainName,
//	        "subdomain": cfg.SubDomain,
//	    },
//	)
package errors
