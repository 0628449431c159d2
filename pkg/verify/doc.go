// Package verify runs post-deploy smoke checks against a deployed site.
//
// The checks only observe what the provider has already done:
//
//   - root: GET https://<domain>/ answers 200
//   - redirect: GET http://<domain>/ redirects to https
//   - certificate: the served certificate is valid for the domain
//   - error-document: a missing object answers with the error status (403)
//
// Checks run concurrently. Check returns a Result for a single round and
// Wait polls until every check passes or the timeout elapses, which covers
// certificate validation and DNS propagation after a first deploy.
//
//	res, err := verify.Wait(ctx, "www.example.com", verify.WithPollInterval(10*time.Second))
package verify
