// Package plan describes the resource graph a site configuration declares,
// without starting the CDK runtime or calling the provider.
//
// A plan lists each declared resource with its CloudFormation type, the
// construct ID used in the stack, the values passed to it and the
// resources it depends on:
//
//	p, err := plan.Build(cfg)
//	ordered, err := p.Order()
//
// The graph is always bucket, certificate, distribution, alias record(s),
// deployment, plus the hosted zone and origin access resources they
// reference. Provisioning order is decided by CloudFormation; Order only
// reflects the declared references.
package plan
