// Package stack declares the static-site resource graph with the AWS CDK.
//
// # Resources
//
// NewStaticSite declares, in order of dependency:
//
//   - the hosted zone (imported by ID or looked up by name)
//   - a private S3 bucket for the site content
//   - a DNS-validated ACM certificate in us-east-1
//   - a CloudFront distribution serving the bucket over HTTPS
//   - A (and optionally AAAA) alias records pointing at the distribution
//   - a bucket deployment that uploads the site content and invalidates
//     the distribution cache
//
// Nothing here provisions anything. The declarations are synthesized into a
// cloud assembly and CloudFormation owns ordering, retries, certificate
// validation, propagation and rollback.
//
// # Usage
//
// From a CDK app entry point:
//
//	app := stack.NewApp(stack.AppOptions{})
//	cfg.Merge(site.FromContext(app.ContextLookup()))
//	dir, err := app.Synth(cfg)
//
// Stack outputs (Site, Bucket, Certificate, DistributionId,
// DistributionDomainName) are declared on the stack so that
// "cdk deploy --outputs-file" produces stable keys.
package stack
