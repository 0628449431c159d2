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

package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/mchmarny/sitestack/pkg/defaults"
	"github.com/mchmarny/sitestack/pkg/plan"
	"github.com/mchmarny/sitestack/pkg/site"
)

// Output keys declared on the enclosing stack.
const (
	OutputSite                   = "Site"
	OutputBucket                 = "Bucket"
	OutputCertificate            = "Certificate"
	OutputDistributionID         = "DistributionId"
	OutputDistributionDomainName = "DistributionDomainName"
)

// StaticSite is the construct holding the declared site resources.
type StaticSite struct {
	constructs.Construct

	Zone         awsroute53.IHostedZone
	Bucket       awss3.Bucket
	Certificate  awscertificatemanager.ICertificate
	Distribution awscloudfront.Distribution
	Records      []awsroute53.RecordSet
	Deployment   awss3deployment.BucketDeployment
}

// NewStaticSite declares the site resources under scope. cfg is expected to
// be normalized and validated.
func NewStaticSite(scope constructs.Construct, id string, cfg site.Config) *StaticSite {
	c := constructs.NewConstruct(scope, jsii.String(id))
	s := &StaticSite{Construct: c}
	siteDomain := cfg.SiteDomain()

	s.Zone = hostedZone(c, cfg)

	s.Bucket = awss3.NewBucket(c, jsii.String(plan.IDBucket), &awss3.BucketProps{
		BucketName:        jsii.String(siteDomain),
		PublicReadAccess:  jsii.Bool(false),
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		EnforceSSL:        jsii.Bool(true),
		// Site content is reproducible from the asset directory.
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
	})

	s.Certificate = certificate(c, siteDomain, s.Zone)

	s.Distribution = awscloudfront.NewDistribution(c, jsii.String(plan.IDDistribution), &awscloudfront.DistributionProps{
		Certificate:            s.Certificate,
		DefaultRootObject:      jsii.String(cfg.IndexDocument),
		DomainNames:            jsii.Strings(siteDomain),
		MinimumProtocolVersion: awscloudfront.SecurityPolicyProtocol_TLS_V1_2_2021,
		PriceClass:             priceClass(cfg.PriceClass),
		Comment:                jsii.String(fmt.Sprintf("Static site %s", siteDomain)),
		ErrorResponses: &[]*awscloudfront.ErrorResponse{
			{
				HttpStatus:         jsii.Number(403),
				ResponseHttpStatus: jsii.Number(403),
				ResponsePagePath:   jsii.String("/" + cfg.ErrorDocument),
				Ttl:                awscdk.Duration_Minutes(jsii.Number(cfg.ErrorCachingMinTTL().Minutes())),
			},
		},
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               origin(c, s.Bucket, cfg),
			Compress:             jsii.Bool(true),
			AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_GET_HEAD_OPTIONS(),
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
		},
	})

	target := awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(s.Distribution))
	s.Records = append(s.Records, awsroute53.NewARecord(c, jsii.String(plan.IDRecordA), &awsroute53.ARecordProps{
		RecordName: jsii.String(siteDomain),
		Target:     target,
		Zone:       s.Zone,
	}))
	if cfg.AAAARecord() {
		s.Records = append(s.Records, awsroute53.NewAaaaRecord(c, jsii.String(plan.IDRecordAAAA), &awsroute53.AaaaRecordProps{
			RecordName: jsii.String(siteDomain),
			Target:     target,
			Zone:       s.Zone,
		}))
	}

	s.Deployment = awss3deployment.NewBucketDeployment(c, jsii.String(plan.IDDeployment), &awss3deployment.BucketDeploymentProps{
		Sources: &[]awss3deployment.ISource{
			awss3deployment.Source_Asset(jsii.String(cfg.AssetPath), nil),
		},
		DestinationBucket: s.Bucket,
		Distribution:      s.Distribution,
		DistributionPaths: jsii.Strings(cfg.InvalidationPaths...),
	})

	stack := awscdk.Stack_Of(c)
	output(stack, OutputSite, jsii.String(cfg.SiteURL()))
	output(stack, OutputBucket, s.Bucket.BucketName())
	output(stack, OutputCertificate, s.Certificate.CertificateArn())
	output(stack, OutputDistributionID, s.Distribution.DistributionId())
	output(stack, OutputDistributionDomainName, s.Distribution.DistributionDomainName())

	return s
}

func hostedZone(scope constructs.Construct, cfg site.Config) awsroute53.IHostedZone {
	if cfg.HostedZoneID != "" {
		return awsroute53.HostedZone_FromHostedZoneAttributes(scope, jsii.String(plan.IDZone), &awsroute53.HostedZoneAttributes{
			HostedZoneId: jsii.String(cfg.HostedZoneID),
			ZoneName:     jsii.String(cfg.DomainName),
		})
	}
	return awsroute53.HostedZone_FromLookup(scope, jsii.String(plan.IDZone), &awsroute53.HostedZoneProviderProps{
		DomainName: jsii.String(cfg.DomainName),
	})
}

// certificate declares a DNS-validated certificate usable by CloudFront.
// Stacks outside us-east-1 get a cross-region certificate pinned there.
func certificate(scope constructs.Construct, siteDomain string, zone awsroute53.IHostedZone) awscertificatemanager.ICertificate {
	if inCertificateRegion(awscdk.Stack_Of(scope)) {
		return awscertificatemanager.NewCertificate(scope, jsii.String(plan.IDCertificate), &awscertificatemanager.CertificateProps{
			DomainName: jsii.String(siteDomain),
			Validation: awscertificatemanager.CertificateValidation_FromDns(zone),
		})
	}
	//nolint:staticcheck // the only construct that validates a certificate in another region
	return awscertificatemanager.NewDnsValidatedCertificate(scope, jsii.String(plan.IDCertificate), &awscertificatemanager.DnsValidatedCertificateProps{
		DomainName: jsii.String(siteDomain),
		HostedZone: zone,
		Region:     jsii.String(defaults.CertificateRegion),
	})
}

func inCertificateRegion(stack awscdk.Stack) bool {
	region := stack.Region()
	if region == nil || *awscdk.Token_IsUnresolved(region) {
		return false
	}
	return *region == defaults.CertificateRegion
}

func origin(scope constructs.Construct, bucket awss3.IBucket, cfg site.Config) awscloudfront.IOrigin {
	if cfg.OriginAccess == site.OriginAccessIdentity {
		oai := awscloudfront.NewOriginAccessIdentity(scope, jsii.String(plan.IDOriginAccessIdentity), &awscloudfront.OriginAccessIdentityProps{
			Comment: jsii.String(fmt.Sprintf("OAI for %s", cfg.SiteDomain())),
		})
		return awscloudfrontorigins.S3BucketOrigin_WithOriginAccessIdentity(bucket, &awscloudfrontorigins.S3BucketOriginWithOAIProps{
			OriginAccessIdentity: oai,
		})
	}
	return awscloudfrontorigins.S3BucketOrigin_WithOriginAccessControl(bucket, nil)
}

func priceClass(p site.PriceClass) awscloudfront.PriceClass {
	switch p {
	case site.PriceClass200:
		return awscloudfront.PriceClass_PRICE_CLASS_200
	case site.PriceClassAll:
		return awscloudfront.PriceClass_PRICE_CLASS_ALL
	default:
		return awscloudfront.PriceClass_PRICE_CLASS_100
	}
}

func output(stack awscdk.Stack, id string, value *string) {
	awscdk.NewCfnOutput(stack, jsii.String(id), &awscdk.CfnOutputProps{
		Value: value,
	})
}
