package pinning

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaAPI is the slice of the Lambda control plane the resolver needs.
type LambdaAPI interface {
	ListVersionsByFunction(ctx context.Context, params *lambda.ListVersionsByFunctionInput, optFns ...func(*lambda.Options)) (*lambda.ListVersionsByFunctionOutput, error)
}

// AWSLambda pins references by looking up the newest published version of
// the deployed function and substituting its qualified ARN.
type AWSLambda struct {
	client LambdaAPI

	// functionNames maps a function logical id to its deployed name.
	functionNames map[string]string
}

// NewAWSLambda loads the default AWS configuration and returns a resolver
// over the given logical-id -> deployed-name table.
func NewAWSLambda(ctx context.Context, region string, functionNames map[string]string) (*AWSLambda, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return &AWSLambda{
		client:        lambda.NewFromConfig(cfg),
		functionNames: functionNames,
	}, nil
}

// NewAWSLambdaWithClient returns a resolver over an existing client.
func NewAWSLambdaWithClient(client LambdaAPI, functionNames map[string]string) *AWSLambda {
	return &AWSLambda{client: client, functionNames: functionNames}
}

// Pin resolves the reference target to its newest published version and
// returns the version-qualified ARN as a literal string.
func (r *AWSLambda) Pin(ctx context.Context, ref interface{}) (interface{}, error) {
	logicalID, ok := ReferenceTarget(ref)
	if !ok {
		return nil, fmt.Errorf("reference %v is not a versionable function reference", ref)
	}
	deployedName, ok := r.functionNames[logicalID]
	if !ok {
		return nil, fmt.Errorf("no deployed function known for %s", logicalID)
	}

	arn, err := r.latestVersionArn(ctx, deployedName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve version of %s: %w", deployedName, err)
	}
	return arn, nil
}

func (r *AWSLambda) latestVersionArn(ctx context.Context, functionName string) (string, error) {
	var (
		marker     *string
		bestNumber = -1
		bestArn    string
	)
	for {
		out, err := r.client.ListVersionsByFunction(ctx, &lambda.ListVersionsByFunctionInput{
			FunctionName: aws.String(functionName),
			Marker:       marker,
		})
		if err != nil {
			return "", err
		}
		for _, v := range out.Versions {
			number, err := strconv.Atoi(aws.ToString(v.Version))
			if err != nil {
				// $LATEST is mutable, never a pin target.
				continue
			}
			if number > bestNumber {
				bestNumber = number
				bestArn = aws.ToString(v.FunctionArn)
			}
		}
		if out.NextMarker == nil {
			break
		}
		marker = out.NextMarker
	}
	if bestNumber < 0 {
		return "", fmt.Errorf("function %s has no published versions", functionName)
	}
	return bestArn, nil
}
